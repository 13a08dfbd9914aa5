package services

import (
	"encoding/json"
	"errors"
	"time"

	"roomcare/internal/models"
	"roomcare/pkg/cache"
	"roomcare/pkg/logger"

	"gorm.io/gorm"
)

// staffListCacheKey 保洁员一览的缓存键
const staffListCacheKey = "staff:list"

var (
	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrStaffDisabled      = errors.New("账号已停用")
)

// StaffService 保洁员账号管理
// 缓存实例由构造函数显式注入，便于测试替换
type StaffService struct {
	db      *gorm.DB
	cache   cache.Cache
	listTTL time.Duration
}

func NewStaffService(db *gorm.DB, c cache.Cache, listTTL time.Duration) *StaffService {
	return &StaffService{db: db, cache: c, listTTL: listTTL}
}

// Login 登录验证
// 为避免账号枚举，账号不存在和密码错误返回同一错误
func (s *StaffService) Login(loginID, password string) (*models.Staff, error) {
	var staff models.Staff
	err := s.db.Where("login_id = ?", loginID).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !staff.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if staff.Status != models.StaffStatusActive {
		return nil, ErrStaffDisabled
	}

	now := time.Now()
	if err := s.db.Model(&staff).Update("last_login_at", now).Error; err != nil {
		// 登录时间更新失败不影响登录本身
		logger.GetLogger().Warnf("更新最后登录时间失败: %v", err)
	}

	return &staff, nil
}

// GetByID 按ID查询账号
func (s *StaffService) GetByID(id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := s.db.First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// List 保洁员一览，结果带TTL缓存
// 缓存读写失败时降级为直接查库，不向上传播错误
func (s *StaffService) List() ([]models.Staff, error) {
	if s.cache != nil {
		if data, ok, err := s.cache.Get(staffListCacheKey); err == nil && ok {
			var staffs []models.Staff
			if err := json.Unmarshal([]byte(data), &staffs); err == nil {
				return staffs, nil
			}
		}
	}

	var staffs []models.Staff
	if err := s.db.Order("id").Find(&staffs).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(staffs); err == nil {
			if err := s.cache.Set(staffListCacheKey, string(data), s.listTTL); err != nil {
				logger.GetLogger().Warnf("写入保洁员缓存失败: %v", err)
			}
		}
	}

	return staffs, nil
}

// CreateStaffInput 创建账号的输入
type CreateStaffInput struct {
	LoginID  string `json:"login_id" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=50"`
	Name     string `json:"name" binding:"required,max=100"`
	HouseIDs []uint `json:"house_ids"`
	IsAdmin  bool   `json:"is_admin"`
}

// Create 创建账号
func (s *StaffService) Create(input *CreateStaffInput) (*models.Staff, error) {
	staff := &models.Staff{
		LoginID: input.LoginID,
		Name:    input.Name,
		Status:  models.StaffStatusActive,
		IsAdmin: input.IsAdmin,
	}
	if err := staff.SetPassword(input.Password); err != nil {
		return nil, err
	}
	if err := staff.SetVisibleHouseIDs(input.HouseIDs); err != nil {
		return nil, err
	}

	if err := s.db.Create(staff).Error; err != nil {
		return nil, err
	}

	s.invalidateList()
	return staff, nil
}

// UpdateStaffInput 更新账号的输入，指针字段为nil表示不修改
type UpdateStaffInput struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Password *string `json:"password" binding:"omitempty,min=6,max=50"`
	HouseIDs []uint  `json:"house_ids"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
	IsAdmin  *bool   `json:"is_admin"`
}

// Update 更新账号
func (s *StaffService) Update(id uint, input *UpdateStaffInput) (*models.Staff, error) {
	var staff models.Staff
	if err := s.db.First(&staff, id).Error; err != nil {
		return nil, err
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Password != nil {
		if err := staff.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}
	if input.HouseIDs != nil {
		if err := staff.SetVisibleHouseIDs(input.HouseIDs); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		staff.Status = *input.Status
	}
	if input.IsAdmin != nil {
		staff.IsAdmin = *input.IsAdmin
	}

	if err := s.db.Save(&staff).Error; err != nil {
		return nil, err
	}

	s.invalidateList()
	return &staff, nil
}

// Delete 删除账号
func (s *StaffService) Delete(id uint) error {
	result := s.db.Delete(&models.Staff{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	s.invalidateList()
	return nil
}

// invalidateList 写操作后失效一览缓存
func (s *StaffService) invalidateList() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(staffListCacheKey); err != nil {
		logger.GetLogger().Warnf("失效保洁员缓存失败: %v", err)
	}
}
