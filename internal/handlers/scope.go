package handlers

import (
	"time"

	"roomcare/internal/middleware"
	"roomcare/internal/models"
	"roomcare/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HouseScope 可见物件范围解析
// JWT登录态按账号配置的物件ID过滤，API密钥模式可见全部有效物件
type HouseScope struct {
	db           *gorm.DB
	staffService *services.StaffService
}

func NewHouseScope(db *gorm.DB, staffService *services.StaffService) *HouseScope {
	return &HouseScope{db: db, staffService: staffService}
}

// Resolve 解析当前请求可见的物件ID列表
func (s *HouseScope) Resolve(c *gin.Context) ([]uint, error) {
	if middleware.IsAPIKeyAuth(c) {
		return s.allActiveHouseIDs()
	}

	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		return nil, nil
	}

	staff, err := s.staffService.GetByID(staffID)
	if err != nil {
		return nil, err
	}
	return staff.VisibleHouseIDs(), nil
}

// allActiveHouseIDs 全部有效物件的ID
func (s *HouseScope) allActiveHouseIDs() ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Property{}).
		Where("status = ?", models.PropertyStatusActive).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// parseToday 解析date查询参数，缺省为当前时间
// 判定基准日由调用方指定，便于外部消费方按任意日期查询
func parseToday(c *gin.Context) (time.Time, error) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", dateStr, time.Local)
}
