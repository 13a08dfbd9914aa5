package services

import (
	"regexp"
	"time"

	"roomcare/internal/models"
	"roomcare/internal/vacancy"

	"gorm.io/gorm"
)

// RoomService 房间查询与租约操作
type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

// htmlTagPattern 去除业者备注中的HTML标签
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// RoomDetail 房间详情视图
type RoomDetail struct {
	HouseID     uint          `json:"house_id"`
	HouseName   string        `json:"house_name"`
	RoomID      uint          `json:"room_id"`
	RoomNumber  string        `json:"room_number"`
	CustomerID  string        `json:"customer_id"`
	MoveOutDate string        `json:"moveout_date"` // YYYY-MM-DD，未确认时为空串
	VacancyDate string        `json:"vacancy_date"` // YYYY-MM-DD，未确认时为空串
	EarlyLeave  bool          `json:"early_leave"`
	StatusLabel vacancy.Label `json:"status_label"`
	RoomKey     string        `json:"room_key"`
	BuildingKey string        `json:"building_key"`
	Address     string        `json:"address"`
	CleanerNote string        `json:"cleaner_note"`
}

// ListVacant 空室一览
// houseIDs为调用方可见的物件范围，today由调用方提供
func (s *RoomService) ListVacant(houseIDs []uint, today time.Time) ([]vacancy.Row, error) {
	if len(houseIDs) == 0 {
		return []vacancy.Row{}, nil
	}

	var properties []models.Property
	err := s.db.
		Where("id IN ? AND status = ?", houseIDs, models.PropertyStatusActive).
		Order("id").
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("room_slots.sort_order, room_slots.room_number")
		}).
		Preload("Rooms.CurrentTenancy").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}

	return vacancy.ListVacancies(properties, today), nil
}

// GetDetail 房间详情
// 物件或房间不存在时返回 gorm.ErrRecordNotFound
func (s *RoomService) GetDetail(houseID uint, roomNumber string, today time.Time) (*RoomDetail, error) {
	var property models.Property
	if err := s.db.First(&property, houseID).Error; err != nil {
		return nil, err
	}

	var room models.RoomSlot
	err := s.db.
		Where("property_id = ? AND room_number = ?", houseID, roomNumber).
		Preload("CurrentTenancy").
		First(&room).Error
	if err != nil {
		return nil, err
	}

	detail := &RoomDetail{
		HouseID:     property.ID,
		HouseName:   property.Name,
		RoomID:      room.ID,
		RoomNumber:  room.RoomNumber,
		RoomKey:     room.RoomKey,
		BuildingKey: property.BuildingKey,
		Address:     property.Address,
		CleanerNote: htmlTagPattern.ReplaceAllString(property.CleanerNote, ""),
		StatusLabel: vacancy.UndecidedLabel(),
	}
	// 未登记的钥匙和备注用"-"占位
	if detail.RoomKey == "" {
		detail.RoomKey = "-"
	}
	if detail.CleanerNote == "" {
		detail.CleanerNote = "-"
	}

	tenancy := room.CurrentTenancy
	if tenancy == nil {
		return detail, nil
	}

	detail.CustomerID = tenancy.CustomerID
	detail.EarlyLeave = tenancy.EarlyLeaveDone

	if !tenancy.MoveOutDecided {
		return detail, nil
	}

	effective := vacancy.EffectiveMoveOut(tenancy.MoveOutDate, tenancy.EarlyLeaveDone, today)
	classification := vacancy.Classify(effective, today)
	if classification == nil {
		// 已确认退房但日期未定，保持占位标签
		return detail, nil
	}

	detail.MoveOutDate = classification.MoveOutDate.Format("2006-01-02")
	detail.VacancyDate = classification.ReadyDate.Format("2006-01-02")
	detail.StatusLabel = classification.Status.Label()

	return detail, nil
}

// ConfirmMoveOut 确认退房日期
func (s *RoomService) ConfirmMoveOut(houseID uint, roomNumber string, date time.Time) (*models.Tenancy, error) {
	tenancy, err := s.currentTenancy(houseID, roomNumber)
	if err != nil {
		return nil, err
	}

	moveOut := vacancy.Truncate(date)
	tenancy.MoveOutDecided = true
	tenancy.MoveOutDate = &moveOut

	if err := s.db.Save(tenancy).Error; err != nil {
		return nil, err
	}
	return tenancy, nil
}

// MarkEarlyLeave 标记提前退房
func (s *RoomService) MarkEarlyLeave(houseID uint, roomNumber string) (*models.Tenancy, error) {
	tenancy, err := s.currentTenancy(houseID, roomNumber)
	if err != nil {
		return nil, err
	}

	tenancy.MoveOutDecided = true
	tenancy.EarlyLeaveDone = true

	if err := s.db.Save(tenancy).Error; err != nil {
		return nil, err
	}
	return tenancy, nil
}

// AssignTenancy 房间再出租：创建新租约并替换房间引用，旧租约保留
func (s *RoomService) AssignTenancy(houseID uint, roomNumber, customerID, customerName string) (*models.Tenancy, error) {
	var room models.RoomSlot
	err := s.db.
		Where("property_id = ? AND room_number = ?", houseID, roomNumber).
		First(&room).Error
	if err != nil {
		return nil, err
	}

	tenancy := &models.Tenancy{
		CustomerID:   customerID,
		CustomerName: customerName,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenancy).Error; err != nil {
			return err
		}
		return tx.Model(&room).Update("current_tenancy_id", tenancy.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return tenancy, nil
}

// currentTenancy 取房间的当前租约，房间无租客时返回 gorm.ErrRecordNotFound
func (s *RoomService) currentTenancy(houseID uint, roomNumber string) (*models.Tenancy, error) {
	var room models.RoomSlot
	err := s.db.
		Where("property_id = ? AND room_number = ?", houseID, roomNumber).
		Preload("CurrentTenancy").
		First(&room).Error
	if err != nil {
		return nil, err
	}

	if room.CurrentTenancy == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return room.CurrentTenancy, nil
}
