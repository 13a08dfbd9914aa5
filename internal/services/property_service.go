package services

import (
	"roomcare/internal/models"

	"gorm.io/gorm"
)

// PropertyService 物件与房间管理
type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// List 物件一览（含房间）
func (s *PropertyService) List(page, pageSize int) ([]models.Property, int64, error) {
	var total int64
	if err := s.db.Model(&models.Property{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []models.Property
	err := s.db.
		Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("room_slots.sort_order, room_slots.room_number")
		}).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// GetByID 按ID查询物件
func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := s.db.
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("room_slots.sort_order, room_slots.room_number")
		}).
		Preload("Rooms.CurrentTenancy").
		First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// CreatePropertyInput 创建物件的输入
type CreatePropertyInput struct {
	Name        string   `json:"name" binding:"required,max=100"`
	ShortName   string   `json:"short_name" binding:"max=50"`
	Address     string   `json:"address" binding:"max=255"`
	BuildingKey string   `json:"building_key" binding:"max=50"`
	CleanerNote string   `json:"cleaner_note"`
	RoomNumbers []string `json:"room_numbers"`
}

// Create 创建物件及初始房间
func (s *PropertyService) Create(input *CreatePropertyInput) (*models.Property, error) {
	property := &models.Property{
		Name:        input.Name,
		ShortName:   input.ShortName,
		Address:     input.Address,
		BuildingKey: input.BuildingKey,
		CleanerNote: input.CleanerNote,
		Status:      models.PropertyStatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(property).Error; err != nil {
			return err
		}

		for i, roomNumber := range input.RoomNumbers {
			room := models.RoomSlot{
				PropertyID: property.ID,
				RoomNumber: roomNumber,
				SortOrder:  i,
			}
			if err := tx.Create(&room).Error; err != nil {
				return err
			}
			property.Rooms = append(property.Rooms, room)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return property, nil
}

// UpdatePropertyInput 更新物件的输入，指针字段为nil表示不修改
type UpdatePropertyInput struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	ShortName   *string `json:"short_name" binding:"omitempty,max=50"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	BuildingKey *string `json:"building_key" binding:"omitempty,max=50"`
	CleanerNote *string `json:"cleaner_note"`
	Status      *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// Update 更新物件
func (s *PropertyService) Update(id uint, input *UpdatePropertyInput) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return nil, err
	}

	if input.Name != nil {
		property.Name = *input.Name
	}
	if input.ShortName != nil {
		property.ShortName = *input.ShortName
	}
	if input.Address != nil {
		property.Address = *input.Address
	}
	if input.BuildingKey != nil {
		property.BuildingKey = *input.BuildingKey
	}
	if input.CleanerNote != nil {
		property.CleanerNote = *input.CleanerNote
	}
	if input.Status != nil {
		property.Status = *input.Status
	}

	if err := s.db.Save(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// AddRoom 为物件追加房间，房号在物件内唯一由数据库约束保证
func (s *PropertyService) AddRoom(propertyID uint, roomNumber, roomKey string, sortOrder int) (*models.RoomSlot, error) {
	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		return nil, err
	}

	room := &models.RoomSlot{
		PropertyID: propertyID,
		RoomNumber: roomNumber,
		RoomKey:    roomKey,
		SortOrder:  sortOrder,
	}
	if err := s.db.Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}
