package models

import (
	"time"
)

// Property 物件（シェアハウス）模型
type Property struct {
	BaseModel
	Name        string `json:"name" gorm:"not null;size:100"`
	ShortName   string `json:"short_name" gorm:"size:50"` // 报告书标题使用的简称，为空时回退到Name
	Address     string `json:"address" gorm:"size:255"`
	BuildingKey string `json:"building_key" gorm:"size:50"` // 建物钥匙箱编号
	CleanerNote string `json:"cleaner_note" gorm:"type:text"` // 保洁员注意事项（可能含HTML）
	Status      string `json:"status" gorm:"default:'active';size:20"`

	// 关联
	Rooms []RoomSlot `gorm:"foreignKey:PropertyID" json:"rooms,omitempty"`
}

// TableName 表名
func (Property) TableName() string {
	return "properties"
}

// 物件状态常量
const (
	PropertyStatusActive   = "active"
	PropertyStatusInactive = "inactive"
)

// DisplayShortName 报告书标题用简称，未设置时使用正式名称
func (p *Property) DisplayShortName() string {
	if p.ShortName != "" {
		return p.ShortName
	}
	return p.Name
}

// RoomSlot 房间模型，房号在同一物件内唯一
type RoomSlot struct {
	BaseModel
	PropertyID uint   `gorm:"not null;uniqueIndex:idx_property_room" json:"property_id"`
	RoomNumber string `gorm:"size:20;not null;uniqueIndex:idx_property_room" json:"room_number"`
	RoomKey    string `gorm:"size:50" json:"room_key"` // 房间钥匙编号
	SortOrder  int    `gorm:"not null;default:0" json:"sort_order"`

	// 当前及下一期租约（均可为空）
	CurrentTenancyID *uint `gorm:"index" json:"current_tenancy_id,omitempty"`
	NextTenancyID    *uint `json:"next_tenancy_id,omitempty"`

	// 关联
	Property       Property `gorm:"foreignKey:PropertyID" json:"-"`
	CurrentTenancy *Tenancy `gorm:"foreignKey:CurrentTenancyID" json:"current_tenancy,omitempty"`
	NextTenancy    *Tenancy `gorm:"foreignKey:NextTenancyID" json:"next_tenancy,omitempty"`
}

// TableName 表名
func (RoomSlot) TableName() string {
	return "room_slots"
}

// Tenancy 租约模型：一位租客在一个房间的一次入住期间
// 只增不删，房间再次出租时创建新租约替换引用
type Tenancy struct {
	BaseModel
	CustomerID     string     `gorm:"size:50;not null;index" json:"customer_id"`
	CustomerName   string     `gorm:"size:100" json:"customer_name"`
	MoveOutDecided bool       `gorm:"default:false" json:"move_out_decided"` // 是否已确认退房
	MoveOutDate    *time.Time `gorm:"type:date" json:"move_out_date"`        // 确认的退房日期（仅日期）
	EarlyLeaveDone bool       `gorm:"default:false" json:"early_leave_done"` // 是否已提前退房
}

// TableName 表名
func (Tenancy) TableName() string {
	return "tenancies"
}
