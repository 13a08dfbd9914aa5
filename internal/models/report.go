package models

import (
	"gorm.io/datatypes"
)

// InspectionReport 退房检查报告书
// 创建后不可变，仅在创建时执行一次标题规范化
type InspectionReport struct {
	BaseModel
	PropertyID   uint   `gorm:"not null;index" json:"property_id"`
	RoomSlotID   uint   `gorm:"not null;index" json:"room_slot_id"`
	RoomNumber   string `gorm:"size:20;not null" json:"room_number"`
	CustomerID   string `gorm:"size:50" json:"customer_id"`
	CustomerName string `gorm:"size:100" json:"customer_name"`

	Title         string         `gorm:"size:200" json:"title"`
	RoomCondition string         `gorm:"size:50" json:"room_condition"` // 清扫后的房间状态标签
	OverallNote   string         `gorm:"type:text" json:"overall_note"`
	Checklist     datatypes.JSON `gorm:"type:jsonb" json:"checklist,omitempty"` // 清扫项目勾选表

	// 关联
	Property Property      `gorm:"foreignKey:PropertyID" json:"-"`
	Images   []ReportImage `gorm:"foreignKey:ReportID" json:"images,omitempty"`
}

// TableName 表名
func (InspectionReport) TableName() string {
	return "inspection_reports"
}

// 报告书图片分类常量
const (
	ReportImageKindBefore   = "before"   // 清扫前
	ReportImageKindAfter    = "after"    // 清扫后
	ReportImageKindProposal = "proposal" // 特殊清扫・修缮提案
	ReportImageKindDamage   = "damage"   // 残置物・污损破损
	ReportImageKindFile     = "file"     // 附件文件
)

// ReportImage 报告书图片/附件记录
// 同一分类内按SortOrder构成有序画廊
type ReportImage struct {
	BaseModel
	ReportID     uint   `gorm:"not null;index" json:"report_id"`
	Kind         string `gorm:"size:20;not null;index" json:"kind"`
	AttachmentID *uint  `gorm:"index" json:"attachment_id,omitempty"` // file分类直接携带URL，可为空
	FileURL      string `gorm:"size:500" json:"file_url,omitempty"`
	Note         string `gorm:"size:500" json:"note"`
	SortOrder    int    `gorm:"not null;default:0" json:"sort_order"`
}

// TableName 表名
func (ReportImage) TableName() string {
	return "report_images"
}

// Attachment 附件（图片文件）元数据
type Attachment struct {
	BaseModel
	StorageKey  string `gorm:"size:64;uniqueIndex" json:"storage_key"` // 存储端对象键（uuid）
	URL         string `gorm:"size:500" json:"url"`
	FileName    string `gorm:"size:255" json:"file_name"`
	ContentType string `gorm:"size:100" json:"content_type"`
}

// TableName 表名
func (Attachment) TableName() string {
	return "attachments"
}
