package models

import (
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Staff 保洁员账号模型
type Staff struct {
	BaseModel
	LoginID      string         `json:"login_id" gorm:"unique;not null;size:50;index"`
	PasswordHash string         `json:"-" gorm:"not null;size:255"`
	Name         string         `json:"name" gorm:"not null;size:100"`
	HouseIDs     datatypes.JSON `json:"house_ids" gorm:"type:jsonb"` // 可见物件ID数组
	Status       string         `json:"status" gorm:"default:'active';size:20"`
	IsAdmin      bool           `json:"is_admin" gorm:"default:false"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
}

// TableName 表名
func (s *Staff) TableName() string {
	return "staffs"
}

// 账号状态常量
const (
	StaffStatusActive   = "active"
	StaffStatusInactive = "inactive"
)

// SetPassword 设置密码 - 数据操作方法
func (s *Staff) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码 - 数据操作方法
func (s *Staff) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password))
	return err == nil
}

// VisibleHouseIDs 解析可见物件ID列表，解析失败返回空列表
func (s *Staff) VisibleHouseIDs() []uint {
	if len(s.HouseIDs) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(s.HouseIDs, &ids); err != nil {
		return nil
	}
	return ids
}

// SetVisibleHouseIDs 写入可见物件ID列表
func (s *Staff) SetVisibleHouseIDs(ids []uint) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.HouseIDs = datatypes.JSON(data)
	return nil
}
