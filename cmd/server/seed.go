package main

import (
	"roomcare/internal/models"
	"roomcare/pkg/logger"

	"gorm.io/gorm"
)

// seedData 初始化管理员账号，仅在账号表为空时执行
func seedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Staff{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.Staff{
		LoginID: "admin",
		Name:    "管理员",
		Status:  models.StaffStatusActive,
		IsAdmin: true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}
	if err := admin.SetVisibleHouseIDs([]uint{}); err != nil {
		return err
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Warn("已创建默认管理员账号 admin/admin123，请尽快修改密码")
	return nil
}
