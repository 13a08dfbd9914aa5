package database

import (
	"roomcare/internal/models"
	"roomcare/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.Staff{},
		&models.Property{},
		&models.RoomSlot{},
		&models.Tenancy{},
		&models.Attachment{},
		&models.InspectionReport{},
		&models.ReportImage{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")

	// 种子数据初始化将在 main.go 中单独调用，避免循环依赖

	return nil
}
