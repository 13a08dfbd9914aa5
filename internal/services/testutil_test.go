package services

import (
	"testing"
	"time"

	"roomcare/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 打开内存数据库并建表，每个测试独立一份
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Staff{},
		&models.Property{},
		&models.RoomSlot{},
		&models.Tenancy{},
		&models.Attachment{},
		&models.InspectionReport{},
		&models.ReportImage{},
	)
	require.NoError(t, err)

	return db
}

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// seedProperty 创建物件和房间，返回物件
func seedProperty(t *testing.T, db *gorm.DB, name, shortName string, roomNumbers ...string) *models.Property {
	t.Helper()

	property := &models.Property{
		Name:      name,
		ShortName: shortName,
		Status:    models.PropertyStatusActive,
	}
	require.NoError(t, db.Create(property).Error)

	for i, roomNumber := range roomNumbers {
		room := models.RoomSlot{
			PropertyID: property.ID,
			RoomNumber: roomNumber,
			SortOrder:  i,
		}
		require.NoError(t, db.Create(&room).Error)
		property.Rooms = append(property.Rooms, room)
	}

	return property
}

// seedTenancy 为房间创建租约并设为当前租约
func seedTenancy(t *testing.T, db *gorm.DB, room *models.RoomSlot, customerID, customerName string, moveOut *time.Time, earlyLeave bool) *models.Tenancy {
	t.Helper()

	tenancy := &models.Tenancy{
		CustomerID:     customerID,
		CustomerName:   customerName,
		MoveOutDecided: moveOut != nil || earlyLeave,
		MoveOutDate:    moveOut,
		EarlyLeaveDone: earlyLeave,
	}
	require.NoError(t, db.Create(tenancy).Error)
	require.NoError(t, db.Model(room).Update("current_tenancy_id", tenancy.ID).Error)

	return tenancy
}
