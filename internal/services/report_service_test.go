package services

import (
	"testing"
	"time"

	"roomcare/internal/models"
	"roomcare/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedAttachment 创建附件记录
func seedAttachment(t *testing.T, db *gorm.DB, url string) *models.Attachment {
	t.Helper()
	attachment := &models.Attachment{
		StorageKey: url, // 测试里直接用URL充当对象键
		URL:        url,
	}
	require.NoError(t, db.Create(attachment).Error)
	return attachment
}

func TestReportServiceCreateTitleNormalization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	property := seedProperty(t, db, "青葉ハウス新宿", "青葉", "201")
	moveOut := testDate(2024, 3, 10)
	seedTenancy(t, db, &property.Rooms[0], "C001", "山田太郎", &moveOut, false)

	rec, err := svc.Create(&CreateReportInput{
		HouseID:    property.ID,
		RoomNumber: "201",
		RoomStatus: "清掃完了",
	}, testDate(2024, 3, 15))
	require.NoError(t, err)

	// 标题在创建时一次性规范化
	assert.Equal(t, "青葉 201：[C001]山田太郎様_24/03/15", rec.Title)
	assert.Equal(t, "C001", rec.CustomerID)
	assert.Equal(t, "山田太郎", rec.CustomerName)
}

func TestReportServiceCreateTitleFallsBackToName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	// 未设置简称时使用正式名称
	property := seedProperty(t, db, "桜荘", "", "101")
	moveOut := testDate(2024, 3, 10)
	seedTenancy(t, db, &property.Rooms[0], "C002", "鈴木花子", &moveOut, false)

	rec, err := svc.Create(&CreateReportInput{
		HouseID:    property.ID,
		RoomNumber: "101",
	}, testDate(2024, 3, 15))
	require.NoError(t, err)
	assert.Equal(t, "桜荘 101：[C002]鈴木花子様_24/03/15", rec.Title)
}

func TestReportServiceCreateStoresImages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	property := seedProperty(t, db, "青葉ハウス", "青葉", "301")
	seedTenancy(t, db, &property.Rooms[0], "C003", "高橋", nil, false)

	a1 := seedAttachment(t, db, "https://cdn.example.com/b1.jpg")
	a2 := seedAttachment(t, db, "https://cdn.example.com/a1.jpg")

	rec, err := svc.Create(&CreateReportInput{
		HouseID:    property.ID,
		RoomNumber: "301",
		BeforeImages: []ReportImageInput{
			{AttachmentID: a1.ID, Note: "玄関"},
		},
		AfterImages: []ReportImageInput{
			{AttachmentID: a2.ID, Note: "玄関清掃後"},
		},
		AttachedFiles: []ReportFileInput{
			{URL: "https://cdn.example.com/estimate.pdf", Note: "見積書"},
		},
	}, testDate(2024, 3, 15))
	require.NoError(t, err)

	var images []models.ReportImage
	require.NoError(t, db.Where("report_id = ?", rec.ID).Order("kind, sort_order").Find(&images).Error)
	assert.Len(t, images, 3)
}

func TestReportServiceGetDetailAssemblesPairs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	property := seedProperty(t, db, "青葉ハウス", "青葉", "201")
	moveOut := testDate(2024, 3, 10)
	seedTenancy(t, db, &property.Rooms[0], "C001", "山田太郎", &moveOut, false)

	b1 := seedAttachment(t, db, "https://cdn.example.com/b1.jpg")
	b2 := seedAttachment(t, db, "https://cdn.example.com/b2.jpg")
	a1 := seedAttachment(t, db, "https://cdn.example.com/a1.jpg")
	p1 := seedAttachment(t, db, "https://cdn.example.com/p1.jpg")

	rec, err := svc.Create(&CreateReportInput{
		HouseID:    property.ID,
		RoomNumber: "201",
		BeforeImages: []ReportImageInput{
			{AttachmentID: b1.ID, Note: "玄関"},
			{AttachmentID: b2.ID, Note: "キッチン"},
		},
		AfterImages: []ReportImageInput{
			{AttachmentID: a1.ID, Note: "玄関清掃後"},
		},
		ProposalImages: []ReportImageInput{
			{AttachmentID: p1.ID, Note: "壁紙張替"},
		},
		RoomStatus:  "清掃完了",
		OverallNote: "特に問題なし",
	}, testDate(2024, 3, 15))
	require.NoError(t, err)

	detail, err := svc.GetDetail(rec.ID, []uint{property.ID})
	require.NoError(t, err)

	assert.Equal(t, rec.ID, detail.PostID)
	assert.Equal(t, "青葉ハウス", detail.HouseName)
	assert.Equal(t, "清掃完了", detail.RoomStatus)

	// 前2张、后1张：按下标配对，第二对后侧为nil
	require.Len(t, detail.ComparisonImages, 2)
	assert.Equal(t, "https://cdn.example.com/b1.jpg", detail.ComparisonImages[0].Before.URL)
	assert.Equal(t, "https://cdn.example.com/a1.jpg", detail.ComparisonImages[0].After.URL)
	assert.Equal(t, "https://cdn.example.com/b2.jpg", detail.ComparisonImages[1].Before.URL)
	assert.Nil(t, detail.ComparisonImages[1].After)

	require.Len(t, detail.ProposalImages, 1)
	assert.Equal(t, "壁紙張替", detail.ProposalImages[0].Note)
}

func TestReportServiceGetDetailScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	property := seedProperty(t, db, "青葉ハウス", "青葉", "201")
	seedTenancy(t, db, &property.Rooms[0], "C001", "山田", nil, false)

	rec, err := svc.Create(&CreateReportInput{
		HouseID:    property.ID,
		RoomNumber: "201",
	}, testDate(2024, 3, 15))
	require.NoError(t, err)

	// 不在可见范围内按不存在处理
	_, err = svc.GetDetail(rec.ID, []uint{property.ID + 100})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = svc.GetDetail(rec.ID+100, []uint{property.ID})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReportServiceListRecentWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	property := seedProperty(t, db, "青葉ハウス", "青葉", "201")
	today := testDate(2024, 3, 31)

	// 直接插入记录以控制created_at
	createReportAt := func(createdAt time.Time) *models.InspectionReport {
		rec := &models.InspectionReport{
			PropertyID: property.ID,
			RoomSlotID: property.Rooms[0].ID,
			RoomNumber: "201",
			Title:      "青葉 201",
		}
		rec.CreatedAt = createdAt
		require.NoError(t, db.Create(rec).Error)
		return rec
	}

	inWindow := createReportAt(testDate(2024, 3, 1))   // 恰好30天前
	createReportAt(testDate(2024, 2, 29))              // 31天前，排除
	recent := createReportAt(testDate(2024, 3, 30))

	summaries, err := svc.ListRecent([]uint{property.ID}, today, report.WindowDays)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	ids := []uint{summaries[0].PostID, summaries[1].PostID}
	assert.Contains(t, ids, inWindow.ID)
	assert.Contains(t, ids, recent.ID)
	assert.Equal(t, "青葉ハウス", summaries[0].HouseName)
}

func TestReportServiceListRecentEmptyScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	summaries, err := svc.ListRecent(nil, testDate(2024, 3, 31), report.WindowDays)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
