package services

import (
	"fmt"
	"sort"
	"time"

	"roomcare/internal/models"
	"roomcare/internal/report"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReportService 报告书查询与创建
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// ReportSummary 报告书一览中的一条
type ReportSummary struct {
	PostID     uint   `json:"post_id"`
	Title      string `json:"title"`
	HouseID    uint   `json:"house_id"`
	HouseName  string `json:"house_name"`
	RoomNumber string `json:"room_number"`
	CreatedAt  string `json:"created_at"` // YYYY-MM-DD
}

// ReportImageInput 创建报告书时的单个图片条目
type ReportImageInput struct {
	AttachmentID uint   `json:"attachment_id"`
	Note         string `json:"note"`
}

// ReportFileInput 创建报告书时的单个附件条目
type ReportFileInput struct {
	URL  string `json:"url"`
	Note string `json:"note"`
}

// CreateReportInput 创建报告书的输入
type CreateReportInput struct {
	HouseID    uint   `json:"house_id"`
	RoomNumber string `json:"room_number"`

	BeforeImages   []ReportImageInput `json:"before_images"`
	AfterImages    []ReportImageInput `json:"after_images"`
	ProposalImages []ReportImageInput `json:"proposal_images"`
	DamageImages   []ReportImageInput `json:"damage_images"`
	AttachedFiles  []ReportFileInput  `json:"attached_files"`

	RoomStatus  string         `json:"room_status"`
	OverallNote string         `json:"overall_note"`
	Checklist   datatypes.JSON `json:"checklist"`
}

// ListRecent 报告书一览
// 回溯窗口内、可见物件范围内的报告书，保持存储层返回顺序不再排序
func (s *ReportService) ListRecent(houseIDs []uint, today time.Time, windowDays int) ([]ReportSummary, error) {
	if len(houseIDs) == 0 {
		return []ReportSummary{}, nil
	}

	var reports []models.InspectionReport
	err := s.db.
		Where("property_id IN ?", houseIDs).
		Preload("Property").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	allowed := make(map[uint]struct{}, len(houseIDs))
	for _, id := range houseIDs {
		allowed[id] = struct{}{}
	}

	filtered := report.FilterWindow(reports, allowed, today, windowDays)

	summaries := make([]ReportSummary, 0, len(filtered))
	for _, r := range filtered {
		summaries = append(summaries, ReportSummary{
			PostID:     r.ID,
			Title:      r.Title,
			HouseID:    r.PropertyID,
			HouseName:  r.Property.Name,
			RoomNumber: r.RoomNumber,
			CreatedAt:  r.CreatedAt.Format("2006-01-02"),
		})
	}

	return summaries, nil
}

// GetDetail 报告书详情
// 报告书不存在或不在可见范围内时返回 gorm.ErrRecordNotFound
func (s *ReportService) GetDetail(reportID uint, houseIDs []uint) (*report.Detail, error) {
	var rec models.InspectionReport
	err := s.db.
		Preload("Property").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("report_images.sort_order, report_images.id")
		}).
		First(&rec, reportID).Error
	if err != nil {
		return nil, err
	}

	if !containsID(houseIDs, rec.PropertyID) {
		return nil, gorm.ErrRecordNotFound
	}

	raw := report.RawDetail{
		PostID:      rec.ID,
		HouseID:     rec.PropertyID,
		HouseName:   rec.Property.Name,
		RoomID:      rec.RoomSlotID,
		RoomNumber:  rec.RoomNumber,
		RoomStatus:  rec.RoomCondition,
		OverallNote: rec.OverallNote,
	}

	var attachmentIDs []uint
	for _, img := range rec.Images {
		switch img.Kind {
		case models.ReportImageKindFile:
			raw.AttachedFiles = append(raw.AttachedFiles, report.RawFile{URL: img.FileURL, Note: img.Note})
			continue
		}

		entry := report.RawImage{Note: img.Note}
		if img.AttachmentID != nil {
			entry.AttachmentID = *img.AttachmentID
			attachmentIDs = append(attachmentIDs, *img.AttachmentID)
		}

		switch img.Kind {
		case models.ReportImageKindBefore:
			raw.BeforeImages = append(raw.BeforeImages, entry)
		case models.ReportImageKindAfter:
			raw.AfterImages = append(raw.AfterImages, entry)
		case models.ReportImageKindProposal:
			raw.ProposalImages = append(raw.ProposalImages, entry)
		case models.ReportImageKindDamage:
			raw.DamageImages = append(raw.DamageImages, entry)
		}
	}

	resolve, err := s.attachmentResolver(attachmentIDs)
	if err != nil {
		return nil, err
	}

	detail := report.Assemble(raw, resolve)
	return &detail, nil
}

// Create 创建报告书
// 标题在此处一次性规范化，此后不再重算
func (s *ReportService) Create(input *CreateReportInput, now time.Time) (*models.InspectionReport, error) {
	var property models.Property
	if err := s.db.First(&property, input.HouseID).Error; err != nil {
		return nil, err
	}

	var room models.RoomSlot
	err := s.db.
		Where("property_id = ? AND room_number = ?", input.HouseID, input.RoomNumber).
		Preload("CurrentTenancy").
		First(&room).Error
	if err != nil {
		return nil, err
	}

	var customerID, customerName string
	if room.CurrentTenancy != nil {
		customerID = room.CurrentTenancy.CustomerID
		customerName = room.CurrentTenancy.CustomerName
	}

	rec := &models.InspectionReport{
		PropertyID:    property.ID,
		RoomSlotID:    room.ID,
		RoomNumber:    room.RoomNumber,
		CustomerID:    customerID,
		CustomerName:  customerName,
		Title:         buildReportTitle(&property, room.RoomNumber, customerID, customerName, now),
		RoomCondition: input.RoomStatus,
		OverallNote:   input.OverallNote,
		Checklist:     input.Checklist,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		images := collectReportImages(rec.ID, input)
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// buildReportTitle 报告书标题规范化
// 格式：{物件简称} {房号}：[{客户ID}]{客户名}様_{yy/mm/dd}
func buildReportTitle(property *models.Property, roomNumber, customerID, customerName string, now time.Time) string {
	return fmt.Sprintf("%s %s：[%s]%s様_%s",
		property.DisplayShortName(), roomNumber, customerID, customerName, now.Format("06/01/02"))
}

// collectReportImages 把输入的各分类图片展开为记录，分类内顺序即输入顺序
func collectReportImages(reportID uint, input *CreateReportInput) []models.ReportImage {
	var images []models.ReportImage

	appendKind := func(kind string, items []ReportImageInput) {
		for i, item := range items {
			img := models.ReportImage{
				ReportID:  reportID,
				Kind:      kind,
				Note:      item.Note,
				SortOrder: i,
			}
			if item.AttachmentID != 0 {
				id := item.AttachmentID
				img.AttachmentID = &id
			}
			images = append(images, img)
		}
	}

	appendKind(models.ReportImageKindBefore, input.BeforeImages)
	appendKind(models.ReportImageKindAfter, input.AfterImages)
	appendKind(models.ReportImageKindProposal, input.ProposalImages)
	appendKind(models.ReportImageKindDamage, input.DamageImages)

	for i, file := range input.AttachedFiles {
		images = append(images, models.ReportImage{
			ReportID:  reportID,
			Kind:      models.ReportImageKindFile,
			FileURL:   file.URL,
			Note:      file.Note,
			SortOrder: i,
		})
	}

	return images
}

// attachmentResolver 批量查出附件URL，返回基于映射表的解析函数
func (s *ReportService) attachmentResolver(ids []uint) (report.URLResolver, error) {
	urls := make(map[uint]string, len(ids))

	if len(ids) > 0 {
		// 去重后一次查询
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		unique := ids[:0]
		var last uint
		for _, id := range ids {
			if id != last {
				unique = append(unique, id)
				last = id
			}
		}

		var attachments []models.Attachment
		if err := s.db.Where("id IN ?", unique).Find(&attachments).Error; err != nil {
			return nil, err
		}
		for _, a := range attachments {
			urls[a.ID] = a.URL
		}
	}

	return func(attachmentID uint) string {
		return urls[attachmentID]
	}, nil
}

// containsID 判断物件ID是否在可见范围内
func containsID(ids []uint, target uint) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
