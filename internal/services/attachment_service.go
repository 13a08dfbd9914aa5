package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomcare/internal/models"
)

// AttachmentService 附件登记
// 图片文件本体由前端直传对象存储，这里只登记元数据并签发对象键
type AttachmentService struct {
	db *gorm.DB
}

func NewAttachmentService(db *gorm.DB) *AttachmentService {
	return &AttachmentService{db: db}
}

// RegisterAttachmentInput 登记附件的输入
type RegisterAttachmentInput struct {
	URL         string `json:"url" binding:"required,max=500"`
	FileName    string `json:"file_name" binding:"max=255"`
	ContentType string `json:"content_type" binding:"max=100"`
}

// Register 登记附件并签发对象键
func (s *AttachmentService) Register(input *RegisterAttachmentInput) (*models.Attachment, error) {
	attachment := &models.Attachment{
		StorageKey:  uuid.New().String(),
		URL:         input.URL,
		FileName:    input.FileName,
		ContentType: input.ContentType,
	}
	if err := s.db.Create(attachment).Error; err != nil {
		return nil, err
	}
	return attachment, nil
}

// GetByID 按ID查询附件
func (s *AttachmentService) GetByID(id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := s.db.First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}
