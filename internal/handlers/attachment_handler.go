package handlers

import (
	"errors"
	"strconv"

	"roomcare/internal/services"
	"roomcare/pkg/logger"
	"roomcare/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// AttachmentHandler 附件登记处理器
type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Register 登记附件元数据
// @Router /api/v1/attachments [post]
func (h *AttachmentHandler) Register(c *gin.Context) {
	var input services.RegisterAttachmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			response.BadRequest(c, "参数校验失败: "+validationErr.Error())
			return
		}
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	attachment, err := h.attachmentService.Register(&input)
	if err != nil {
		logger.GetLogger().Errorf("登记附件失败: %v", err)
		response.ServerError(c, "登记失败")
		return
	}

	response.SuccessWithMessage(c, "附件已登记", attachment)
}

// Get 附件详情
// @Router /api/v1/attachments/:id [get]
func (h *AttachmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "附件ID参数错误")
		return
	}

	attachment, err := h.attachmentService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "附件不存在")
			return
		}
		logger.GetLogger().Errorf("查询附件失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, attachment)
}
