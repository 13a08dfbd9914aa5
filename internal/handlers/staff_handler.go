package handlers

import (
	"errors"
	"strconv"

	"roomcare/internal/services"
	"roomcare/pkg/logger"
	"roomcare/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StaffHandler 保洁员账号管理处理器（管理员）
type StaffHandler struct {
	staffService *services.StaffService
}

func NewStaffHandler(staffService *services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// List 保洁员一览
// @Router /api/v1/staffs [get]
func (h *StaffHandler) List(c *gin.Context) {
	staffs, err := h.staffService.List()
	if err != nil {
		logger.GetLogger().Errorf("查询保洁员一览失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, staffs)
}

// Create 创建账号
// @Router /api/v1/staffs [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var input services.CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	staff, err := h.staffService.Create(&input)
	if err != nil {
		logger.GetLogger().Errorf("创建账号失败: %v", err)
		response.ServerError(c, "创建失败")
		return
	}

	response.SuccessWithMessage(c, "账号已创建", staff)
}

// Update 更新账号
// @Router /api/v1/staffs/:id [put]
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var input services.UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	staff, err := h.staffService.Update(id, &input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "账号不存在")
			return
		}
		logger.GetLogger().Errorf("更新账号失败: %v", err)
		response.ServerError(c, "更新失败")
		return
	}

	response.SuccessWithMessage(c, "账号已更新", staff)
}

// Delete 删除账号
// @Router /api/v1/staffs/:id [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	if err := h.staffService.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "账号不存在")
			return
		}
		logger.GetLogger().Errorf("删除账号失败: %v", err)
		response.ServerError(c, "删除失败")
		return
	}

	response.SuccessWithMessage(c, "账号已删除", nil)
}

// idParam 解析路径中的账号ID
func (h *StaffHandler) idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "账号ID参数错误")
		return 0, false
	}
	return uint(id), true
}
