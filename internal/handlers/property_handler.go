package handlers

import (
	"errors"
	"strconv"

	"roomcare/internal/services"
	"roomcare/pkg/logger"
	"roomcare/pkg/pagination"
	"roomcare/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PropertyHandler 物件管理处理器（管理员）
type PropertyHandler struct {
	propertyService *services.PropertyService
	roomService     *services.RoomService
}

func NewPropertyHandler(propertyService *services.PropertyService, roomService *services.RoomService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService, roomService: roomService}
}

// List 物件一览
// @Router /api/v1/properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	properties, total, err := h.propertyService.List(params.Page, params.PageSize)
	if err != nil {
		logger.GetLogger().Errorf("查询物件一览失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	response.SuccessWithPage(c, properties, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// Get 物件详情
// @Router /api/v1/properties/:id [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	property, err := h.propertyService.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "物件不存在")
			return
		}
		logger.GetLogger().Errorf("查询物件详情失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, property)
}

// Create 创建物件
// @Router /api/v1/properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var input services.CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	property, err := h.propertyService.Create(&input)
	if err != nil {
		logger.GetLogger().Errorf("创建物件失败: %v", err)
		response.ServerError(c, "创建失败")
		return
	}

	response.SuccessWithMessage(c, "物件已创建", property)
}

// Update 更新物件
// @Router /api/v1/properties/:id [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var input services.UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	property, err := h.propertyService.Update(id, &input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "物件不存在")
			return
		}
		logger.GetLogger().Errorf("更新物件失败: %v", err)
		response.ServerError(c, "更新失败")
		return
	}

	response.SuccessWithMessage(c, "物件已更新", property)
}

// AddRoomRequest 追加房间请求
type AddRoomRequest struct {
	RoomNumber string `json:"room_number" binding:"required,max=20"`
	RoomKey    string `json:"room_key" binding:"max=50"`
	SortOrder  int    `json:"sort_order"`
}

// AddRoom 为物件追加房间
// @Router /api/v1/properties/:id/rooms [post]
func (h *PropertyHandler) AddRoom(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req AddRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	room, err := h.propertyService.AddRoom(id, req.RoomNumber, req.RoomKey, req.SortOrder)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "物件不存在")
			return
		}
		logger.GetLogger().Errorf("追加房间失败: %v", err)
		response.ServerError(c, "操作失败")
		return
	}

	response.SuccessWithMessage(c, "房间已追加", room)
}

// AssignTenancyRequest 房间出租请求
type AssignTenancyRequest struct {
	RoomNumber   string `json:"room_number" binding:"required"`
	CustomerID   string `json:"customer_id" binding:"required,max=50"`
	CustomerName string `json:"customer_name" binding:"max=100"`
}

// AssignTenancy 房间出租给新租客
// @Router /api/v1/properties/:id/tenancies [post]
func (h *PropertyHandler) AssignTenancy(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req AssignTenancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	tenancy, err := h.roomService.AssignTenancy(id, req.RoomNumber, req.CustomerID, req.CustomerName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房间不存在")
			return
		}
		logger.GetLogger().Errorf("房间出租失败: %v", err)
		response.ServerError(c, "操作失败")
		return
	}

	response.SuccessWithMessage(c, "租约已创建", tenancy)
}

// idParam 解析路径中的物件ID
func (h *PropertyHandler) idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "物件ID参数错误")
		return 0, false
	}
	return uint(id), true
}
