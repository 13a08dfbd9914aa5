package handlers

import (
	"errors"
	"strconv"
	"time"

	"roomcare/internal/services"
	"roomcare/internal/vacancy"
	"roomcare/pkg/logger"
	"roomcare/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoomHandler 房间处理器
type RoomHandler struct {
	roomService *services.RoomService
	scope       *HouseScope
}

func NewRoomHandler(roomService *services.RoomService, scope *HouseScope) *RoomHandler {
	return &RoomHandler{roomService: roomService, scope: scope}
}

// VacancyRow 空室一览的线上格式
type VacancyRow struct {
	HouseID     uint          `json:"house_id"`
	HouseName   string        `json:"house_name"`
	RoomNumber  string        `json:"room_number"`
	MoveOutDate string        `json:"moveout_date"` // YYYY-MM-DD
	VacancyDate string        `json:"vacancy_date"` // YYYY-MM-DD
	EarlyLeave  bool          `json:"early_leave"`
	StatusLabel vacancy.Label `json:"status_label"`
}

// ListVacant 空室一览
// @Router /api/v1/rooms [get]
func (h *RoomHandler) ListVacant(c *gin.Context) {
	today, err := parseToday(c)
	if err != nil {
		response.BadRequest(c, "日期格式错误，应为YYYY-MM-DD")
		return
	}

	houseIDs, err := h.scope.Resolve(c)
	if err != nil {
		logger.GetLogger().Errorf("解析可见物件范围失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	rows, err := h.roomService.ListVacant(houseIDs, today)
	if err != nil {
		logger.GetLogger().Errorf("查询空室一览失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	result := make([]VacancyRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, VacancyRow{
			HouseID:     row.HouseID,
			HouseName:   row.HouseName,
			RoomNumber:  row.RoomNumber,
			MoveOutDate: row.MoveOutDate.Format("2006-01-02"),
			VacancyDate: row.VacancyDate.Format("2006-01-02"),
			EarlyLeave:  row.EarlyLeave,
			StatusLabel: row.Status.Label(),
		})
	}

	response.Success(c, result)
}

// GetDetail 房间详情
// @Router /api/v1/rooms/detail [get]
func (h *RoomHandler) GetDetail(c *gin.Context) {
	houseID, roomNumber, ok := h.roomParams(c)
	if !ok {
		return
	}

	today, err := parseToday(c)
	if err != nil {
		response.BadRequest(c, "日期格式错误，应为YYYY-MM-DD")
		return
	}

	if !h.checkHouseVisible(c, houseID) {
		return
	}

	detail, err := h.roomService.GetDetail(houseID, roomNumber, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房间不存在")
			return
		}
		logger.GetLogger().Errorf("查询房间详情失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, detail)
}

// ConfirmMoveOutRequest 确认退房请求
type ConfirmMoveOutRequest struct {
	HouseID     uint   `json:"house_id" binding:"required"`
	RoomNumber  string `json:"room_number" binding:"required"`
	MoveOutDate string `json:"moveout_date" binding:"required"` // YYYY-MM-DD
}

// ConfirmMoveOut 确认退房日期
// @Router /api/v1/rooms/moveout [post]
func (h *RoomHandler) ConfirmMoveOut(c *gin.Context) {
	var req ConfirmMoveOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.MoveOutDate, time.Local)
	if err != nil {
		response.BadRequest(c, "日期格式错误，应为YYYY-MM-DD")
		return
	}

	if !h.checkHouseVisible(c, req.HouseID) {
		return
	}

	tenancy, err := h.roomService.ConfirmMoveOut(req.HouseID, req.RoomNumber, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房间不存在或无当前租约")
			return
		}
		logger.GetLogger().Errorf("确认退房失败: %v", err)
		response.ServerError(c, "操作失败")
		return
	}

	response.SuccessWithMessage(c, "退房日期已确认", tenancy)
}

// MarkEarlyLeaveRequest 提前退房请求
type MarkEarlyLeaveRequest struct {
	HouseID    uint   `json:"house_id" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required"`
}

// MarkEarlyLeave 标记提前退房
// @Router /api/v1/rooms/early-leave [post]
func (h *RoomHandler) MarkEarlyLeave(c *gin.Context) {
	var req MarkEarlyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if !h.checkHouseVisible(c, req.HouseID) {
		return
	}

	tenancy, err := h.roomService.MarkEarlyLeave(req.HouseID, req.RoomNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房间不存在或无当前租约")
			return
		}
		logger.GetLogger().Errorf("标记提前退房失败: %v", err)
		response.ServerError(c, "操作失败")
		return
	}

	response.SuccessWithMessage(c, "已标记提前退房", tenancy)
}

// roomParams 解析house_id和room_number查询参数
func (h *RoomHandler) roomParams(c *gin.Context) (uint, string, bool) {
	houseID, err := strconv.ParseUint(c.Query("house_id"), 10, 32)
	if err != nil || houseID == 0 {
		response.BadRequest(c, "house_id参数错误")
		return 0, "", false
	}

	roomNumber := c.Query("room_number")
	if roomNumber == "" {
		response.BadRequest(c, "room_number参数不能为空")
		return 0, "", false
	}

	return uint(houseID), roomNumber, true
}

// checkHouseVisible 校验物件是否在可见范围内，越权按不存在处理
func (h *RoomHandler) checkHouseVisible(c *gin.Context, houseID uint) bool {
	houseIDs, err := h.scope.Resolve(c)
	if err != nil {
		logger.GetLogger().Errorf("解析可见物件范围失败: %v", err)
		response.ServerError(c, "查询失败")
		return false
	}

	for _, id := range houseIDs {
		if id == houseID {
			return true
		}
	}

	response.NotFound(c, "物件不存在")
	return false
}
