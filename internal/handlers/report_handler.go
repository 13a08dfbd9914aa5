package handlers

import (
	"errors"
	"strconv"

	"roomcare/internal/report"
	"roomcare/internal/services"
	"roomcare/pkg/logger"
	"roomcare/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler 报告书处理器
type ReportHandler struct {
	reportService *services.ReportService
	scope         *HouseScope
}

func NewReportHandler(reportService *services.ReportService, scope *HouseScope) *ReportHandler {
	return &ReportHandler{reportService: reportService, scope: scope}
}

// List 报告书一览（最近30天）
// @Router /api/v1/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
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

	summaries, err := h.reportService.ListRecent(houseIDs, today, report.WindowDays)
	if err != nil {
		logger.GetLogger().Errorf("查询报告书一览失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, summaries)
}

// GetDetail 报告书详情
// @Router /api/v1/reports/:id [get]
func (h *ReportHandler) GetDetail(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || reportID == 0 {
		response.BadRequest(c, "报告书ID参数错误")
		return
	}

	houseIDs, err := h.scope.Resolve(c)
	if err != nil {
		logger.GetLogger().Errorf("解析可见物件范围失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	detail, err := h.reportService.GetDetail(uint(reportID), houseIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "报告书不存在")
			return
		}
		logger.GetLogger().Errorf("查询报告书详情失败: %v", err)
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, detail)
}

// Create 创建报告书
// @Router /api/v1/reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var input services.CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if input.HouseID == 0 || input.RoomNumber == "" {
		response.BadRequest(c, "house_id和room_number不能为空")
		return
	}

	now, err := parseToday(c)
	if err != nil {
		response.BadRequest(c, "日期格式错误，应为YYYY-MM-DD")
		return
	}

	houseIDs, err := h.scope.Resolve(c)
	if err != nil {
		logger.GetLogger().Errorf("解析可见物件范围失败: %v", err)
		response.ServerError(c, "创建失败")
		return
	}
	visible := false
	for _, id := range houseIDs {
		if id == input.HouseID {
			visible = true
			break
		}
	}
	if !visible {
		response.NotFound(c, "物件不存在")
		return
	}

	rec, err := h.reportService.Create(&input, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "物件或房间不存在")
			return
		}
		logger.GetLogger().Errorf("创建报告书失败: %v", err)
		response.ServerError(c, "创建失败")
		return
	}

	response.SuccessWithMessage(c, "报告书已创建", gin.H{
		"post_id": rec.ID,
		"title":   rec.Title,
	})
}
