package handlers

import (
	"errors"

	"roomcare/internal/services"
	"roomcare/pkg/jwt"
	"roomcare/pkg/logger"
	"roomcare/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	staffService *services.StaffService
}

func NewAuthHandler(staffService *services.StaffService) *AuthHandler {
	return &AuthHandler{staffService: staffService}
}

// LoginRequest 登录请求
type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 登录
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	staff, err := h.staffService.Login(req.LoginID, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, "账号或密码错误")
			return
		}
		if errors.Is(err, services.ErrStaffDisabled) {
			response.Forbidden(c, "账号已停用")
			return
		}
		logger.GetLogger().Errorf("登录失败: %v", err)
		response.ServerError(c, "登录失败")
		return
	}

	token, err := jwt.GetJWTManager().GenerateToken(staff.ID, staff.LoginID, staff.Name, staff.IsAdmin)
	if err != nil {
		logger.GetLogger().Errorf("生成令牌失败: %v", err)
		response.ServerError(c, "生成令牌失败")
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"staff": gin.H{
			"id":        staff.ID,
			"login_id":  staff.LoginID,
			"name":      staff.Name,
			"is_admin":  staff.IsAdmin,
			"house_ids": staff.VisibleHouseIDs(),
		},
	})
}

// Me 当前登录账号信息
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	staffID, exists := c.Get("staff_id")
	if !exists {
		// API密钥模式没有对应账号
		response.Success(c, gin.H{"auth_mode": "api_key", "is_admin": true})
		return
	}

	staff, err := h.staffService.GetByID(staffID.(uint))
	if err != nil {
		response.NotFound(c, "账号不存在")
		return
	}

	response.Success(c, gin.H{
		"id":        staff.ID,
		"login_id":  staff.LoginID,
		"name":      staff.Name,
		"is_admin":  staff.IsAdmin,
		"house_ids": staff.VisibleHouseIDs(),
		"status":    staff.Status,
	})
}

// Refresh 刷新令牌
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	newToken, err := jwt.GetJWTManager().RefreshToken(req.Token)
	if err != nil {
		response.Unauthorized(c, "无效或过期的令牌")
		return
	}

	response.Success(c, gin.H{"token": newToken})
}
