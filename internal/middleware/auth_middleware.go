package middleware

import (
	"strings"

	"roomcare/pkg/config"
	"roomcare/pkg/jwt"
	"roomcare/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware JWT/API-Key双模式认证中间件
// 优先检查X-API-Key（服务间调用），其次检查Bearer令牌（保洁员登录态）
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 服务间调用：X-API-Key匹配则放行，视为管理员身份
		apiKey := c.GetHeader("X-API-Key")
		if apiKey != "" {
			cfg := config.GetConfig()
			if cfg.APIKey.Key != "" && apiKey == cfg.APIKey.Key {
				c.Set("auth_mode", "api_key")
				c.Set("is_admin", true)
				c.Next()
				return
			}
			response.Unauthorized(c, "无效的API密钥")
			c.Abort()
			return
		}

		// 从请求头获取token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请求未携带认证信息")
			c.Abort()
			return
		}

		// 检查Bearer前缀
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "认证格式错误")
			c.Abort()
			return
		}

		// 验证token
		claims, err := jwt.GetJWTManager().VerifyToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "无效或过期的令牌")
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set("auth_mode", "jwt")
		c.Set("staff_id", claims.StaffID)
		c.Set("login_id", claims.LoginID)
		c.Set("staff_name", claims.Name)
		c.Set("is_admin", claims.IsAdmin)

		c.Next()
	}
}

// RequireAdmin 管理员权限检查，必须在AuthMiddleware之后使用
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists || isAdmin != true {
			response.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetStaffID 从上下文取当前登录的账号ID，API-Key模式下返回false
func GetStaffID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("staff_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// IsAPIKeyAuth 当前请求是否为API密钥认证
func IsAPIKeyAuth(c *gin.Context) bool {
	mode, exists := c.Get("auth_mode")
	return exists && mode == "api_key"
}
