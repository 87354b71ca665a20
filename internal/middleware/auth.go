package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uac/internal/auth"
	"uac/internal/logger"
	"uac/internal/response"
)

// 请求上下文中保存的登录信息
const (
	LocalUserID = "userId"
	LocalToken  = "token"
)

// AuthMiddleware 认证中间件
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := getToken(c)
		if token == "" {
			return response.Unauthorized(c, "请先登录")
		}

		if !auth.IsLogin(token) {
			return response.Unauthorized(c, "登录已过期，请重新登录")
		}

		loginID, err := auth.GetLoginId(token)
		if err != nil || loginID == "" {
			return response.Unauthorized(c, "获取用户信息失败")
		}

		c.Locals(LocalUserID, loginID)
		c.Locals(LocalToken, token)

		return c.Next()
	}
}

// PermissionMiddleware 权限验证中间件，拥有任一权限即可放行
func PermissionMiddleware(permissionService *auth.PermissionService, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetCurrentUserID(c)
		if userID == "" {
			return response.Unauthorized(c, "请先登录")
		}

		hasPermission, err := permissionService.HasAnyPermission(c.UserContext(), userID, permissions...)
		if err != nil {
			logger.Error("权限验证失败", zap.String("user_id", userID), zap.Error(err))
			return response.ServerError(c, "权限验证失败")
		}

		if !hasPermission {
			return response.Forbidden(c, "没有操作权限")
		}

		return c.Next()
	}
}

// getToken 从请求中获取Token：satoken 头、Authorization、查询参数、Cookie
func getToken(c *fiber.Ctx) string {
	if token := c.Get("satoken"); token != "" {
		return token
	}

	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if token := c.Query("satoken"); token != "" {
		return token
	}

	return c.Cookies("satoken")
}

// GetCurrentUserID 获取当前用户ID
func GetCurrentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(LocalUserID).(string)
	return userID
}

// GetCurrentToken 获取当前请求的token
func GetCurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalToken).(string)
	return token
}
