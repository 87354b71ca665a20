package handler

import (
	"github.com/gofiber/fiber/v2"

	"uac/internal/redis"
	"uac/internal/response"
	"uac/internal/svc"
)

// HealthHandler 健康检查
type HealthHandler struct {
	svcCtx *svc.ServiceContext
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(svcCtx *svc.ServiceContext) *HealthHandler {
	return &HealthHandler{svcCtx: svcCtx}
}

// Check 检查数据库与 Redis 连通性
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{
		"app":      h.svcCtx.Config.App.Name,
		"version":  h.svcCtx.Config.App.Version,
		"database": "up",
		"redis":    "disabled",
	}
	healthy := true

	sqlDB, err := h.svcCtx.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		status["database"] = "down"
		healthy = false
	}

	if h.svcCtx.Redis != nil {
		status["redis"] = "up"
		if err := redis.Ping(c.UserContext(), h.svcCtx.Redis); err != nil {
			status["redis"] = "down"
			healthy = false
		}
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Code:    fiber.StatusServiceUnavailable,
			Message: "服务不可用",
			Data:    status,
		})
	}
	return response.Success(c, status)
}
