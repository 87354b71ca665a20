package logger

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ctxKey string

// RequestIDKey 请求ID在 context 中的键
const RequestIDKey ctxKey = "request_id"

// Middleware 请求日志中间件，需挂在 requestid 中间件之后
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid, _ := c.Locals("requestid").(string)
		if rid != "" {
			c.SetUserContext(context.WithValue(c.UserContext(), RequestIDKey, rid))
		}

		err := c.Next()
		if err != nil {
			// 交给 fiber 错误处理器写出响应后再记录状态码
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		lg := L().WithOptions(zap.WithCaller(false))
		switch {
		case status >= fiber.StatusInternalServerError:
			lg.Error("HTTP", fields...)
		case status >= fiber.StatusBadRequest:
			lg.Warn("HTTP", fields...)
		default:
			lg.Info("HTTP", fields...)
		}
		return nil
	}
}
