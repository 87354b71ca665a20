package response

import (
	"uac/internal/logger"
	"uac/internal/xerr"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response 统一响应结构，code 与 HTTP 状态码一致
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// PageData 分页数据结构
type PageData struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// 响应消息定义
const (
	MsgSuccess      = "success"
	MsgBadRequest   = "参数错误"
	MsgUnauthorized = "未授权"
	MsgForbidden    = "没有操作权限"
	MsgNotFound     = "资源不存在"
	MsgServerError  = "服务器内部错误"
)

func write(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Code:    status,
		Message: message,
		Data:    data,
	})
}

// Success 成功响应
func Success(c *fiber.Ctx, data any) error {
	return write(c, fiber.StatusOK, MsgSuccess, data)
}

// SuccessWithMessage 成功响应带消息
func SuccessWithMessage(c *fiber.Ctx, message string, data any) error {
	return write(c, fiber.StatusOK, message, data)
}

// Created 创建成功响应
func Created(c *fiber.Ctx, message string, data any) error {
	return write(c, fiber.StatusCreated, message, data)
}

// Page 分页响应
func Page(c *fiber.Ctx, items any, total int64, page, size int) error {
	return Success(c, PageData{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgBadRequest
	}
	return write(c, fiber.StatusBadRequest, message, nil)
}

// Unauthorized 未授权响应
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgUnauthorized
	}
	return write(c, fiber.StatusUnauthorized, message, nil)
}

// Forbidden 禁止访问响应
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgForbidden
	}
	return write(c, fiber.StatusForbidden, message, nil)
}

// NotFound 未找到响应
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgNotFound
	}
	return write(c, fiber.StatusNotFound, message, nil)
}

// ServerError 服务器错误响应
func ServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgServerError
	}
	return write(c, fiber.StatusInternalServerError, message, nil)
}

// Fail 按错误分类输出响应，内部错误记录日志后只返回概要信息
func Fail(c *fiber.Ctx, err error) error {
	msg := xerr.MessageOf(err)
	switch xerr.KindOf(err) {
	case xerr.KindValidation, xerr.KindConflict:
		return BadRequest(c, msg)
	case xerr.KindNotFound:
		return NotFound(c, msg)
	case xerr.KindUnauthorized:
		return Unauthorized(c, msg)
	case xerr.KindForbidden:
		return Forbidden(c, msg)
	default:
		logger.Error("请求处理失败",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("requestid")),
			zap.Error(err),
		)
		return ServerError(c, msg)
	}
}

// ErrorHandler fiber 全局错误处理，保证未捕获错误也使用统一响应结构
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return write(c, e.Code, e.Message, nil)
	}
	return Fail(c, err)
}
