package handler

import (
	"github.com/gofiber/fiber/v2"

	"uac/internal/logic"
	"uac/internal/middleware"
	"uac/internal/response"
	"uac/internal/svc"
	"uac/internal/types"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svcCtx *svc.ServiceContext
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svcCtx *svc.ServiceContext) *AuthHandler {
	return &AuthHandler{svcCtx: svcCtx}
}

func (h *AuthHandler) logic(c *fiber.Ctx) *logic.UserLogic {
	return logic.NewUserLogic(c.UserContext(), h.svcCtx.DB, h.svcCtx.Perm)
}

// Login 登录
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	result, err := h.logic(c).Login(&req)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessWithMessage(c, "登录成功", result)
}

// Logout 退出登录
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.logic(c).Logout(middleware.GetCurrentToken(c)); err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessWithMessage(c, "退出成功", nil)
}

// Me 当前用户信息
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	info, err := h.logic(c).GetUserInfo(middleware.GetCurrentUserID(c))
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, info)
}
