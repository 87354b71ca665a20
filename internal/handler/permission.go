package handler

import (
	"github.com/gofiber/fiber/v2"

	"uac/internal/logic"
	"uac/internal/response"
	"uac/internal/svc"
	"uac/internal/types"
)

// PermissionHandler 权限处理器
type PermissionHandler struct {
	svcCtx *svc.ServiceContext
}

// NewPermissionHandler 创建权限处理器
func NewPermissionHandler(svcCtx *svc.ServiceContext) *PermissionHandler {
	return &PermissionHandler{svcCtx: svcCtx}
}

// List 权限列表
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	var req types.ListPermissionsRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	page, err := logic.NewPermissionLogic(c.UserContext(), h.svcCtx.DB).ListPermissions(&req)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Page(c, page.Items, page.Total, page.Page, page.Size)
}

// Get 获取权限详情
func (h *PermissionHandler) Get(c *fiber.Ctx) error {
	p, err := logic.NewPermissionLogic(c.UserContext(), h.svcCtx.DB).GetPermission(c.Params("id"))
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, p)
}
