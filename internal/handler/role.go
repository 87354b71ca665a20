package handler

import (
	"github.com/gofiber/fiber/v2"

	"uac/internal/logic"
	"uac/internal/middleware"
	"uac/internal/response"
	"uac/internal/svc"
	"uac/internal/types"
)

// RoleHandler 角色处理器
type RoleHandler struct {
	svcCtx *svc.ServiceContext
}

// NewRoleHandler 创建角色处理器
func NewRoleHandler(svcCtx *svc.ServiceContext) *RoleHandler {
	return &RoleHandler{svcCtx: svcCtx}
}

func (h *RoleHandler) logic(c *fiber.Ctx) *logic.RoleLogic {
	return logic.NewRoleLogic(c.UserContext(), h.svcCtx.DB)
}

// Create 创建角色
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var req types.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	role, err := h.logic(c).CreateRole(&req)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Created(c, "创建成功", role)
}

// List 角色列表
func (h *RoleHandler) List(c *fiber.Ctx) error {
	var req types.ListRolesRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	page, err := h.logic(c).ListRoles(&req)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Page(c, page.Items, page.Total, page.Page, page.Size)
}

// Get 获取角色详情
func (h *RoleHandler) Get(c *fiber.Ctx) error {
	role, err := h.logic(c).GetRole(c.Params("id"))
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, role)
}

// Update 更新角色
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	var req types.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	role, err := h.logic(c).UpdateRole(c.Params("id"), &req)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessWithMessage(c, "更新成功", role)
}

// Delete 删除角色
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	if err := h.logic(c).DeleteRole(c.Params("id")); err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessWithMessage(c, "删除成功", nil)
}

// AssignPermissions 全量替换角色权限
func (h *RoleHandler) AssignPermissions(c *fiber.Ctx) error {
	var req types.AssignPermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}
	if req.PermissionIDs == nil {
		return response.BadRequest(c, "permission_ids 不能为空")
	}

	role, err := h.logic(c).ReplacePermissions(c.Params("id"), req.PermissionIDs)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessWithMessage(c, "分配成功", role)
}

// UpdatePermissions 增量调整角色权限
func (h *RoleHandler) UpdatePermissions(c *fiber.Ctx) error {
	var req types.UpdatePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}
	if len(req.AddPermissions) == 0 && len(req.RemovePermissions) == 0 {
		return response.BadRequest(c, "add_permissions 与 remove_permissions 不能同时为空")
	}

	role, err := h.logic(c).UpdatePermissions(c.Params("id"), req.AddPermissions, req.RemovePermissions)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessWithMessage(c, "更新成功", role)
}

// CheckPermission 检查当前用户是否拥有权限，permission_code 可放在查询参数或请求体中
func (h *RoleHandler) CheckPermission(c *fiber.Ctx) error {
	var req types.CheckPermissionRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}
	if req.PermissionCode == "" && len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "参数解析失败")
		}
	}

	ok, err := h.logic(c).CheckPermission(middleware.GetCurrentUserID(c), req.PermissionCode)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, types.CheckPermissionResult{HasPermission: ok})
}
