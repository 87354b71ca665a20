package handler

import (
	"github.com/gofiber/fiber/v2"

	"uac/internal/logic"
	"uac/internal/response"
	"uac/internal/svc"
	"uac/internal/types"
)

// DeptHandler 部门处理器
type DeptHandler struct {
	svcCtx *svc.ServiceContext
}

// NewDeptHandler 创建部门处理器
func NewDeptHandler(svcCtx *svc.ServiceContext) *DeptHandler {
	return &DeptHandler{svcCtx: svcCtx}
}

func (h *DeptHandler) logic(c *fiber.Ctx) *logic.DeptLogic {
	return logic.NewDeptLogic(c.UserContext(), h.svcCtx.DB)
}

// Create 创建部门
func (h *DeptHandler) Create(c *fiber.Ctx) error {
	var req types.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	dept, err := h.logic(c).CreateDept(&req)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Created(c, "创建成功", dept)
}

// List 部门列表
func (h *DeptHandler) List(c *fiber.Ctx) error {
	var req types.ListDepartmentsRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	page, err := h.logic(c).ListDepts(&req)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Page(c, page.Items, page.Total, page.Page, page.Size)
}

// Tree 获取部门树
func (h *DeptHandler) Tree(c *fiber.Ctx) error {
	tree, err := h.logic(c).GetDeptTree()
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, tree)
}

// Get 获取部门详情
func (h *DeptHandler) Get(c *fiber.Ctx) error {
	dept, err := h.logic(c).GetDept(c.Params("id"))
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, dept)
}

// Update 更新部门
func (h *DeptHandler) Update(c *fiber.Ctx) error {
	var req types.UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	dept, err := h.logic(c).UpdateDept(c.Params("id"), &req)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessWithMessage(c, "更新成功", dept)
}

// Delete 删除部门
func (h *DeptHandler) Delete(c *fiber.Ctx) error {
	if err := h.logic(c).DeleteDept(c.Params("id")); err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessWithMessage(c, "删除成功", nil)
}

// Members 部门成员
func (h *DeptHandler) Members(c *fiber.Ctx) error {
	var req types.DepartmentMembersRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	members, err := h.logic(c).GetDeptMembers(c.Params("id"), req.IncludeChildren)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, members)
}
