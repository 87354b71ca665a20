package router

import (
	"github.com/gofiber/fiber/v2"

	"uac/internal/handler"
	"uac/internal/middleware"
	"uac/internal/svc"
)

// Setup 设置路由
func Setup(app *fiber.App, svcCtx *svc.ServiceContext) {
	// 权限中间件简写
	perm := func(code string) fiber.Handler { return middleware.PermissionMiddleware(svcCtx.Perm, code) }

	authH := handler.NewAuthHandler(svcCtx)
	deptH := handler.NewDeptHandler(svcCtx)
	roleH := handler.NewRoleHandler(svcCtx)
	permH := handler.NewPermissionHandler(svcCtx)
	captchaH := handler.NewCaptchaHandler(svcCtx)
	healthH := handler.NewHealthHandler(svcCtx)

	// 全局中间件
	app.Use(middleware.CORS(), middleware.RequestID(), middleware.Logger(), middleware.Recover())

	api := app.Group("/api/v1")

	// 认证中间件只挂在需要登录的路由上，未注册的路径仍返回 404
	authMW := middleware.AuthMiddleware()

	// ========== 公开路由 ==========
	api.Get("/health", healthH.Check)
	api.Post("/auth/login", authH.Login)

	cg := api.Group("/captcha")
	cg.Post("", captchaH.Create)
	cg.Get("/:captcha_id", captchaH.Get)
	cg.Post("/:captcha_id/verify", captchaH.Verify)

	// ========== 需要认证的路由 ==========
	api.Post("/auth/logout", authMW, authH.Logout)
	api.Get("/auth/me", authMW, authH.Me)

	// 部门管理
	d := api.Group("/departments", authMW)
	d.Get("", deptH.List)
	d.Get("/tree", deptH.Tree)
	d.Get("/:id", deptH.Get)
	d.Get("/:id/users", deptH.Members)
	d.Post("", perm("department:create"), deptH.Create)
	d.Put("/:id", perm("department:update"), deptH.Update)
	d.Delete("/:id", perm("department:delete"), deptH.Delete)

	// 角色管理，check-permission 需在 /:id 之前注册
	r := api.Group("/roles", authMW)
	r.Get("/check-permission", roleH.CheckPermission)
	r.Post("/check-permission", roleH.CheckPermission)
	r.Get("", roleH.List)
	r.Get("/:id", roleH.Get)
	r.Post("", perm("role:create"), roleH.Create)
	r.Put("/:id", perm("role:update"), roleH.Update)
	r.Delete("/:id", perm("role:delete"), roleH.Delete)
	r.Post("/:id/permissions", perm("role:assign"), roleH.AssignPermissions)
	r.Put("/:id/permissions", perm("role:assign"), roleH.UpdatePermissions)

	// 权限
	p := api.Group("/permissions", authMW)
	p.Get("", permH.List)
	p.Get("/:id", permH.Get)
}
