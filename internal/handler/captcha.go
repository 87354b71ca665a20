package handler

import (
	"github.com/gofiber/fiber/v2"

	"uac/internal/logic"
	"uac/internal/response"
	"uac/internal/svc"
	"uac/internal/types"
)

// CaptchaHandler 验证码处理器
type CaptchaHandler struct {
	svcCtx *svc.ServiceContext
}

// NewCaptchaHandler 创建验证码处理器
func NewCaptchaHandler(svcCtx *svc.ServiceContext) *CaptchaHandler {
	return &CaptchaHandler{svcCtx: svcCtx}
}

func (h *CaptchaHandler) logic(c *fiber.Ctx) *logic.CaptchaLogic {
	return logic.NewCaptchaLogic(c.UserContext(), h.svcCtx.DB, &h.svcCtx.Config.Captcha, h.svcCtx.CaptchaAttempts)
}

// Create 生成验证码
func (h *CaptchaHandler) Create(c *fiber.Ctx) error {
	info, err := h.logic(c).CreateCaptcha()
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Created(c, "创建成功", info)
}

// Get 查询验证码状态
func (h *CaptchaHandler) Get(c *fiber.Ctx) error {
	info, err := h.logic(c).GetCaptcha(c.Params("captcha_id"))
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, info)
}

// Verify 校验滑块位置
func (h *CaptchaHandler) Verify(c *fiber.Ctx) error {
	var req types.VerifyCaptchaRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "参数解析失败")
	}

	result, err := h.logic(c).VerifyCaptcha(c.Params("captcha_id"), &req)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, result)
}
