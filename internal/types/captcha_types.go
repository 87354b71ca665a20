package types

// CaptchaInfo 验证码响应，不含目标坐标
type CaptchaInfo struct {
	CaptchaID string    `json:"captcha_id"`
	BgURL     string    `json:"bg_url"`
	PuzzleURL string    `json:"puzzle_url"`
	Status    string    `json:"status"`
	ExpiresAt *DateTime `json:"expires_at"`
}

// VerifyCaptchaRequest 验证码校验请求
type VerifyCaptchaRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// VerifyCaptchaResult 验证码校验结果
type VerifyCaptchaResult struct {
	Verified   bool      `json:"verified"`
	Status     string    `json:"status"`
	VerifiedAt *DateTime `json:"verified_at"`
}
