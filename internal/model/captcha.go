package model

import (
	"time"

	"gorm.io/gorm"
)

// 验证码状态，USED/EXPIRED 为终态
const (
	CaptchaActive  = "ACTIVE"
	CaptchaUsed    = "USED"
	CaptchaExpired = "EXPIRED"
)

// Captcha 滑块验证码
type Captcha struct {
	ID         string     `gorm:"column:captcha_id;type:varchar(36);primaryKey" json:"captcha_id"`
	BgURL      string     `gorm:"size:255;not null" json:"bg_url"`
	PuzzleURL  string     `gorm:"size:255;not null" json:"puzzle_url"`
	TargetX    int        `gorm:"not null" json:"-"`
	TargetY    int        `gorm:"not null" json:"-"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt  time.Time  `gorm:"not null;index" json:"expires_at"`
	Status     string     `gorm:"size:20;not null;default:ACTIVE;index" json:"status"`
	VerifiedAt *time.Time `json:"verified_at"`
}

// TableName 表名
func (Captcha) TableName() string {
	return "captchas"
}

// BeforeCreate 生成主键
func (c *Captcha) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.Status == "" {
		c.Status = CaptchaActive
	}
	return nil
}

// IsTerminal 是否处于终态
func (c *Captcha) IsTerminal() bool {
	return c.Status == CaptchaUsed || c.Status == CaptchaExpired
}

// Expired 截止时间是否已过
func (c *Captcha) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
