package model

import (
	"time"

	"github.com/google/uuid"
)

// 通用状态
const (
	StatusActive   = "ACTIVE"
	StatusDisabled = "DISABLED"
	StatusArchived = "ARCHIVED"
)

// Timestamps 创建/更新时间
type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewID 生成主键
func NewID() string {
	return uuid.NewString()
}

// StringPtr 创建 string 指针，空串返回 nil
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetString 安全获取 string 值
func GetString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
