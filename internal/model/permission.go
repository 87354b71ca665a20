package model

import (
	"gorm.io/gorm"
)

// 资源类型
const (
	ResourceMenu   = "MENU"
	ResourceButton = "BUTTON"
	ResourceAPI    = "API"
)

// 操作类型
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Permission 权限模型
type Permission struct {
	ID           string   `gorm:"column:permission_id;type:varchar(36);primaryKey" json:"permission_id"`
	Name         string   `gorm:"size:100;not null" json:"name"`
	Code         string   `gorm:"size:100;uniqueIndex;not null" json:"code"`
	ResourceType string   `gorm:"size:20;not null;default:API" json:"resource_type"`
	Actions      []string `gorm:"serializer:json;type:text" json:"actions"`
	Description  *string  `gorm:"size:500" json:"description"`
	Timestamps
}

// TableName 表名
func (Permission) TableName() string {
	return "permissions"
}

// BeforeCreate 生成主键
func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.ResourceType == "" {
		p.ResourceType = ResourceAPI
	}
	return nil
}

// IsValidResourceType 资源类型校验
func IsValidResourceType(s string) bool {
	return s == ResourceMenu || s == ResourceButton || s == ResourceAPI
}
