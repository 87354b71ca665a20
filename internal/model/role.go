package model

import (
	"time"

	"gorm.io/gorm"
)

// Role 角色模型
type Role struct {
	ID          string  `gorm:"column:role_id;type:varchar(36);primaryKey" json:"role_id"`
	Name        string  `gorm:"size:50;not null" json:"name"`
	Code        string  `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description *string `gorm:"size:500" json:"description"`
	Status      string  `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	Timestamps
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Permissions []Permission   `gorm:"many2many:role_permissions;joinForeignKey:RoleID;joinReferences:PermissionID" json:"permissions,omitempty"`
}

// TableName 表名
func (Role) TableName() string {
	return "roles"
}

// BeforeCreate 生成主键并补默认状态
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.Status == "" {
		r.Status = StatusActive
	}
	return nil
}

// IsValidRoleStatus 角色状态校验
func IsValidRoleStatus(s string) bool {
	return s == StatusActive || s == StatusDisabled || s == StatusArchived
}

// RolePermission 角色权限关联表，存在即授权
type RolePermission struct {
	RoleID       string    `gorm:"type:varchar(36);primaryKey" json:"role_id"`
	PermissionID string    `gorm:"type:varchar(36);primaryKey;index" json:"permission_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 表名
func (RolePermission) TableName() string {
	return "role_permissions"
}

// GrantedPermissions 用户经由有效角色（未删除且 ACTIVE）获得的权限查询范围
func GrantedPermissions(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Table("user_roles AS ur").
			Joins("JOIN roles AS r ON r.role_id = ur.role_id AND r.deleted_at IS NULL AND r.status = ?", StatusActive).
			Joins("JOIN role_permissions AS rp ON rp.role_id = r.role_id").
			Joins("JOIN permissions AS p ON p.permission_id = rp.permission_id").
			Where("ur.user_id = ?", userID)
	}
}
