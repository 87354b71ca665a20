package model

import (
	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID           string  `gorm:"column:user_id;type:varchar(36);primaryKey" json:"user_id"`
	Username     string  `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password     string  `gorm:"size:255;not null" json:"-"`
	Name         string  `gorm:"size:50" json:"name"`
	Email        string  `gorm:"size:100" json:"email"`
	Phone        string  `gorm:"size:20" json:"phone"`
	Status       string  `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	DepartmentID *string `gorm:"type:varchar(36);index" json:"department_id"`
	Timestamps
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Roles     []Role         `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID" json:"roles,omitempty"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}

// BeforeCreate 生成主键并补默认状态
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

// UserRole 用户角色关联表
type UserRole struct {
	UserID string `gorm:"type:varchar(36);primaryKey"`
	RoleID string `gorm:"type:varchar(36);primaryKey;index"`
}

// TableName 表名
func (UserRole) TableName() string {
	return "user_roles"
}
