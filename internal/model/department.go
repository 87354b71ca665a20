package model

import (
	"gorm.io/gorm"
)

// Department 部门模型
type Department struct {
	ID          string         `gorm:"column:department_id;type:varchar(36);primaryKey" json:"department_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Code        *string        `gorm:"size:50;index" json:"code"`
	Description *string        `gorm:"size:500" json:"description"`
	ParentID    *string        `gorm:"type:varchar(36);index" json:"parent_id"` // nil 表示根部门
	Status      string         `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	Sort        int            `gorm:"default:0" json:"sort"`
	Timestamps
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 表名
func (Department) TableName() string {
	return "departments"
}

// BeforeCreate 生成主键并补默认状态
func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = NewID()
	}
	if d.Status == "" {
		d.Status = StatusActive
	}
	return nil
}

// IsValidDepartmentStatus 部门状态校验
func IsValidDepartmentStatus(s string) bool {
	return s == StatusActive || s == StatusDisabled
}
