package bootstrap

import (
	"gorm.io/gorm"

	"uac/internal/model"
)

// Migrate 注册关联表并自动迁移全部数据表
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Role{}, "Permissions", &model.RolePermission{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&model.User{}, "Roles", &model.UserRole{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&model.Department{},
		&model.Permission{},
		&model.Role{},
		&model.RolePermission{},
		&model.User{},
		&model.UserRole{},
		&model.Captcha{},
	)
}
