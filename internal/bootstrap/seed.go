package bootstrap

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uac/internal/logger"
	"uac/internal/model"
	"uac/internal/utils"
)

// 初始化数据的固定编码
const (
	AdminRoleCode = "ADMIN"
	AdminUsername = "admin"
	RootDeptCode  = "HQ"
)

var allActions = []string{model.ActionCreate, model.ActionRead, model.ActionUpdate, model.ActionDelete}

// DefaultPermissions 系统内置权限
var DefaultPermissions = []model.Permission{
	{Name: "全部权限", Code: "*", ResourceType: model.ResourceAPI, Actions: allActions},
	{Name: "部门管理", Code: "department", ResourceType: model.ResourceMenu, Actions: []string{model.ActionRead}},
	{Name: "查看部门", Code: "department:read", ResourceType: model.ResourceAPI, Actions: []string{model.ActionRead}},
	{Name: "新增部门", Code: "department:create", ResourceType: model.ResourceButton, Actions: []string{model.ActionCreate}},
	{Name: "编辑部门", Code: "department:update", ResourceType: model.ResourceButton, Actions: []string{model.ActionUpdate}},
	{Name: "删除部门", Code: "department:delete", ResourceType: model.ResourceButton, Actions: []string{model.ActionDelete}},
	{Name: "角色管理", Code: "role", ResourceType: model.ResourceMenu, Actions: []string{model.ActionRead}},
	{Name: "查看角色", Code: "role:read", ResourceType: model.ResourceAPI, Actions: []string{model.ActionRead}},
	{Name: "新增角色", Code: "role:create", ResourceType: model.ResourceButton, Actions: []string{model.ActionCreate}},
	{Name: "编辑角色", Code: "role:update", ResourceType: model.ResourceButton, Actions: []string{model.ActionUpdate}},
	{Name: "删除角色", Code: "role:delete", ResourceType: model.ResourceButton, Actions: []string{model.ActionDelete}},
	{Name: "分配权限", Code: "role:assign", ResourceType: model.ResourceButton, Actions: []string{model.ActionUpdate}},
	{Name: "查看权限", Code: "permission:read", ResourceType: model.ResourceAPI, Actions: []string{model.ActionRead}},
}

// Seed 初始化默认数据，可重复执行：内置权限、超级管理员角色、根部门与管理员账号
func Seed(ctx context.Context, db *gorm.DB, adminPassword string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		permissionIDs := make([]string, 0, len(DefaultPermissions))
		for _, p := range DefaultPermissions {
			var perm model.Permission
			if err := tx.Where("code = ?", p.Code).Attrs(p).FirstOrCreate(&perm).Error; err != nil {
				return err
			}
			permissionIDs = append(permissionIDs, perm.ID)
		}

		var role model.Role
		roleAttrs := model.Role{Name: "超级管理员", Code: AdminRoleCode, Status: model.StatusActive}
		if err := tx.Omit(clause.Associations).Where("code = ?", AdminRoleCode).Attrs(roleAttrs).FirstOrCreate(&role).Error; err != nil {
			return err
		}
		grants := utils.SliceMap(permissionIDs, func(_ int, id string) model.RolePermission {
			return model.RolePermission{RoleID: role.ID, PermissionID: id}
		})
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&grants).Error; err != nil {
			return err
		}

		var dept model.Department
		code := RootDeptCode
		deptAttrs := model.Department{Name: "总公司", Code: &code, Status: model.StatusActive}
		if err := tx.Where("code = ? AND parent_id IS NULL", RootDeptCode).Attrs(deptAttrs).FirstOrCreate(&dept).Error; err != nil {
			return err
		}

		var user model.User
		err := tx.Where("username = ?", AdminUsername).Take(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			hashed, err := utils.HashPassword(adminPassword)
			if err != nil {
				return err
			}
			user = model.User{
				Username:     AdminUsername,
				Password:     hashed,
				Name:         "管理员",
				Status:       model.StatusActive,
				DepartmentID: &dept.ID,
			}
			if err := tx.Omit(clause.Associations).Create(&user).Error; err != nil {
				return err
			}
			logger.Info("已创建管理员账号", zap.String("username", AdminUsername))
		case err != nil:
			return err
		}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.UserRole{UserID: user.ID, RoleID: role.ID}).Error
	})
}
