package logic

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uac/internal/model"
	"uac/internal/types"
	"uac/internal/utils"
	"uac/internal/xerr"
)

// RoleLogic 角色逻辑
type RoleLogic struct {
	ctx context.Context
	db  *gorm.DB
}

// NewRoleLogic 创建角色逻辑
func NewRoleLogic(ctx context.Context, db *gorm.DB) *RoleLogic {
	return &RoleLogic{ctx: ctx, db: db.WithContext(ctx)}
}

// CreateRole 创建角色，可同时指定初始权限
func (l *RoleLogic) CreateRole(req *types.CreateRoleRequest) (*types.RoleInfo, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" {
		return nil, xerr.Validation("角色名称不能为空")
	}
	if code == "" {
		return nil, xerr.Validation("角色编码不能为空")
	}
	status := req.Status
	if status == "" {
		status = model.StatusActive
	}
	if !model.IsValidRoleStatus(status) {
		return nil, xerr.Validation("角色状态不合法")
	}

	db := primary(l.db)
	// 编码唯一约束覆盖已软删除的角色
	var count int64
	if err := db.Unscoped().Model(&model.Role{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, xerr.Internal("查询角色失败", err)
	}
	if count > 0 {
		return nil, xerr.Conflict("角色编码已存在")
	}

	role := &model.Role{
		Name:        name,
		Code:        code,
		Description: req.Description,
		Status:      status,
	}
	permissionIDs := cleanIDs(req.PermissionIDs)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensurePermissionsExist(tx, permissionIDs); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(role).Error; err != nil {
			return err
		}
		return insertGrants(tx, role.ID, permissionIDs)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, xerr.Conflict("角色编码已存在")
	}
	if err != nil {
		return nil, xerr.Wrap("创建角色失败", err)
	}
	return getRole(db, role.ID)
}

// ListRoles 分页查询角色，size=-1 返回全部
func (l *RoleLogic) ListRoles(req *types.ListRolesRequest) (*types.PageResult[*types.RoleInfo], error) {
	req.Normalize()

	query := l.db.Model(&model.Role{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Code != "" {
		query = query.Where("code = ?", req.Code)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, xerr.Internal("查询角色失败", err)
	}

	var roles []*model.Role
	q := query.Order("created_at ASC, role_id ASC")
	if !req.All() {
		q = q.Offset(req.Offset()).Limit(req.Size)
	}
	if err := q.Find(&roles).Error; err != nil {
		return nil, xerr.Internal("查询角色失败", err)
	}

	return types.NewPageResult(&req.PageRequest, types.ToRoleInfoList(roles), total), nil
}

// GetRole 获取角色详情，包含已授予的权限
func (l *RoleLogic) GetRole(id string) (*types.RoleInfo, error) {
	return getRole(l.db, id)
}

func getRole(db *gorm.DB, id string) (*types.RoleInfo, error) {
	var role model.Role
	err := db.Preload("Permissions", func(db *gorm.DB) *gorm.DB {
		return db.Order("permissions.code ASC")
	}).Where("role_id = ?", id).Take(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.NotFound("角色不存在")
		}
		return nil, xerr.Internal("查询角色失败", err)
	}
	return types.ToRoleInfo(&role), nil
}

// UpdateRole 部分更新角色
func (l *RoleLogic) UpdateRole(id string, req *types.UpdateRoleRequest) (*types.RoleInfo, error) {
	db := primary(l.db)
	role, err := findRole(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, xerr.Validation("角色名称不能为空")
		}
		updates["name"] = name
	}
	if req.Status != nil {
		if !model.IsValidRoleStatus(*req.Status) {
			return nil, xerr.Validation("角色状态不合法")
		}
		updates["status"] = *req.Status
	}
	if req.Description.Set {
		updates["description"] = req.Description.Value
	}

	if len(updates) > 0 {
		if err := db.Model(role).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return nil, xerr.Internal("更新角色失败", err)
		}
	}
	return getRole(db, id)
}

// DeleteRole 软删除角色并清除其权限授予
func (l *RoleLogic) DeleteRole(id string) error {
	err := primary(l.db).Transaction(func(tx *gorm.DB) error {
		if _, err := lockRole(tx, id); err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Where("role_id = ?", id).Delete(&model.Role{}).Error
	})
	return xerr.Wrap("删除角色失败", err)
}

// ReplacePermissions 全量替换角色权限：输入去重后，角色的授予集合恰好等于输入集合
func (l *RoleLogic) ReplacePermissions(id string, permissionIDs []string) (*types.RoleInfo, error) {
	ids := cleanIDs(permissionIDs)
	db := primary(l.db)
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockRole(tx, id); err != nil {
			return err
		}
		if err := ensurePermissionsExist(tx, ids); err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return insertGrants(tx, id, ids)
	})
	if err != nil {
		return nil, xerr.Wrap("分配权限失败", err)
	}
	return getRole(db, id)
}

// UpdatePermissions 增量调整角色权限，先移除后添加，同时出现在两个集合中的权限最终保留
func (l *RoleLogic) UpdatePermissions(id string, add, remove []string) (*types.RoleInfo, error) {
	addIDs := cleanIDs(add)
	removeIDs := cleanIDs(remove)
	db := primary(l.db)
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockRole(tx, id); err != nil {
			return err
		}
		if err := ensurePermissionsExist(tx, addIDs); err != nil {
			return err
		}
		if len(removeIDs) > 0 {
			if err := tx.Where("role_id = ? AND permission_id IN ?", id, removeIDs).Delete(&model.RolePermission{}).Error; err != nil {
				return err
			}
		}

		var existing []string
		if err := tx.Model(&model.RolePermission{}).Where("role_id = ?", id).Pluck("permission_id", &existing).Error; err != nil {
			return err
		}
		return insertGrants(tx, id, utils.SliceDifference(addIDs, existing))
	})
	if err != nil {
		return nil, xerr.Wrap("调整权限失败", err)
	}
	return getRole(db, id)
}

// CheckPermission 判断用户是否通过任一有效角色拥有指定编码的权限
func (l *RoleLogic) CheckPermission(userID, code string) (bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, xerr.Validation("权限编码不能为空")
	}

	var count int64
	err := l.db.Scopes(model.GrantedPermissions(userID)).Where("p.code = ?", code).Count(&count).Error
	if err != nil {
		return false, xerr.Internal("权限检查失败", err)
	}
	return count > 0, nil
}

func findRole(db *gorm.DB, id string) (*model.Role, error) {
	var role model.Role
	if err := db.Where("role_id = ?", id).Take(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.NotFound("角色不存在")
		}
		return nil, xerr.Internal("查询角色失败", err)
	}
	return &role, nil
}

// lockRole 事务内锁定角色行，同一角色的并发授权串行执行
func lockRole(tx *gorm.DB, id string) (*model.Role, error) {
	return findRole(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ensurePermissionsExist 校验权限ID全部存在
func ensurePermissionsExist(tx *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var found []string
	if err := tx.Model(&model.Permission{}).Where("permission_id IN ?", ids).Pluck("permission_id", &found).Error; err != nil {
		return err
	}
	if missing := utils.SliceDifference(ids, found); len(missing) > 0 {
		return xerr.Validation("权限不存在: " + strings.Join(missing, ","))
	}
	return nil
}

func insertGrants(tx *gorm.DB, roleID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	rows := make([]model.RolePermission, 0, len(ids))
	for _, pid := range ids {
		rows = append(rows, model.RolePermission{RoleID: roleID, PermissionID: pid})
	}
	return tx.Create(&rows).Error
}

// cleanIDs 去除空白与重复
func cleanIDs(ids []string) []string {
	trimmed := utils.SliceMap(ids, func(_ int, id string) string {
		return strings.TrimSpace(id)
	})
	trimmed = utils.SliceFilter(trimmed, func(_ int, id string) bool {
		return id != ""
	})
	return utils.SliceUnique(trimmed)
}
