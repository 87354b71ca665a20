package logic

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"uac/internal/model"
	"uac/internal/types"
	"uac/internal/xerr"
)

// PermissionLogic 权限目录逻辑，权限由系统初始化写入，只读
type PermissionLogic struct {
	ctx context.Context
	db  *gorm.DB
}

// NewPermissionLogic 创建权限逻辑
func NewPermissionLogic(ctx context.Context, db *gorm.DB) *PermissionLogic {
	return &PermissionLogic{ctx: ctx, db: db.WithContext(ctx)}
}

// ListPermissions 分页查询权限
func (l *PermissionLogic) ListPermissions(req *types.ListPermissionsRequest) (*types.PageResult[*types.PermissionInfo], error) {
	req.Normalize()
	if req.ResourceType != "" && !model.IsValidResourceType(req.ResourceType) {
		return nil, xerr.Validation("资源类型不合法")
	}

	query := l.db.Model(&model.Permission{})
	if req.Code != "" {
		query = query.Where("code LIKE ?", "%"+req.Code+"%")
	}
	if req.ResourceType != "" {
		query = query.Where("resource_type = ?", req.ResourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, xerr.Internal("查询权限失败", err)
	}

	var list []model.Permission
	q := query.Order("code ASC")
	if !req.All() {
		q = q.Offset(req.Offset()).Limit(req.Size)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, xerr.Internal("查询权限失败", err)
	}
	return types.NewPageResult(&req.PageRequest, types.ToPermissionInfoList(list), total), nil
}

// GetPermission 获取权限详情
func (l *PermissionLogic) GetPermission(id string) (*types.PermissionInfo, error) {
	var p model.Permission
	if err := l.db.Where("permission_id = ?", id).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.NotFound("权限不存在")
		}
		return nil, xerr.Internal("查询权限失败", err)
	}
	return types.ToPermissionInfo(&p), nil
}
