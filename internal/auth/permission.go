package auth

import (
	"context"

	"gorm.io/gorm"

	"uac/internal/model"
)

// PermissionService 权限服务
type PermissionService struct {
	db *gorm.DB
}

// NewPermissionService 创建权限服务
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// GetUserRoles 获取用户的有效角色（未删除且 ACTIVE），按编码排序
func (s *PermissionService) GetUserRoles(ctx context.Context, userID string) ([]model.Role, error) {
	var roles []model.Role
	err := s.db.WithContext(ctx).
		Joins("JOIN user_roles AS ur ON ur.role_id = roles.role_id").
		Where("ur.user_id = ? AND roles.status = ?", userID, model.StatusActive).
		Order("roles.code ASC").
		Find(&roles).Error
	return roles, err
}

// GetUserPermissions 获取用户经由有效角色获得的权限编码
func (s *PermissionService) GetUserPermissions(ctx context.Context, userID string) ([]string, error) {
	codes := []string{}
	err := s.db.WithContext(ctx).
		Scopes(model.GrantedPermissions(userID)).
		Distinct("p.code").
		Order("p.code ASC").
		Pluck("p.code", &codes).Error
	return codes, err
}

// HasAnyPermission 判断用户是否拥有任一权限，支持通配符授予
func (s *PermissionService) HasAnyPermission(ctx context.Context, userID string, permissionCodes ...string) (bool, error) {
	permissions, err := s.GetUserPermissions(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, perm := range permissions {
		for _, code := range permissionCodes {
			if perm == code || matchWildcard(perm, code) {
				return true, nil
			}
		}
	}
	return false, nil
}

// matchWildcard 通配符匹配
// 支持 * 匹配任意字符, ? 匹配单个字符
// 如: department:* 匹配 department:create, department:delete
func matchWildcard(pattern, target string) bool {
	if pattern == "*" {
		return true
	}

	pLen, tLen := len(pattern), len(target)
	pIdx, tIdx := 0, 0
	starIdx, matchIdx := -1, 0

	for tIdx < tLen {
		switch {
		case pIdx < pLen && (pattern[pIdx] == target[tIdx] || pattern[pIdx] == '?'):
			pIdx++
			tIdx++
		case pIdx < pLen && pattern[pIdx] == '*':
			starIdx = pIdx
			matchIdx = tIdx
			pIdx++
		case starIdx != -1:
			pIdx = starIdx + 1
			matchIdx++
			tIdx = matchIdx
		default:
			return false
		}
	}

	for pIdx < pLen && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == pLen
}
