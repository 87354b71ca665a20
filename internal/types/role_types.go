package types

// CreateRoleRequest 创建角色请求
type CreateRoleRequest struct {
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	Description   *string  `json:"description"`
	Status        string   `json:"status"`
	PermissionIDs []string `json:"permission_ids"`
}

// UpdateRoleRequest 更新角色请求，编码创建后不可修改
type UpdateRoleRequest struct {
	Name        *string        `json:"name"`
	Description NullableString `json:"description"`
	Status      *string        `json:"status"`
}

// ListRolesRequest 角色列表请求
type ListRolesRequest struct {
	PageRequest
	Name   string `query:"name"`
	Code   string `query:"code"`
	Status string `query:"status"`
}

// AssignPermissionsRequest 全量替换角色权限
type AssignPermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids"`
}

// UpdatePermissionsRequest 增量调整角色权限
type UpdatePermissionsRequest struct {
	AddPermissions    []string `json:"add_permissions"`
	RemovePermissions []string `json:"remove_permissions"`
}

// CheckPermissionRequest 权限检查请求
type CheckPermissionRequest struct {
	PermissionCode string `json:"permission_code" query:"permission_code"`
}

// CheckPermissionResult 权限检查结果
type CheckPermissionResult struct {
	HasPermission bool `json:"has_permission"`
}

// RoleRef 角色引用
type RoleRef struct {
	RoleID string `json:"role_id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

// RoleInfo 角色信息响应
type RoleInfo struct {
	RoleID      string            `json:"role_id"`
	Name        string            `json:"name"`
	Code        string            `json:"code"`
	Description *string           `json:"description"`
	Status      string            `json:"status"`
	CreatedAt   *DateTime         `json:"created_at"`
	UpdatedAt   *DateTime         `json:"updated_at"`
	DeletedAt   *DateTime         `json:"deleted_at"`
	Permissions []*PermissionInfo `json:"permissions"`
}

