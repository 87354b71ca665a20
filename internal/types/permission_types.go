package types

// ListPermissionsRequest 权限列表请求
type ListPermissionsRequest struct {
	PageRequest
	Code         string `query:"code"`
	ResourceType string `query:"resource_type"`
}

// PermissionInfo 权限信息响应
type PermissionInfo struct {
	PermissionID string    `json:"permission_id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	ResourceType string    `json:"resource_type"`
	Actions      []string  `json:"actions"`
	Description  *string   `json:"description"`
	CreatedAt    *DateTime `json:"created_at"`
	UpdatedAt    *DateTime `json:"updated_at"`
}
