package types

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name        string  `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
	Status      string  `json:"status"`
	Sort        int     `json:"sort"`
}

// UpdateDepartmentRequest 更新部门请求，未传的字段保持不变
type UpdateDepartmentRequest struct {
	Name        *string        `json:"name"`
	Code        NullableString `json:"code"`
	Description NullableString `json:"description"`
	ParentID    NullableString `json:"parent_id"` // 显式 null 表示移动到根
	Status      *string        `json:"status"`
	Sort        *int           `json:"sort"`
}

// ListDepartmentsRequest 部门列表请求
type ListDepartmentsRequest struct {
	PageRequest
	Name   string `query:"name"`
	Code   string `query:"code"`
	Status string `query:"status"`
}

// DepartmentRef 部门引用
type DepartmentRef struct {
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
}

// DepartmentInfo 部门信息响应
type DepartmentInfo struct {
	DepartmentID string         `json:"department_id"`
	Name         string         `json:"name"`
	Code         *string        `json:"code"`
	Description  *string        `json:"description"`
	ParentID     *string        `json:"parent_id"`
	Status       string         `json:"status"`
	Sort         int            `json:"sort"`
	CreatedAt    *DateTime      `json:"created_at"`
	UpdatedAt    *DateTime      `json:"updated_at"`
	Parent       *DepartmentRef `json:"parent,omitempty"`
}

// DepartmentTreeNode 部门树节点
type DepartmentTreeNode struct {
	DepartmentInfo
	Children []*DepartmentTreeNode `json:"children"`
}

// DepartmentMembersRequest 部门成员查询
type DepartmentMembersRequest struct {
	IncludeChildren bool `query:"include_children"`
}

// DepartmentMember 部门成员
type DepartmentMember struct {
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Status       string  `json:"status"`
	DepartmentID *string `json:"department_id"`
}
