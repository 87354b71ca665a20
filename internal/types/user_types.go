package types

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult 登录结果
type LoginResult struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo 用户信息
type UserInfo struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Status       string    `json:"status"`
	DepartmentID *string   `json:"department_id"`
	CreatedAt    *DateTime `json:"created_at"`
	Roles        []RoleRef `json:"roles"`
	Permissions  []string  `json:"permissions,omitempty"`
}
