package logic

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uac/internal/auth"
	"uac/internal/logger"
	"uac/internal/model"
	"uac/internal/types"
	"uac/internal/utils"
	"uac/internal/xerr"
)

// UserLogic 用户认证逻辑
type UserLogic struct {
	ctx  context.Context
	db   *gorm.DB
	perm *auth.PermissionService
}

// NewUserLogic 创建用户逻辑
func NewUserLogic(ctx context.Context, db *gorm.DB, perm *auth.PermissionService) *UserLogic {
	return &UserLogic{ctx: ctx, db: db.WithContext(ctx), perm: perm}
}

// Login 用户名密码登录
func (l *UserLogic) Login(req *types.LoginRequest) (*types.LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, xerr.Validation("用户名和密码不能为空")
	}

	var user model.User
	if err := l.db.Where("username = ?", username).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.Unauthorized("用户名或密码错误")
		}
		return nil, xerr.Internal("查询用户失败", err)
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, xerr.Unauthorized("用户名或密码错误")
	}
	if user.Status != model.StatusActive {
		return nil, xerr.Forbidden("账号已被禁用")
	}

	token, err := auth.Login(user.ID)
	if err != nil {
		return nil, xerr.Internal("登录失败", err)
	}
	logger.Ctx(l.ctx).Info("用户登录", zap.String("user_id", user.ID), zap.String("username", user.Username))

	info, err := l.GetUserInfo(user.ID)
	if err != nil {
		return nil, err
	}
	return &types.LoginResult{Token: token, User: info}, nil
}

// Logout 注销当前token
func (l *UserLogic) Logout(token string) error {
	if err := auth.LogoutByToken(token); err != nil {
		return xerr.Internal("退出登录失败", err)
	}
	return nil
}

// GetUserInfo 获取用户信息，包含有效角色与权限编码
func (l *UserLogic) GetUserInfo(userID string) (*types.UserInfo, error) {
	var user model.User
	err := l.db.Where("user_id = ?", userID).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.NotFound("用户不存在")
		}
		return nil, xerr.Internal("查询用户失败", err)
	}

	roles, err := l.perm.GetUserRoles(l.ctx, userID)
	if err != nil {
		return nil, xerr.Internal("查询角色失败", err)
	}
	user.Roles = roles

	info := types.ToUserInfo(&user)
	permissions, err := l.perm.GetUserPermissions(l.ctx, userID)
	if err != nil {
		return nil, xerr.Internal("查询权限失败", err)
	}
	info.Permissions = permissions
	return info, nil
}
