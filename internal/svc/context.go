package svc

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"uac/internal/auth"
	"uac/internal/config"
	"uac/internal/logic"
	"uac/internal/redis"
)

// ServiceContext 服务上下文，由 main 创建后显式传给路由与处理器
type ServiceContext struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *goredis.Client
	Perm   *auth.PermissionService

	// CaptchaAttempts 未配置 Redis 时为 nil，不限制失败次数
	CaptchaAttempts logic.AttemptCounter
}

// New 创建服务上下文，rdb 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *goredis.Client) *ServiceContext {
	svcCtx := &ServiceContext{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Perm:   auth.NewPermissionService(db),
	}
	if rdb != nil {
		svcCtx.CaptchaAttempts = redis.NewCounter(rdb, "uac:captcha:attempts:")
	}
	return svcCtx
}
