package auth

import (
	"github.com/click33/sa-token-go/core"
	satokenConfig "github.com/click33/sa-token-go/core/config"
	"github.com/click33/sa-token-go/storage/memory"
	satokenRedis "github.com/click33/sa-token-go/storage/redis"
	"github.com/click33/sa-token-go/stputil"
	"go.uber.org/zap"

	"uac/internal/config"
	"uac/internal/logger"
	"uac/internal/redis"
)

// InitSaToken 初始化SaToken：配置了 Redis 时使用 Redis 存储，否则使用内存存储。
// 管理器注册为 stputil 的全局实例，之后统一通过本包的 Login/IsLogin 等函数访问
func InitSaToken(cfg *config.Config) {
	manager := core.NewBuilder().
		Storage(newStorage(&cfg.Redis)).
		TokenName(cfg.SaToken.TokenName).
		TokenStyle(parseTokenStyle(cfg.SaToken.TokenStyle)).
		Timeout(cfg.SaToken.Timeout).
		ActiveTimeout(cfg.SaToken.ActiveTimeout).
		IsConcurrent(cfg.SaToken.IsConcurrent).
		IsShare(cfg.SaToken.IsShare).
		MaxLoginCount(cfg.SaToken.MaxLoginCount).
		IsLog(cfg.SaToken.IsLog).
		Build()

	stputil.SetManager(manager)
}

func newStorage(cfg *config.RedisConfig) core.Storage {
	if !cfg.Enabled() {
		logger.Warn("[SaToken] 使用内存存储，服务重启后token会丢失")
		return memory.NewStorage()
	}

	storage, err := satokenRedis.NewStorage(redis.URL(cfg))
	if err != nil {
		logger.Warn("[SaToken] Redis存储初始化失败，降级使用内存存储", zap.Error(err))
		return memory.NewStorage()
	}
	logger.Info("[SaToken] 使用Redis存储", zap.String("addr", redis.Addr(cfg)))
	return storage
}

// parseTokenStyle 解析Token风格配置
func parseTokenStyle(style string) satokenConfig.TokenStyle {
	switch style {
	case "simple-uuid":
		return satokenConfig.TokenStyleSimple
	case "random-32":
		return satokenConfig.TokenStyleRandom32
	case "random-64":
		return satokenConfig.TokenStyleRandom64
	case "random-128":
		return satokenConfig.TokenStyleRandom128
	case "hash":
		return satokenConfig.TokenStyleHash
	case "timestamp":
		return satokenConfig.TokenStyleTimestamp
	case "tik":
		return satokenConfig.TokenStyleTik
	default:
		return satokenConfig.TokenStyleUUID
	}
}

// Login 登录，返回token
func Login(userID string) (string, error) {
	return stputil.Login(userID)
}

// LogoutByToken 根据Token登出
func LogoutByToken(tokenValue string) error {
	return stputil.LogoutByToken(tokenValue)
}

// IsLogin 判断是否登录
func IsLogin(tokenValue string) bool {
	return stputil.IsLogin(tokenValue)
}

// GetLoginId 获取登录ID
func GetLoginId(tokenValue string) (string, error) {
	return stputil.GetLoginID(tokenValue)
}
