package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uac/internal/auth"
	"uac/internal/config"
	"uac/internal/database"
	"uac/internal/logger"
	"uac/internal/redis"
	"uac/internal/response"
	"uac/internal/router"
	"uac/internal/svc"
)

func main() {
	Execute()
}

func serve(cfg *config.Config) error {
	defer logger.Sync()

	db, err := openDB(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// 初始化 Redis，不可用时降级运行
	rdb := redis.New(&cfg.Redis)
	if rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redis.Ping(ctx, rdb); err != nil {
			logger.Warn("Redis 连接失败", zap.String("addr", redis.Addr(&cfg.Redis)), zap.Error(err))
		}
		cancel()
		defer redis.Close(rdb)
	}

	// 初始化SaToken
	auth.InitSaToken(cfg)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorHandler: response.ErrorHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})
	router.Setup(app, svc.New(cfg, db, rdb))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("服务器启动", zap.String("addr", addr), zap.String("env", cfg.App.Env))
		errCh <- app.Listen(addr)
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("服务器启动失败: %w", err)
	case <-quit:
	}

	logger.Info("正在关闭服务器...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("服务器关闭失败", zap.Error(err))
	}
	logger.Info("服务器已关闭")
	return nil
}
