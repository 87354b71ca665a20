package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"uac/internal/bootstrap"
	"uac/internal/config"
	"uac/internal/database"
	"uac/internal/logger"
)

var cfgFile string

// rootCmd 默认启动 HTTP 服务
var rootCmd = &cobra.Command{
	Use:   "uac",
	Short: "部门、角色与权限管理服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
	SilenceUsage: true,
}

// migrateCmd 只执行表结构迁移与默认数据初始化
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "迁移表结构并写入默认数据",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		logger.Info("迁移完成")
		return database.Close(db)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yml", "配置文件路径")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(migrateCmd)
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger.Init(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})
	return cfg, nil
}

// openDB 打开数据库并完成迁移与默认数据初始化
func openDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	if err := bootstrap.Seed(ctx, db, cfg.App.AdminPassword); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("初始化默认数据失败: %w", err)
	}
	logger.Info("数据库就绪", zap.String("driver", cfg.Database.Driver))
	return db, nil
}
