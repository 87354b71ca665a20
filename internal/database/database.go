package database

import (
	"fmt"
	"time"

	"uac/internal/config"
	"uac/internal/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// Open 根据配置打开数据库连接，返回的 *gorm.DB 由调用方持有并通过 Close 释放
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Driver, DSN(cfg))
	if err != nil {
		return nil, err
	}
	replicas, err := replicaDialectors(cfg.Driver, cfg.Replicas)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// 主库已建立连接，后续任一步失败都要释放
	if err := configure(db, cfg, replicas); err != nil {
		_ = Close(db)
		return nil, err
	}
	return db, nil
}

func replicaDialectors(driver string, dsns []string) ([]gorm.Dialector, error) {
	replicas := make([]gorm.Dialector, 0, len(dsns))
	for _, dsn := range dsns {
		d, err := Dialector(driver, dsn)
		if err != nil {
			return nil, err
		}
		replicas = append(replicas, d)
	}
	return replicas, nil
}

// configure 注册从库并设置连接池参数
func configure(db *gorm.DB, cfg *config.DatabaseConfig, replicas []gorm.Dialector) error {
	if len(replicas) > 0 {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxIdleConns(cfg.MaxIdleConns).
			SetMaxOpenConns(cfg.MaxOpenConns).
			SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
		if err := db.Use(resolver); err != nil {
			return fmt.Errorf("register read replicas: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	}
	return nil
}

// DSN 拼接主库连接串
func DSN(cfg *config.DatabaseConfig) string {
	switch cfg.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Database,
			cfg.Charset,
		)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.Database,
		)
		if cfg.Schema != "" {
			dsn += " search_path=" + cfg.Schema
		}
		return dsn
	case "sqlite":
		if cfg.Database == "" {
			return "file::memory:?cache=shared"
		}
		return cfg.Database
	default:
		return ""
	}
}

// Dialector 按驱动名创建 gorm 方言
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// Close 关闭数据库连接
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
