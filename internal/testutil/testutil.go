package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"uac/internal/bootstrap"
	"uac/internal/model"
)

// NewDB 为每个测试创建独立的 sqlite 内存库并完成迁移，测试结束后自动关闭
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, _ := openMemory(t, t.Name())
	return db
}

// NewDBWithReplica 创建注册了从库的数据库，从库只有表结构没有数据，
// 从从库读取刚写入的记录会查不到
func NewDBWithReplica(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	_, replicaDSN := openMemory(t, t.Name()+"_replica")
	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.Open(replicaDSN)},
	}))
	if err != nil {
		t.Fatalf("register replica: %v", err)
	}
	return db
}

func openMemory(t *testing.T, name string) (*gorm.DB, string) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(name))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// 内存库只使用单连接，避免共享缓存下的表锁
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db, dsn
}

// NewSeededDB 创建数据库并写入默认数据
func NewSeededDB(t *testing.T, adminPassword string) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	if err := bootstrap.Seed(context.Background(), db, adminPassword); err != nil {
		t.Fatalf("seed db: %v", err)
	}
	return db
}

// CreatePermission 写入一条权限
func CreatePermission(t *testing.T, db *gorm.DB, code string) *model.Permission {
	t.Helper()
	p := &model.Permission{Name: code, Code: code, Actions: []string{model.ActionRead}}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create permission %s: %v", code, err)
	}
	return p
}

// CreateUser 写入一个用户并绑定角色
func CreateUser(t *testing.T, db *gorm.DB, username string, deptID *string, roleIDs ...string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Password: "-", Name: username, DepartmentID: deptID}
	if err := db.Omit("Roles").Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	for _, rid := range roleIDs {
		if err := db.Create(&model.UserRole{UserID: u.ID, RoleID: rid}).Error; err != nil {
			t.Fatalf("bind role %s: %v", rid, err)
		}
	}
	return u
}
