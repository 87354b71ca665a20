package logic

import (
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// primary 返回固定走主库的会话，写操作的前置校验和回读都使用它，避免读到从库的旧数据
func primary(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Write).Session(&gorm.Session{})
}
