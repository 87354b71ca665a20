package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger 将 GORM 日志写入进程日志，慢查询以 warn 输出
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormlogger.LogLevel
}

// NewGormLogger 创建 GORM 日志适配器
func NewGormLogger(level string) *GormLogger {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      ParseGormLevel(level),
	}
}

// ParseGormLevel 解析 GORM 日志级别，未知值按 info 处理
func ParseGormLevel(level string) gormlogger.LogLevel {
	levels := map[string]gormlogger.LogLevel{
		"silent": gormlogger.Silent,
		"error":  gormlogger.Error,
		"warn":   gormlogger.Warn,
	}
	if lvl, ok := levels[level]; ok {
		return lvl
	}
	return gormlogger.Info
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, need gormlogger.LogLevel, lvl zapcore.Level, msg string, data []interface{}) {
	if l.LogLevel < need {
		return
	}
	if ce := Ctx(ctx).Check(lvl, fmt.Sprintf(msg, data...)); ce != nil {
		ce.Write()
	}
}

// shortCaller 只保留 包名/文件名:行号
func shortCaller(caller string) string {
	if i := strings.LastIndex(caller, "/"); i > 0 {
		if j := strings.LastIndex(caller[:i], "/"); j >= 0 {
			return caller[j+1:]
		}
	}
	return caller
}

// Trace 记录 SQL：失败 error、慢查询 warn、其余 debug
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var lvl zapcore.Level
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormlogger.Error:
		lvl = zapcore.ErrorLevel
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		lvl = zapcore.WarnLevel
	case l.LogLevel >= gormlogger.Info:
		lvl = zapcore.DebugLevel
	default:
		return
	}

	sql, rows := fc()
	caller := shortCaller(utils.FileWithLineNum())
	lg := Ctx(ctx).WithOptions(zap.WithCaller(false))
	if lvl == zapcore.ErrorLevel {
		lg = lg.With(zap.Error(err))
	}

	if isJSON() {
		msg := "SQL"
		if lvl == zapcore.WarnLevel {
			msg = "SQL SLOW"
		}
		lg.Check(lvl, msg).Write(
			zap.String("caller", caller),
			zap.Duration("latency", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
		return
	}

	msg := fmt.Sprintf("[%.3fms] [rows:%d] %s", float64(elapsed.Microseconds())/1000, rows, sql)
	if lvl == zapcore.WarnLevel {
		msg = "SLOW " + msg
	}
	lg.Named(caller).Check(lvl, msg).Write()
}
