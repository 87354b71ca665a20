package logger

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 日志配置
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // stdout, file, both
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
}

var (
	mu      sync.RWMutex
	current *zap.Logger
	jsonOut bool
)

// Init 按配置初始化进程日志
func Init(cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}
	l := New(cfg)
	mu.Lock()
	current, jsonOut = l, cfg.Format == "json"
	mu.Unlock()
}

// New 创建日志实例，未配置任何输出时写到标准输出
func New(cfg *Config) *zap.Logger {
	if cfg == nil {
		cfg = &Config{}
	}
	enc := newEncoder(cfg.Format)
	level := parseLevel(cfg.Level)

	cores := make([]zapcore.Core, 0, 2)
	for _, ws := range sinks(cfg) {
		cores = append(cores, zapcore.NewCore(enc, ws, level))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.SecondsDurationEncoder
	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func sinks(cfg *Config) []zapcore.WriteSyncer {
	var out []zapcore.WriteSyncer
	toFile := (cfg.Output == "file" || cfg.Output == "both") && cfg.FilePath != ""
	if cfg.Output != "file" || !toFile {
		out = append(out, zapcore.Lock(os.Stdout))
	}
	if toFile {
		out = append(out, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}))
	}
	return out
}

func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.Set(s); err != nil || lvl > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return lvl
}

// SetLogger 替换进程日志，测试中传入 zap.NewNop 或 observer
func SetLogger(l *zap.Logger) {
	mu.Lock()
	current = l
	mu.Unlock()
}

// L 返回进程日志，未初始化时使用默认配置
func L() *zap.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(nil)
	return L()
}

// Ctx 返回带请求ID的日志
func Ctx(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if rid, ok := ctx.Value(RequestIDKey).(string); ok && rid != "" {
			return L().WithOptions(zap.AddCallerSkip(-1)).With(zap.String("request_id", rid))
		}
	}
	return L().WithOptions(zap.AddCallerSkip(-1))
}

func isJSON() bool {
	mu.RLock()
	defer mu.RUnlock()
	return jsonOut
}

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { L().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { L().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }

// Fatal 记录后退出进程
func Fatal(msg string, fields ...zap.Field) { L().Fatal(msg, fields...) }

// Sync 刷新缓冲
func Sync() {
	_ = L().Sync()
}
