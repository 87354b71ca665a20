package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"uac/internal/config"
)

// New 创建 Redis 客户端，未配置时返回 nil
func New(cfg *config.RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     Addr(cfg),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Addr 服务地址
func Addr(cfg *config.RedisConfig) string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// URL 连接串 redis://:password@host:port/db
func URL(cfg *config.RedisConfig) string {
	if cfg.Password != "" {
		return fmt.Sprintf("redis://:%s@%s:%d/%d", cfg.Password, cfg.Host, cfg.Port, cfg.DB)
	}
	return fmt.Sprintf("redis://%s:%d/%d", cfg.Host, cfg.Port, cfg.DB)
}

// Ping 测试连接
func Ping(ctx context.Context, client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Ping(ctx).Err()
}

// Close 关闭连接
func Close(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// Counter 带过期时间的计数器
type Counter struct {
	client *redis.Client
	prefix string
}

// NewCounter 创建计数器，key 统一加前缀
func NewCounter(client *redis.Client, prefix string) *Counter {
	return &Counter{client: client, prefix: prefix}
}

// Incr 自增并返回当前值，首次写入时设置过期时间
func (c *Counter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	k := c.prefix + key
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Reset 清除计数
func (c *Counter) Reset(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
