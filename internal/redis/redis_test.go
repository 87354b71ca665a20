package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"uac/internal/config"
)

func TestURL(t *testing.T) {
	cfg := &config.RedisConfig{Host: "10.0.0.5", Port: 6380, DB: 2}
	assert.Equal(t, "redis://10.0.0.5:6380/2", URL(cfg))
	assert.Equal(t, "10.0.0.5:6380", Addr(cfg))

	cfg.Password = "secret"
	assert.Equal(t, "redis://:secret@10.0.0.5:6380/2", URL(cfg))
}

func TestNewDisabled(t *testing.T) {
	client := New(&config.RedisConfig{})
	assert.Nil(t, client)
	assert.NoError(t, Ping(context.Background(), client))
	assert.NoError(t, Close(client))
}

func TestNewEnabled(t *testing.T) {
	client := New(&config.RedisConfig{Host: "127.0.0.1", Port: 6379, DB: 1})
	if assert.NotNil(t, client) {
		assert.Equal(t, "127.0.0.1:6379", client.Options().Addr)
		assert.Equal(t, 1, client.Options().DB)
		assert.NoError(t, Close(client))
	}
}
