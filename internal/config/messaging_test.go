package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadMessagingConfigFromEnv(t *testing.T) {
	t.Setenv("NATS_URL", "nats://broker:4222")
	t.Setenv("NATS_SUBJECT_PREFIX", "acme.activity")
	t.Setenv("NATS_CONNECT_TIMEOUT", "2s")

	cfg := LoadMessagingConfigFromEnv()
	assert.Equal(t, "nats://broker:4222", cfg.NATSURL)
	assert.Equal(t, "acme.activity", cfg.SubjectPrefix)
	assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
	assert.True(t, cfg.Enabled())
}

func TestMessagingConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    MessagingConfig
		wantError bool
	}{
		{
			name:   "disabled skips checks",
			config: MessagingConfig{},
		},
		{
			name:   "valid",
			config: MessagingConfig{NATSURL: "nats://x:4222", SubjectPrefix: "tasks.activity", ConnectTimeout: time.Second},
		},
		{
			name:      "wildcard prefix",
			config:    MessagingConfig{NATSURL: "nats://x:4222", SubjectPrefix: "tasks.>", ConnectTimeout: time.Second},
			wantError: true,
		},
		{
			name:      "empty prefix",
			config:    MessagingConfig{NATSURL: "nats://x:4222", ConnectTimeout: time.Second},
			wantError: true,
		},
		{
			name:      "zero timeout",
			config:    MessagingConfig{NATSURL: "nats://x:4222", SubjectPrefix: "tasks"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadSessionConfigFromEnv_DefaultValues(t *testing.T) {
	for _, key := range []string{"SESSION_STORE", "SESSION_TTL", "REDIS_ADDR", "REDIS_DB", "SESSION_KEY_PREFIX"} {
		t.Setenv(key, "")
	}

	cfg := LoadSessionConfigFromEnv()
	assert.Equal(t, SessionStoreMemory, cfg.Store)
	assert.Equal(t, 30*time.Minute, cfg.TTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "negotiation:", cfg.KeyPrefix)
}

func TestSessionConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    SessionConfig
		wantError bool
	}{
		{
			name:   "memory",
			config: SessionConfig{Store: SessionStoreMemory, TTL: time.Minute},
		},
		{
			name:   "redis",
			config: SessionConfig{Store: SessionStoreRedis, TTL: time.Minute, RedisAddr: "localhost:6379"},
		},
		{
			name:      "redis without address",
			config:    SessionConfig{Store: SessionStoreRedis, TTL: time.Minute},
			wantError: true,
		},
		{
			name:      "negative redis db",
			config:    SessionConfig{Store: SessionStoreRedis, TTL: time.Minute, RedisAddr: "x:6379", RedisDB: -1},
			wantError: true,
		},
		{
			name:      "unknown store",
			config:    SessionConfig{Store: "etcd", TTL: time.Minute},
			wantError: true,
		},
		{
			name:      "zero ttl",
			config:    SessionConfig{Store: SessionStoreMemory},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
