package config

import (
	"fmt"
	"strings"
	"time"
)

// MessagingConfig holds activity event publishing configuration.
type MessagingConfig struct {
	// NATSURL is the NATS server URL. Empty disables event publishing.
	NATSURL string
	// SubjectPrefix prefixes every activity subject, e.g. "tasks.activity".
	SubjectPrefix string
	// ConnectTimeout bounds the initial connection attempt.
	ConnectTimeout time.Duration
}

// LoadMessagingConfigFromEnv loads messaging configuration from environment variables.
func LoadMessagingConfigFromEnv() MessagingConfig {
	return MessagingConfig{
		NATSURL:        GetEnv("NATS_URL", ""),
		SubjectPrefix:  GetEnv("NATS_SUBJECT_PREFIX", "tasks.activity"),
		ConnectTimeout: GetEnvDuration("NATS_CONNECT_TIMEOUT", 5*time.Second),
	}
}

// Enabled reports whether a NATS server is configured.
func (c MessagingConfig) Enabled() bool {
	return c.NATSURL != ""
}

// Validate validates messaging configuration.
func (c MessagingConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.SubjectPrefix == "" || strings.ContainsAny(c.SubjectPrefix, " *>") {
		return fmt.Errorf("invalid NATS_SUBJECT_PREFIX: %q", c.SubjectPrefix)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("NATS_CONNECT_TIMEOUT must be greater than 0")
	}
	return nil
}

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// SessionConfig holds negotiation session storage configuration.
type SessionConfig struct {
	// Store selects the backend (memory, redis).
	Store string
	// TTL is how long an unresolved negotiation is kept.
	TTL time.Duration
	// RedisAddr is the Redis address used by the redis backend.
	RedisAddr string
	// RedisPassword is optional.
	RedisPassword string
	// RedisDB selects the logical database.
	RedisDB int
	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string
}

// LoadSessionConfigFromEnv loads session configuration from environment variables.
func LoadSessionConfigFromEnv() SessionConfig {
	return SessionConfig{
		Store:         GetEnv("SESSION_STORE", SessionStoreMemory),
		TTL:           GetEnvDuration("SESSION_TTL", 30*time.Minute),
		RedisAddr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("REDIS_DB", 0),
		KeyPrefix:     GetEnv("SESSION_KEY_PREFIX", "negotiation:"),
	}
}

// Validate validates session configuration.
func (c SessionConfig) Validate() error {
	switch c.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
		}
		if c.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB must be non-negative")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE: %s (must be: memory, redis)", c.Store)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be greater than 0")
	}
	return nil
}
