package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"SERVER_HOST", "SERVER_PORT", "SERVER_SHUTDOWN_TIMEOUT"} {
			t.Setenv(key, "")
		}

		cfg := LoadServerConfigFromEnv()
		assert.Equal(t, ":8080", cfg.Address())
		assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("custom", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "127.0.0.1")
		t.Setenv("SERVER_PORT", ":9090")
		t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "3s")

		cfg := LoadServerConfigFromEnv()
		assert.Equal(t, "127.0.0.1:9090", cfg.Address())
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	})
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		host, port, want string
	}{
		{"", ":8080", ":8080"},
		{"", "8080", ":8080"},
		{"localhost", "8080", "localhost:8080"},
		{"::1", ":8080", "[::1]:8080"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ServerConfig{Host: tt.host, Port: tt.port}.Address())
	}
}

func TestServerConfig_Validate(t *testing.T) {
	valid := func() ServerConfig {
		return ServerConfig{
			Port:            ":8080",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			IdleTimeout:     time.Second,
			ShutdownTimeout: time.Second,
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Port = ":"
	assert.ErrorContains(t, cfg.Validate(), "SERVER_PORT")

	cfg = valid()
	cfg.ShutdownTimeout = 0
	assert.ErrorContains(t, cfg.Validate(), "SERVER_SHUTDOWN_TIMEOUT")

	cfg = valid()
	cfg.WriteTimeout = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "SERVER_WRITE_TIMEOUT")
}
