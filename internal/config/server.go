package config

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Host is the listen host; empty listens on all interfaces.
	Host string
	// Port is the listen port, with or without a leading colon.
	Port string
	// ReadTimeout bounds reading a whole request.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration
	// IdleTimeout bounds keep-alive idle time.
	IdleTimeout time.Duration
	// ShutdownTimeout bounds the graceful drain of in-flight requests.
	ShutdownTimeout time.Duration
}

// LoadServerConfigFromEnv loads server configuration from SERVER_* variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:            GetEnv("SERVER_HOST", ""),
		Port:            GetEnv("SERVER_PORT", ":8080"),
		ReadTimeout:     GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    GetEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:     GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// Address returns the listen address for http.Server.
func (c ServerConfig) Address() string {
	if c.Host == "" {
		if strings.HasPrefix(c.Port, ":") {
			return c.Port
		}
		return ":" + c.Port
	}
	return net.JoinHostPort(c.Host, strings.TrimPrefix(c.Port, ":"))
}

// Validate validates server configuration.
func (c ServerConfig) Validate() error {
	if strings.TrimPrefix(c.Port, ":") == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	for name, d := range map[string]time.Duration{
		"SERVER_READ_TIMEOUT":     c.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":    c.WriteTimeout,
		"SERVER_IDLE_TIMEOUT":     c.IdleTimeout,
		"SERVER_SHUTDOWN_TIMEOUT": c.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be greater than 0", name)
		}
	}
	return nil
}
