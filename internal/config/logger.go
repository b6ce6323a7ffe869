package config

import "fmt"

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is json or console.
	Format string
	// Output is stdout, stderr or a file path.
	Output string
}

// LoadLoggerConfigFromEnv loads logger configuration from LOG_* variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:  GetEnv("LOG_LEVEL", "info"),
		Format: GetEnv("LOG_FORMAT", "json"),
		Output: GetEnv("LOG_OUTPUT", "stdout"),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %s (must be: debug, info, warn, error)", c.Level)
	}
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be: json, console)", c.Format)
	}
	return nil
}

// IsProduction reports whether the production zap preset applies.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}
