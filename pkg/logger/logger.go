// Package logger provides structured logging using zap.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appConfig "github.com/festy23/task_capacity/internal/config"
)

// ServiceName is attached to every log entry.
const ServiceName = "task-capacity"

// New creates a new logger from LOG_* environment variables.
func New() (*zap.SugaredLogger, error) {
	cfg := appConfig.LoadLoggerConfigFromEnv()
	return NewWithConfig(cfg)
}

// NewWithConfig creates a new logger with custom configuration.
// Output may be stdout, stderr or a file path.
func NewWithConfig(cfg appConfig.LoggerConfig) (*zap.SugaredLogger, error) {
	var zapConfig zap.Config

	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapConfig.Encoding = "json"
		zapConfig.EncoderConfig.TimeKey = "ts"
		zapConfig.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	}

	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	zapConfig.OutputPaths = []string{output}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.InitialFields = map[string]interface{}{"service": ServiceName}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
