// Package logger contains functions for a working with application logging.
package logger

import (
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new "zap" logger with a little customization.
func New(l Level, f Format) (*zap.Logger, error) {
	var config zap.Config

	switch f {
	case ConsoleFormat:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	case JSONFormat:
		config = zap.NewProductionConfig() // json encoder is used by default

	default:
		return nil, errors.New("unsupported logging format")
	}

	// default configuration for all encoders
	config.Development = false
	config.DisableStacktrace = true
	config.DisableCaller = true

	// enable additional features for debugging
	if l <= DebugLevel {
		config.Development = true
		config.DisableStacktrace = false
		config.DisableCaller = false
	}

	var zapLevel zapcore.Level

	switch l {
	case DebugLevel:
		zapLevel = zap.DebugLevel
	case InfoLevel:
		zapLevel = zap.InfoLevel
	case WarnLevel:
		zapLevel = zap.WarnLevel
	case ErrorLevel:
		zapLevel = zap.ErrorLevel
	default:
		return nil, errors.New("unsupported logging level")
	}

	config.Level = zap.NewAtomicLevelAt(zapLevel)

	return config.Build()
}
