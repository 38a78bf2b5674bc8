package utils

import (
	"log"
	"sync"

	"barkwise/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var (
	Logger     *zap.Logger
	loggerInit sync.Once
)

// InitializeLogger sets up the logging configuration
func InitializeLogger() {
	var cfg zap.Config

	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	// Make zap.L() usable from packages that don't import utils.
	zap.ReplaceGlobals(Logger)
}

// GetLogger retrieves the global logger, initializing it on first use.
func GetLogger() *zap.Logger {
	loggerInit.Do(func() {
		if Logger == nil {
			InitializeLogger()
		}
	})
	return Logger
}
