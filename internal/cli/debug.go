package cli

import (
	"fmt"

	"github.com/ariel-frischer/taglog/internal/changelog"
	"github.com/ariel-frischer/taglog/internal/git"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var debugLogger *zap.Logger

// enableDebugLogging routes the package debug hooks into a zap
// development logger on stderr.
func enableDebugLogging() error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	debugLogger = logger

	sugar := logger.Sugar()
	git.SetDebugLogger(sugar.Named("git").Debugf)
	changelog.SetDebugLogger(sugar.Named("changelog").Debugf)
	return nil
}

func disableDebugLogging() {
	if debugLogger == nil {
		return
	}
	_ = debugLogger.Sync()
	debugLogger = nil
	git.SetDebugLogger(nil)
	changelog.SetDebugLogger(nil)
}
