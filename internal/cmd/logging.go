package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger stays a no-op until SetupLogger runs. The TUI path never sets it
// up because bubbletea owns the terminal.
var logger = zap.NewNop()

// SetupLogger builds the production logger used by the one-shot commands.
func SetupLogger(verbose bool) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built
	return nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = logger.Sync()
}
