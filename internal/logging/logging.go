// Package logging builds the application logger. The TUI owns the terminal,
// so logs go to a file.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DebugEnv switches to the development logger when set to "1".
const DebugEnv = "MYSTART_DEBUG"

// FileName is the log file name inside the data directory.
const FileName = "mystart.log"

// New creates a logger writing to dir/mystart.log.
func New(dir string) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, FileName)

	var cfg zap.Config
	if os.Getenv(DebugEnv) == "1" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	return cfg.Build()
}

// NewOrNop creates a logger and falls back to a no-op logger on failure.
func NewOrNop(dir string) *zap.Logger {
	logger, err := New(dir)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
