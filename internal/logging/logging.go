// Package logging builds the zap logger used by the session.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/config"
)

// New returns a JSON logger writing to cfg.File at cfg.Level, or a no-op
// logger when cfg.File is empty. The interactive session owns the terminal,
// so nothing is ever logged to stdout or stderr.
func New(cfg config.Log) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}
	zc.DisableStacktrace = true

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: opening %s: %w", cfg.File, err)
	}
	return logger, nil
}
