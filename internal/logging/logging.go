// Package logging builds the zap logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level returns the minimum level logged: warn normally, debug when verbose.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zap.DebugLevel
	}
	return zap.WarnLevel
}

func newConfig(verbose bool) zap.Config {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableCaller = !verbose
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	cfg.Level = zap.NewAtomicLevelAt(Level(verbose))
	return cfg
}

// New builds a console logger writing to stderr.
func New(verbose bool) (*zap.Logger, error) {
	l, err := newConfig(verbose).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return l, nil
}

// NewWithWriter builds the same console logger writing to w.
func NewWithWriter(w io.Writer, verbose bool) *zap.Logger {
	cfg := newConfig(verbose)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg.EncoderConfig), zapcore.AddSync(w), cfg.Level)
	return zap.New(core)
}

// Stderr is the fallback used when New fails.
func Stderr() *zap.Logger {
	return NewWithWriter(os.Stderr, false)
}
