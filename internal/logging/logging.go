// Package logging builds the zap logger used by the formcraft CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats accepted by Config.Format.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
)

// Config selects the encoder and level.
type Config struct {
	Debug  bool
	Format string
}

// New builds a logger writing to w, or stderr when w is nil. Human output
// uses the console encoder with coloured levels; json uses the production
// encoder.
func New(cfg Config, w io.Writer) (*zap.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatHuman:
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	level := zapcore.WarnLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}
