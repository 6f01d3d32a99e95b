// Package zaplog provides a zap logger for command-line tools.
package zaplog

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a new logger that writes human-readable messages without
// timestamps to w. Messages below the given level are discarded.
func New(w io.Writer, level zapcore.LevelEnabler) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}
