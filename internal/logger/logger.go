package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Entries go to stderr so that reports
// written to stdout stay machine-readable. Callers and stack traces are only
// recorded in debug mode.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	encoder := zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if debug {
		encoder.CallerKey = "caller"
		encoder.EncodeCaller = zapcore.ShortCallerEncoder
		encoder.StacktraceKey = "stacktrace"
	}

	cfg := zap.Config{
		Encoding:          encoding,
		Level:             zap.NewAtomicLevelAt(level),
		DisableCaller:     !debug,
		DisableStacktrace: !debug,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		EncoderConfig:     encoder,
	}
	return cfg.Build()
}
