package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	initOnce sync.Once
	initLog  *zap.SugaredLogger
	initErr  error
)

// Init builds the process logger once and redirects the standard library
// log package into it. Later calls return the first result regardless of level.
func Init(level string) (*zap.SugaredLogger, error) {
	initOnce.Do(func() {
		initLog, initErr = NewLogger(level)
		if initErr == nil {
			zap.RedirectStdLog(initLog.Desugar())
		}
	})
	return initLog, initErr
}

// NewLogger returns a JSON logger writing to stdout.
func NewLogger(level string) (*zap.SugaredLogger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "json",
		EncoderConfig:    encCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// NewNop returns a logger that discards everything.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
