// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mrlokans/bookapi/internal/config"
)

// New initializes the logger. Production mode writes JSON lines to stdout,
// development mode writes colored console output. Stacktraces are attached
// to error level entries only.
func New(cfg config.Logging, version string) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var encoder zapcore.Encoder
	if cfg.Production {
		zapConfig := zap.NewProductionEncoderConfig()
		zapConfig.TimeKey = "ts"
		zapConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.MessageKey = "msg"
		encoder = zapcore.NewJSONEncoder(zapConfig)
	} else {
		zapConfig := zap.NewDevelopmentEncoderConfig()
		zapConfig.TimeKey = "ts"
		zapConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(zapConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	logger = logger.With(zap.String("app.version", version))

	flush := func() {
		// Sync on stdout fails on some platforms; nothing to recover there.
		if err := logger.Sync(); err != nil {
			log.Println("error flushing log entries:", err)
		}
	}
	return logger, flush, nil
}

// StdLogger adapts a zap logger to a *log.Logger writing at the given level.
// Used for libraries that only accept the standard library interface.
func StdLogger(logger *zap.Logger, level zapcore.Level) *log.Logger {
	std, err := zap.NewStdLogAt(logger, level)
	if err != nil {
		return zap.NewStdLog(logger)
	}
	return std
}
