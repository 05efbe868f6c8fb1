package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 是全局日志实例，InitLogger 之前默认为 no-op
var Logger = zap.NewNop()

func InitLogger(logLevel string) {
	config := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	config.Level.SetLevel(level)
	Logger, _ = config.Build()
	zap.ReplaceGlobals(Logger)
}
