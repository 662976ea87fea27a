package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production mode emits JSON; development
// mode emits colored console output.
func New(isProd bool) (*zap.Logger, func() error) {
	var log *zap.Logger
	if isProd {
		log = zap.Must(zap.NewProduction())
	} else {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		log = zap.Must(config.Build())
	}
	return log, log.Sync
}
