package loggerprovider

import (
	"assetflow/providers"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DevelopmentMode = "development"
	ProductionMode  = "production"
)

type LogProvider struct {
	mode   string
	logger *zap.Logger
}

// NewLogProvider returns a development logger provider. Until InitLogger runs, GetLogger is a no-op logger.
func NewLogProvider() providers.ZapLoggerProvider {
	return &LogProvider{mode: DevelopmentMode}
}

// NewLogProviderWithMode selects JSON output with ISO8601 timestamps for ProductionMode.
func NewLogProviderWithMode(mode string) providers.ZapLoggerProvider {
	if mode != ProductionMode {
		mode = DevelopmentMode
	}
	return &LogProvider{mode: mode}
}

func (l *LogProvider) InitLogger() {
	cfg := zap.NewDevelopmentConfig()
	if l.mode == ProductionMode {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var err error
	l.logger, err = cfg.Build(zap.Fields(zap.String("service", "assetflow")))
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	zap.ReplaceGlobals(l.logger)
}

func (l *LogProvider) SyncLogger() {
	if l.logger != nil {
		_ = l.logger.Sync()
	}
}

func (l *LogProvider) GetLogger() *zap.Logger {
	if l.logger == nil {
		return zap.NewNop()
	}
	return l.logger
}
