package observability

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrUnknownLogFormat = errors.New("unknown log format")

// NewLogger builds a json (production) or console (development) logger at level.
func NewLogger(level, format string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level %q: %w", level, err)
	}

	var conf zap.Config
	switch format {
	case "json":
		conf = zap.NewProductionConfig()
	case "console":
		conf = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
	}

	conf.Level = zap.NewAtomicLevelAt(parsed)
	conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := conf.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
