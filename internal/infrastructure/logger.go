package infrastructure

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from config
func NewLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	configureLogger(logger, cfg)
	return logger
}

func configureLogger(logger *logrus.Logger, cfg *Config) {
	if cfg != nil && cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	level := logrus.InfoLevel
	if cfg != nil {
		if parsed, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			level = parsed
		}
	}
	logger.SetLevel(level)
}

// RequestLogger returns a logger writing to the Cloud Functions log writer
// for ctx, sharing formatter and level with base.
func RequestLogger(ctx context.Context, base *logrus.Logger) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(base.Formatter)
	logger.SetLevel(base.GetLevel())
	logger.SetOutput(requestWriter(ctx, base.Out))
	return logger
}

func requestWriter(ctx context.Context, fallback io.Writer) io.Writer {
	if w := funcframework.LogWriter(ctx); w != nil {
		return w
	}
	return fallback
}
