package logging

import (
	"os"
	"strings"

	"alcyxob/exercise-tracker/internal/config"

	"github.com/sirupsen/logrus"
)

// New builds the application logger from cfg. Unknown levels fall back to info.
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		logger.WithField("level", cfg.Level).Warn("Unknown log level, using info")
	}
	logger.SetLevel(level)

	return logger
}
