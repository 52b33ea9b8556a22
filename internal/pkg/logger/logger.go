package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger: JSON output for prod-like
// environments, text otherwise.
func Setup(env, level string) {
	logrus.SetOutput(os.Stdout)

	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production", "release":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, falling back to info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
