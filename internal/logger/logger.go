package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a configured logrus logger: human readable in development, JSON otherwise.
// An unparsable level falls back to info.
func New(appName, env, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if env == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	log.WithFields(logrus.Fields{"app": appName, "env": env}).Debug("logger initialized")
	return log
}
