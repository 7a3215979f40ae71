package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger instance.
var Log = logrus.New()

// Init configures the global logger. The log level can be overridden with the
// LOG_LEVEL environment variable (debug, info, warn, error).
func Init() {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
