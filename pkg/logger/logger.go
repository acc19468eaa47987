package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Mains call Init once at startup.
var Log *logrus.Logger

var discard = newDiscard()

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures Log from LOG_LEVEL (default info) and LOG_FORMAT (json or text).
func Init() {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// L returns Log, or a logger that discards everything when Init was never called.
func L() *logrus.Logger {
	if Log == nil {
		return discard
	}
	return Log
}

// For returns an entry tagged with the given component name.
func For(component string) *logrus.Entry {
	return L().WithField("component", component)
}
