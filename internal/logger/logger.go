package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init with logrus
// defaults so tests and library callers never see a nil logger.
var Log = logrus.New()

// Init configures Log. LOG_LEVEL and LOG_FORMAT in the environment take
// precedence over the supplied values.
func Init(level, format string) {
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = v
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok {
		format = v
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	Log.SetOutput(os.Stdout)
}

// Discard returns an entry whose output is dropped. Components built without
// an injected entry log here.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Silence routes all output to io.Discard. Used by the headless runner and tests.
func Silence() {
	Log.SetOutput(io.Discard)
}
