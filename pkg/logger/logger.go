// Package logger builds the process logger from a level and format name.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Setup returns a logger writing to standard error.
func Setup(level, format string) *logrus.Logger {
	return New(os.Stderr, level, format)
}

// New returns a logger writing to w. level is one of debug, info, warn or
// error (unknown values mean info); format "json" selects JSON output,
// anything else text.
func New(w io.Writer, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	lvl := logrus.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = logrus.DebugLevel
	case "warn", "warning":
		lvl = logrus.WarnLevel
	case "error":
		lvl = logrus.ErrorLevel
	}
	l.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
			DisableSorting:  true,
		})
	}
	return l
}
