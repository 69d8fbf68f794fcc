package bough

import (
	"io"

	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogger sets the logger used by the scene graph and its backends. By
// default output is discarded. Passing nil restores the default.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newDiscardLogger()
	}
	logger = l
}

// Logger returns the current logger. Backends log through it so one
// SetLogger call configures the whole module.
func Logger() logrus.FieldLogger {
	return logger
}
