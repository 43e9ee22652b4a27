package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// newLogger builds the program logger. --debug and --verbose win over the
// configured level.
func newLogger(level string, verbose, debug bool, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	switch {
	case debug:
		lvl = logrus.DebugLevel
	case verbose && lvl < logrus.InfoLevel:
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log, nil
}

// logOutput opens the configured log file for appending, or falls back.
func logOutput(path string, fallback io.Writer) (io.Writer, io.Closer, error) {
	if path == "" {
		return fallback, nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}
	return f, f, nil
}
