// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/runnerr0/findsite/internal/config"
)

// Setup applies cfg to logger. Output goes to cfg.File when set, stderr
// otherwise; verbose forces debug level. The returned closer releases the
// log file and is never nil.
func Setup(logger *logrus.Logger, cfg config.LoggingConfig, verbose bool) (io.Closer, error) {
	level := logrus.WarnLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nopCloser{}, errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
		level = parsed
	}
	if verbose {
		level = logrus.DebugLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if cfg.File == "" {
		logger.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	path, err := config.ExpandPath(cfg.File)
	if err != nil {
		return nopCloser{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nopCloser{}, errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nopCloser{}, errors.Wrap(err, "open log file")
	}
	logger.SetOutput(f)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
