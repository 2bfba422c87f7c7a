package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/findsite/internal/config"
)

func TestSetup_Level(t *testing.T) {
	logger := logrus.New()

	closer, err := Setup(logger, config.LoggingConfig{Level: "info"}, false)
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	_, err = Setup(logger, config.LoggingConfig{Level: "info"}, true)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	_, err = Setup(logger, config.LoggingConfig{}, false)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestSetup_InvalidLevel(t *testing.T) {
	_, err := Setup(logrus.New(), config.LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "findsite.log")
	logger := logrus.New()

	closer, err := Setup(logger, config.LoggingConfig{Level: "debug", File: path}, false)
	require.NoError(t, err)

	logger.WithField("browser", "chrome").Debug("snapshot copied")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "snapshot copied")
	assert.Contains(t, string(data), "browser=chrome")
}
