package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetup-backend/internal/config"
)

func TestSetupDefaults(t *testing.T) {
	log, closeFn, err := Setup(nil)
	require.NoError(t, err)
	defer closeFn()
	assert.NotNil(t, log)
}

func TestSetupWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meetup.log")

	log, closeFn, err := Setup(&config.Logging{File: path, Level: "warn"})
	require.NoError(t, err)

	log.Warn("something odd", "key", "value")
	log.Info("filtered out")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "something odd")
	assert.NotContains(t, string(data), "filtered out")
}

func TestSetupBadLevel(t *testing.T) {
	_, _, err := Setup(&config.Logging{Level: "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestSetupUnwritableFile(t *testing.T) {
	_, _, err := Setup(&config.Logging{File: t.TempDir()})
	assert.Error(t, err)
}
