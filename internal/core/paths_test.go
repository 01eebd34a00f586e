package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathsFollowHome(t *testing.T) {
	tempDir := t.TempDir()

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	ResetPaths()
	defer func() {
		os.Setenv("HOME", originalHome)
		ResetPaths()
	}()

	dataDir := filepath.Join(tempDir, ".cmdcomplete")
	assert.Equal(t, tempDir, HomeDir())
	assert.Equal(t, dataDir, DataDir())
	assert.Equal(t, filepath.Join(dataDir, "commands.json"), TreeFile())
	assert.Equal(t, filepath.Join(dataDir, "cmdcomplete.log"), LogFile())
	assert.Equal(t, filepath.Join(dataDir, "config.yaml"), ConfigFile())
	assert.Equal(t, filepath.Join(dataDir, "version_marker"), VersionMarkerFile())

	stat, err := os.Stat(dataDir)
	assert.NoError(t, err)
	assert.True(t, stat.IsDir())
}
