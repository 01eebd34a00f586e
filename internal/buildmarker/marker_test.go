package buildmarker

import (
	"os"
	"testing"

	"github.com/atinylittleshell/cmdcomplete/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempHome(t *testing.T) {
	tempDir := t.TempDir()

	// Override HOME for core.DataDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	core.ResetPaths() // Reset cached paths so new HOME is picked up
	t.Cleanup(func() {
		os.Setenv("HOME", originalHome)
		core.ResetPaths()
	})
}

func TestMarker(t *testing.T) {
	useTempHome(t)

	assert.Equal(t, "", GetBuiltVersion())

	require.NoError(t, UpdateMarker("1.0.0"))
	assert.Equal(t, "1.0.0", GetBuiltVersion())

	require.NoError(t, UpdateMarker("1.1.0\n"))
	assert.Equal(t, "1.1.0", GetBuiltVersion())

	require.NoError(t, ClearMarker())
	assert.Equal(t, "", GetBuiltVersion())

	// clearing twice is fine
	require.NoError(t, ClearMarker())
}

func TestIsStale_NoMarker(t *testing.T) {
	useTempHome(t)

	assert.True(t, IsStale("1.0.0"))
	assert.True(t, IsStale("dev"))
}

func TestIsStale_SemVer(t *testing.T) {
	useTempHome(t)
	require.NoError(t, UpdateMarker("v1.2.0"))

	assert.False(t, IsStale("1.2.0"))
	assert.False(t, IsStale("v1.2.0"))
	assert.True(t, IsStale("1.2.1"))
	assert.True(t, IsStale("1.1.9"))
}

func TestIsStale_DevBuild(t *testing.T) {
	useTempHome(t)
	require.NoError(t, UpdateMarker("dev"))

	assert.False(t, IsStale("dev"))
	assert.True(t, IsStale("1.0.0"), "marker that is not semver is stale for a release")
	assert.True(t, IsStale("local"))
}
