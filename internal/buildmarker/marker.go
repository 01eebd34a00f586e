// Package buildmarker records which version of the host CLI produced the
// stored command tree, so a tree is rebuilt whenever the CLI is upgraded.
package buildmarker

import (
	"errors"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/atinylittleshell/cmdcomplete/internal/core"
)

// GetBuiltVersion reads the version from the marker file.
// Returns empty string if no tree has been built yet.
func GetBuiltVersion() string {
	data, err := os.ReadFile(core.VersionMarkerFile())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// UpdateMarker writes the version that built the current tree.
func UpdateMarker(version string) error {
	return os.WriteFile(core.VersionMarkerFile(), []byte(version), 0644)
}

// ClearMarker removes the marker, forcing the next check to report a stale tree.
func ClearMarker() error {
	err := os.Remove(core.VersionMarkerFile())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// IsStale reports whether the stored tree must be rebuilt for currentVersion.
// A missing or unparseable marker is stale. A non-semver current version (a
// dev build) is compared literally.
func IsStale(currentVersion string) bool {
	built := GetBuiltVersion()
	if built == "" {
		return true
	}

	currentSemVer, err := semver.NewVersion(currentVersion)
	if err != nil {
		return built != currentVersion
	}
	builtSemVer, err := semver.NewVersion(built)
	if err != nil {
		return true
	}

	return !builtSemVer.Equal(currentSemVer)
}
