package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir           string
	DataDir           string
	LogFile           string
	TreeFile          string
	ConfigFile        string
	VersionMarkerFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		dataDir := filepath.Join(homeDir, ".cmdcomplete")
		defaultPaths = &Paths{
			HomeDir:           homeDir,
			DataDir:           dataDir,
			LogFile:           filepath.Join(dataDir, "cmdcomplete.log"),
			TreeFile:          filepath.Join(dataDir, "commands.json"),
			ConfigFile:        filepath.Join(dataDir, "config.yaml"),
			VersionMarkerFile: filepath.Join(dataDir, "version_marker"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

// TreeFile is the default location of the persisted command tree.
func TreeFile() string {
	ensureDefaultPaths()
	return defaultPaths.TreeFile
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

func VersionMarkerFile() string {
	ensureDefaultPaths()
	return defaultPaths.VersionMarkerFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
