package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atinylittleshell/cmdcomplete/internal/core"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempHome(t *testing.T) string {
	tempDir := t.TempDir()

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	core.ResetPaths()
	t.Cleanup(func() {
		os.Setenv("HOME", originalHome)
		core.ResetPaths()
	})
	return tempDir
}

func TestLoadDefaults(t *testing.T) {
	useTempHome(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, core.TreeFile(), cfg.TreeFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "o365", cfg.Name)
	assert.Equal(t, []string{"office365"}, cfg.Aliases)
	assert.Equal(t, "\n", cfg.EOL())
}

func TestLoadFromDefaultConfigFile(t *testing.T) {
	useTempHome(t)

	content := "name: m365\naliases: [microsoft365, m365cli]\nline_ending: crlf\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(core.ConfigFile(), []byte(content), 0644))

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "m365", cfg.Name)
	assert.Equal(t, []string{"microsoft365", "m365cli"}, cfg.Aliases)
	assert.Equal(t, "\r\n", cfg.EOL())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	home := useTempHome(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(home, "nope.yaml")})
	assert.Error(t, err)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := useTempHome(t)

	path := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tree_file: /from/file.json\n"), 0644))
	t.Setenv("CMDCOMPLETE_TREE_FILE", "/from/env.json")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", cfg.TreeFile)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	useTempHome(t)
	t.Setenv("CMDCOMPLETE_TREE_FILE", "/from/env.json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("tree", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--tree", "/from/flag.json"}))

	cfg, err := Load(LoadOptions{
		Flags:    flags,
		FlagKeys: map[string]string{"tree": "tree_file", "log-level": "log_level"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.json", cfg.TreeFile)
	assert.Equal(t, "info", cfg.LogLevel, "unset flags keep the default")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	useTempHome(t)
	t.Setenv("CMDCOMPLETE_LINE_ENDING", "cr")

	_, err := Load(LoadOptions{})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	useTempHome(t)

	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Name = " "
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.TreeFile = ""
	assert.Error(t, cfg.Validate())
}
