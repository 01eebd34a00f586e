// Package config provides configuration management for cmdcomplete.
// Values come from defaults, an optional config.yaml in the data directory,
// CMDCOMPLETE_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/atinylittleshell/cmdcomplete/internal/core"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CMDCOMPLETE"

// Config holds all cmdcomplete settings.
type Config struct {
	// TreeFile is where the command tree is stored (tree_file).
	TreeFile string `mapstructure:"tree_file"`

	// LogLevel controls logging verbosity (log_level).
	LogLevel string `mapstructure:"log_level"`

	// Manifest is the default descriptor manifest used by `build` (manifest).
	Manifest string `mapstructure:"manifest"`

	// Name is the program the clink script registers (name).
	Name string `mapstructure:"name"`

	// Aliases are extra program names bound to the same parser (aliases).
	Aliases []string `mapstructure:"aliases"`

	// LineEnding is "lf" or "crlf" for generated scripts (line_ending).
	LineEnding string `mapstructure:"line_ending"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		TreeFile:   core.TreeFile(),
		LogLevel:   "info",
		Name:       "o365",
		Aliases:    []string{"office365"},
		LineEnding: "lf",
	}
}

// EOL returns the line terminator selected by LineEnding.
func (c *Config) EOL() string {
	if strings.EqualFold(c.LineEnding, "crlf") {
		return "\r\n"
	}
	return "\n"
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LineEnding) {
	case "lf", "crlf":
	default:
		return fmt.Errorf("line_ending must be lf or crlf, got %q", c.LineEnding)
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name must not be empty")
	}
	if c.TreeFile == "" {
		return errors.New("tree_file must not be empty")
	}
	return nil
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFile overrides the default config file. It must exist when set.
	ConfigFile string
	// Flags holds command line flags. Only the flags named in FlagKeys are
	// bound, each to the config key it maps to.
	Flags    *pflag.FlagSet
	FlagKeys map[string]string
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("tree_file", defaults.TreeFile)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("name", defaults.Name)
	v.SetDefault("aliases", defaults.Aliases)
	v.SetDefault("line_ending", defaults.LineEnding)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigFile(core.ConfigFile())
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", core.ConfigFile(), err)
		}
	}

	if opts.Flags != nil {
		for name, key := range opts.FlagKeys {
			if flag := opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// isNotFound reports whether err means the default config file is absent.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}
