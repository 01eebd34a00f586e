package main

import (
	"fmt"

	"github.com/atinylittleshell/cmdcomplete/internal/commandtree"
	"github.com/atinylittleshell/cmdcomplete/internal/config"
	"github.com/atinylittleshell/cmdcomplete/internal/registry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// application carries what every subcommand needs once flags are parsed.
type application struct {
	version string
	logFile string

	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// flagKeys binds root flags to config keys.
var flagKeys = map[string]string{
	"tree":      "tree_file",
	"log-level": "log_level",
}

func newRootCommand(app *application) *cobra.Command {
	root := &cobra.Command{
		Use:   "cmdcomplete",
		Short: "Command tree completion engine",
		Long: `cmdcomplete turns the commands registered by a CLI into a completion tree.

The tree is built once per CLI release from a command manifest, stored as JSON,
and then used to answer completion requests from a shell hook or to generate a
clink (Lua) completion script.

Examples:
  cmdcomplete build --manifest commands.yaml --cli-version 6.1.0
  cmdcomplete complete -- "o365 spo site "
  cmdcomplete clink --name o365 --alias office365 -o o365.lua
  cmdcomplete show`,
		Version:       app.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $HOME/.cmdcomplete/config.yaml)")
	root.PersistentFlags().String("tree", "", "command tree file (default is $HOME/.cmdcomplete/commands.json)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = registry.AnnotateValues(root.PersistentFlags(), "log-level", "debug", "info", "warn", "error")

	root.AddCommand(
		newBuildCommand(app),
		newCompleteCommand(app),
		newClinkCommand(app),
		newShowCommand(app),
		newStatusCommand(app),
		newManifestCommand(app),
	)
	return root
}

func (app *application) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: app.cfgFile,
		Flags:      cmd.Flags(),
		FlagKeys:   flagKeys,
	})
	if err != nil {
		return err
	}
	app.cfg = cfg

	if app.logFile == "" {
		app.logFile = defaultLogFile()
	}
	logger, err := initializeLogger(cfg.LogLevel, app.logFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.logger = logger

	logger.Debug("-------- new cmdcomplete invocation --------",
		zap.String("command", cmd.CommandPath()),
		zap.String("version", app.version),
		zap.String("tree", cfg.TreeFile),
	)
	return nil
}

// loadTree reads the configured command tree; a missing tree is empty.
func (app *application) loadTree() *commandtree.Node {
	return commandtree.Load(app.cfg.TreeFile, app.logger)
}

func (app *application) close() {
	if app.logger != nil {
		_ = app.logger.Sync() // Flush any buffered log entries
	}
}
