package main

import (
	"errors"
	"fmt"

	"github.com/atinylittleshell/cmdcomplete/internal/buildmarker"
	"github.com/atinylittleshell/cmdcomplete/internal/commandtree"
	"github.com/atinylittleshell/cmdcomplete/internal/registry"
	"github.com/atinylittleshell/cmdcomplete/internal/styles"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBuildCommand(app *application) *cobra.Command {
	var (
		manifest   string
		cliVersion string
		ifStale    bool
		self       bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build and store the command tree",
		Long: `Build the command tree from a command manifest and store it, replacing any
previous tree. The CLI version that produced the tree is recorded so that
--if-stale can skip rebuilding until the CLI is upgraded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cliVersion == "" {
				cliVersion = app.version
			}
			if ifStale && !buildmarker.IsStale(cliVersion) {
				app.logger.Info("command tree is up to date", zap.String("version", cliVersion))
				fmt.Fprintln(cmd.ErrOrStderr(), styles.LOG("command tree is up to date for "+cliVersion))
				return nil
			}

			var commands []commandtree.Command
			switch {
			case self:
				commands = registry.FromCobra(cmd.Root())
			case manifest != "" || app.cfg.Manifest != "":
				if manifest == "" {
					manifest = app.cfg.Manifest
				}
				var err error
				commands, err = registry.LoadManifest(manifest)
				if err != nil {
					return err
				}
			default:
				return errors.New("no command manifest given, use --manifest or --self")
			}

			tree := commandtree.Build(commands)
			if err := commandtree.Save(app.cfg.TreeFile, tree); err != nil {
				return err
			}
			if err := buildmarker.UpdateMarker(cliVersion); err != nil {
				return fmt.Errorf("failed to record build version: %w", err)
			}

			app.logger.Info("built command tree",
				zap.String("path", app.cfg.TreeFile),
				zap.Int("descriptors", len(commands)),
				zap.Int("commands", len(tree.CommandPaths())),
				zap.String("version", cliVersion),
			)
			fmt.Fprintln(cmd.ErrOrStderr(), styles.SUCCESS(fmt.Sprintf(
				"✓ stored %d commands in %s", len(tree.CommandPaths()), app.cfg.TreeFile,
			)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "YAML command manifest to build from")
	cmd.Flags().StringVar(&cliVersion, "cli-version", "", "version of the CLI the manifest describes (default is this binary's version)")
	cmd.Flags().BoolVar(&ifStale, "if-stale", false, "only rebuild when the stored tree was built for another version")
	cmd.Flags().BoolVar(&self, "self", false, "build the tree for cmdcomplete's own commands")
	cmd.MarkFlagsMutuallyExclusive("manifest", "self")
	return cmd
}
