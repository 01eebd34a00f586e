package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atinylittleshell/cmdcomplete/internal/clink"
	"github.com/atinylittleshell/cmdcomplete/internal/registry"
	"github.com/atinylittleshell/cmdcomplete/internal/styles"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newClinkCommand(app *application) *cobra.Command {
	var (
		name       string
		aliases    []string
		output     string
		lineEnding string
	)

	cmd := &cobra.Command{
		Use:   "clink",
		Short: "Generate a clink (Lua) completion script",
		Long: `Generate a clink argument parser chain for the stored command tree. The
script registers --name and every --alias as programs completed by the same
parser. It is written to stdout unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("name") {
				name = app.cfg.Name
			}
			if !cmd.Flags().Changed("alias") {
				aliases = app.cfg.Aliases
			}
			eol := app.cfg.EOL()
			if cmd.Flags().Changed("line-ending") {
				cfg := *app.cfg
				cfg.LineEnding = lineEnding
				if err := cfg.Validate(); err != nil {
					return err
				}
				eol = cfg.EOL()
			}

			opts := clink.Options{Name: name, Aliases: aliases}
			tree := app.loadTree()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := clink.Write(w, tree, opts, eol); err != nil {
				return fmt.Errorf("failed to write clink script: %w", err)
			}

			app.logger.Info("generated clink script",
				zap.String("name", name),
				zap.Strings("aliases", aliases),
				zap.String("output", output),
			)
			if output != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), styles.SUCCESS("✓ clink script written to "+output))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "program name to register (default from config, o365)")
	cmd.Flags().StringSliceVar(&aliases, "alias", nil, "additional program names bound to the same parser")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the script to this file instead of stdout")
	cmd.Flags().StringVar(&lineEnding, "line-ending", "", "line ending: lf or crlf (default from config, lf)")
	_ = registry.AnnotateValues(cmd.Flags(), "line-ending", "crlf", "lf")
	return cmd
}
