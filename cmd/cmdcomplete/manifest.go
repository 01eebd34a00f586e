package main

import (
	"github.com/atinylittleshell/cmdcomplete/internal/registry"
	"github.com/spf13/cobra"
)

func newManifestCommand(_ *application) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Print the command manifest of cmdcomplete itself",
		Long: `Print cmdcomplete's own commands as a YAML manifest. The output is a working
example of the format read by 'cmdcomplete build --manifest'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return registry.WriteManifest(cmd.OutOrStdout(), registry.FromCobra(cmd.Root()))
		},
	}
}
