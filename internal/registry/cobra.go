package registry

import (
	"strings"

	"github.com/atinylittleshell/cmdcomplete/internal/commandtree"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ValuesAnnotation is the pflag annotation listing suggested values for a flag.
const ValuesAnnotation = "cmdcomplete_values"

// AnnotateValues records the suggested values of the named flag.
func AnnotateValues(flags *pflag.FlagSet, name string, values ...string) error {
	return flags.SetAnnotation(name, ValuesAnnotation, values)
}

// FromCobra returns a descriptor for every command below root. Names are
// relative to root, so "o365 spo site list" becomes "spo site list". Hidden
// commands keep Hidden set, as do all their descendants. Deprecated commands
// are left out.
func FromCobra(root *cobra.Command) []commandtree.Command {
	commands := []commandtree.Command{}
	for _, child := range root.Commands() {
		commands = walkCobra(child, nil, false, commands)
	}
	return commands
}

func walkCobra(c *cobra.Command, parents []string, hidden bool, commands []commandtree.Command) []commandtree.Command {
	if c.Deprecated != "" {
		return commands
	}
	hidden = hidden || c.Hidden

	path := append(append([]string{}, parents...), c.Name())
	commands = append(commands, commandtree.Command{
		Name: strings.Join(path, " "),
		Aliases: lo.Map(c.Aliases, func(alias string, _ int) string {
			return strings.Join(append(append([]string{}, parents...), alias), " ")
		}),
		Hidden:  hidden,
		Options: cobraOptions(c),
	})

	for _, child := range c.Commands() {
		commands = walkCobra(child, path, hidden, commands)
	}
	return commands
}

func cobraOptions(c *cobra.Command) []commandtree.Option {
	options := []commandtree.Option{}
	visit := func(f *pflag.Flag) {
		if f.Hidden || f.Deprecated != "" {
			return
		}
		option := commandtree.Option{
			Long:         "--" + f.Name,
			Autocomplete: f.Annotations[ValuesAnnotation],
		}
		if f.Shorthand != "" && f.ShorthandDeprecated == "" {
			option.Short = "-" + f.Shorthand
		}
		options = append(options, option)
	}

	c.LocalFlags().VisitAll(visit)
	c.InheritedFlags().VisitAll(visit)
	return options
}
