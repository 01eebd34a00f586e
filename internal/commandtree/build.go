package commandtree

import (
	"strings"

	"github.com/samber/lo"
)

// HelpOption is added to every command's options.
const HelpOption = "--help"

// Command describes one command registered with the host CLI.
type Command struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
	Hidden  bool     `yaml:"hidden,omitempty"`
	Options []Option `yaml:"options,omitempty"`
}

// Option describes one option of a command. Empty Short or Long means the
// option has no such form.
type Option struct {
	Short        string   `yaml:"short,omitempty"`
	Long         string   `yaml:"long,omitempty"`
	Autocomplete []string `yaml:"autocomplete,omitempty"`
}

// elidedSegments never become tree levels.
var elidedSegments = map[string]bool{
	"exit": true,
	"quit": true,
}

// Build folds the visible commands and their aliases into a command tree.
func Build(commands []Command) *Node {
	root := NewBranch()
	for _, command := range commands {
		if command.Hidden {
			continue
		}
		insert(root, command.Name, command)
		for _, alias := range command.Aliases {
			insert(root, alias, command)
		}
	}
	return root
}

func insert(root *Node, name string, command Command) {
	segments := strings.Fields(name)
	parent := root
	for i, segment := range segments {
		if elidedSegments[segment] {
			continue
		}

		if _, ok := parent.Child(segment); !ok {
			if i < len(segments)-1 {
				parent.Set(segment, NewBranch())
			} else {
				parent.Set(segment, optionsLeaf(command.Options))
			}
		}

		next, _ := parent.Child(segment)
		if next.IsList() {
			// a command path cannot continue through a value list
			return
		}
		parent = next
	}
}

func optionsLeaf(options []Option) *Node {
	tokens := append(
		lo.Map(options, func(o Option, _ int) string { return o.Short }),
		lo.Map(options, func(o Option, _ int) string { return o.Long })...,
	)
	tokens = append(lo.Compact(tokens), HelpOption)

	leaf := NewBranch()
	for _, token := range tokens {
		option, found := lo.Find(options, func(o Option) bool {
			return o.Short == token || o.Long == token
		})
		if found && len(option.Autocomplete) > 0 {
			leaf.Set(token, NewList(option.Autocomplete...))
		} else {
			leaf.Set(token, NewBranch())
		}
	}
	return leaf
}
