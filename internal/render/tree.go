// Package render draws command trees for terminal output.
package render

import (
	"strings"

	"github.com/atinylittleshell/cmdcomplete/internal/commandtree"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

const (
	ColorCyan   = lipgloss.Color("12") // Commands
	ColorYellow = lipgloss.Color("11") // Options
	ColorGray   = lipgloss.Color("8")  // Values and tree lines
)

var (
	// CommandStyle is used for command path segments
	CommandStyle = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	// OptionStyle is used for option tokens
	OptionStyle = lipgloss.NewStyle().Foreground(ColorYellow)

	// ValueStyle is used for suggested option values
	ValueStyle = lipgloss.NewStyle().Foreground(ColorGray)

	// EnumeratorStyle is used for the tree branches
	EnumeratorStyle = lipgloss.NewStyle().Foreground(ColorGray).PaddingRight(1)
)

// Tree renders node as a tree rooted at name.
func Tree(name string, node *commandtree.Node) string {
	t := newTree(CommandStyle.Render(name))
	addChildren(t, node)
	return t.String()
}

// Paths renders one line per command path, e.g. "spo site list".
func Paths(node *commandtree.Node) string {
	var sb strings.Builder
	for _, path := range node.CommandPaths() {
		sb.WriteString(strings.Join(path, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func newTree(root string) *tree.Tree {
	return tree.Root(root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(EnumeratorStyle)
}

func addChildren(t *tree.Tree, node *commandtree.Node) {
	if node.IsList() {
		for _, value := range node.Values() {
			t.Child(ValueStyle.Render(value))
		}
		return
	}

	for _, key := range node.Keys() {
		child, _ := node.Child(key)
		label := styleToken(key)
		if child.Empty() {
			t.Child(label)
			continue
		}
		sub := newTree(label)
		addChildren(sub, child)
		t.Child(sub)
	}
}

func styleToken(token string) string {
	if commandtree.IsOption(token) {
		return OptionStyle.Render(token)
	}
	return CommandStyle.Render(token)
}
