// Package clink renders a command tree as a clink argument parser chain, the
// Lua completion format used by the clink shell extension on Windows.
package clink

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/atinylittleshell/cmdcomplete/internal/commandtree"
	"github.com/samber/lo"
)

// Options names the program the script registers.
type Options struct {
	// Name is the primary program name. It also prefixes every parser variable.
	Name string
	// Aliases are extra program names bound to the same root parser.
	Aliases []string
}

// Emit returns the lines of a clink script describing tree. Token text is
// quoted verbatim and must not contain double quotes.
func Emit(tree *commandtree.Node, opts Options) []string {
	if tree == nil {
		tree = commandtree.NewBranch()
	}
	root := functionName(opts.Name)

	lines := []string{"local parser = clink.arg.new_parser"}
	for _, block := range renderBranch(tree, root) {
		lines = append(lines, block...)
	}

	lines = append(lines, "")
	for _, program := range append([]string{opts.Name}, opts.Aliases...) {
		lines = append(lines, fmt.Sprintf(`clink.arg.register_parser("%s", %s_parser)`, program, root))
	}
	return lines
}

// Write writes the script for tree to w, terminating every line with eol.
func Write(w io.Writer, tree *commandtree.Node, opts Options, eol string) error {
	lines := Emit(tree, opts)
	_, err := io.WriteString(w, strings.Join(lines, eol)+eol)
	return err
}

// renderBranch returns the declarations for node and everything below it.
// A parser references its children by name, so children come first.
func renderBranch(node *commandtree.Node, fn string) [][]string {
	var blocks [][]string
	if !node.IsList() {
		for _, key := range node.Keys() {
			child, _ := node.Child(key)
			if !child.Empty() {
				blocks = append(blocks, renderBranch(child, childName(fn, key))...)
			}
		}
	}
	return append(blocks, declaration(node, fn))
}

func declaration(node *commandtree.Node, fn string) []string {
	tokens := node.Keys()
	slices.Sort(tokens)

	entries := lo.Map(tokens, func(token string, _ int) string {
		if child, ok := node.Child(token); ok && !child.Empty() {
			return fmt.Sprintf(`"%s"..%s_parser`, token, childName(fn, token))
		}
		return fmt.Sprintf(`"%s"`, token)
	})

	lines := []string{"", fmt.Sprintf("local %s_parser = parser({", fn)}

	// options are passed as flags after the (empty) argument table
	if lo.SomeBy(tokens, commandtree.IsOption) {
		return append(lines, "},"+strings.Join(entries, ","), ")")
	}

	for i, entry := range entries {
		separator := ","
		if i == len(entries)-1 {
			separator = ""
		}
		lines = append(lines, "  "+entry+separator)
	}
	return append(lines, "})")
}

func childName(fn, key string) string {
	return functionName(fn + "_" + key)
}

// functionName makes name usable as a Lua identifier.
func functionName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
