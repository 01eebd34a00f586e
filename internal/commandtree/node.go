// Package commandtree builds, walks and persists the command tree used for
// shell completion. A tree is made of Branch nodes (token -> child) and List
// nodes (plain value suggestions for an option).
package commandtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Kind identifies which variant a Node holds.
type Kind int

const (
	// KindBranch maps tokens to child nodes. An empty Branch is the `{}` leaf.
	KindBranch Kind = iota
	// KindList is an ordered list of plain suggestion tokens.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one level of the command tree.
type Node struct {
	kind     Kind
	children map[string]*Node
	values   []string
}

// NewBranch returns an empty Branch node.
func NewBranch() *Node {
	return &Node{kind: KindBranch, children: make(map[string]*Node)}
}

// NewList returns a List node holding a copy of values.
func NewList(values ...string) *Node {
	return &Node{kind: KindList, values: append([]string{}, values...)}
}

func (n *Node) Kind() Kind {
	return n.kind
}

func (n *Node) IsList() bool {
	return n.kind == KindList
}

// Len is the number of children of a Branch or values of a List.
func (n *Node) Len() int {
	if n.kind == KindList {
		return len(n.values)
	}
	return len(n.children)
}

// Empty reports whether the node has no children or values.
func (n *Node) Empty() bool {
	return n.Len() == 0
}

// Child returns the child stored under key. Lists have no children.
func (n *Node) Child(key string) (*Node, bool) {
	if n.kind != KindBranch {
		return nil, false
	}
	child, ok := n.children[key]
	return child, ok
}

// Set stores child under key, replacing any existing child.
// It panics when called on a List.
func (n *Node) Set(key string, child *Node) {
	if n.kind != KindBranch {
		panic("commandtree: Set called on a list node")
	}
	n.children[key] = child
}

// Keys returns the sorted child keys of a Branch, or the values of a List in
// stored order.
func (n *Node) Keys() []string {
	if n.kind == KindList {
		return append([]string{}, n.values...)
	}
	keys := lo.Keys(n.children)
	slices.Sort(keys)
	return keys
}

// Values returns a copy of the suggestions held by a List.
func (n *Node) Values() []string {
	if n.kind != KindList {
		return nil
	}
	return append([]string{}, n.values...)
}

// Lookup walks path from n and returns the node it ends on. A nil or empty
// path returns n itself.
func (n *Node) Lookup(path []string) (*Node, bool) {
	current := n
	for _, segment := range path {
		next, ok := current.Child(segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// CommandPaths returns the path of every command in the tree, in sorted
// order. A command is a Branch holding the help option.
func (n *Node) CommandPaths() [][]string {
	var paths [][]string
	var walk func(node *Node, path []string)
	walk = func(node *Node, path []string) {
		if node.IsList() {
			return
		}
		if _, ok := node.children[HelpOption]; ok && len(path) > 0 {
			paths = append(paths, append([]string{}, path...))
		}
		for _, key := range node.Keys() {
			if IsOption(key) {
				continue
			}
			walk(node.children[key], append(path, key))
		}
	}
	walk(n, nil)
	return paths
}

// Equal reports whether two trees hold the same structure and tokens.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind || n.Len() != other.Len() {
		return false
	}
	if n.kind == KindList {
		return slices.Equal(n.values, other.values)
	}
	for key, child := range n.children {
		otherChild, ok := other.children[key]
		if !ok || !child.Equal(otherChild) {
			return false
		}
	}
	return true
}

// IsOption reports whether token is an option (starts with a dash).
func IsOption(token string) bool {
	return strings.HasPrefix(token, "-")
}

// MarshalJSON encodes a Branch as an object and a List as an array.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.kind == KindList {
		return json.Marshal(n.values)
	}
	return json.Marshal(n.children)
}

// UnmarshalJSON accepts an object (Branch) or an array of strings (List).
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty command tree node")
	}

	switch trimmed[0] {
	case '[':
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return fmt.Errorf("invalid suggestion list: %w", err)
		}
		*n = *NewList(values...)
		return nil
	case '{':
		children := make(map[string]*Node)
		if err := json.Unmarshal(trimmed, &children); err != nil {
			return err
		}
		for key, child := range children {
			if child == nil {
				children[key] = NewBranch()
			}
		}
		*n = Node{kind: KindBranch, children: children}
		return nil
	default:
		return fmt.Errorf("unexpected command tree node %q", string(trimmed))
	}
}
