// Package completion answers shell completion requests against a command tree.
// It turns the line being edited into a path through the tree and returns the
// tokens that may follow it.
package completion

import (
	"regexp"

	"github.com/atinylittleshell/cmdcomplete/internal/commandtree"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var whitespace = regexp.MustCompile(`\s+`)

// Resolver resolves completion requests. The tree is never modified, so a
// Resolver may serve any number of requests.
type Resolver struct {
	tree   *commandtree.Node
	logger *zap.Logger
}

// NewResolver creates a Resolver over tree. A nil tree behaves as an empty one.
func NewResolver(tree *commandtree.Node, logger *zap.Logger) *Resolver {
	if tree == nil {
		tree = commandtree.NewBranch()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		tree:   tree,
		logger: logger,
	}
}

// Resolve returns the candidates for the fragment being typed at the end of
// line. fragment is the index of the word being completed, 1 being the first
// word after the program name. Unknown paths yield an empty slice.
func (r *Resolver) Resolve(line string, fragment int) []string {
	if fragment == 1 {
		return r.tree.Keys()
	}

	allWords := completedWords(line)
	words := pathWords(allWords)

	replies, ok := r.tree.Lookup(words)
	if len(words) > 0 && commandtree.IsOption(words[len(words)-1]) && (!ok || !replies.IsList()) {
		// the option takes no suggested values, offer what else the command accepts
		replies, ok = r.tree.Lookup(lo.Reject(words, func(w string, _ int) bool {
			return commandtree.IsOption(w)
		}))
	}
	if !ok {
		r.logger.Debug("no completion path", zap.String("line", line), zap.Strings("path", words))
		return []string{}
	}

	candidates := lo.Filter(replies.Keys(), func(candidate string, _ int) bool {
		return !commandtree.IsOption(candidate) || !lo.Contains(allWords, candidate)
	})

	r.logger.Debug("resolved completion",
		zap.String("line", line),
		zap.Int("fragment", fragment),
		zap.Strings("path", words),
		zap.Int("candidates", len(candidates)),
	)
	return candidates
}

// completedWords splits line on whitespace and drops the program name and the
// fragment currently being typed. A line ending in whitespace has an empty
// fragment.
func completedWords(line string) []string {
	tokens := whitespace.Split(line, -1)
	if len(tokens) < 2 {
		return []string{}
	}
	return tokens[1 : len(tokens)-1]
}

// pathWords keeps the words that address a tree node: command segments up to
// the first option value, plus the last word when it is an option.
func pathWords(allWords []string) []string {
	return lo.Filter(allWords, func(word string, i int) bool {
		if !commandtree.IsOption(word) {
			return i == 0 || !commandtree.IsOption(allWords[i-1])
		}
		return i == len(allWords)-1
	})
}

// FragmentIndex returns the index of the word being typed at the end of line,
// the program name being word 0.
func FragmentIndex(line string) int {
	return len(whitespace.Split(line, -1)) - 1
}
