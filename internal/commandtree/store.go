package commandtree

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Load reads the command tree stored at path. A missing or unreadable file
// yields an empty root Branch; Load never fails.
func Load(path string, logger *zap.Logger) *Node {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("command tree not found, using empty tree", zap.String("path", path))
		return NewBranch()
	}
	if err != nil {
		logger.Warn("failed to read command tree", zap.String("path", path), zap.Error(err))
		return NewBranch()
	}

	tree, err := Parse(data)
	if err != nil {
		logger.Warn("failed to parse command tree", zap.String("path", path), zap.Error(err))
		return NewBranch()
	}
	return tree
}

// Parse decodes a JSON command tree. The root must be an object.
func Parse(data []byte) (*Node, error) {
	tree := NewBranch()
	if err := json.Unmarshal(data, tree); err != nil {
		return nil, err
	}
	if tree.IsList() {
		return nil, fmt.Errorf("command tree root must be an object")
	}
	return tree, nil
}

// Save writes tree as JSON to path, replacing any previous content. The data
// goes to a temporary file in the same directory which is then renamed over
// path.
func Save(path string, tree *Node) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to encode command tree: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for command tree: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary command tree file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write command tree: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write command tree: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set command tree permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace command tree: %w", err)
	}
	return nil
}
