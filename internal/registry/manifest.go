// Package registry collects command descriptors for the tree builder, either
// from a YAML manifest or from a live cobra command tree.
package registry

import (
	"fmt"
	"io"
	"os"

	"github.com/atinylittleshell/cmdcomplete/internal/commandtree"
	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk list of commands exported by a host CLI.
//
//	commands:
//	  - name: spo site list
//	    aliases: [spo site ls]
//	    options:
//	      - long: --output
//	        short: -o
//	        autocomplete: [json, text]
type Manifest struct {
	Commands []commandtree.Command `yaml:"commands"`
}

// LoadManifest reads the manifest at path.
func LoadManifest(path string) ([]commandtree.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	commands, err := ReadManifest(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return commands, nil
}

// ReadManifest decodes a manifest from r. Unknown fields are rejected.
func ReadManifest(r io.Reader) ([]commandtree.Command, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil {
		if err == io.EOF {
			return []commandtree.Command{}, nil
		}
		return nil, err
	}
	return manifest.Commands, nil
}

// WriteManifest encodes commands as a manifest.
func WriteManifest(w io.Writer, commands []commandtree.Command) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Manifest{Commands: commands}); err != nil {
		return err
	}
	return encoder.Close()
}
