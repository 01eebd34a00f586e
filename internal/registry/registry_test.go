package registry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinylittleshell/cmdcomplete/internal/commandtree"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spoManifest = `commands:
  - name: spo site list
    aliases: [spo site ls]
    options:
      - long: --output
        short: -o
        autocomplete: [json, text]
  - name: spo site get
    options:
      - short: -i
  - name: debug
    hidden: true
`

func TestReadManifest(t *testing.T) {
	commands, err := ReadManifest(strings.NewReader(spoManifest))
	require.NoError(t, err)
	require.Len(t, commands, 3)

	assert.Equal(t, commandtree.Command{
		Name:    "spo site list",
		Aliases: []string{"spo site ls"},
		Options: []commandtree.Option{
			{Short: "-o", Long: "--output", Autocomplete: []string{"json", "text"}},
		},
	}, commands[0])
	assert.Equal(t, []commandtree.Option{{Short: "-i"}}, commands[1].Options)
	assert.True(t, commands[2].Hidden)
}

func TestReadManifestRejectsUnknownFields(t *testing.T) {
	_, err := ReadManifest(strings.NewReader("commands:\n  - nam: typo\n"))
	assert.Error(t, err)
}

func TestReadManifestEmpty(t *testing.T) {
	commands, err := ReadManifest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, commands)
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	require.NoError(t, os.WriteFile(path, []byte(spoManifest), 0644))

	commands, err := LoadManifest(path)
	require.NoError(t, err)

	tree := commandtree.Build(commands)
	assert.Equal(t, []string{"spo"}, tree.Keys())

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteManifestRoundTrip(t *testing.T) {
	commands, err := ReadManifest(strings.NewReader(spoManifest))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteManifest(&buf, commands))

	again, err := ReadManifest(&buf)
	require.NoError(t, err)
	assert.Equal(t, commands, again)
}

func newCobraTree(t *testing.T) *cobra.Command {
	root := &cobra.Command{Use: "o365"}
	root.PersistentFlags().Bool("debug", false, "debug output")

	spo := &cobra.Command{Use: "spo"}
	site := &cobra.Command{Use: "site", Aliases: []string{"s"}}
	list := &cobra.Command{Use: "list", Aliases: []string{"ls"}, Run: func(*cobra.Command, []string) {}}
	list.Flags().StringP("output", "o", "json", "output format")
	require.NoError(t, AnnotateValues(list.Flags(), "output", "json", "text"))
	list.Flags().String("secret", "", "hidden flag")
	require.NoError(t, list.Flags().MarkHidden("secret"))

	internal := &cobra.Command{Use: "internal", Hidden: true}
	dump := &cobra.Command{Use: "dump", Run: func(*cobra.Command, []string) {}}
	old := &cobra.Command{Use: "old", Deprecated: "use list", Run: func(*cobra.Command, []string) {}}

	site.AddCommand(list, old)
	spo.AddCommand(site)
	internal.AddCommand(dump)
	root.AddCommand(spo, internal)
	return root
}

func TestFromCobra(t *testing.T) {
	commands := FromCobra(newCobraTree(t))

	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"internal", "internal dump", "spo", "spo site", "spo site list"}, names)

	byName := map[string]commandtree.Command{}
	for _, c := range commands {
		byName[c.Name] = c
	}

	assert.True(t, byName["internal"].Hidden)
	assert.True(t, byName["internal dump"].Hidden)
	assert.False(t, byName["spo"].Hidden)

	assert.Equal(t, []string{"spo s"}, byName["spo site"].Aliases)
	assert.Equal(t, []string{"spo site ls"}, byName["spo site list"].Aliases)

	assert.ElementsMatch(t, []commandtree.Option{
		{Short: "-o", Long: "--output", Autocomplete: []string{"json", "text"}},
		{Long: "--debug"},
	}, byName["spo site list"].Options)
}

func TestFromCobraBuildsTree(t *testing.T) {
	tree := commandtree.Build(FromCobra(newCobraTree(t)))

	assert.Equal(t, []string{"spo"}, tree.Keys())

	list, ok := tree.Lookup([]string{"spo", "site", "list"})
	require.True(t, ok)
	assert.Equal(t, []string{"--debug", "--help", "--output", "-o"}, list.Keys())

	output, _ := list.Child("--output")
	assert.Equal(t, []string{"json", "text"}, output.Values())

	_, ok = tree.Lookup([]string{"spo", "s", "ls"})
	assert.False(t, ok, "aliases only replace the last segment")
	_, ok = tree.Lookup([]string{"spo", "s"})
	assert.True(t, ok)
	_, ok = tree.Lookup([]string{"spo", "site", "ls"})
	assert.True(t, ok)
}
