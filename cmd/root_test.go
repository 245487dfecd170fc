package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jvx/pkg/loader"
)

// resetFlags restores flag state between Execute calls; cobra keeps both
// values and the Changed bit across runs.
func resetFlags(t *testing.T) {
	t.Helper()
	interactive, output, pathExpr, treeMaxDepth = false, "tree", "", 0
	noColor, debug, termWidth, termHeight = false, false, 0, 0
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
}

func TestResolvePath(t *testing.T) {
	root, err := loader.LoadRoot(`{"users": [{"name": "ada"}]}`)
	require.NoError(t, err)

	same, err := resolvePath(root, "")
	require.NoError(t, err)
	assert.Same(t, root, same)

	name, err := resolvePath(root, "users[0].name")
	require.NoError(t, err)
	assert.Equal(t, "ada", name.StringVal())

	_, err = resolvePath(root, "users[3]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errPathNotFound))
	assert.Contains(t, err.Error(), "$.users[3]")

	_, err = resolvePath(root, "users[")
	require.Error(t, err)
	assert.False(t, errors.Is(err, errPathNotFound))
}

func TestRenderOutputFormats(t *testing.T) {
	root, err := loader.LoadRoot(`{"z": 1, "a": "x"}`)
	require.NoError(t, err)

	prevOutput, prevDepth := output, treeMaxDepth
	defer func() { output, treeMaxDepth = prevOutput, prevDepth }()

	output, treeMaxDepth = "tree", 0
	out, err := renderOutput(root)
	require.NoError(t, err)
	assert.Contains(t, out, "z: 1")
	assert.Contains(t, out, `a: "x"`)

	output = "yaml"
	out, err = renderOutput(root)
	require.NoError(t, err)
	assert.Equal(t, "z: 1\na: x\n", out)

	output = "json"
	out, err = renderOutput(root)
	require.NoError(t, err)
	assert.Contains(t, out, `"z": 1`)

	output = "bogus"
	_, err = renderOutput(root)
	assert.Error(t, err)
}

func TestRootCommandRendersFile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"greeting": "hi"}`), 0o644))

	prev := stdinIsPiped
	stdinIsPiped = func() bool { return false }
	defer func() { stdinIsPiped = prev }()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{path, "-o", "json"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), `"greeting": "hi"`)
}

func TestRootCommandPathFlag(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users:\n  - name: ada\n"), 0o644))

	prev := stdinIsPiped
	stdinIsPiped = func() bool { return false }
	defer func() { stdinIsPiped = prev }()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{path, "-p", "users[0].name", "-o", "yaml"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "ada\n", buf.String())
}

func TestFlagDefaults(t *testing.T) {
	assert.Equal(t, "tree", rootCmd.Flags().Lookup("output").DefValue)
	assert.Equal(t, "0", rootCmd.Flags().Lookup("depth").DefValue)
	assert.Equal(t, "false", rootCmd.Flags().Lookup("interactive").DefValue)
	assert.NotNil(t, rootCmd.Flags().ShorthandLookup("p"))
	assert.NotNil(t, rootCmd.Flags().ShorthandLookup("i"))
}

func TestEnvFallbacks(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0o644))

	prev := stdinIsPiped
	stdinIsPiped = func() bool { return false }
	defer func() { stdinIsPiped = prev }()

	t.Setenv("JVX_OUTPUT", "yaml")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{path})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "a: 1\n", buf.String())
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "jvx")
}
