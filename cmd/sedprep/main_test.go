package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sed-source/views"
)

const table = `s1 10.0 -1.0 1 1   1.0 0.1   2.0 0.2
s2 11.0 -2.0 0 2   1.0 0.1   2.0 0.2
`

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.txt")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	in := writeTable(t)
	out := filepath.Join(t.TempDir(), "sources.yaml")

	_, err := execute(t, "export", in, out)
	require.NoError(t, err)

	sources, err := views.ReadYAML(out)
	require.NoError(t, err)
	require.Len(t, sources, 1, "s2 has no usable points")
	name, _ := sources[0].Name()
	assert.Equal(t, "s1", name)
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, "inspect", writeTable(t), "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Source name : s1")
	assert.NotContains(t, out, "Source name : s2")
}

func TestPrepCommand(t *testing.T) {
	base := t.TempDir()
	_, err := execute(t, "prep", writeTable(t), "--out", base, "--n-min-valid", "0", "--workers", "2")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(base, "prep_*", "logflux.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestPrepCommandNeedsInput(t *testing.T) {
	_, err := execute(t, "prep", "--out", t.TempDir())
	require.Error(t, err)
}
