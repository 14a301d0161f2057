package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"brio/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	report.InitReporter(report.LogLevelSilent)
	os.Exit(m.Run())
}

// writeProject writes a brio.toml with the given contents into a fresh
// project directory.
func writeProject(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brio.toml"), []byte(contents), 0666))

	return dir
}

func TestLoadProject(t *testing.T) {
	dir := writeProject(t, "name = \"calc\"\nentry = \"main.brio\"\n")

	proj := LoadProject(dir)
	assert.Equal(t, "calc", proj.Name)
	assert.Equal(t, filepath.Join(dir, "main.brio"), proj.EntryPath)

	// The output path defaults to the project name.
	assert.Equal(t, filepath.Join(dir, "calc.ll"), proj.OutputPath)
}

func TestLoadProject_ExplicitOutput(t *testing.T) {
	dir := writeProject(t, `
name = "calc"
entry = "src/main.brio"
output = "out/calc.ll"
`)

	proj := LoadProject(dir)
	assert.Equal(t, filepath.Join(dir, "src", "main.brio"), proj.EntryPath)
	assert.Equal(t, filepath.Join(dir, "out", "calc.ll"), proj.OutputPath)
}

func TestLoadProject_VersionMismatchOnlyWarns(t *testing.T) {
	dir := writeProject(t, "name = \"calc\"\nentry = \"main.brio\"\nbrio-version = \"99.0.0\"\n")

	proj := LoadProject(dir)
	assert.Equal(t, "calc", proj.Name)
}

func TestDisplayPath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "lib.brio", displayPath(filepath.Join(wd, "lib.brio")))
	assert.Equal(t, filepath.Join("sub", "lib.brio"), displayPath(filepath.Join(wd, "sub", "lib.brio")))

	// Paths outside the working tree stay absolute.
	outside := filepath.Join(filepath.Dir(wd), "elsewhere", "lib.brio")
	assert.Equal(t, outside, displayPath(outside))
}
