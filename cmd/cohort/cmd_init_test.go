package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiolab/cohort/internal/dataset"
	"github.com/cardiolab/cohort/internal/labeler"
	"github.com/cardiolab/cohort/internal/projectconfig"
)

func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := newInitCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInitCommand_CreatesProjectStructure(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my-project")

	out, err := runInit(t, target)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized cohort project:")

	assert.FileExists(t, filepath.Join(target, "cohort.yaml"))
	assert.FileExists(t, filepath.Join(target, "data", "subjects.csv"))
	assert.FileExists(t, filepath.Join(target, "README.md"))
	assert.FileExists(t, filepath.Join(target, ".gitignore"))
	assert.DirExists(t, filepath.Join(target, "data"))
}

func TestInitCommand_Idempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my-project")

	_, err := runInit(t, target)
	require.NoError(t, err)

	out, err := runInit(t, target)
	require.NoError(t, err)
	assert.Contains(t, out, "Project already up to date.")
}

func TestInitCommand_NeverOverwrites(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my-project")
	require.NoError(t, os.MkdirAll(target, 0o755))
	readmePath := filepath.Join(target, "README.md")
	require.NoError(t, os.WriteFile(readmePath, []byte("hands off\n"), 0o644))

	out, err := runInit(t, target)
	require.NoError(t, err)

	data, err := os.ReadFile(readmePath)
	require.NoError(t, err)
	assert.Equal(t, "hands off\n", string(data))
	assert.NotContains(t, out, "README.md")
	assert.Contains(t, out, "cohort.yaml")
}

func TestInitCommand_DefaultDir(t *testing.T) {
	dir := t.TempDir()

	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck // best-effort cleanup

	_, err = runInit(t)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "cohort.yaml"))
	assert.FileExists(t, filepath.Join(dir, "data", "subjects.csv"))
}

func TestInitCommand_ConfigContent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my-project")

	_, err := runInit(t, target)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(target, "cohort.yaml"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "name: my-project")
	assert.Contains(t, content, "raw: data/subjects.csv")
	assert.Contains(t, content, "seed: -1")
	assert.Contains(t, content, "compress: false")
	assert.NotContains(t, content, "description:")

	// The generated file must load back through the config layer.
	cfg, err := projectconfig.Load(target)
	require.NoError(t, err)
	assert.Equal(t, "my-project", cfg.Name)
	assert.Equal(t, "data/subjects.csv", cfg.Paths.Raw)
	assert.Equal(t, projectconfig.DefaultLabeledPath, cfg.Paths.Labeled)
	require.NotNil(t, cfg.Split.Seed)
	assert.Equal(t, int64(-1), *cfg.Split.Seed)
	require.NotNil(t, cfg.Export.Compress)
	assert.False(t, *cfg.Export.Compress)
}

func TestInitCommand_ExampleDataLabels(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my-project")

	_, err := runInit(t, target)
	require.NoError(t, err)

	raws, err := dataset.LoadSubjects(filepath.Join(target, "data", "subjects.csv"))
	require.NoError(t, err)

	buckets, err := labeler.Process(raws)
	require.NoError(t, err)

	// The starter data demonstrates every category.
	assert.NotEmpty(t, buckets.Underweight)
	assert.NotEmpty(t, buckets.Normal)
	assert.NotEmpty(t, buckets.Overweight)
	assert.NotEmpty(t, buckets.Obese)
	assert.NotEmpty(t, buckets.MorbidObese)
}

func TestInitCommand_TooManyArgs(t *testing.T) {
	_, err := runInit(t, "a", "b")
	require.Error(t, err)
}
