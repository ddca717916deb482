package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	application, err := New("test", "abc123", "2026-01-01", "tests")
	require.NoError(t, err)
	return application
}

// execute runs the CLI against a fresh root command and captures stdout.
func execute(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func seedStore(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for file, doc := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(doc), 0o644))
	}
	return dir
}

func TestNewApp(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, "test", a.Version())
	assert.NotNil(t, a.Config())
	assert.NotNil(t, a.Logger())
}

func TestVersionCommand(t *testing.T) {
	a := newTestApp(t)

	out, err := execute(t, a, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "verdant test")
	assert.Contains(t, out, "abc123")
}

func TestReconcileCommandDryRun(t *testing.T) {
	dir := seedStore(t, map[string]string{
		"a.json": `{"name": "Fittonia", "scientificName": "Fittonia albivenis"}`,
		"b.json": `{"name": "Nerve", "scientificName": "Fittonia albivenis", "images": ["x.jpg"]}`,
	})

	a := newTestApp(t)
	out, err := execute(t, a, "reconcile", "--store", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would merge 1")

	// Store untouched.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReconcileCommandAppliesMerges(t *testing.T) {
	dir := seedStore(t, map[string]string{
		"a.json": `{"name": "Fittonia", "scientificName": "Fittonia albivenis"}`,
		"b.json": `{"name": "Nerve", "scientificName": "Fittonia albivenis", "images": ["x.jpg"]}`,
	})

	a := newTestApp(t)
	out, err := execute(t, a, "reconcile", "--store", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "merged 1")
	assert.Contains(t, out, "deleted 1")

	_, err = os.Stat(filepath.Join(dir, "manifest.json"))
	assert.NoError(t, err)
}

func TestReconcileCommandWithSynonyms(t *testing.T) {
	dir := seedStore(t, map[string]string{
		"fittonia.json": `{"name": "Fittonia"}`,
		"nerve.json":    `{"name": "Nerve Plant", "scientificName": "Fittonia albivenis"}`,
	})

	synFile := filepath.Join(t.TempDir(), "synonyms.yaml")
	require.NoError(t, os.WriteFile(synFile, []byte(
		"synonyms:\n  - [\"Fittonia\", \"Nerve Plant\"]\n"), 0o644))

	a := newTestApp(t)
	out, err := execute(t, a, "reconcile", "--store", dir, "--synonyms", synFile)
	require.NoError(t, err)
	assert.Contains(t, out, "merged 1")
}

func TestListCommand(t *testing.T) {
	dir := seedStore(t, map[string]string{
		"monstera.json": `{"name": "Monstera", "scientificName": "Monstera deliciosa", "images": ["m.jpg"]}`,
	})

	a := newTestApp(t)
	out, err := execute(t, a, "list", "--store", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "monstera.json")
	assert.Contains(t, out, "monstera deliciosa")
}

func TestValidateCommand(t *testing.T) {
	t.Run("clean store", func(t *testing.T) {
		dir := seedStore(t, map[string]string{
			"ok.json": `{"name": "Monstera", "scientificName": "Monstera deliciosa"}`,
		})

		a := newTestApp(t)
		out, err := execute(t, a, "validate", "--store", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "1 records OK")
	})

	t.Run("malformed records", func(t *testing.T) {
		dir := seedStore(t, map[string]string{
			"garbage.json": `{not json`,
			"object.json":  `{"name": "X", "scientificName": {"genus": "X"}}`,
		})

		a := newTestApp(t)
		out, err := execute(t, a, "validate", "--store", dir)
		require.Error(t, err)
		assert.Contains(t, out, "garbage.json: unparseable document")
		assert.Contains(t, out, "object.json: scientificName is not a string")
	})
}

func TestReconcileCommandMissingStore(t *testing.T) {
	a := newTestApp(t)
	_, err := execute(t, a, "reconcile", "--store", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
