package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwalker/contact-validator/internal/db"
	"github.com/mwalker/contact-validator/internal/rendering"
)

type fixedPicker struct{ style string }

func (p fixedPicker) Pick([]string) string { return p.style }

const testTemplate = `<html><body>{{range .Contacts}}<p>{{.LastName}}</p>{{end}}</body></html>`

func newTestGenerator(t *testing.T) (*Generator, string) {
	t.Helper()
	templatesDir := t.TempDir()
	for _, name := range []string{"modern_template.html", "retro_template.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(templatesDir, name), []byte(testTemplate), 0o644))
	}

	outputDir := filepath.Join(t.TempDir(), "generated")
	renderer := rendering.New(templatesDir, rendering.WithPicker(fixedPicker{style: "retro"}))
	return New(outputDir, renderer), outputDir
}

func contacts() []db.Contact {
	return []db.Contact{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Valid: json.RawMessage(`"valid"`)},
	}
}

func TestGenerate_WritesFile(t *testing.T) {
	g, outputDir := newTestGenerator(t)

	path, style, err := g.Generate(contacts(), "modern", "report.html")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outputDir, "report.html"), path)
	assert.Equal(t, "modern", style)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Lovelace")
}

func TestGenerate_CreatesOutputDir(t *testing.T) {
	g, outputDir := newTestGenerator(t)

	_, err := os.Stat(outputDir)
	require.True(t, os.IsNotExist(err))

	_, _, err = g.Generate(contacts(), "modern", "index.html")
	require.NoError(t, err)

	info, err := os.Stat(outputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGenerate_OverwritesExistingFile(t *testing.T) {
	g, _ := newTestGenerator(t)

	path1, _, err := g.Generate(contacts(), "modern", "index.html")
	require.NoError(t, err)
	first, err := os.ReadFile(path1)
	require.NoError(t, err)

	path2, _, err := g.Generate(contacts(), "modern", "index.html")
	require.NoError(t, err)
	second, err := os.ReadFile(path2)
	require.NoError(t, err)

	assert.Equal(t, path1, path2)
	assert.Equal(t, string(first), string(second))
}

func TestGenerate_RandomResolvesToConcreteStyle(t *testing.T) {
	g, _ := newTestGenerator(t)

	_, style, err := g.Generate(contacts(), "random", "index.html")
	require.NoError(t, err)
	assert.Equal(t, "retro", style)
}

func TestGenerate_RejectsPathTraversal(t *testing.T) {
	g, _ := newTestGenerator(t)

	for _, name := range []string{"", "../evil.html", "sub/dir.html", ".hidden"} {
		_, _, err := g.Generate(contacts(), "modern", name)
		assert.Error(t, err, "filename %q should be rejected", name)
	}
}

func TestGenerate_MissingTemplate(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "generated")
	g := New(outputDir, rendering.New(t.TempDir()))

	_, _, err := g.Generate(contacts(), "modern", "index.html")
	require.Error(t, err)

	// No file should be written on failure.
	_, statErr := os.Stat(filepath.Join(outputDir, "index.html"))
	assert.True(t, os.IsNotExist(statErr))
}
