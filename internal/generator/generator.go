// Package generator writes rendered contact reports to the output directory.
package generator

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwalker/contact-validator/internal/db"
	"github.com/mwalker/contact-validator/internal/rendering"
)

// ErrInvalidFilename rejects output filenames that would escape the output
// directory or shadow dotfiles.
var ErrInvalidFilename = errors.New("invalid output filename")

// Generator renders contact reports and writes them to disk.
type Generator struct {
	outputDir string
	renderer  *rendering.Renderer
}

// New returns a Generator writing into outputDir.
func New(outputDir string, renderer *rendering.Renderer) *Generator {
	return &Generator{outputDir: outputDir, renderer: renderer}
}

// OutputDir returns the directory generated files are written to.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// EnsureOutputDir creates the output directory if it does not exist.
func (g *Generator) EnsureOutputDir() error {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", g.outputDir, err)
	}
	return nil
}

// Generate renders the contacts with the requested style (or "random") and
// writes the HTML to filename inside the output directory, overwriting any
// existing file. It returns the written path and the concrete style used.
func (g *Generator) Generate(contacts []db.Contact, style, filename string) (string, string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	if err := g.EnsureOutputDir(); err != nil {
		return "", "", err
	}

	html, resolved, err := g.renderer.Render(style, contacts)
	if err != nil {
		return "", resolved, err
	}

	outputPath := filepath.Join(g.outputDir, filename)
	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		return "", resolved, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	log.Printf("generator: HTML file generated: %s", outputPath)
	return outputPath, resolved, nil
}
