package rendering

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mwalker/contact-validator/internal/db"
)

// Renderer renders contact reports from on-disk template files.
type Renderer struct {
	templatesDir string
	picker       StylePicker
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPicker overrides the style picker used for "random".
func WithPicker(p StylePicker) Option {
	return func(r *Renderer) { r.picker = p }
}

// New returns a Renderer loading templates from templatesDir.
func New(templatesDir string, opts ...Option) *Renderer {
	r := &Renderer{
		templatesDir: templatesDir,
		picker:       randomPicker{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveStyle maps a requested style to a concrete one: "random" is picked
// from the fixed set, unrecognized names silently fall back to the default.
func (r *Renderer) ResolveStyle(style string) string {
	if style == RandomStyle {
		selected := r.picker.Pick(StyleNames())
		log.Printf("rendering: randomly selected template: %s", selected)
		return selected
	}
	if _, ok := templateFiles[style]; !ok {
		return DefaultStyle
	}
	return style
}

// Render resolves the style, loads its template and produces the report HTML.
// It returns the HTML and the concretely resolved style name.
func (r *Renderer) Render(style string, contacts []db.Contact) (string, string, error) {
	resolved := r.ResolveStyle(style)

	path := filepath.Join(r.templatesDir, templateFiles[resolved])
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", resolved, &TemplateMissingError{Path: path}
		}
		return "", resolved, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	tmpl, err := template.New(templateFiles[resolved]).Parse(string(content))
	if err != nil {
		return "", resolved, fmt.Errorf("failed to parse template %s: %w", path, err)
	}

	data := templateData{
		Contacts:  prepareContacts(contacts),
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", resolved, fmt.Errorf("failed to render template %s: %w", path, err)
	}
	return sb.String(), resolved, nil
}

type templateData struct {
	Contacts  []ContactView
	Timestamp string
}

// ContactView is a contact augmented with display attributes derived from its
// validation status.
type ContactView struct {
	db.Contact
	CSSClass       string
	BadgeClass     string
	ValidationText string
}

// validationAttributes maps a status's string value to display attributes.
// Only the literal strings "valid" and "invalid" get affirmative styling;
// every other shape (sentinels, candidate arrays, false, absent) renders as
// not validated.
func validationAttributes(status string) (cssClass, badgeClass, text string) {
	switch status {
	case "valid":
		return "valid", "valid-badge", "Valid Address"
	case "invalid":
		return "invalid", "invalid-badge", "Invalid Address"
	default:
		return "not-validated", "not-validated-badge", "Not Validated"
	}
}

func prepareContacts(contacts []db.Contact) []ContactView {
	views := make([]ContactView, 0, len(contacts))
	for _, c := range contacts {
		cssClass, badgeClass, text := validationAttributes(c.StatusText())
		views = append(views, ContactView{
			Contact:        c,
			CSSClass:       cssClass,
			BadgeClass:     badgeClass,
			ValidationText: text,
		})
	}
	return views
}
