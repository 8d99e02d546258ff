// Package rendering turns contact lists into styled HTML reports.
package rendering

import "math/rand/v2"

// RandomStyle is the meta-style resolved to a concrete style at render time.
const RandomStyle = "random"

// DefaultStyle is the fallback for unrecognized style names.
const DefaultStyle = "modern"

// templateFiles maps each style to its template file name.
var templateFiles = map[string]string{
	"modern": "modern_template.html",
	"dark":   "dark_template.html",
	"neon":   "neon_template.html",
	"retro":  "retro_template.html",
}

// StyleNames returns the fixed style set in stable order.
func StyleNames() []string {
	return []string{"modern", "dark", "neon", "retro"}
}

// StylePicker chooses one style from a non-empty list. It exists so tests can
// substitute a deterministic selector for the random default.
type StylePicker interface {
	Pick(styles []string) string
}

type randomPicker struct{}

func (randomPicker) Pick(styles []string) string {
	return styles[rand.IntN(len(styles))]
}
