package slideops

import "strings"

// RGB is a color with channels in [0, 1], matching what the Slides API
// expects.
type RGB struct {
	Red   float64
	Green float64
	Blue  float64
}

// Theme is an immutable named palette applied to every slide of one
// presentation.
type Theme struct {
	Name       string
	Primary    RGB
	Secondary  RGB
	Accent     RGB
	Background RGB
	Text       RGB
	TextLight  RGB
	TextDark   RGB
}

// DefaultThemeName is used whenever a requested theme is unknown.
const DefaultThemeName = "TECH"

var themes = map[string]Theme{
	"MIDNIGHT": {
		Name:       "MIDNIGHT",
		Primary:    RGB{0.13, 0.17, 0.23},
		Secondary:  RGB{0.0, 0.47, 0.75},
		Accent:     RGB{0.0, 0.8, 0.6},
		Background: RGB{0.98, 0.98, 0.98},
		Text:       RGB{0.2, 0.2, 0.25},
		TextLight:  RGB{1.0, 1.0, 1.0},
		TextDark:   RGB{0.13, 0.17, 0.23},
	},
	"SUNSET": {
		Name:       "SUNSET",
		Primary:    RGB{0.54, 0.23, 0.51},
		Secondary:  RGB{0.95, 0.42, 0.24},
		Accent:     RGB{1.0, 0.76, 0.03},
		Background: RGB{0.99, 0.98, 0.96},
		Text:       RGB{0.25, 0.23, 0.27},
		TextLight:  RGB{1.0, 1.0, 0.98},
		TextDark:   RGB{0.2, 0.18, 0.22},
	},
	"FOREST": {
		Name:       "FOREST",
		Primary:    RGB{0.13, 0.3, 0.25},
		Secondary:  RGB{0.45, 0.6, 0.35},
		Accent:     RGB{0.85, 0.65, 0.35},
		Background: RGB{0.98, 0.97, 0.95},
		Text:       RGB{0.2, 0.25, 0.22},
		TextLight:  RGB{0.95, 0.98, 0.95},
		TextDark:   RGB{0.1, 0.15, 0.12},
	},
	"TECH": {
		Name:       "TECH",
		Primary:    RGB{0.15, 0.15, 0.18},
		Secondary:  RGB{0.0, 0.65, 0.95},
		Accent:     RGB{0.95, 0.3, 0.6},
		Background: RGB{0.97, 0.97, 0.98},
		Text:       RGB{0.2, 0.2, 0.23},
		TextLight:  RGB{1.0, 1.0, 1.0},
		TextDark:   RGB{0.1, 0.1, 0.13},
	},
	"MINIMAL": {
		Name:       "MINIMAL",
		Primary:    RGB{0.15, 0.15, 0.15},
		Secondary:  RGB{0.4, 0.4, 0.4},
		Accent:     RGB{0.8, 0.2, 0.3},
		Background: RGB{1.0, 1.0, 1.0},
		Text:       RGB{0.2, 0.2, 0.2},
		TextLight:  RGB{1.0, 1.0, 1.0},
		TextDark:   RGB{0.1, 0.1, 0.1},
	},
}

// LookupTheme resolves a theme by name, case-insensitively. Unknown
// names fall back to the default theme rather than failing, so a bad
// model suggestion never blocks a build.
func LookupTheme(name string) Theme {
	if t, ok := themes[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes[DefaultThemeName]
}

// KnownTheme reports whether name resolves without falling back.
func KnownTheme(name string) bool {
	_, ok := themes[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

// ThemeNames lists the available palettes in a stable order.
func ThemeNames() []string {
	return []string{"MIDNIGHT", "SUNSET", "FOREST", "TECH", "MINIMAL"}
}
