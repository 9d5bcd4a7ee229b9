// Package styles defines the visual styling of terminal output.
//
// Styles have semantic names and adaptive colors that follow the terminal
// theme. The names double as lipbalm tags in templates:
//
//	<Kind>rename</Kind> <Path>Assets/Orc.fbx</Path>
package styles

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/importsteps/pkg/ui/lipbalm"
)

// ColorDef is an adaptive color definition
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition. Foreground and background name a color.
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	MarginTop    int    `yaml:"marginTop,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
}

// Config is a complete styles file
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

var (
	mu       sync.RWMutex
	registry = map[string]lipgloss.Style{}
)

// Names every style the renderers rely on. Missing ones fall back to a
// plain style.
var Names = []string{
	"Header", "SubHeader", "Success", "Error", "Warning", "Info", "Muted",
	"Bold", "Italic", "Kind", "StepID", "Path", "Types", "Priority",
	"Disabled", "Deferred", "Skipped", "Code",
}

func init() {
	if err := LoadStylesFromData(embeddedStyles); err != nil {
		initDefaultStyles()
	}
}

func initDefaultStyles() {
	styles := make(map[string]lipgloss.Style, len(Names))
	for _, name := range Names {
		styles[name] = lipgloss.NewStyle()
	}
	mu.Lock()
	registry = styles
	mu.Unlock()
}

// RestoreDefaults reloads the embedded styles
func RestoreDefaults() error {
	return LoadStylesFromData(embeddedStyles)
}

// LoadStylesFromData replaces the registry with the styles in data
func LoadStylesFromData(data []byte) error {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		styles[name] = buildStyle(def, colors)
	}

	mu.Lock()
	registry = styles
	mu.Unlock()
	return nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if c, ok := colors[def.Foreground]; ok {
		style = style.Foreground(c)
	}
	if c, ok := colors[def.Background]; ok {
		style = style.Background(c)
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}
	return style
}

// GetStyle returns the named style, or a plain one
func GetStyle(name string) lipgloss.Style {
	mu.RLock()
	defer mu.RUnlock()
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Has reports whether name is registered
func Has(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[name]
	return ok
}

// StyleMap returns a copy of the registry for lipbalm
func StyleMap() lipbalm.StyleMap {
	mu.RLock()
	defer mu.RUnlock()
	out := make(lipbalm.StyleMap, len(registry))
	for name, style := range registry {
		out[name] = style
	}
	return out
}

// MergeStyles combines the named styles, later ones taking precedence
func MergeStyles(names ...string) lipgloss.Style {
	result := lipgloss.NewStyle()
	for i := len(names) - 1; i >= 0; i-- {
		result = result.Inherit(GetStyle(names[i]))
	}
	return result
}
