package topics

import (
	"os"

	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour. Other formats pass
// through untouched.
type GlamourRenderer struct {
	Style string // "dark", "light", "notty", "auto", or a path to a style file
	Width int    // 0 keeps glamour's default wrapping
}

// NewGlamourRenderer creates a markdown renderer. NO_COLOR selects the notty
// style, anything else auto-detects.
func NewGlamourRenderer() *GlamourRenderer {
	style := "auto"
	if os.Getenv("NO_COLOR") != "" {
		style = "notty"
	}
	return &GlamourRenderer{Style: style}
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}
	return options
}

// Render converts markdown topics to styled terminal output. Other formats
// and markdown glamour cannot render go through Plain.
func (r *GlamourRenderer) Render(topic *Topic) string {
	if topic.Format() != ".md" {
		return Plain.Render(topic)
	}

	renderer, err := glamour.NewTermRenderer(r.options()...)
	if err != nil {
		return Plain.Render(topic)
	}

	rendered, err := renderer.Render(topic.Content)
	if err != nil {
		return Plain.Render(topic)
	}
	return rendered
}
