// Package ui renders command results as styled terminal output, plain text
// or JSON. Commands build view models from pkg/ui/display and hand them to
// a Renderer; the format is picked once per invocation.
package ui

import (
	"io"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/ui/json"
	"github.com/arthur-debert/importsteps/pkg/ui/terminal"
	"github.com/arthur-debert/importsteps/pkg/ui/text"
)

// Renderer writes command output in one format
type Renderer interface {
	// RenderResult writes a display view: step lists, batch reports, suffix
	// tables or the kind list. Other values print with %+v.
	RenderResult(result interface{}) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

var constructors = map[Format]func(io.Writer) (Renderer, error){
	FormatTerminal: func(w io.Writer) (Renderer, error) { return terminal.New(w) },
	FormatText:     func(w io.Writer) (Renderer, error) { return text.New(w) },
	FormatJSON:     func(w io.Writer) (Renderer, error) { return json.New(w) },
}

// NewRenderer creates a renderer writing to output. FormatAuto is resolved
// with DetectFormat first.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	if format == FormatAuto {
		format = DetectFormat(output)
	}
	newRenderer, ok := constructors[format]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", format)
	}
	return newRenderer(output)
}
