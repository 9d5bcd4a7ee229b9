package ui

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/importsteps/pkg/errors"
)

// Format names an output format. The values are what --format accepts.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatTerminal Format = "terminal"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// Formats lists every accepted format, auto first
func Formats() []Format {
	return []Format{FormatAuto, FormatTerminal, FormatText, FormatJSON}
}

var formatAliases = map[string]Format{
	"":      FormatAuto,
	"term":  FormatTerminal,
	"plain": FormatText,
}

func (f Format) String() string { return string(f) }

// ParseFormat reads a format name, case-insensitively. "term" and "plain"
// are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("known", Formats())
}

// DetectFormat resolves auto for w. NO_COLOR, redirected output and
// terminals without color get text. Writers that are not files (buffers in
// tests, captured cobra output) get terminal output.
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	f, ok := w.(*os.File)
	if !ok {
		return FormatTerminal
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(f).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
