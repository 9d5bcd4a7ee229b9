// Package templates holds the lipbalm templates shared by the terminal and
// text renderers. Terminal output expands their tags, text output strips
// them.
package templates

import (
	"embed"
	"fmt"
)

//go:embed files/*.tmpl
var files embed.FS

// Template names
const (
	Batch   = "batch"
	Suffix  = "suffix"
	Message = "message"
	Error   = "error"
	Steps   = "steps"
)

// Get returns the named template source
func Get(name string) (string, error) {
	data, err := files.ReadFile("files/" + name + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("unknown template %q: %w", name, err)
	}
	return string(data), nil
}

// MustGet is Get for names known at compile time
func MustGet(name string) string {
	s, err := Get(name)
	if err != nil {
		panic(err)
	}
	return s
}
