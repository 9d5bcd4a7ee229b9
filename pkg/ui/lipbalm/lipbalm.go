package lipbalm

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// StyleMap maps tag names to the styles they apply
type StyleMap map[string]lipgloss.Style

// NoFormatTag marks content that is only shown without color support
const NoFormatTag = "no-format"

var (
	rendererMu      sync.RWMutex
	defaultRenderer = lipgloss.DefaultRenderer()
)

// SetDefaultRenderer sets the renderer whose color profile decides whether
// styles are applied.
func SetDefaultRenderer(r *lipgloss.Renderer) {
	rendererMu.Lock()
	defaultRenderer = r
	rendererMu.Unlock()
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	rendererMu.RLock()
	r := defaultRenderer
	rendererMu.RUnlock()
	return r != nil && r.ColorProfile() != termenv.Ascii
}

// Funcs are available to every template passed to Render. escape makes
// arbitrary data safe inside tags.
var Funcs = template.FuncMap{
	"escape": Escape,
}

// Escape escapes s so tag expansion reads it as text
func Escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Render executes tmpl as a text/template with data, then expands style tags
func Render(tmpl string, data interface{}, styles StyleMap) (string, error) {
	t, err := template.New("lipbalm").Funcs(Funcs).Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return ExpandTags(buf.String(), styles)
}

// RenderPlain executes tmpl with data and strips every tag from the result
func RenderPlain(tmpl string, data interface{}) (string, error) {
	t, err := template.New("lipbalm").Funcs(Funcs).Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return StripTags(buf.String()), nil
}

// ExpandTags applies styles to tagged content. Input that is not well formed
// is returned unchanged.
func ExpandTags(input string, styles StyleMap) (string, error) {
	if input == "" {
		return "", nil
	}
	root, err := parse(input)
	if err != nil {
		return input, nil
	}
	return root.render(styles, colorEnabled()), nil
}

// StripTags removes every tag and keeps all text, no-format content included
func StripTags(input string) string {
	if input == "" {
		return ""
	}
	root, err := parse(input)
	if err != nil {
		return input
	}
	return root.render(nil, false)
}

type node struct {
	name     string
	text     string
	isText   bool
	children []*node
}

func (n *node) inner(styles StyleMap, color bool) string {
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.render(styles, color))
	}
	return b.String()
}

func (n *node) render(styles StyleMap, color bool) string {
	if n.isText {
		return n.text
	}
	content := n.inner(styles, color)
	switch {
	case n.name == "":
		return content
	case n.name == NoFormatTag:
		if color {
			return ""
		}
		return content
	case !color:
		return content
	}
	if style, ok := styles[n.name]; ok {
		return style.Render(content)
	}
	return content
}

// parse wraps input in a synthetic root so mixed text and tags form one
// document.
func parse(input string) (*node, error) {
	dec := xml.NewDecoder(strings.NewReader("<lipbalm>" + input + "</lipbalm>"))
	dec.Strict = true

	root := &node{}
	var stack []*node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				stack = append(stack, root)
				continue
			}
			n := &node{name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, &node{isText: true, text: string(t)})
		}
	}
	return root, nil
}
