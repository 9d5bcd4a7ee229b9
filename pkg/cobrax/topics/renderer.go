package topics

import "strings"

// Renderer turns a topic into the text help prints
type Renderer interface {
	Render(topic *Topic) string
}

// RendererFunc adapts a plain function to Renderer
type RendererFunc func(topic *Topic) string

// Render calls f
func (f RendererFunc) Render(topic *Topic) string { return f(topic) }

// Plain prints topics as stored, ending in exactly one newline
var Plain Renderer = RendererFunc(func(topic *Topic) string {
	return strings.TrimRight(topic.Content, "\n") + "\n"
})
