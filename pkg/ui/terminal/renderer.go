// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/importsteps/pkg/ui/display"
	"github.com/arthur-debert/importsteps/pkg/ui/lipbalm"
	"github.com/arthur-debert/importsteps/pkg/ui/styles"
	"github.com/arthur-debert/importsteps/pkg/ui/templates"
)

// Renderer provides rich terminal output using templates and styling
type Renderer struct {
	output io.Writer
	styles lipbalm.StyleMap
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w, styles: styles.StyleMap()}, nil
}

func (r *Renderer) template(name string, data interface{}) error {
	out, err := lipbalm.Render(templates.MustGet(name), data, r.styles)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.output, out)
	return err
}

func (r *Renderer) style(name, s string) string {
	return styles.GetStyle(name).Render(s)
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.StepList:
		return r.renderSteps(v)
	case *display.KindList:
		return r.renderKinds(v)
	case *display.BatchView:
		return r.template(templates.Batch, v)
	case *display.SuffixView:
		return r.template(templates.Suffix, v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.Bold)).
		WithData(data).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, out)
	return err
}

func (r *Renderer) renderSteps(list *display.StepList) error {
	if err := r.template(templates.Steps, list); err != nil {
		return err
	}
	if len(list.Steps) == 0 {
		return nil
	}

	data := pterm.TableData{{"ID", "Kind", "Target", "Types", "Priority", "State", "Summary"}}
	for _, s := range list.Steps {
		st := r.style("Success", "enabled")
		if !s.Enabled {
			st = r.style("Disabled", "disabled")
		}
		if s.Deferred {
			st += " " + r.style("Deferred", "deferred")
		}
		data = append(data, []string{
			r.style("StepID", s.ID),
			r.style("Kind", s.Kind),
			r.style("Path", s.Target),
			r.style("Types", s.Types),
			r.style("Priority", strconv.Itoa(s.Priority)),
			st,
			s.Summary,
		})
	}
	return r.table(data)
}

func (r *Renderer) renderKinds(list *display.KindList) error {
	data := pterm.TableData{{"Kind", "Works for", "Deferred", "Params"}}
	for _, k := range list.Kinds {
		data = append(data, []string{
			r.style("Kind", k.Kind),
			r.style("Types", strings.Join(k.WorksFor, ", ")),
			strconv.FormatBool(k.Deferred),
			r.style("Muted", strings.Join(k.Params, ", ")),
		})
	}
	return r.table(data)
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	return r.template(templates.Error, err.Error())
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.template(templates.Message, msg)
}
