// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/importsteps/pkg/ui/display"
	"github.com/arthur-debert/importsteps/pkg/ui/lipbalm"
	"github.com/arthur-debert/importsteps/pkg/ui/templates"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

func (r *Renderer) template(name string, data interface{}) error {
	out, err := lipbalm.RenderPlain(templates.MustGet(name), data)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.output, out)
	return err
}

// RenderResult renders any result type as plain text
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

func state(s display.StepView) string {
	st := "enabled"
	if !s.Enabled {
		st = "disabled"
	}
	if s.Deferred {
		st += ",deferred"
	}
	return st
}

func (r *Renderer) renderSteps(list *display.StepList) error {
	if err := r.template(templates.Steps, list); err != nil {
		return err
	}
	if len(list.Steps) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tKIND\tTARGET\tTYPES\tPRIORITY\tSTATE\tSUMMARY")
	for _, s := range list.Steps {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			s.ID, s.Kind, s.Target, s.Types, s.Priority, state(s), s.Summary)
	}
	return tw.Flush()
}

func (r *Renderer) renderKinds(list *display.KindList) error {
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KIND\tWORKS FOR\tDEFERRED\tPARAMS")
	for _, k := range list.Kinds {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			k.Kind, strings.Join(k.WorksFor, ", "), strconv.FormatBool(k.Deferred), strings.Join(k.Params, ", "))
	}
	return tw.Flush()
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	return r.template(templates.Error, err.Error())
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
