// Package json writes command output as indented JSON documents, one per
// render call.
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/importsteps/pkg/errors"
)

// Renderer encodes results, errors and messages as JSON
type Renderer struct {
	encoder *json.Encoder
}

type errorPayload struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type messagePayload struct {
	Message string `json:"message"`
}

// New creates a JSON renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return &Renderer{encoder: encoder}, nil
}

// RenderResult encodes result as is; display views carry their own tags
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// RenderError encodes err. Coded errors add their code and details.
func (r *Renderer) RenderError(err error) error {
	payload := errorPayload{Error: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		payload.Code = string(code)
		payload.Details = errors.GetErrorDetails(err)
	}
	return r.encoder.Encode(payload)
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(messagePayload{Message: msg})
}
