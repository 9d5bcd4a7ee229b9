package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/types"
	"github.com/arthur-debert/importsteps/pkg/ui"
	"github.com/arthur-debert/importsteps/pkg/ui/display"
)

func sampleSteps() *display.StepList {
	move := steps.New(types.NewPatternTarget("Assets/Incoming/*", types.TypeMesh), &steps.Move{MoveTo: "Assets/Meshes"})
	move.ID = "move-1"
	move.Priority = 2

	unify := steps.New(types.NewIDTarget("guid-42"), steps.NewUnifySuffix())
	unify.ID = "unify-1"
	unify.Enabled = false

	return display.NewStepList("Steps", []*steps.Step{move, unify}, types.DefaultHierarchy().Tags())
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{"terminal", ui.FormatTerminal, false},
		{"text", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"auto with buffer", ui.FormatAuto, false},
		{"invalid", ui.Format("yaml"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := ui.NewRenderer(tt.format, &bytes.Buffer{})
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}
}

func TestRenderersHandleEveryView(t *testing.T) {
	views := []interface{}{
		sampleSteps(),
		display.NewStepList("Empty", nil, nil),
		display.NewKindList(),
		&display.BatchView{Objects: []display.ObjectView{{Asset: "Assets/Orc.fbx", Name: "Orc"}}},
		&display.SuffixView{Rows: []display.SuffixRow{{Input: "a_diffuse", Output: "a_D", Changed: true}}},
		map[string]string{"test": "data"},
	}

	for _, format := range []ui.Format{ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(format, buf)
			require.NoError(t, err)

			for _, v := range views {
				assert.NoError(t, renderer.RenderResult(v))
			}
			assert.NoError(t, renderer.RenderMessage("test message"))
			assert.NoError(t, renderer.RenderError(assert.AnError))
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	t.Run("message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "hello world", result["message"])
	})

	t.Run("plain error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(assert.AnError))

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, assert.AnError.Error(), result["error"])
		assert.NotContains(t, result, "code")
	})

	t.Run("coded error", func(t *testing.T) {
		buf.Reset()
		e := errors.New(errors.ErrNotFound, "no such step").WithDetail("id", "x")
		require.NoError(t, renderer.RenderError(e))

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "NOT_FOUND", result["code"])
		assert.Equal(t, map[string]interface{}{"id": "x"}, result["details"])
	})

	t.Run("step list", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleSteps()))

		var result display.StepList
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		require.Len(t, result.Steps, 2)
		assert.Equal(t, "move-1", result.Steps[0].ID)
		assert.Equal(t, "move", result.Steps[0].Kind)
		assert.Equal(t, "Assets/Meshes", result.Steps[0].Params["move_to"])
		assert.Equal(t, "id:guid-42", result.Steps[1].Target)
		assert.False(t, result.Steps[1].Enabled)
	})
}

func TestTextRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	t.Run("message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))
		assert.Equal(t, "hello world\n", buf.String())
	})

	t.Run("error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(assert.AnError))
		assert.Equal(t, "Error: assert.AnError general error for testing\n", buf.String())
	})

	t.Run("step table", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleSteps()))
		out := buf.String()
		assert.Contains(t, out, "Steps\n")
		assert.Contains(t, out, "ID")
		assert.Contains(t, out, "move-1")
		assert.Contains(t, out, "Assets/Incoming/*")
		assert.Contains(t, out, "disabled")
		assert.Contains(t, out, "Move Assets/Incoming/* of type Mesh to Assets/Meshes")
	})

	t.Run("empty step list", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(display.NewStepList("Resolved", nil, nil)))
		assert.Equal(t, "Resolved\nNo steps\n", buf.String())
	})

	t.Run("unknown type", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(map[string]string{"foo": "bar"}))
		assert.Contains(t, buf.String(), "map[foo:bar]")
	})
}

func TestTerminalRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	t.Run("message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))
		assert.Contains(t, buf.String(), "hello world")
	})

	t.Run("error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(assert.AnError))
		assert.Contains(t, buf.String(), "assert.AnError")
	})

	t.Run("step table", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleSteps()))
		assert.Contains(t, buf.String(), "move-1")
		assert.Contains(t, buf.String(), "unify-1")
	})
}
