package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/importsteps/pkg/core"
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/executor"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/types"
)

func renameStep(id string) *steps.Step {
	s := steps.New(types.NewPatternTarget("Assets/*", types.TypeGameObject), &steps.Rename{RenameTo: "Hero"})
	s.ID = id
	return s
}

func TestNewStepView(t *testing.T) {
	s := renameStep("r1")
	s.Priority = 4
	v := NewStepView(s, types.DefaultHierarchy().Tags())

	assert.Equal(t, "r1", v.ID)
	assert.Equal(t, "rename", v.Kind)
	assert.Equal(t, "Assets/*", v.Target)
	assert.Equal(t, "GameObject", v.Types)
	assert.Equal(t, 4, v.Priority)
	assert.True(t, v.Enabled)
	assert.False(t, v.Deferred)
	assert.Equal(t, "Hero", v.Params["rename_to"])
	assert.Equal(t, s.String(), v.Summary)
}

func TestNewStepView_Deferred(t *testing.T) {
	s := steps.New(types.NewPatternTarget("Assets/*"), steps.NewCreatePrefab())
	v := NewStepView(s, nil)
	assert.True(t, v.Deferred)
}

func TestNewResultView_Status(t *testing.T) {
	s := renameStep("r1")
	tests := []struct {
		name   string
		result executor.StepResult
		status string
		code   string
	}{
		{"applied", executor.StepResult{Step: s, Success: true}, StatusApplied, ""},
		{"skipped", executor.StepResult{Step: s, Success: true, Skipped: true}, StatusSkipped, ""},
		{"deferred", executor.StepResult{Step: s, Success: true, Deferred: true}, StatusDeferred, ""},
		{"coded failure", executor.StepResult{Step: s, Error: errors.New(errors.ErrApply, "boom")}, StatusFailed, "APPLY"},
		{"plain failure", executor.StepResult{Step: s, Error: assert.AnError}, StatusFailed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewResultView(tt.result)
			assert.Equal(t, tt.status, v.Status)
			assert.Equal(t, tt.code, v.Code)
			assert.Equal(t, "r1", v.StepID)
			assert.Equal(t, "rename", v.Kind)
		})
	}
}

func TestNewBatchView(t *testing.T) {
	s := renameStep("r1")
	obj := &types.ImportedObject{AssetPath: "Assets/Orc.fbx", Name: "Orc", Types: []types.TypeTag{types.TypeGameObject}}
	report := &core.BatchReport{
		Objects: []core.ObjectReport{{
			Object: obj,
			Results: []executor.StepResult{
				{Step: s, AssetPath: obj.AssetPath, Success: true},
				{Step: s, AssetPath: obj.AssetPath, Error: assert.AnError},
			},
		}},
		Deferred: []executor.StepResult{{Step: s, AssetPath: obj.AssetPath, Phase: executor.PhaseBatchFinalizing, Success: true}},
		Duration: 2 * time.Millisecond,
	}

	v := NewBatchView(report)
	require.Len(t, v.Objects, 1)
	assert.Equal(t, "Assets/Orc.fbx", v.Objects[0].Asset)
	assert.Equal(t, []string{"GameObject"}, v.Objects[0].Types)
	assert.Len(t, v.Objects[0].Results, 2)
	require.Len(t, v.Deferred, 1)
	assert.Equal(t, "batch-finalizing", v.Deferred[0].Phase)
	assert.Equal(t, 2, v.Applied)
	assert.Equal(t, 1, v.Failed)
	assert.InDelta(t, 2.0, v.DurationMS, 0.001)
}

func TestNewSuffixView(t *testing.T) {
	v := NewSuffixView("_", true, []string{"Rock_diffuse", "Rock_D"}, func(s string) string {
		if s == "Rock_diffuse" {
			return "Rock_D"
		}
		return s
	})
	require.Len(t, v.Rows, 2)
	assert.True(t, v.Rows[0].Changed)
	assert.Equal(t, "Rock_D", v.Rows[0].Output)
	assert.False(t, v.Rows[1].Changed)
}

func TestNewKindList(t *testing.T) {
	list := NewKindList()
	kinds := map[string]KindView{}
	for _, k := range list.Kinds {
		kinds[k.Kind] = k
	}
	require.Len(t, kinds, len(steps.Kinds()))
	assert.True(t, kinds["create_prefab"].Deferred)
	assert.False(t, kinds["rename"].Deferred)
	assert.Contains(t, kinds["move"].Params, "move_to")
}
