package steps

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Kind discriminates step variants
type Kind string

// Step kinds
const (
	KindRename          Kind = "rename"
	KindMove            Kind = "move"
	KindCreatePrefab    Kind = "create_prefab"
	KindCreateMaterial  Kind = "create_material"
	KindPostprocessMesh Kind = "postprocess_mesh"
	KindUnifySuffix     Kind = "unify_suffix"
)

// Params is the kind specific part of a step
type Params interface {
	// Kind returns the discriminant
	Kind() Kind
	// WorksFor lists the types the kind can operate on
	WorksFor() []types.TypeTag
	// Describe renders a one line summary
	Describe(target types.Target) string
	// Apply runs the immediate phase for one imported object
	Apply(ctx *Context, step *Step, obj *types.ImportedObject) error
}

// Completer is implemented by kinds that finish their work after the batch
type Completer interface {
	Complete(ctx *Context, step *Step, assetPath string) error
}

// Step is one configured rule
type Step struct {
	ID       string
	Target   types.Target
	Enabled  bool
	Priority int
	Params   Params
}

// New creates an enabled step with priority 0 and a fresh id. A target that
// declares no types is given every type the kind works for.
func New(target types.Target, params Params) *Step {
	if target.TargetsNoTypes() {
		target.SetAllTypes(params.WorksFor())
	}
	if target.SubAssetMatch == "" {
		if d, ok := params.(interface{ DefaultSubAssetMatch() string }); ok {
			target.SubAssetMatch = d.DefaultSubAssetMatch()
		}
	}
	return &Step{
		ID:      uuid.NewString(),
		Target:  target,
		Enabled: true,
		Params:  params,
	}
}

// Kind returns the kind of the step params
func (s *Step) Kind() Kind {
	if s.Params == nil {
		return ""
	}
	return s.Params.Kind()
}

// IsDeferred reports whether the step completes after the batch
func (s *Step) IsDeferred() bool {
	_, ok := s.Params.(Completer)
	return ok
}

// WorksForOneOfTypes reports whether the kind can operate on at least one of
// tags. An empty tag list never works.
func (s *Step) WorksForOneOfTypes(h *types.Hierarchy, tags []types.TypeTag) bool {
	if s.Params == nil || len(tags) == 0 {
		return false
	}
	return h.AnyIsA(tags, s.Params.WorksFor())
}

// FinishEdit validates the step after it was created or edited. A target
// without types disables the step and yields a CONFIG_INVALID error; the
// step itself is kept.
func (s *Step) FinishEdit(logger zerolog.Logger) error {
	if !s.Target.TargetsNoTypes() {
		return nil
	}
	s.Enabled = false
	err := errors.Newf(errors.ErrConfigValid, "step %s targets no types and was disabled", s.ID).
		WithDetail("step", s.ID).
		WithDetail("kind", string(s.Kind()))
	logger.Warn().Str("step", s.ID).Str("kind", string(s.Kind())).Msg("Step targets no types, disabling it")
	return err
}

// String summarizes the step
func (s *Step) String() string {
	if s.Params == nil {
		return fmt.Sprintf("<empty step %s>", s.ID)
	}
	return s.Params.Describe(s.Target)
}
