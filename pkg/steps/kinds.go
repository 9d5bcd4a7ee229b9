package steps

import (
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/registry"
)

// Factory returns params of one kind populated with defaults
type Factory func() Params

var kinds = registry.New[Kind, Factory]()

func init() {
	kinds.MustRegister(KindRename, func() Params { return NewRename() })
	kinds.MustRegister(KindMove, func() Params { return NewMove() })
	kinds.MustRegister(KindCreatePrefab, func() Params { return NewCreatePrefab() })
	kinds.MustRegister(KindCreateMaterial, func() Params { return NewCreateMaterial() })
	kinds.MustRegister(KindPostprocessMesh, func() Params { return NewPostprocessMesh() })
	kinds.MustRegister(KindUnifySuffix, func() Params { return NewUnifySuffix() })
}

// NewParams returns default params for kind
func NewParams(kind Kind) (Params, error) {
	factory, ok := kinds.Lookup(kind)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownKind, "unknown step kind %q", kind).
			WithDetail("kind", string(kind))
	}
	return factory(), nil
}

// Kinds lists the registered kinds in sorted order
func Kinds() []Kind {
	return kinds.Sorted()
}
