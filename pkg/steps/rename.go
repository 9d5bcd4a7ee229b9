package steps

import (
	"fmt"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Rename renames an object, or the matching sub-objects of a composite
type Rename struct {
	RenameTo string `mapstructure:"rename_to"`
}

// NewRename returns rename params with defaults
func NewRename() *Rename { return &Rename{} }

func (r *Rename) Kind() Kind { return KindRename }

func (r *Rename) WorksFor() []types.TypeTag {
	return []types.TypeTag{types.TypeGameObject, types.TypeMesh, types.TypeMaterial, types.TypeAnimationClip, types.TypeTexture, types.TypeAudioClip}
}

func (r *Rename) Describe(t types.Target) string {
	return fmt.Sprintf("Rename %s of type %s to %s", t.SubAssetMatch, t.DescribeTypes(r.WorksFor()), r.RenameTo)
}

// Apply renames every sub-object selected by the target's sub-asset pattern
// when obj is a GameObject, otherwise the object itself. Sub-assets reported
// on their own are left alone.
func (r *Rename) Apply(ctx *Context, step *Step, obj *types.ImportedObject) error {
	if r.RenameTo == "" {
		return errors.New(errors.ErrApply, "rename_to is empty")
	}
	assetPath := ctx.AssetPath(obj)
	h := ctx.Hierarchy()

	if obj.Is(h, types.TypeGameObject) {
		renamed := 0
		for _, sub := range obj.SubObjects {
			if !step.Target.CheckType(h, sub.Type) {
				continue
			}
			if !ctx.Matcher.IsSubAssetTarget(step.Target, sub.Name, assetPath, sub.Type) {
				continue
			}
			newName := ctx.Resolve(r.RenameTo, assetPath, sub.Name, sub.Type)
			ctx.Logger.Debug().
				Str("asset", assetPath).
				Str("from", sub.Name).
				Str("to", newName).
				Str("type", string(sub.Type)).
				Msg("Renamed sub-object")
			sub.Name = newName
			renamed++
		}
		if renamed == 0 {
			ctx.Logger.Debug().Str("asset", assetPath).Str("match", step.Target.SubAssetMatch).Msg("No sub-object matched rename")
		}
		return nil
	}

	if obj.IsSubAsset {
		return nil
	}

	newName := ctx.Resolve(r.RenameTo, assetPath, obj.DisplayName(), obj.PrimaryType())
	ctx.Logger.Info().Str("asset", assetPath).Str("from", obj.DisplayName()).Str("to", newName).Msg("Renamed object")
	obj.Name = newName
	return nil
}
