package steps

import (
	"fmt"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/paths"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Move moves the imported asset into another folder
type Move struct {
	MoveTo string `mapstructure:"move_to"`
}

// NewMove returns move params with defaults
func NewMove() *Move { return &Move{} }

func (m *Move) Kind() Kind { return KindMove }

func (m *Move) WorksFor() []types.TypeTag {
	return []types.TypeTag{types.TypeGameObject, types.TypeMesh, types.TypeMaterial, types.TypeAnimationClip, types.TypeTexture, types.TypeAudioClip}
}

func (m *Move) Describe(t types.Target) string {
	return fmt.Sprintf("Move %s of type %s to %s", t, t.DescribeTypes(m.WorksFor()), m.MoveTo)
}

// Apply resolves keywords in MoveTo, creates the folder when missing and
// moves the asset there. The object's path follows the asset.
func (m *Move) Apply(ctx *Context, step *Step, obj *types.ImportedObject) error {
	if obj.IsSubAsset {
		return nil
	}
	assetPath := ctx.AssetPath(obj)
	resolved := ctx.Resolve(m.MoveTo, assetPath, obj.DisplayName(), obj.PrimaryType())
	folder := paths.NormalizeAssetPath(resolved, ctx.root())

	if _, err := ctx.DB.CreateFolders(folder); err != nil {
		return errors.Wrapf(err, errors.ErrApply, "create target folder %s", folder)
	}

	newPath, err := ctx.DB.Move(assetPath, folder)
	if err != nil {
		return errors.Wrapf(err, errors.ErrApply, "move %s", assetPath).WithDetail("folder", folder)
	}

	ctx.Logger.Info().Str("from", assetPath).Str("to", newPath).Msg("Moved asset")
	obj.AssetPath = newPath
	if ctx.Import.AssetPath != "" {
		ctx.Import.AssetPath = newPath
	}
	return nil
}
