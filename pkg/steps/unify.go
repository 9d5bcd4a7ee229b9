package steps

import (
	"fmt"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/paths"
	"github.com/arthur-debert/importsteps/pkg/suffix"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// UnifySuffix rewrites the suffix of an asset name to its canonical form.
// With AnalyseTextures set, a texture without any known suffix is
// classified by content and the matching suffix is appended.
type UnifySuffix struct {
	IgnoreCasing    bool `mapstructure:"ignore_casing"`
	AnalyseTextures bool `mapstructure:"analyse_textures"`
}

// NewUnifySuffix returns suffix params with defaults
func NewUnifySuffix() *UnifySuffix {
	return &UnifySuffix{IgnoreCasing: true}
}

func (u *UnifySuffix) Kind() Kind { return KindUnifySuffix }

func (u *UnifySuffix) WorksFor() []types.TypeTag {
	return []types.TypeTag{types.TypeGameObject, types.TypeMesh, types.TypeMaterial, types.TypeAnimationClip, types.TypeTexture, types.TypeAudioClip}
}

func (u *UnifySuffix) Describe(t types.Target) string {
	return fmt.Sprintf("Unify suffix of %s", t)
}

// NewName returns the unified name for an object named name
func (u *UnifySuffix) NewName(ctx *Context, name string, obj *types.ImportedObject) string {
	newName := ctx.Suffixes.Resolve(name, u.IgnoreCasing)
	if !u.AnalyseTextures || obj.Texture == nil || !obj.Is(ctx.Hierarchy(), types.TypeTexture) {
		return newName
	}
	if ctx.Suffixes.HasAnySuffix(newName, u.IgnoreCasing) {
		return newName
	}

	category := suffix.Analyse(obj.Texture, ctx.Analysis)
	sfx := ctx.Suffixes.SuffixFor(category)
	if category == suffix.Other || sfx == "" {
		ctx.Logger.Debug().Str("name", name).Msg("Could not classify texture")
		return newName
	}
	ctx.Logger.Debug().Str("name", name).Str("category", string(category)).Msg("Classified texture")
	return name + ctx.Suffixes.Separator + sfx
}

// Apply renames the asset when its unified name differs
func (u *UnifySuffix) Apply(ctx *Context, step *Step, obj *types.ImportedObject) error {
	if obj.IsSubAsset {
		return nil
	}
	assetPath := ctx.AssetPath(obj)
	name := paths.Stem(assetPath)

	newName := u.NewName(ctx, name, obj)
	if newName == name {
		return nil
	}

	newPath, err := ctx.DB.Rename(assetPath, newName)
	if err != nil {
		return errors.Wrapf(err, errors.ErrApply, "rename %s to %s", assetPath, newName)
	}

	ctx.Logger.Info().Str("from", assetPath).Str("to", newPath).Msg("Unified suffix")
	obj.AssetPath = newPath
	obj.Name = newName
	if ctx.Import.AssetPath != "" {
		ctx.Import.AssetPath = newPath
	}
	return nil
}
