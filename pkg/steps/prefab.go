package steps

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/paths"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// PrefabExt is the extension of generated prefab descriptors
const PrefabExt = ".prefab"

// CreatePrefab writes a prefab descriptor for an imported model. The model
// only exists on disk once the import has finished, so the work is deferred.
type CreatePrefab struct {
	Path        string  `mapstructure:"path"`
	LocalPath   bool    `mapstructure:"local_path"`
	PrefabName  string  `mapstructure:"prefab_name"`
	CenterPivot bool    `mapstructure:"center_pivot"`
	AlignPivot  bool    `mapstructure:"align_pivot"`
	AlignX      float64 `mapstructure:"align_x"`
	AlignY      float64 `mapstructure:"align_y"`
	AlignZ      float64 `mapstructure:"align_z"`
	MergeMeshes bool    `mapstructure:"merge_meshes"`
	MakeStatic  bool    `mapstructure:"make_static"`
}

// NewCreatePrefab returns prefab params with defaults: a Prefabs folder next
// to the model, named after the model file, pivot aligned downwards
func NewCreatePrefab() *CreatePrefab {
	return &CreatePrefab{
		Path:       "/Prefabs/",
		LocalPath:  true,
		PrefabName: "[[FILENAME]]",
		AlignY:     -1,
	}
}

func (c *CreatePrefab) Kind() Kind { return KindCreatePrefab }

func (c *CreatePrefab) WorksFor() []types.TypeTag {
	return []types.TypeTag{types.TypeGameObject}
}

func (c *CreatePrefab) Describe(t types.Target) string {
	return fmt.Sprintf("Create prefab %s in %s for %s", c.PrefabName, c.Path, t)
}

// Apply queues the asset for prefab creation
func (c *CreatePrefab) Apply(ctx *Context, step *Step, obj *types.ImportedObject) error {
	if !obj.Is(ctx.Hierarchy(), types.TypeGameObject) {
		return errors.Newf(errors.ErrApply, "cannot create a prefab from %s, it is not a GameObject", ctx.AssetPath(obj)).
			WithDetail("types", types.Strings(obj.Types))
	}
	if ctx.Deferrer == nil {
		return errors.New(errors.ErrInternal, "no deferrer available for prefab creation")
	}
	ctx.Deferrer.Defer(step, ctx.AssetPath(obj))
	return nil
}

// PrefabDocument is the serialized prefab descriptor
type PrefabDocument struct {
	Name        string      `yaml:"name"`
	Source      string      `yaml:"source"`
	Static      bool        `yaml:"static"`
	MergeMeshes bool        `yaml:"merge_meshes"`
	Pivot       PrefabPivot `yaml:"pivot"`
}

// PrefabPivot records how the prefab's pivot is placed
type PrefabPivot struct {
	Center    bool       `yaml:"center"`
	Align     bool       `yaml:"align"`
	Alignment types.Vec3 `yaml:"alignment"`
}

// Folder returns the folder the prefab for assetPath goes into
func (c *CreatePrefab) Folder(ctx *Context, assetPath string) string {
	resolved := ctx.Resolve(c.Path, assetPath, "", types.TypeGameObject)
	if c.LocalPath {
		return paths.NormalizeAssetPath(paths.Dir(assetPath)+paths.NormalizeLocalPath(resolved), ctx.root())
	}
	return paths.NormalizeAssetPath(resolved, ctx.root())
}

// Complete writes the prefab descriptor under a unique name
func (c *CreatePrefab) Complete(ctx *Context, step *Step, assetPath string) error {
	if !ctx.DB.Exists(assetPath) {
		return errors.Newf(errors.ErrApply, "source asset %s is gone, cannot create prefab", assetPath)
	}

	folder := c.Folder(ctx, assetPath)
	if _, err := ctx.DB.CreateFolders(folder); err != nil {
		return errors.Wrapf(err, errors.ErrApply, "create prefab folder %s", folder)
	}

	name := ctx.Resolve(c.PrefabName, assetPath, "", types.TypeGameObject)
	if name == "" {
		name = paths.Stem(assetPath)
	}
	target := ctx.DB.UniquePath(folder + name + PrefabExt)

	doc := PrefabDocument{
		Name:        paths.Stem(target),
		Source:      assetPath,
		Static:      c.MakeStatic,
		MergeMeshes: c.MergeMeshes,
		Pivot: PrefabPivot{
			Center:    c.CenterPivot,
			Align:     c.AlignPivot,
			Alignment: types.Vec3{X: c.AlignX, Y: c.AlignY, Z: c.AlignZ},
		},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "marshal prefab")
	}
	if err := ctx.DB.WriteAsset(target, data); err != nil {
		return errors.Wrapf(err, errors.ErrApply, "write prefab %s", target)
	}

	ctx.Logger.Info().Str("asset", assetPath).Str("prefab", target).Msg("Created prefab")
	return nil
}
