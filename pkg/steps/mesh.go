package steps

import (
	"fmt"
	"math"

	"github.com/arthur-debert/importsteps/pkg/types"
)

// PostprocessMesh edits the vertices of matching meshes: it can move the
// pivot to the bounds center, align it to a bounds face and bake the scale
type PostprocessMesh struct {
	CenterPivot bool    `mapstructure:"center_pivot"`
	AlignPivot  bool    `mapstructure:"align_pivot"`
	AlignX      float64 `mapstructure:"align_x"`
	AlignY      float64 `mapstructure:"align_y"`
	AlignZ      float64 `mapstructure:"align_z"`
	ApplyScale  bool    `mapstructure:"apply_scale"`
}

// NewPostprocessMesh returns mesh params with defaults
func NewPostprocessMesh() *PostprocessMesh {
	return &PostprocessMesh{AlignY: -1}
}

func (m *PostprocessMesh) Kind() Kind { return KindPostprocessMesh }

func (m *PostprocessMesh) WorksFor() []types.TypeTag {
	return []types.TypeTag{types.TypeMesh}
}

// DefaultSubAssetMatch selects every mesh by default
func (m *PostprocessMesh) DefaultSubAssetMatch() string { return "*" }

func (m *PostprocessMesh) Describe(t types.Target) string {
	return fmt.Sprintf("Postprocess meshes matching %s in %s", t.SubAssetMatch, t)
}

func (m *PostprocessMesh) Apply(ctx *Context, step *Step, obj *types.ImportedObject) error {
	assetPath := ctx.AssetPath(obj)
	applied := 0
	for _, sub := range obj.SubObjects {
		if sub.Mesh == nil || !ctx.Hierarchy().IsA(sub.Type, types.TypeMesh) {
			continue
		}
		if !ctx.Matcher.IsSubAssetTarget(step.Target, sub.Name, assetPath, types.TypeMesh) {
			continue
		}
		m.transform(sub.Mesh)
		applied++
	}

	if applied == 0 {
		ctx.Logger.Warn().
			Str("asset", assetPath).
			Str("match", ctx.Resolve(step.Target.SubAssetMatch, assetPath, "", types.TypeMesh)).
			Msg("No mesh matched the postprocess step")
		return nil
	}
	ctx.Logger.Info().Str("asset", assetPath).Int("meshes", applied).Msg("Postprocessed meshes")
	return nil
}

func (m *PostprocessMesh) transform(mesh *types.Mesh) {
	if len(mesh.Vertices) == 0 {
		return
	}

	if m.ApplyScale {
		scale := mesh.Scale
		if scale == (types.Vec3{}) {
			scale = types.Vec3{X: 1, Y: 1, Z: 1}
		}
		for i, v := range mesh.Vertices {
			mesh.Vertices[i] = v.Mul(abs(scale))
		}
		mesh.Scale = sign(scale)
	}

	lo, hi, _ := mesh.Bounds()
	center := lo.Add(hi).Scale(0.5)
	extents := hi.Sub(lo).Scale(0.5)

	var translation types.Vec3
	if m.CenterPivot {
		translation = translation.Sub(center)
	}
	if m.AlignPivot {
		align := types.Vec3{X: m.AlignX, Y: m.AlignY, Z: m.AlignZ}
		if n := length(align); n > 0 {
			dir := align.Scale(1 / n)
			// length of the extents projected on the alignment axis
			proj := dot(abs(extents), abs(align)) / n
			translation = translation.Sub(dir.Scale(proj))
		}
	}

	for i, v := range mesh.Vertices {
		mesh.Vertices[i] = v.Add(translation)
	}
}

func dot(a, b types.Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func length(v types.Vec3) float64 { return math.Sqrt(dot(v, v)) }

func abs(v types.Vec3) types.Vec3 {
	return types.Vec3{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

func sign(v types.Vec3) types.Vec3 {
	s := func(f float64) float64 {
		if f < 0 {
			return -1
		}
		return 1
	}
	return types.Vec3{X: s(v.X), Y: s(v.Y), Z: s(v.Z)}
}
