package types

import (
	"image"
	"math"
	"path"
	"strings"
)

// Vec3 is a plain 3 component vector
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns the component wise product
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Scale returns v * f
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

// Mesh carries the vertex data a mesh post-process step edits
type Mesh struct {
	Vertices []Vec3
	Scale    Vec3
}

// Bounds returns the axis aligned min and max corners of the vertices
func (m *Mesh) Bounds() (lo, hi Vec3, ok bool) {
	if m == nil || len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}, false
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = Vec3{math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z)}
		hi = Vec3{math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z)}
	}
	return lo, hi, true
}

// SubObject is a named part of a composite asset
type SubObject struct {
	Name string
	Type TypeTag
	Mesh *Mesh
}

// ImportedObject is what the host reports for each imported file
type ImportedObject struct {
	StableID   string
	AssetPath  string
	Name       string
	Types      []TypeTag
	IsSubAsset bool
	SubObjects []*SubObject
	Texture    image.Image
}

// DisplayName returns Name, falling back to the file name without extension
func (o *ImportedObject) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	base := path.Base(strings.ReplaceAll(o.AssetPath, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// PrimaryType returns the first declared type, or "" when there is none
func (o *ImportedObject) PrimaryType() TypeTag {
	if len(o.Types) == 0 {
		return ""
	}
	return o.Types[0]
}

// Is reports whether any of the object's types IsA tag
func (o *ImportedObject) Is(h *Hierarchy, tag TypeTag) bool {
	return h.AnyIsA(o.Types, []TypeTag{tag})
}
