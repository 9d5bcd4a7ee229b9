package core

import (
	"bytes"
	"image"
	"image/png"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/importsteps/pkg/assetdb"
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Manifest lists the objects of one simulated import batch
type Manifest struct {
	Objects []ManifestObject `yaml:"objects"`
}

// ManifestObject is one imported object as the host would report it
type ManifestObject struct {
	ID         string              `yaml:"id"`
	Path       string              `yaml:"path"`
	Name       string              `yaml:"name,omitempty"`
	Types      []string            `yaml:"types"`
	SubAsset   bool                `yaml:"sub_asset,omitempty"`
	SubObjects []ManifestSubObject `yaml:"sub_objects,omitempty"`
	// Texture decodes the asset as a PNG so texture analysis can sample it
	Texture bool `yaml:"texture,omitempty"`
}

// ManifestSubObject is a part of a composite object
type ManifestSubObject struct {
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type"`
	Vertices [][3]float64 `yaml:"vertices,omitempty"`
	Scale    *[3]float64  `yaml:"scale,omitempty"`
}

// ParseManifest decodes a YAML manifest
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "parse import manifest")
	}
	for i, obj := range m.Objects {
		if obj.Path == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "manifest object %d has no path", i)
		}
	}
	return &m, nil
}

// ImportedObjects converts the manifest entries into imported objects. Texture
// pixels are read through db.
func (m *Manifest) ImportedObjects(h *types.Hierarchy, db assetdb.Database) ([]*types.ImportedObject, error) {
	out := make([]*types.ImportedObject, 0, len(m.Objects))
	for _, entry := range m.Objects {
		tags, _ := h.ParseTypeTags(entry.Types)
		obj := &types.ImportedObject{
			StableID:   entry.ID,
			AssetPath:  entry.Path,
			Name:       entry.Name,
			Types:      tags,
			IsSubAsset: entry.SubAsset,
		}
		for _, sub := range entry.SubObjects {
			obj.SubObjects = append(obj.SubObjects, sub.toSubObject())
		}
		if entry.Texture {
			img, err := decodeTexture(db, entry.Path)
			if err != nil {
				return nil, err
			}
			obj.Texture = img
		}
		out = append(out, obj)
	}
	return out, nil
}

func (s ManifestSubObject) toSubObject() *types.SubObject {
	sub := &types.SubObject{Name: s.Name, Type: types.TypeTag(s.Type)}
	if len(s.Vertices) == 0 && s.Scale == nil {
		return sub
	}
	mesh := &types.Mesh{Scale: types.Vec3{X: 1, Y: 1, Z: 1}}
	if s.Scale != nil {
		mesh.Scale = types.Vec3{X: s.Scale[0], Y: s.Scale[1], Z: s.Scale[2]}
	}
	for _, v := range s.Vertices {
		mesh.Vertices = append(mesh.Vertices, types.Vec3{X: v[0], Y: v[1], Z: v[2]})
	}
	sub.Mesh = mesh
	return sub
}

func decodeTexture(db assetdb.Database, assetPath string) (image.Image, error) {
	data, err := db.ReadAsset(assetPath)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "decode texture %s", assetPath)
	}
	return img, nil
}
