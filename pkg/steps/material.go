package steps

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/paths"
	"github.com/arthur-debert/importsteps/pkg/suffix"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// MaterialExt is the extension of material assets
const MaterialExt = ".mat"

// TextureExts are the extensions searched for when assigning textures
var TextureExts = []string{".png", ".jpg", ".jpeg", ".tga", ".psd", ".tif", ".tiff", ".bmp", ".exr", ".hdr"}

// Material texture slots
const (
	SlotMain      = "_MainTex"
	SlotMetallic  = "_MetallicGlossMap"
	SlotNormal    = "_BumpMap"
	SlotHeight    = "_ParallaxMap"
	SlotOcclusion = "_OcclusionMap"
	SlotEmission  = "_EmissionMap"
)

var materialSlots = []struct {
	slot     string
	category suffix.Category
}{
	{SlotMain, suffix.Diffuse},
	{SlotMetallic, suffix.Metallic},
	{SlotNormal, suffix.NormalMap},
	{SlotHeight, suffix.HeightMap},
	{SlotOcclusion, suffix.OcclusionMap},
	{SlotEmission, suffix.EmissionMap},
}

// CreateMaterial finds or creates "<asset>_Mat.mat" next to a model and
// assigns the textures in that folder by their suffix
type CreateMaterial struct {
	// MatchString selects texture names; the separator and the slot suffix
	// are appended to it
	MatchString string `mapstructure:"match_string"`
	MatchCase   bool   `mapstructure:"match_case"`
}

// NewCreateMaterial returns material params with defaults
func NewCreateMaterial() *CreateMaterial {
	return &CreateMaterial{MatchString: "*"}
}

func (c *CreateMaterial) Kind() Kind { return KindCreateMaterial }

func (c *CreateMaterial) WorksFor() []types.TypeTag {
	return []types.TypeTag{types.TypeGameObject}
}

func (c *CreateMaterial) Describe(t types.Target) string {
	return fmt.Sprintf("Create standard material for %s from textures matching %s", t, c.MatchString)
}

// MaterialDocument is the serialized material
type MaterialDocument struct {
	Shader   string             `yaml:"shader"`
	Source   string             `yaml:"source,omitempty"`
	Textures map[string]string  `yaml:"textures,omitempty"`
	Floats   map[string]float64 `yaml:"floats,omitempty"`
	Keywords []string           `yaml:"keywords,omitempty"`
}

func (c *CreateMaterial) Apply(ctx *Context, step *Step, obj *types.ImportedObject) error {
	assetPath := ctx.AssetPath(obj)
	matPath, err := c.Generate(ctx, assetPath)
	if err != nil {
		return err
	}
	ctx.Logger.Info().Str("asset", assetPath).Str("material", matPath).Msg("Generated material")
	return nil
}

// Generate writes the material for assetPath and returns its path
func (c *CreateMaterial) Generate(ctx *Context, assetPath string) (string, error) {
	folder := paths.Dir(assetPath)
	matSuffix := ctx.Suffixes.SuffixFor(suffix.Material)
	if matSuffix == "" {
		matSuffix = "Mat"
	}
	matName := paths.Stem(assetPath) + ctx.Suffixes.Separator + matSuffix

	matPath, doc, err := c.load(ctx, folder, matName)
	if err != nil {
		return "", err
	}
	if doc.Source == "" {
		doc.Source = assetPath
	}

	textures, err := ctx.DB.List(folder, TextureExts...)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrApply, "list textures in %s", folder)
	}

	for _, tex := range textures {
		name := paths.Stem(tex)
		for _, s := range materialSlots {
			sfx := ctx.Suffixes.SuffixFor(s.category)
			if sfx == "" || !c.matches(ctx, name, sfx, assetPath) {
				continue
			}
			doc.Textures[s.slot] = tex
			switch s.slot {
			case SlotMetallic:
				doc.Floats["_Glossiness"] = 0.5
			case SlotEmission:
				doc.Keywords = appendUnique(doc.Keywords, "_EMISSION")
			}
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "marshal material")
	}
	if err := ctx.DB.WriteAsset(matPath, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrApply, "write material %s", matPath)
	}
	return matPath, nil
}

// load returns the existing material named matName in folder, matched
// case-insensitively, or a fresh one
func (c *CreateMaterial) load(ctx *Context, folder, matName string) (string, *MaterialDocument, error) {
	doc := &MaterialDocument{Shader: "Standard"}

	existing, err := ctx.DB.List(folder, MaterialExt)
	if err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrApply, "list materials in %s", folder)
	}

	matPath := folder + "/" + matName + MaterialExt
	for _, p := range existing {
		if !strings.EqualFold(paths.Stem(p), matName) {
			continue
		}
		matPath = p
		data, err := ctx.DB.ReadAsset(p)
		if err != nil {
			return "", nil, errors.Wrapf(err, errors.ErrApply, "read material %s", p)
		}
		if err := yaml.Unmarshal(data, doc); err != nil {
			return "", nil, errors.Wrapf(err, errors.ErrApply, "parse material %s", p)
		}
		break
	}

	if doc.Textures == nil {
		doc.Textures = map[string]string{}
	}
	if doc.Floats == nil {
		doc.Floats = map[string]float64{}
	}
	return matPath, doc, nil
}

func (c *CreateMaterial) matches(ctx *Context, textureName, sfx, assetPath string) bool {
	expr := ctx.Resolve(c.MatchString, assetPath, "", "") + ctx.Suffixes.Separator + sfx
	if !c.MatchCase {
		expr = strings.ToLower(expr)
		textureName = strings.ToLower(textureName)
	}
	return ctx.Matcher.Compiler().Compile(expr).Matches(textureName)
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
