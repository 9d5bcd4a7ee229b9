package suffix

import (
	"image"
	"image/color"
)

// AnalysisOptions tunes the texture classifier
type AnalysisOptions struct {
	// SampleStep is the pixel stride on both axes
	SampleStep int `koanf:"sample_step" mapstructure:"sample_step" toml:"sample_step" yaml:"sample_step"`
	// NormalFraction is the share of flat normal samples above which a
	// texture is a normal map
	NormalFraction float64 `koanf:"normal_fraction" mapstructure:"normal_fraction" toml:"normal_fraction" yaml:"normal_fraction"`
	// BlackFraction is the share of black samples above which a gray
	// texture is an emission map
	BlackFraction float64 `koanf:"black_fraction" mapstructure:"black_fraction" toml:"black_fraction" yaml:"black_fraction"`
}

// DefaultAnalysisOptions samples every 8th pixel with 10% and 40% thresholds
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{SampleStep: 8, NormalFraction: 0.1, BlackFraction: 0.4}
}

// flatNormal is the tangent space up vector encoded as 8 bit color
var flatNormal = color.RGBA{R: 128, G: 128, B: 255, A: 255}

const normalTolerance = 2

// Analyse guesses the category of a texture from sampled pixel statistics.
//
// A square power-of-two texture is Diffuse. More than NormalFraction flat
// normal samples make it a NormalMap. A texture whose average color is gray
// is Metallic, or EmissionMap when more than BlackFraction of the samples are
// black. Anything else is Other.
func Analyse(img image.Image, opts AnalysisOptions) Category {
	if img == nil {
		return Other
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return Other
	}

	step := opts.SampleStep
	if step <= 0 {
		step = 1
	}

	var samples, normals, blacks int
	var sumR, sumG, sumB uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			samples++
			sumR += uint64(c.R)
			sumG += uint64(c.G)
			sumB += uint64(c.B)

			if c.R == 0 && c.G == 0 && c.B == 0 {
				blacks++
			}
			if near(c.R, flatNormal.R) && near(c.G, flatNormal.G) && near(c.B, flatNormal.B) {
				normals++
			}
		}
	}

	result := Other
	if w == h && isPowerOfTwo(w) {
		result = Diffuse
	}

	if float64(normals) > float64(samples)*opts.NormalFraction {
		result = NormalMap
	}

	if sumR == sumG && sumG == sumB {
		result = Metallic
		if float64(blacks) > float64(samples)*opts.BlackFraction {
			result = EmissionMap
		}
	}

	return result
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -normalTolerance && d <= normalTolerance
}

func isPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}
