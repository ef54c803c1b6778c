package raster

import (
	"image/color"
	"math"

	"memory-tree/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are in view
// space: +Y up, +Z toward the viewer.
type LightConfig struct {
	LightDir  mathutil.Vec3
	RimDir    mathutil.Vec3
	ViewDir   mathutil.Vec3
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	Emission  float64 // scales material emissive intensity
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a night scene: a cool key light from the upper
// right and a warm fill from below behind the tree.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{10, 20, 10}.Normalize()
	rimDir := mathutil.Vec3{-10, -10, -10}.Normalize()
	viewDir := mathutil.Vec3{0, 0, 1}

	halfMain := lightDir.Add(viewDir).Normalize()

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  halfMain,
		Ambient:   0.30,
		Hemi:      0.25,
		Direct:    1.20,
		Rim:       0.55,
		SpecInt:   0.60,
		SpecPow:   24.0,
		Exposure:  1.0,
		Emission:  0.35,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a view-space normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	// Lambertian (abs for double-sided)
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill
	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// EmissiveOf converts an emissive color and intensity to linear radiance.
func (lc *LightConfig) EmissiveOf(c color.RGBA, intensity float64) [3]float64 {
	k := intensity * lc.Emission
	return [3]float64{
		srgbToLinear[c.R] * k,
		srgbToLinear[c.G] * k,
		srgbToLinear[c.B] * k,
	}
}

// Resolve shades an sRGB texel and returns the display color.
func (lc *LightConfig) Resolve(cr, cg, cb uint8, shade float64, emissive [3]float64) (uint8, uint8, uint8) {
	k := shade * lc.Exposure
	// sRGB decode → linear (LUT), shading, ACES, linear → sRGB
	fr := math.Pow(ACESTonemap(srgbToLinear[cr]*k+emissive[0]), lc.InvGamma)
	fg := math.Pow(ACESTonemap(srgbToLinear[cg]*k+emissive[1]), lc.InvGamma)
	fb := math.Pow(ACESTonemap(srgbToLinear[cb]*k+emissive[2]), lc.InvGamma)
	return clamp255(fr * 255), clamp255(fg * 255), clamp255(fb * 255)
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
