package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Bloom defaults: only the brightest highlights glow, and softly.
const (
	BloomThreshold = 0.8
	BloomIntensity = 0.35

	// bloomReduction is how much the bright pass shrinks before it is
	// scaled back up; the round trip is the blur.
	bloomReduction = 8
)

// Bloom adds a soft glow around pixels whose luminance (0..1) exceeds
// threshold. The input is not modified.
func Bloom(img *image.NRGBA, threshold, intensity float64) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)
	if intensity <= 0 || b.Dx() < bloomReduction || b.Dy() < bloomReduction {
		return out
	}

	// Bright pass
	bright := image.NewRGBA(b)
	lit := false
	for i := 0; i < len(img.Pix); i += 4 {
		r, g, bl := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
		lum := (0.2126*r + 0.7152*g + 0.0722*bl) / 255
		if lum <= threshold {
			continue
		}
		k := (lum - threshold) / lum
		bright.Pix[i] = uint8(r*k + 0.5)
		bright.Pix[i+1] = uint8(g*k + 0.5)
		bright.Pix[i+2] = uint8(bl*k + 0.5)
		bright.Pix[i+3] = 255
		lit = true
	}
	if !lit {
		return out
	}

	// Down and back up
	small := image.NewRGBA(image.Rect(0, 0, b.Dx()/bloomReduction, b.Dy()/bloomReduction))
	draw.CatmullRom.Scale(small, small.Bounds(), bright, b, draw.Src, nil)
	glow := image.NewRGBA(b)
	draw.BiLinear.Scale(glow, glow.Bounds(), small, small.Bounds(), draw.Src, nil)

	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = clamp8(float64(out.Pix[i]) + float64(glow.Pix[i])*intensity)
		out.Pix[i+1] = clamp8(float64(out.Pix[i+1]) + float64(glow.Pix[i+1])*intensity)
		out.Pix[i+2] = clamp8(float64(out.Pix[i+2]) + float64(glow.Pix[i+2])*intensity)
	}
	return out
}
