package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestDownsampleSize(t *testing.T) {
	img := solid(64, color.NRGBA{10, 200, 30, 255})
	out := Downsample(img, 32)
	assert.Equal(t, image.Rect(0, 0, 32, 32), out.Bounds())

	c := out.NRGBAAt(16, 16)
	assert.InDelta(t, 200, int(c.G), 1)
	assert.Equal(t, uint8(255), c.A)
}

func TestDownsampleNoOp(t *testing.T) {
	img := solid(16, color.NRGBA{1, 2, 3, 255})
	assert.Same(t, img, Downsample(img, 16))
	assert.Same(t, img, Downsample(img, 0))
}

func TestDownsampleTransparentEdge(t *testing.T) {
	img := solid(8, color.NRGBA{})
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	out := Downsample(img, 4)
	// Edge pixels fade in alpha, not toward black.
	c := out.NRGBAAt(1, 2)
	assert.Greater(t, int(c.R), 240)
}

func TestBloomLeavesDarkImages(t *testing.T) {
	img := solid(32, color.NRGBA{40, 40, 40, 255})
	out := Bloom(img, BloomThreshold, BloomIntensity)
	assert.Equal(t, img.Pix, out.Pix)
	assert.NotSame(t, img, out)
}

func TestBloomSpreadsLight(t *testing.T) {
	img := solid(64, color.NRGBA{0, 0, 0, 255})
	for y := 28; y < 36; y++ {
		for x := 28; x < 36; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	out := Bloom(img, BloomThreshold, BloomIntensity)

	// A dark pixel next to the highlight picks up glow; far corners stay dark.
	assert.Greater(t, out.NRGBAAt(25, 32).R, uint8(0))
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).R)
	// The source is untouched.
	assert.Equal(t, uint8(0), img.NRGBAAt(25, 32).R)
}
