package raster

import (
	"image"
	"image/color"
	"math"
)

// Vertex is a projected vertex: pixel position, inverse view depth and
// texture coordinates.
type Vertex struct {
	X, Y float64
	W    float64 // 1 / view depth
	U, V float64
}

// Surface is the flat-shaded material of one triangle.
type Surface struct {
	Color    color.RGBA
	Tex      *image.NRGBA // sampled instead of Color when set
	Shade    float64
	Emissive [3]float64 // linear radiance added after shading
}

// RasterizeTriangle rasterizes a single triangle with perspective-correct
// texture mapping, z-buffer, lighting and ACES tone mapping.
//
// This is the hot path; the pixel loop does not allocate.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, s *Surface, lc *LightConfig) {
	x0, y0, z0 := v[0].X, v[0].Y, v[0].W
	x1, y1, z1 := v[1].X, v[1].Y, v[1].W
	x2, y2, z2 := v[2].X, v[2].Y, v[2].W

	// Bounding box
	w, h := fb.Width, fb.Height
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// UV/w interpolates linearly in screen space.
	tex := s.Tex
	u0, u1, u2 := v[0].U*z0, v[1].U*z1, v[2].U*z2
	t0, t1, t2 := v[0].V*z0, v[1].V*z1, v[2].V*z2

	flatR, flatG, flatB := lc.Resolve(s.Color.R, s.Color.G, s.Color.B, s.Shade, s.Emissive)

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			b0 := (dy12*dsx + dx21*dsy) * invDet
			b1 := (dy20*dsx + dx02*dsy) * invDet
			b2 := 1.0 - b0 - b1

			if b0 < -0.001 || b1 < -0.001 || b2 < -0.001 {
				continue
			}

			z := b0*z0 + b1*z1 + b2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb := flatR, flatG, flatB
			if tex != nil {
				inv := 1 / z
				tr, tg, tb, ta := SampleTexture(tex, (b0*u0+b1*u1+b2*u2)*inv, (b0*t0+b1*t1+b2*t2)*inv)
				// Skip transparent texels
				if ta < 8 {
					continue
				}
				cr, cg, cb = lc.Resolve(tr, tg, tb, s.Shade, s.Emissive)
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = cr
			fb.Color[pxIdx+1] = cg
			fb.Color[pxIdx+2] = cb
			fb.Color[pxIdx+3] = 255
		}
	}
}
