package raster

import (
	"math"

	"memory-tree/internal/mathutil"
)

// minSplatRadius keeps distant ornaments at least one pixel wide.
const minSplatRadius = 0.6

// RasterizeSphere draws a sphere from its view-space center and radius as a
// screen-space disk with per-pixel depth and normals. s.Shade is ignored.
func RasterizeSphere(fb *FrameBuffer, cam *Camera, center mathutil.Vec3, radius float64, s *Surface, lc *LightConfig) {
	d := -center[2]
	if d-radius < nearPlane {
		return
	}
	c, _ := cam.Project(center)
	pr := math.Max(cam.PixelRadius(radius, d), minSplatRadius)

	minX := max(int(c.X-pr), 0)
	maxX := min(int(c.X+pr)+1, fb.Width-1)
	minY := max(int(c.Y-pr), 0)
	maxY := min(int(c.Y+pr)+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	invPR := 1 / pr
	for sy := minY; sy <= maxY; sy++ {
		ny := (float64(sy) + 0.5 - c.Y) * invPR
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			nx := (float64(sx) + 0.5 - c.X) * invPR
			q := nx*nx + ny*ny
			if q > 1 {
				continue
			}
			nz := math.Sqrt(1 - q)
			z := 1 / (d - radius*nz)
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			shade := lc.ComputeShade(mathutil.Vec3{nx, -ny, nz})
			r, g, b := lc.Resolve(s.Color.R, s.Color.G, s.Color.B, shade, s.Emissive)

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = r
			fb.Color[pxIdx+1] = g
			fb.Color[pxIdx+2] = b
			fb.Color[pxIdx+3] = 255
		}
	}
}
