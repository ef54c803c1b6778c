package raster

import (
	"math"

	"memory-tree/internal/animate"
	"memory-tree/internal/mathutil"
)

// nearPlane is the closest view depth that is drawn.
const nearPlane = 0.1

var up = mathutil.Vec3{0, 1, 0}

// Camera projects view-space points to pixels with a square perspective lens.
// View space looks down -Z with +Y up.
type Camera struct {
	View  mathutil.Mat4 // world → view
	focal float64       // pixels per unit at depth 1
	half  float64
}

// NewCamera builds a camera for a size×size target with a vertical field of
// view of fov degrees.
func NewCamera(pose animate.CameraPose, fov float64, size int) Camera {
	fwd := pose.Forward
	if fwd.Len() < 1e-12 {
		fwd = mathutil.Vec3{0, 0, -1}
	}
	// Cameras face -Z, so aim local +Z away from the view direction.
	rot := mathutil.LookAt(pose.Position, pose.Position.Sub(fwd), up)
	world := mathutil.FromMat3Translation(mathutil.QuatToMat3(rot), pose.Position)

	half := float64(size) / 2
	return Camera{
		View:  world.RigidInverse(),
		focal: half / math.Tan(mathutil.Deg2Rad(fov)/2),
		half:  half,
	}
}

// Project maps a view-space point to a vertex. ok is false in front of the
// near plane.
func (c *Camera) Project(p mathutil.Vec3) (v Vertex, ok bool) {
	d := -p[2]
	if d < nearPlane {
		return Vertex{}, false
	}
	w := 1 / d
	return Vertex{
		X: c.half + p[0]*c.focal*w,
		Y: c.half - p[1]*c.focal*w,
		W: w,
	}, true
}

// PixelRadius returns the on-screen radius of a length r at view depth d.
func (c *Camera) PixelRadius(r, d float64) float64 {
	return r * c.focal / d
}
