// Package interact is the windowless half of the viewer: picking rays,
// frame hit tests, on-screen control layout and input routing. Keeping it
// free of the graphics binding lets it be tested headless.
package interact

import (
	"math"

	"memory-tree/internal/animate"
	"memory-tree/internal/mathutil"
)

// FrameHalfExtents is half the size of a frame's box in local space.
var FrameHalfExtents = mathutil.Vec3{0.6, 0.6, 0.05}

var up = mathutil.Vec3{0, 1, 0}

// Ray is a world-space half line. Dir is normalized.
type Ray struct {
	Origin mathutil.Vec3
	Dir    mathutil.Vec3
}

// ScreenRay returns the ray through pixel (x, y) of a w×h viewport seen by a
// perspective camera with vertical field of view fov degrees.
func ScreenRay(pose animate.CameraPose, fov float64, w, h int, x, y float64) Ray {
	fwd := pose.Forward
	if fwd.Len() < 1e-12 {
		fwd = mathutil.Vec3{0, 0, -1}
	}
	fwd = fwd.Normalize()
	right := fwd.Cross(up)
	if right.Len() < 1e-9 {
		right = mathutil.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	camUp := right.Cross(fwd)

	if w <= 0 || h <= 0 {
		return Ray{Origin: pose.Position, Dir: fwd}
	}
	t := math.Tan(mathutil.Deg2Rad(fov) / 2)
	aspect := float64(w) / float64(h)
	nx := (2*x/float64(w) - 1) * t * aspect
	ny := (1 - 2*y/float64(h)) * t

	dir := fwd.Add(right.Scale(nx)).Add(camUp.Scale(ny)).Normalize()
	return Ray{Origin: pose.Position, Dir: dir}
}

// PickFrame returns the id of the nearest frame whose box r hits, or -1.
func PickFrame(r Ray, group animate.GroupPose, frames []animate.FrameState) int {
	best, bestT := -1, math.Inf(1)
	gm := group.Matrix()
	for _, f := range frames {
		if f.Scale <= 0 {
			continue
		}
		inv := mathutil.Mat4Mul(gm, mathutil.Compose(f.Position, f.Rotation, 1)).RigidInverse()
		o := inv.MulPoint(r.Origin).Scale(1 / f.Scale)
		d := inv.MulDir(r.Dir).Scale(1 / f.Scale)
		if t, ok := hitBox(o, d, FrameHalfExtents); ok && t < bestT {
			best, bestT = f.ID, t
		}
	}
	return best
}

// hitBox intersects a ray with the box [-half, half] using the slab method
// and returns the entry distance along d.
func hitBox(o, d, half mathutil.Vec3) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if o[i] < -half[i] || o[i] > half[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t0 := (-half[i] - o[i]) * inv
		t1 := (half[i] - o[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math.Max(tmin, t0)
		tmax = math.Min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
