// Package orbit is a spherical orbit camera around the scene origin: drag to
// turn, wheel to zoom, no panning.
package orbit

import (
	"math"

	"memory-tree/internal/animate"
	"memory-tree/internal/mathutil"
)

// Limits.
const (
	MinDistance = 5.0
	MaxDistance = 40.0
	MinPolar    = 1e-3
	MaxPolar    = math.Pi / 1.5

	// RotateSpeed is radians per dragged pixel.
	RotateSpeed = 0.005
	// ZoomStep scales the distance per wheel notch.
	ZoomStep = 0.95
)

// FOV is the vertical field of view in degrees.
const FOV = 50.0

// Orbit holds the camera position in spherical coordinates.
// Polar is measured from +Y; Azimuth 0 looks from +Z.
type Orbit struct {
	Azimuth  float64
	Polar    float64
	Distance float64
	// Locked drops drag and zoom input, e.g. while a frame is being viewed.
	Locked bool
}

// New returns the default camera at (0, 0, 20) looking at the origin.
func New() *Orbit {
	return &Orbit{Polar: math.Pi / 2, Distance: 20}
}

// Drag turns the camera by a pointer movement in pixels.
func (o *Orbit) Drag(dx, dy float64) {
	if o.Locked {
		return
	}
	o.Azimuth = math.Mod(o.Azimuth-dx*RotateSpeed, 2*math.Pi)
	o.Polar = clamp(o.Polar-dy*RotateSpeed, MinPolar, MaxPolar)
}

// Zoom moves the camera in (positive notches) or out (negative).
func (o *Orbit) Zoom(notches float64) {
	if o.Locked || notches == 0 {
		return
	}
	o.Distance = clamp(o.Distance*math.Pow(ZoomStep, notches), MinDistance, MaxDistance)
}

// Position returns the world-space camera position.
func (o *Orbit) Position() mathutil.Vec3 {
	sp := math.Sin(o.Polar)
	return mathutil.Vec3{
		o.Distance * sp * math.Sin(o.Azimuth),
		o.Distance * math.Cos(o.Polar),
		o.Distance * sp * math.Cos(o.Azimuth),
	}
}

// Pose returns the camera pose for the animator.
func (o *Orbit) Pose(viewportWidth int) animate.CameraPose {
	p := o.Position()
	return animate.CameraPose{
		Position:      p,
		Forward:       p.Scale(-1).Normalize(),
		ViewportWidth: viewportWidth,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
