// Package layout generates the static target geometry of the scene: ornaments
// scattered through a cone volume and photo frames on a spiral and a ring.
//
// Generation is pure given the random source. Callers that need reproducible
// output pass a seeded *rand.Rand.
package layout

import (
	"image/color"

	"memory-tree/internal/mathutil"
)

// Group is the visual role of an ornament.
type Group uint8

const (
	Accent Group = iota
	Glow
	Particle
)

func (g Group) String() string {
	switch g {
	case Accent:
		return "accent"
	case Glow:
		return "glow"
	case Particle:
		return "particle"
	}
	return "unknown"
}

// Shape is the mesh an ornament is drawn with.
type Shape uint8

const (
	Sphere Shape = iota
	Cube
)

func (s Shape) String() string {
	if s == Cube {
		return "cube"
	}
	return "sphere"
}

// Ornament is one decorative instance. It is immutable after generation.
type Ornament struct {
	Position      mathutil.Vec3 // tree (gathered) position
	Rotation      mathutil.Vec3 // base euler XYZ, radians
	Scale         float64
	ExplodeOffset mathutil.Vec3 // added to Position when scattered
	Color         color.RGBA
	Shape         Shape
	Group         Group
}

// Frame is one photo frame with both precomputed poses.
type Frame struct {
	ID           int
	TreePosition mathutil.Vec3
	TreeRotation mathutil.Quat
	RingPosition mathutil.Vec3
	RingRotation mathutil.Quat
}

// Pose returns the precomputed pose for the given layout.
func (f Frame) Pose(scattered bool) (mathutil.Vec3, mathutil.Quat) {
	if scattered {
		return f.RingPosition, f.RingRotation
	}
	return f.TreePosition, f.TreeRotation
}
