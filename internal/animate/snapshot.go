// Package animate is the per-tick simulation: it keeps a persistent smoothed
// pose for every ornament and frame and eases each one toward the target of
// the current layout, with idle floating, breathing and spin layered on top.
//
// Every Step takes an immutable Snapshot of the inputs for the tick. Nothing
// in this package reads shared state, so a step is a pure function of the
// previous buffers and the snapshot.
package animate

import (
	"math"

	"memory-tree/internal/activation"
	"memory-tree/internal/mathutil"
)

// Mode is the global layout.
type Mode uint8

const (
	Gathered Mode = iota
	Scattered
)

func (m Mode) String() string {
	if m == Scattered {
		return "scattered"
	}
	return "gathered"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Scattered {
		return Gathered
	}
	return Scattered
}

// CameraPose is the world-space camera for the tick.
type CameraPose struct {
	Position mathutil.Vec3
	Forward  mathutil.Vec3 // need not be normalized
	// ViewportWidth is the drawable width in pixels. Narrow viewports pull
	// the active frame further from the camera so it stays on screen.
	ViewportWidth int
}

// GroupPose is the transform of the group housing every instance. The group
// sits at the origin and only turns about the vertical axis.
type GroupPose struct {
	Yaw float64
}

// Matrix returns the group's local→world transform.
func (g GroupPose) Matrix() mathutil.Mat4 {
	return mathutil.Compose(mathutil.Vec3{}, g.Rotation(), 1)
}

// Rotation returns the group's orientation.
func (g GroupPose) Rotation() mathutil.Quat {
	return mathutil.AxisAngleQuat(up, g.Yaw)
}

// WorldToLocal maps a world-space point into group-local space.
func (g GroupPose) WorldToLocal(p mathutil.Vec3) mathutil.Vec3 {
	return g.Matrix().RigidInverse().MulPoint(p)
}

// Snapshot is the full input of one tick.
type Snapshot struct {
	Dt     float64 // seconds since the previous tick
	Time   float64 // seconds since the scene started
	Mode   Mode
	Active activation.Selection
	Camera CameraPose
	Group  GroupPose
}

// Scattered reports whether the snapshot is in the exploded layout.
func (s Snapshot) Scattered() bool { return s.Mode == Scattered }

var up = mathutil.Vec3{0, 1, 0}

// DampFactor is the per-tick fraction of the remaining distance covered
// with exponential smoothing at rate (1/s) over dt seconds. It is clamped to
// [0, 1] so a long tick lands on the target instead of overshooting.
func DampFactor(rate, dt float64) float64 {
	f := rate * dt
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Smooth moves current toward target by DampFactor(rate, dt).
func Smooth(current, target mathutil.Vec3, rate, dt float64) mathutil.Vec3 {
	return current.Lerp(target, DampFactor(rate, dt))
}

// SmoothQuat is the spherical equivalent of Smooth.
func SmoothQuat(current, target mathutil.Quat, rate, dt float64) mathutil.Quat {
	return current.Slerp(target, DampFactor(rate, dt))
}

// SmoothScalar is the scalar equivalent of Smooth.
func SmoothScalar(current, target, rate, dt float64) float64 {
	return current + (target-current)*DampFactor(rate, dt)
}

func wrapAngle(a float64) float64 {
	return math.Mod(a, 2*math.Pi)
}
