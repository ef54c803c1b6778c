package animate

import (
	"math"

	"memory-tree/internal/layout"
	"memory-tree/internal/mathutil"
)

// GroupSpinRate is the idle auto-rotation of the tree group (rad/s).
const GroupSpinRate = 0.1

// GroupSpin turns the tree group while no frame is active.
type GroupSpin struct {
	Yaw float64
}

// Step advances the spin. It pauses whenever a frame is active.
func (g *GroupSpin) Step(s Snapshot) {
	if s.Active.Valid {
		return
	}
	g.Yaw = wrapAngle(g.Yaw + s.Dt*GroupSpinRate)
}

// Pose returns the current group pose.
func (g *GroupSpin) Pose() GroupPose {
	return GroupPose{Yaw: g.Yaw}
}

// Topper is the star above the apex: it bobs and spins continuously.
type Topper struct {
	Position mathutil.Vec3
	Yaw      float64
}

// NewTopper places the star at rest.
func NewTopper() *Topper {
	return &Topper{Position: mathutil.Vec3{0, layout.TopperHeight, 0}}
}

// Step advances the star.
func (t *Topper) Step(s Snapshot) {
	t.Yaw = wrapAngle(t.Yaw + s.Dt*layout.TopperSpin)
	t.Position[1] = layout.TopperHeight + math.Sin(s.Time*layout.TopperBobSpeed)*layout.TopperBob
}

// Rotation returns the star's orientation.
func (t *Topper) Rotation() mathutil.Quat {
	return mathutil.AxisAngleQuat(up, t.Yaw)
}
