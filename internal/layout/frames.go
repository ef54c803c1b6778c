package layout

import (
	"math"

	"memory-tree/internal/mathutil"
)

// DefaultFrameCount is the number of photo frames in a scene.
const DefaultFrameCount = 12

const (
	// RingRadius is the radius of the scattered frame ring.
	RingRadius = 6.0
	// RingFront rotates index 0 onto the +Z side facing the default camera.
	RingFront = math.Pi / 2

	// Tree spiral: heights span 80% of the tree starting one unit above the
	// base, each frame turns spiralStep radians further around the trunk.
	spiralSpan  = 0.8
	spiralBase  = 1.0
	spiralStep  = 2.5
	surfacePush = 0.5
)

var up = mathutil.Vec3{0, 1, 0}

// Frames generates count frames with their tree and ring poses.
func Frames(count int) []Frame {
	if count < 0 {
		count = 0
	}
	out := make([]Frame, 0, count)

	for i := 0; i < count; i++ {
		h := float64(i)/float64(count)*(TreeHeight*spiralSpan) + spiralBase
		r := ConeRadius(h) + surfacePush
		angle := float64(i) * spiralStep

		treePos := mathutil.Vec3{math.Cos(angle) * r, h - TreeHeight/2, math.Sin(angle) * r}

		ringAngle := RingAngle(i, count)
		ringPos := mathutil.Vec3{math.Cos(ringAngle) * RingRadius, 0, math.Sin(ringAngle) * RingRadius}

		out = append(out, Frame{
			ID:           i,
			TreePosition: treePos,
			TreeRotation: faceOutward(treePos),
			RingPosition: ringPos,
			RingRotation: faceOutward(ringPos),
		})
	}
	return out
}

// RingAngle returns the angle of frame i on a ring of count frames.
func RingAngle(i, count int) float64 {
	return float64(i)/float64(count)*math.Pi*2 + RingFront
}

// faceOutward looks from pos toward the point twice as far along the same
// horizontal direction, so the frame faces directly away from the axis.
func faceOutward(pos mathutil.Vec3) mathutil.Quat {
	target := mathutil.Vec3{pos[0] * 2, pos[1], pos[2] * 2}
	return mathutil.LookAt(pos, target, up)
}
