package animate

import (
	"math"

	"memory-tree/internal/classify"
	"memory-tree/internal/layout"
	"memory-tree/internal/mathutil"
)

// OrnamentSmoothing is the position smoothing rate for ornaments (1/s).
const OrnamentSmoothing = 4.0

// Breathing pulse: scale oscillates by ±breathAmount·base at breathSpeed.
const (
	breathSpeed  = 3.0
	breathAmount = 0.15
)

// Motion is the idle motion of a visual group.
type Motion struct {
	Speed     float64 // float frequency and spin rate
	Float     float64 // vertical float amplitude while scattered
	Breathing bool
}

// MotionFor returns the idle motion for group. Accents and glows float
// slowly and breathe; particles float faster and wider without breathing.
func MotionFor(g layout.Group) Motion {
	switch g {
	case layout.Accent:
		return Motion{Speed: 0.5, Float: 0.5, Breathing: true}
	case layout.Glow:
		return Motion{Speed: 0.2, Float: 0.8, Breathing: true}
	default:
		return Motion{Speed: 1.0, Float: 1.5}
	}
}

// Transform is the pose written into an instance slot each tick.
type Transform struct {
	Position mathutil.Vec3
	Rotation mathutil.Vec3 // euler XYZ, radians
	Scale    float64
}

// Matrix returns the instance's local→group transform.
func (t Transform) Matrix() mathutil.Mat4 {
	return mathutil.Compose(t.Position, mathutil.EulerToQuat(t.Rotation[0], t.Rotation[1], t.Rotation[2]), t.Scale)
}

// ornamentSlot is the persistent simulation state of one instance.
type ornamentSlot struct {
	base     layout.Ornament
	smoothed mathutil.Vec3
	spin     mathutil.Vec3
}

// OrnamentBatch is the simulation arena of one render batch. Slots and the
// transform buffer are allocated once and updated in place.
type OrnamentBatch struct {
	Key    classify.Key
	motion Motion
	slots  []ornamentSlot
	out    []Transform
}

// NewOrnamentBatch allocates the arena for b. Smoothed positions start at
// the tree position.
func NewOrnamentBatch(b classify.Batch) *OrnamentBatch {
	ob := &OrnamentBatch{
		Key:    b.Key,
		motion: MotionFor(b.Group),
		slots:  make([]ornamentSlot, len(b.Members)),
		out:    make([]Transform, len(b.Members)),
	}
	for i, o := range b.Members {
		ob.slots[i] = ornamentSlot{base: o, smoothed: o.Position, spin: o.Rotation}
		ob.out[i] = Transform{Position: o.Position, Rotation: o.Rotation, Scale: o.Scale}
	}
	return ob
}

// Len returns the fixed number of instances.
func (ob *OrnamentBatch) Len() int { return len(ob.slots) }

// Motion returns the batch's idle motion.
func (ob *OrnamentBatch) Motion() Motion { return ob.motion }

// Transforms returns the per-slot output, valid until the next Step.
func (ob *OrnamentBatch) Transforms() []Transform { return ob.out }

// Base returns the generated ornament in slot i.
func (ob *OrnamentBatch) Base(i int) layout.Ornament { return ob.slots[i].base }

// Step advances every instance by one tick. An empty batch is a no-op.
func (ob *OrnamentBatch) Step(s Snapshot) {
	m := ob.motion
	scattered := s.Scattered()
	spin := s.Dt * m.Speed

	for i := range ob.slots {
		sl := &ob.slots[i]
		d := &sl.base
		phase := float64(i)

		target := d.Position
		if scattered {
			target = target.Add(d.ExplodeOffset)
			target[1] += math.Sin(s.Time*m.Speed+phase) * m.Float
		}
		sl.smoothed = Smooth(sl.smoothed, target, OrnamentSmoothing, s.Dt)

		sl.spin[0] = wrapAngle(sl.spin[0] + spin)
		sl.spin[1] = wrapAngle(sl.spin[1] + spin)

		scale := d.Scale
		if m.Breathing {
			scale += math.Sin(s.Time*breathSpeed+phase) * d.Scale * breathAmount
		}

		ob.out[i] = Transform{Position: sl.smoothed, Rotation: sl.spin, Scale: scale}
	}
}
