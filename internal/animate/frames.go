package animate

import (
	"math"

	"memory-tree/internal/layout"
	"memory-tree/internal/mathutil"
)

// Frame motion constants.
const (
	FrameSmoothing       = 3.0
	ActiveFrameSmoothing = 5.0
	FrameScaleSmoothing  = 5.0
	ActiveFrameScale     = 1.5

	frameFloatSpeed     = 2.0
	frameFloatAmplitude = 0.2
)

// Distance in front of the camera for the active frame.
const (
	ActiveDistance       = 4.5
	NarrowActiveDistance = 5.0
	NarrowViewport       = 600
)

// FrameState is the animated pose of one frame.
type FrameState struct {
	ID       int
	Position mathutil.Vec3
	Rotation mathutil.Quat
	Scale    float64
}

// Matrix returns the frame's local→group transform.
func (f FrameState) Matrix() mathutil.Mat4 {
	return mathutil.Compose(f.Position, f.Rotation, f.Scale)
}

// FrameSet is the simulation arena for the photo frames.
type FrameSet struct {
	frames []layout.Frame
	states []FrameState
}

// NewFrameSet allocates one state per frame, starting at the tree pose.
func NewFrameSet(frames []layout.Frame) *FrameSet {
	fs := &FrameSet{
		frames: frames,
		states: make([]FrameState, len(frames)),
	}
	for i, f := range frames {
		fs.states[i] = FrameState{ID: f.ID, Position: f.TreePosition, Rotation: f.TreeRotation, Scale: 1}
	}
	return fs
}

// Len returns the number of frames.
func (fs *FrameSet) Len() int { return len(fs.states) }

// States returns the per-frame output, valid until the next Step.
func (fs *FrameSet) States() []FrameState { return fs.states }

// Layout returns the generated frame i.
func (fs *FrameSet) Layout(i int) layout.Frame { return fs.frames[i] }

// ActiveDistanceFor returns how far in front of the camera the active frame
// is held for the given viewport width.
func ActiveDistanceFor(viewportWidth int) float64 {
	if viewportWidth < NarrowViewport {
		return NarrowActiveDistance
	}
	return ActiveDistance
}

// ActiveTarget returns the group-local pose that holds a frame in front of
// the camera, facing it.
func ActiveTarget(cam CameraPose, group GroupPose) (mathutil.Vec3, mathutil.Quat) {
	world := cam.Position.Add(cam.Forward.Normalize().Scale(ActiveDistanceFor(cam.ViewportWidth)))

	inv := group.Matrix().RigidInverse()
	pos := inv.MulPoint(world)
	camLocal := inv.MulPoint(cam.Position)
	return pos, mathutil.LookAt(pos, camLocal, up)
}

// Step advances every frame by one tick. Frames other than the active one
// keep following their ordinary layout target.
func (fs *FrameSet) Step(s Snapshot) {
	if len(fs.states) == 0 {
		return
	}

	scattered := s.Scattered()
	var activePos mathutil.Vec3
	var activeRot mathutil.Quat
	if s.Active.Valid {
		activePos, activeRot = ActiveTarget(s.Camera, s.Group)
	}

	for i := range fs.states {
		st := &fs.states[i]
		f := &fs.frames[i]

		var pos mathutil.Vec3
		var rot mathutil.Quat
		rate, scale := FrameSmoothing, 1.0

		if s.Active.Is(f.ID) {
			pos, rot = activePos, activeRot
			rate, scale = ActiveFrameSmoothing, ActiveFrameScale
		} else {
			pos, rot = f.Pose(scattered)
			if scattered {
				pos[1] += math.Sin(s.Time*frameFloatSpeed+float64(f.ID)) * frameFloatAmplitude
			}
		}

		st.Position = Smooth(st.Position, pos, rate, s.Dt)
		st.Rotation = SmoothQuat(st.Rotation, rot, rate, s.Dt)
		st.Scale = SmoothScalar(st.Scale, scale, FrameScaleSmoothing, s.Dt)
	}
}
