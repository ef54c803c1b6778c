package interact

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-tree/internal/animate"
	"memory-tree/internal/mathutil"
	"memory-tree/internal/orbit"
	"memory-tree/internal/scene"
	"memory-tree/internal/texture"
)

const (
	screenW = 1280
	screenH = 720
)

func newController(t *testing.T) *Controller {
	t.Helper()
	sc := scene.New(scene.Config{Ornaments: 100, Frames: 12, Offline: true}, rand.New(rand.NewSource(5)), nil)
	return NewController(sc, orbit.New())
}

// screenPos projects a world point for the default camera.
func screenPos(p mathutil.Vec3) (float64, float64) {
	f := (screenH / 2) / math.Tan(mathutil.Deg2Rad(orbit.FOV)/2)
	d := 20 - p[2]
	return screenW/2 + p[0]/d*f, screenH/2 - p[1]/d*f
}

// nearestFrame returns the frame closest to the default camera and its
// world position.
func nearestFrame(sc *scene.Scene) (int, mathutil.Vec3) {
	gm := sc.Group().Matrix()
	best, bestZ := -1, math.Inf(-1)
	var pos mathutil.Vec3
	for _, f := range sc.Frames() {
		p := gm.MulPoint(f.Position)
		if p[2] > bestZ {
			best, bestZ, pos = f.ID, p[2], p
		}
	}
	return best, pos
}

func TestScreenRayCenter(t *testing.T) {
	r := ScreenRay(orbit.New().Pose(screenW), orbit.FOV, screenW, screenH, screenW/2, screenH/2)
	assert.InDelta(t, 0, r.Dir.Dist(mathutil.Vec3{0, 0, -1}), 1e-9)

	// The top edge is half the field of view above the axis.
	r = ScreenRay(orbit.New().Pose(screenW), orbit.FOV, screenW, screenH, screenW/2, 0)
	angle := math.Acos(r.Dir.Dot(mathutil.Vec3{0, 0, -1}))
	assert.InDelta(t, orbit.FOV/2, mathutil.Rad2Deg(angle), 1e-9)
}

func TestPickFrame(t *testing.T) {
	frames := []animate.FrameState{
		{ID: 0, Position: mathutil.Vec3{0, 0, 0}, Rotation: mathutil.QuatIdentity(), Scale: 1},
		{ID: 1, Position: mathutil.Vec3{0, 0, 5}, Rotation: mathutil.QuatIdentity(), Scale: 1},
		{ID: 2, Position: mathutil.Vec3{3, 0, 0}, Rotation: mathutil.QuatIdentity(), Scale: 2},
	}
	ray := Ray{Origin: mathutil.Vec3{0, 0, 20}, Dir: mathutil.Vec3{0, 0, -1}}
	assert.Equal(t, 1, PickFrame(ray, animate.GroupPose{}, frames), "nearest wins")

	ray.Origin = mathutil.Vec3{4.1, 0, 20}
	assert.Equal(t, 2, PickFrame(ray, animate.GroupPose{}, frames), "scaled frame is larger")

	ray.Origin = mathutil.Vec3{0, 5, 20}
	assert.Equal(t, -1, PickFrame(ray, animate.GroupPose{}, frames))

	// Turning the group moves the frames with it.
	ray.Origin = mathutil.Vec3{5, 0, 20}
	turned := frames[1:2]
	assert.Equal(t, -1, PickFrame(ray, animate.GroupPose{}, turned))
	hit := PickFrame(ray, animate.GroupPose{Yaw: math.Pi / 2}, turned)
	ray.Origin = mathutil.Vec3{-5, 0, 20}
	hit = max(hit, PickFrame(ray, animate.GroupPose{Yaw: math.Pi / 2}, turned))
	assert.Equal(t, 1, hit)
}

func TestClickActivatesFrame(t *testing.T) {
	c := newController(t)
	id, pos := nearestFrame(c.Scene)
	x, y := screenPos(pos)

	c.Handle(Input{Width: screenW, Height: screenH, X: x, Y: y, Click: true, DragDX: 50})
	assert.True(t, c.Scene.Selection().Is(id))
	assert.True(t, c.Orbit.Locked)
	assert.Equal(t, orbit.New().Azimuth, c.Orbit.Azimuth, "consumed click does not turn the camera")
}

func TestClickOnNothing(t *testing.T) {
	c := newController(t)
	c.Handle(Input{Width: screenW, Height: screenH, X: 5, Y: 5, Click: true})
	assert.False(t, c.Scene.Selection().Valid)
}

func TestModeButton(t *testing.T) {
	c := newController(t)
	r := ModeButtonRect(screenW, screenH)
	c.Handle(Input{Width: screenW, Height: screenH, X: r.X + r.W/2, Y: r.Y + r.H/2, Click: true})
	assert.Equal(t, animate.Scattered, c.Scene.Mode())

	c.Handle(Input{Width: screenW, Height: screenH, ToggleMode: true})
	assert.Equal(t, animate.Gathered, c.Scene.Mode())
}

func TestCloseButtonOnlyWhileActive(t *testing.T) {
	c := newController(t)
	r := CloseButtonRect(screenW, screenH)
	in := Input{Width: screenW, Height: screenH, X: r.X + 1, Y: r.Y + 1, Click: true}

	c.Handle(in)
	assert.False(t, c.Scene.Selection().Valid)

	c.Scene.Activate(4)
	c.Handle(in)
	assert.False(t, c.Scene.Selection().Valid)
	assert.False(t, c.Orbit.Locked)

	c.Scene.Activate(4)
	c.Handle(Input{Width: screenW, Height: screenH, Close: true})
	assert.False(t, c.Scene.Selection().Valid)
}

func TestOrbitLockedWhileActive(t *testing.T) {
	c := newController(t)
	c.Scene.Activate(1)
	c.Handle(Input{Width: screenW, Height: screenH, DragDX: 100, Wheel: 3})
	assert.Equal(t, *orbit.New(), orbitState(c.Orbit))

	c.Scene.Close()
	c.Handle(Input{Width: screenW, Height: screenH, DragDX: 100, Wheel: 3})
	assert.NotEqual(t, orbit.New().Azimuth, c.Orbit.Azimuth)
	assert.Less(t, c.Orbit.Distance, 20.0)
}

func orbitState(o *orbit.Orbit) orbit.Orbit {
	return orbit.Orbit{Azimuth: o.Azimuth, Polar: o.Polar, Distance: o.Distance}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestDropPhoto(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "us.png")
	writePNG(t, photo)
	other := filepath.Join(dir, "them.png")
	writePNG(t, other)
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("not a photo"), 0o644))

	c := newController(t)

	// No active frame: ignored.
	c.Handle(Input{Width: screenW, Height: screenH, Dropped: []string{photo}})
	for id := 0; id < c.Scene.FrameCount(); id++ {
		assert.Zero(t, c.Scene.PhotoSlot(id).Gen)
	}

	c.Scene.Activate(3)
	c.Handle(Input{Width: screenW, Height: screenH, Dropped: []string{photo, other}})
	assert.Zero(t, c.Scene.PhotoSlot(3).Gen, "more than one file")

	c.Handle(Input{Width: screenW, Height: screenH, Dropped: []string{notes}})
	assert.Zero(t, c.Scene.PhotoSlot(3).Gen, "not an image")

	c.Handle(Input{Width: screenW, Height: screenH, Dropped: []string{photo}})
	assert.Equal(t, texture.LocalSource(photo), c.Scene.PhotoSlot(3).Src)
	assert.Equal(t, uint64(1), c.Scene.PhotoSlot(3).Gen)
}

func TestColorFade(t *testing.T) {
	f := NewColorFade(ScatterColor)
	assert.Equal(t, ScatterColor, f.Update(0.1))

	f.To(GatherColor)
	mid := f.Update(FadeDuration / 2)
	assert.NotEqual(t, ScatterColor, mid)
	assert.NotEqual(t, GatherColor, mid)
	assert.Greater(t, mid.R, ScatterColor.R)

	// Re-targeting the same color does not restart.
	f.To(GatherColor)
	assert.Equal(t, GatherColor, f.Update(FadeDuration))
	assert.Equal(t, GatherColor, f.Color())
}

func TestLayout(t *testing.T) {
	m := ModeButtonRect(800, 600)
	assert.InDelta(t, 400, m.X+m.W/2, 1e-9)
	assert.Less(t, m.Y+m.H, 600.0)

	cl := CloseButtonRect(800, 600)
	assert.Greater(t, cl.X, 400.0)
	assert.Less(t, cl.Y, 300.0)
	assert.True(t, cl.Contains(cl.X, cl.Y))
	assert.False(t, cl.Contains(cl.X+cl.W, cl.Y))

	assert.Equal(t, "Scatter", ModeLabel(animate.Gathered))
	assert.Equal(t, "Gather", ModeLabel(animate.Scattered))
}

func TestPhotoHintUnderCloseButton(t *testing.T) {
	cl := CloseButtonRect(800, 600)
	x, y := PhotoHintOrigin(800, 600, 120)
	assert.InDelta(t, cl.X+cl.W, x+120, 1e-9)
	assert.Greater(t, y, cl.Y+cl.H)
	assert.Less(t, y, ModeButtonRect(800, 600).Y)
	assert.Contains(t, PhotoHint, "Change photo")

	// A hint wider than the window stays on screen.
	x, _ = PhotoHintOrigin(200, 600, 500)
	assert.Equal(t, float64(closeButtonInset), x)
}

func TestPointerClick(t *testing.T) {
	var p Pointer
	click, _, _ := p.Update(10, 10, true)
	assert.False(t, click)
	p.Update(11, 10, true)
	click, dx, dy := p.Update(11, 11, false)
	assert.True(t, click)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestPointerDrag(t *testing.T) {
	var p Pointer
	p.Update(10, 10, true)
	_, dx, dy := p.Update(20, 10, true)
	assert.Equal(t, 10.0, dx)
	assert.Zero(t, dy)
	assert.True(t, p.Dragging())

	_, dx, dy = p.Update(22, 13, true)
	assert.Equal(t, 2.0, dx)
	assert.Equal(t, 3.0, dy)

	click, _, _ := p.Update(22, 13, false)
	assert.False(t, click, "a drag never clicks")
	assert.False(t, p.Dragging())
}
