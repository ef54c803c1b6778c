package interact

import (
	"log/slog"

	"memory-tree/internal/orbit"
	"memory-tree/internal/scene"
	"memory-tree/internal/texture"
)

// Input is one frame of pointer and keyboard state, already reduced by the
// window layer.
type Input struct {
	Width, Height int
	X, Y          float64 // pointer position
	// Click is a primary button release that did not drag.
	Click          bool
	DragDX, DragDY float64
	Wheel          float64
	ToggleMode     bool
	Close          bool
	Dropped        []string
}

// Controller routes input to a scene and its orbit camera.
type Controller struct {
	Scene *scene.Scene
	Orbit *orbit.Orbit
	Fade  *ColorFade
}

// NewController returns a controller with the mode button color settled.
func NewController(sc *scene.Scene, o *orbit.Orbit) *Controller {
	return &Controller{Scene: sc, Orbit: o, Fade: NewColorFade(ModeColor(sc.Mode()))}
}

// Handle applies one frame of input. A click goes to the close button, then
// the mode button, then the frames; the first taker consumes it, and a
// consumed click never reaches the camera.
func (c *Controller) Handle(in Input) {
	if in.Close {
		c.Scene.Close()
	}
	if in.ToggleMode {
		c.Scene.ToggleMode()
	}
	c.drop(in.Dropped)

	consumed := in.Click && c.click(in)

	c.Orbit.Locked = !c.Scene.ControlsEnabled()
	if !consumed {
		c.Orbit.Drag(in.DragDX, in.DragDY)
		c.Orbit.Zoom(in.Wheel)
	}
	c.Fade.To(ModeColor(c.Scene.Mode()))
}

func (c *Controller) click(in Input) bool {
	if c.Scene.Selection().Valid && CloseButtonRect(in.Width, in.Height).Contains(in.X, in.Y) {
		c.Scene.Close()
		return true
	}
	if ModeButtonRect(in.Width, in.Height).Contains(in.X, in.Y) {
		c.Scene.ToggleMode()
		return true
	}

	ray := ScreenRay(c.Orbit.Pose(in.Width), orbit.FOV, in.Width, in.Height, in.X, in.Y)
	if id := PickFrame(ray, c.Scene.Group(), c.Scene.Frames()); id >= 0 {
		return c.Scene.Activate(id)
	}
	return false
}

// drop replaces the active frame's photo with a single dropped image.
func (c *Controller) drop(paths []string) {
	if len(paths) == 0 {
		return
	}
	sel := c.Scene.Selection()
	switch {
	case !sel.Valid:
		slog.Debug("interact: drop ignored, no active frame", "files", len(paths))
	case len(paths) != 1:
		slog.Info("interact: drop one photo at a time", "files", len(paths))
	case !texture.IsImageFile(paths[0]):
		slog.Info("interact: not an image", "path", paths[0])
	default:
		c.Scene.ChangePhoto(sel.ID, texture.LocalSource(paths[0]))
	}
}
