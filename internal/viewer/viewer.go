// Package viewer is the interactive composer: a raylib window that ticks the
// scene once per frame and draws it on the GPU.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-tree/internal/animate"
	"memory-tree/internal/interact"
	"memory-tree/internal/orbit"
	"memory-tree/internal/raster"
	"memory-tree/internal/scene"
)

// Config sizes the window and names an optional panorama for the sky.
type Config struct {
	Width, Height int
	Title         string
	// Environment is an equirectangular panorama. Empty looks under
	// assets/skybox/.
	Environment string
}

// Run opens the window and drives sc until the window is closed.
func Run(sc *scene.Scene, cfg Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // Esc releases the active frame; close via window button
	rl.SetTargetFPS(60)

	gpu := newResources()
	defer gpu.unload()
	sky := newSkybox(cfg.Environment)
	defer sky.unload()
	photos := newPhotoTextures(sc.FrameCount())
	defer photos.unload()

	o := orbit.New()
	ctl := interact.NewController(sc, o)
	var ptr interact.Pointer

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()

		ctl.Handle(readInput(&ptr, w, h))
		pose := o.Pose(w)
		sc.Tick(float64(dt), pose)
		photos.sync(sc)
		button := ctl.Fade.Update(dt)

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(raster.Background.R, raster.Background.G, raster.Background.B, 255))

		cam := camera3D(pose)
		rl.BeginMode3D(cam)
		sky.draw(cam.Position)
		gpu.drawView(sc, pose, photos)
		rl.EndMode3D()

		drawControls(sc, w, h, button)
		rl.EndDrawing()
	}
}

func camera3D(pose animate.CameraPose) rl.Camera3D {
	p := pose.Position
	t := p.Add(pose.Forward.Normalize())
	return rl.Camera3D{
		Position:   rl.NewVector3(float32(p[0]), float32(p[1]), float32(p[2])),
		Target:     rl.NewVector3(float32(t[0]), float32(t[1]), float32(t[2])),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       orbit.FOV,
		Projection: rl.CameraPerspective,
	}
}

// readInput samples the mouse and keyboard for one frame.
func readInput(ptr *interact.Pointer, w, h int) interact.Input {
	m := rl.GetMousePosition()
	x, y := float64(m.X), float64(m.Y)
	click, dx, dy := ptr.Update(x, y, rl.IsMouseButtonDown(rl.MouseButtonLeft))

	in := interact.Input{
		Width:      w,
		Height:     h,
		X:          x,
		Y:          y,
		Click:      click,
		DragDX:     dx,
		DragDY:     dy,
		Wheel:      float64(rl.GetMouseWheelMove()),
		ToggleMode: rl.IsKeyPressed(rl.KeySpace),
		Close:      rl.IsKeyPressed(rl.KeyEscape),
	}
	if rl.IsFileDropped() {
		in.Dropped = rl.LoadDroppedFiles()
		rl.UnloadDroppedFiles()
	}
	return in
}
