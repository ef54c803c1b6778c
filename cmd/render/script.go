package main

import (
	"memory-tree/internal/animate"
	"memory-tree/internal/batch"
	"memory-tree/internal/raster"
	"memory-tree/internal/scene"
	"memory-tree/internal/texture"
)

// Script is the timeline of user actions replayed during a headless run.
// Negative times never fire.
type Script struct {
	ScatterAt  float64
	Activate   int // frame id, -1 for none
	ActivateAt float64
	CloseAt    float64
	Photo      string // local file shown on the activated frame
}

// Simulate ticks sc steps times at dt and captures a job after every tick.
func Simulate(sc *scene.Scene, loader *texture.Loader, s Script, cam animate.CameraPose, steps int, dt float64) []batch.Job {
	jobs := make([]batch.Job, 0, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) * dt
		if crossed(s.ScatterAt, t, dt) {
			sc.ToggleMode()
		}
		if s.Activate >= 0 && crossed(s.ActivateAt, t, dt) {
			sc.Activate(s.Activate)
			if s.Photo != "" && sc.ChangePhoto(s.Activate, texture.LocalSource(s.Photo)) && loader != nil {
				loader.Wait()
			}
		}
		if crossed(s.CloseAt, t, dt) {
			sc.Close()
		}

		snap := sc.Tick(dt, cam)
		jobs = append(jobs, batch.Job{
			Index:  i,
			Time:   snap.Time,
			Mode:   snap.Mode,
			Active: snap.Active,
			View:   raster.Capture(sc, cam),
		})
	}
	return jobs
}

// crossed reports whether at falls in the tick starting at t.
func crossed(at, t, dt float64) bool {
	return at >= 0 && at >= t && at < t+dt
}
