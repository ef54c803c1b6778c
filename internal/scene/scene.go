// Package scene owns one running tree scene: the generated layout, its
// render batches, the animation arenas, the activation state and the frame
// photos. Composers drive it with Tick and read poses back through the
// accessors between ticks.
package scene

import (
	"image"
	"log/slog"
	"math/rand"

	"memory-tree/internal/activation"
	"memory-tree/internal/animate"
	"memory-tree/internal/classify"
	"memory-tree/internal/layout"
	"memory-tree/internal/texture"
)

// Config sizes a scene. Counts are read once by New.
type Config struct {
	Ornaments int
	Frames    int
	// Offline skips the default remote photos; frames show the placeholder
	// until a photo is changed.
	Offline bool
}

// Scene is not safe for concurrent use. Background photo loads only touch
// the loader queue, which Tick drains.
type Scene struct {
	ornaments []layout.Ornament
	parts     classify.Batches
	batches   []*animate.OrnamentBatch
	frames    *animate.FrameSet
	photos    *texture.Slots
	loader    *texture.Loader

	machine activation.Machine
	spin    animate.GroupSpin
	topper  *animate.Topper
	mode    animate.Mode

	clock float64
	last  animate.Snapshot
}

// New generates a scene from rng and starts loading the default photo of
// every frame through loader. A nil loader leaves every frame on the
// placeholder.
func New(cfg Config, rng *rand.Rand, loader *texture.Loader) *Scene {
	ornaments := layout.Ornaments(rng, cfg.Ornaments)
	frames := layout.Frames(cfg.Frames)

	sc := &Scene{
		ornaments: ornaments,
		parts:     classify.Partition(ornaments),
		frames:    animate.NewFrameSet(frames),
		photos:    texture.NewSlots(len(frames)),
		loader:    loader,
		topper:    animate.NewTopper(),
	}
	sc.batches = make([]*animate.OrnamentBatch, classify.NumKeys)
	for k := range sc.parts {
		sc.batches[k] = animate.NewOrnamentBatch(sc.parts[k])
	}

	slog.Debug("scene: built",
		"ornaments", len(ornaments),
		"frames", len(frames),
		"batches", len(sc.batches))

	if !cfg.Offline {
		for _, f := range frames {
			sc.ChangePhoto(f.ID, texture.DefaultSource(f.ID))
		}
	}
	return sc
}

// Tick advances the scene by dt seconds and returns the snapshot it used.
//
// Photo loads finished before the call are applied first, so a texture
// never changes halfway through a tick.
func (sc *Scene) Tick(dt float64, cam animate.CameraPose) animate.Snapshot {
	if dt < 0 {
		dt = 0
	}
	if sc.loader != nil {
		for _, r := range sc.loader.Poll() {
			sc.photos.Apply(r)
		}
	}

	sc.clock += dt
	s := animate.Snapshot{
		Dt:     dt,
		Time:   sc.clock,
		Mode:   sc.mode,
		Active: sc.machine.Selection(),
		Camera: cam,
	}
	sc.spin.Step(s)
	s.Group = sc.spin.Pose()

	sc.topper.Step(s)
	for _, b := range sc.batches {
		b.Step(s)
	}
	sc.frames.Step(s)

	sc.last = s
	return s
}

// Mode returns the current layout mode.
func (sc *Scene) Mode() animate.Mode { return sc.mode }

// SetMode switches the layout. Instances ease to the new targets over the
// following ticks.
func (sc *Scene) SetMode(m animate.Mode) {
	if m == sc.mode {
		return
	}
	slog.Debug("scene: mode", "from", sc.mode, "to", m)
	sc.mode = m
}

// ToggleMode flips between gathered and scattered.
func (sc *Scene) ToggleMode() { sc.SetMode(sc.mode.Toggle()) }

// Activate pulls frame id in front of the camera. It reports whether the
// pointer event was consumed; ids that name no frame are not.
func (sc *Scene) Activate(id int) bool {
	if id < 0 || id >= sc.frames.Len() {
		return false
	}
	return sc.machine.Activate(id)
}

// Close releases the active frame.
func (sc *Scene) Close() { sc.machine.Close() }

// Selection returns the active frame, if any.
func (sc *Scene) Selection() activation.Selection { return sc.machine.Selection() }

// ControlsEnabled reports whether orbit input should be applied.
func (sc *Scene) ControlsEnabled() bool { return sc.machine.ControlsEnabled() }

// OnActivation registers fn to run on every activation change.
func (sc *Scene) OnActivation(fn func(prev, next activation.Selection)) {
	sc.machine.OnChange(fn)
}

// ChangePhoto replaces the photo of frame id. The frame shows the
// placeholder until the load lands; a later change supersedes an earlier
// one still in flight. It reports false for an unknown id.
func (sc *Scene) ChangePhoto(id int, src texture.Source) bool {
	if id < 0 || id >= sc.photos.Len() {
		return false
	}
	gen := sc.photos.Set(id, src)
	if sc.loader != nil {
		sc.loader.Request(id, gen, src)
	}
	return true
}

// Photo returns the decoded photo of frame id, or nil while the placeholder
// should be drawn.
func (sc *Scene) Photo(id int) *image.NRGBA { return sc.photos.Image(id) }

// PhotoSlot returns the full photo state of frame id.
func (sc *Scene) PhotoSlot(id int) texture.Slot { return sc.photos.At(id) }

// Ornaments returns the generated ornaments in generation order.
func (sc *Scene) Ornaments() []layout.Ornament { return sc.ornaments }

// Batches returns the animation arena of every batch, indexed by
// classify.Key.
func (sc *Scene) Batches() []*animate.OrnamentBatch { return sc.batches }

// Material returns the surface of batch k.
func (sc *Scene) Material(k classify.Key) classify.Material { return sc.parts[k].Material }

// Shape returns the mesh of batch k.
func (sc *Scene) Shape(k classify.Key) layout.Shape { return sc.parts[k].Shape }

// Frames returns the animated frame poses, indexed by frame id.
func (sc *Scene) Frames() []animate.FrameState { return sc.frames.States() }

// FrameCount returns the number of frames.
func (sc *Scene) FrameCount() int { return sc.frames.Len() }

// Group returns the current group pose.
func (sc *Scene) Group() animate.GroupPose { return sc.spin.Pose() }

// Topper returns the star pose.
func (sc *Scene) Topper() animate.Topper { return *sc.topper }

// Time returns the simulated seconds since New.
func (sc *Scene) Time() float64 { return sc.clock }

// Last returns the snapshot of the most recent tick.
func (sc *Scene) Last() animate.Snapshot { return sc.last }
