package texture

import "image"

// Slot is the photo state of one frame.
type Slot struct {
	Src Source
	Gen uint64
	// Image is nil while the current source is loading or after it failed;
	// renderers draw Placeholder instead.
	Image *image.NRGBA
	// Version increments whenever Image changes so GPU-side copies know when
	// to re-upload.
	Version uint64
}

// Ready reports whether a decoded photo is available.
func (s *Slot) Ready() bool { return s.Image != nil }

// Slots holds the photo state of every frame.
type Slots struct {
	slots []Slot
}

// NewSlots creates n slots with no source.
func NewSlots(n int) *Slots {
	return &Slots{slots: make([]Slot, n)}
}

// Len returns the number of slots.
func (s *Slots) Len() int { return len(s.slots) }

// At returns slot i.
func (s *Slots) At(i int) Slot { return s.slots[i] }

// Set switches slot i to src and returns the new generation. The previous
// photo is dropped at once so a stale image is never shown for the new source.
func (s *Slots) Set(i int, src Source) uint64 {
	sl := &s.slots[i]
	sl.Src = src
	sl.Gen++
	if sl.Image != nil {
		sl.Image = nil
		sl.Version++
	}
	return sl.Gen
}

// Apply installs a finished load. Results for superseded generations,
// failed loads and out-of-range slots are ignored. It reports whether the
// slot's image changed.
func (s *Slots) Apply(r Result) bool {
	if r.Slot < 0 || r.Slot >= len(s.slots) {
		return false
	}
	sl := &s.slots[r.Slot]
	if r.Gen != sl.Gen || r.Err != nil || r.Image == nil {
		return false
	}
	sl.Image = r.Image
	sl.Version++
	return true
}

// Image returns slot i's photo, or nil while the placeholder should show.
func (s *Slots) Image(i int) *image.NRGBA {
	if i < 0 || i >= len(s.slots) {
		return nil
	}
	return s.slots[i].Image
}
