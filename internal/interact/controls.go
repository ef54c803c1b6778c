package interact

import (
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"memory-tree/internal/animate"
)

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) is inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Control sizes in pixels.
const (
	modeButtonW      = 200
	modeButtonH      = 56
	modeButtonMargin = 32
	closeButtonSize  = 48
	closeButtonInset = 24
	photoHintGap     = 10
)

// ModeButtonRect is the layout toggle, centered along the bottom edge.
func ModeButtonRect(w, h int) Rect {
	return Rect{
		X: float64(w-modeButtonW) / 2,
		Y: float64(h - modeButtonH - modeButtonMargin),
		W: modeButtonW,
		H: modeButtonH,
	}
}

// CloseButtonRect is the release button in the top right corner. It is only
// shown while a frame is active.
func CloseButtonRect(w, h int) Rect {
	return Rect{
		X: float64(w - closeButtonSize - closeButtonInset),
		Y: closeButtonInset,
		W: closeButtonSize,
		H: closeButtonSize,
	}
}

// PhotoHint is the label shown under the close button while a frame is
// active. Dropping an image file on the window replaces that frame's photo.
const PhotoHint = "Change photo: drop an image"

// PhotoHintOrigin is the top-left corner of a hint textW pixels wide. The
// hint sits just below the close button with its right edge aligned to it,
// and never starts left of the inset margin.
func PhotoHintOrigin(w, h int, textW float64) (x, y float64) {
	cb := CloseButtonRect(w, h)
	x = cb.X + cb.W - textW
	if x < closeButtonInset {
		x = closeButtonInset
	}
	return x, cb.Y + cb.H + photoHintGap
}

// ModeLabel is the mode button text: it names the action, not the state.
func ModeLabel(m animate.Mode) string {
	if m == animate.Scattered {
		return "Gather"
	}
	return "Scatter"
}

// Mode button colors.
var (
	ScatterColor = color.RGBA{0x05, 0x96, 0x69, 0xFF} // shown while gathered
	GatherColor  = color.RGBA{0xDC, 0x26, 0x26, 0xFF} // shown while scattered
)

// ModeColor returns the mode button color for m.
func ModeColor(m animate.Mode) color.RGBA {
	if m == animate.Scattered {
		return GatherColor
	}
	return ScatterColor
}

// FadeDuration is how long the button takes to change color, in seconds.
const FadeDuration = 0.3

// ColorFade eases a color toward a target.
type ColorFade struct {
	cur    color.RGBA
	target color.RGBA
	tweens [4]*gween.Tween
}

// NewColorFade starts at c with nothing in flight.
func NewColorFade(c color.RGBA) *ColorFade {
	return &ColorFade{cur: c, target: c}
}

// To starts fading from the current color to c. Repeated calls with the
// same target do not restart the fade.
func (f *ColorFade) To(c color.RGBA) {
	if c == f.target {
		return
	}
	f.target = c
	f.tweens[0] = gween.New(float32(f.cur.R), float32(c.R), FadeDuration, ease.OutQuad)
	f.tweens[1] = gween.New(float32(f.cur.G), float32(c.G), FadeDuration, ease.OutQuad)
	f.tweens[2] = gween.New(float32(f.cur.B), float32(c.B), FadeDuration, ease.OutQuad)
	f.tweens[3] = gween.New(float32(f.cur.A), float32(c.A), FadeDuration, ease.OutQuad)
}

// Update advances the fade by dt seconds and returns the current color.
func (f *ColorFade) Update(dt float32) color.RGBA {
	if f.tweens[0] == nil {
		return f.cur
	}
	var ch [4]uint8
	done := true
	for i, tw := range f.tweens {
		v, finished := tw.Update(dt)
		ch[i] = toByte(v)
		if !finished {
			done = false
		}
	}
	f.cur = color.RGBA{ch[0], ch[1], ch[2], ch[3]}
	if done {
		f.cur = f.target
		f.tweens = [4]*gween.Tween{}
	}
	return f.cur
}

// Color returns the current color.
func (f *ColorFade) Color() color.RGBA { return f.cur }

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
