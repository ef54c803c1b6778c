package viewer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-tree/internal/interact"
	"memory-tree/internal/scene"
)

const (
	labelFontSize = 24
	hintFontSize  = 18
	closeGlyphPad = 15
)

var (
	closeBackground = rl.NewColor(255, 255, 255, 40)
	hintColor       = rl.NewColor(255, 255, 255, 160)
)

// drawControls draws the 2D overlay: the mode button always, the close button
// and change-photo hint while a frame is active.
func drawControls(sc *scene.Scene, w, h int, button color.RGBA) {
	mb := interact.ModeButtonRect(w, h)
	rl.DrawRectangleRounded(toRect(mb), 0.5, 8, rl.NewColor(button.R, button.G, button.B, button.A))
	label := interact.ModeLabel(sc.Mode())
	tw := rl.MeasureText(label, labelFontSize)
	rl.DrawText(label, int32(mb.X+mb.W/2)-tw/2, int32(mb.Y+(mb.H-labelFontSize)/2), labelFontSize, rl.White)

	if !sc.Selection().Valid {
		return
	}
	cb := interact.CloseButtonRect(w, h)
	rl.DrawRectangleRounded(toRect(cb), 1, 16, closeBackground)
	x0, y0 := float32(cb.X+closeGlyphPad), float32(cb.Y+closeGlyphPad)
	x1, y1 := float32(cb.X+cb.W-closeGlyphPad), float32(cb.Y+cb.H-closeGlyphPad)
	rl.DrawLineEx(rl.NewVector2(x0, y0), rl.NewVector2(x1, y1), 3, rl.White)
	rl.DrawLineEx(rl.NewVector2(x1, y0), rl.NewVector2(x0, y1), 3, rl.White)

	hx, hy := interact.PhotoHintOrigin(w, h, float64(rl.MeasureText(interact.PhotoHint, hintFontSize)))
	rl.DrawText(interact.PhotoHint, int32(hx), int32(hy), hintFontSize, hintColor)
}

func toRect(r interact.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}
