package interact

import "math"

// DragThreshold is how far, in pixels, the pointer must travel with the
// button held before a press counts as a drag instead of a click.
const DragThreshold = 4.0

// Pointer turns raw button and position samples into clicks and drags.
type Pointer struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// Update takes one frame's sample. A release that never dragged is a click;
// once dragging, every sample reports the movement since the previous one.
func (p *Pointer) Update(x, y float64, down bool) (click bool, dx, dy float64) {
	switch {
	case down && !p.down:
		p.down, p.dragging = true, false
		p.startX, p.startY = x, y
	case down:
		if !p.dragging && math.Hypot(x-p.startX, y-p.startY) >= DragThreshold {
			p.dragging = true
			dx, dy = x-p.startX, y-p.startY
		} else if p.dragging {
			dx, dy = x-p.lastX, y-p.lastY
		}
	case p.down:
		click = !p.dragging
		p.down, p.dragging = false, false
	}
	p.lastX, p.lastY = x, y
	return click, dx, dy
}

// Dragging reports whether the current press has become a drag.
func (p *Pointer) Dragging() bool { return p.dragging }
