package layout

import "math"

// Star topper above the apex.
const (
	TopperHeight   = 6.8
	TopperBob      = 0.1
	TopperBobSpeed = 2.0
	TopperSpin     = 1.0 // rad/s

	StarPoints      = 6
	StarOuterRadius = 1.2
	StarInnerRadius = 0.6
	StarDepth       = 0.4
)

// StarOutline returns the 2D outline of a star with the given number of
// points, alternating outer and inner radii, first point straight up.
func StarOutline(points int, outer, inner float64) [][2]float64 {
	if points <= 0 {
		return nil
	}
	n := points * 2
	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)/float64(n)*math.Pi*2 + math.Pi/2
		out[i] = [2]float64{math.Cos(a) * r, math.Sin(a) * r}
	}
	return out
}
