package raster

import "memory-tree/internal/mathutil"

// Mesh is an indexed triangle list in local space. UVs are optional and,
// when present, parallel to Verts.
type Mesh struct {
	Verts []mathutil.Vec3
	UVs   [][2]float64
	Tris  [][3]int
}

// Box returns an axis-aligned box centered on the origin.
func Box(w, h, d float64) Mesh {
	m := Mesh{Verts: make([]mathutil.Vec3, 8)}
	for i := range m.Verts {
		m.Verts[i] = mathutil.Vec3{
			(float64(i&1) - 0.5) * w,
			(float64(i>>1&1) - 0.5) * h,
			(float64(i>>2&1) - 0.5) * d,
		}
	}
	faces := [6][4]int{
		{0, 2, 6, 4}, // -X
		{1, 5, 7, 3}, // +X
		{0, 4, 5, 1}, // -Y
		{2, 3, 7, 6}, // +Y
		{0, 1, 3, 2}, // -Z
		{4, 6, 7, 5}, // +Z
	}
	for _, f := range faces {
		m.Tris = append(m.Tris, [3]int{f[0], f[1], f[2]}, [3]int{f[0], f[2], f[3]})
	}
	return m
}

// Quad returns a w×h rectangle in the plane at z facing +Z, with v=0 along
// its top edge.
func Quad(w, h, z float64) Mesh {
	hw, hh := w/2, h/2
	return Mesh{
		Verts: []mathutil.Vec3{{-hw, hh, z}, {hw, hh, z}, {hw, -hh, z}, {-hw, -hh, z}},
		UVs:   [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Tris:  [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}

// Prism extrudes a star-shaped outline in the XY plane to the given depth.
// Caps are fanned from the center, so the outline must be star-shaped about
// the origin.
func Prism(outline [][2]float64, depth float64) Mesh {
	n := len(outline)
	if n < 3 {
		return Mesh{}
	}
	hd := depth / 2
	m := Mesh{Verts: make([]mathutil.Vec3, 0, 2*n+2)}
	m.Verts = append(m.Verts, mathutil.Vec3{0, 0, hd}, mathutil.Vec3{0, 0, -hd})
	for _, p := range outline {
		m.Verts = append(m.Verts, mathutil.Vec3{p[0], p[1], hd})
	}
	for _, p := range outline {
		m.Verts = append(m.Verts, mathutil.Vec3{p[0], p[1], -hd})
	}

	front := func(i int) int { return 2 + i%n }
	back := func(i int) int { return 2 + n + i%n }
	for i := 0; i < n; i++ {
		m.Tris = append(m.Tris,
			[3]int{0, front(i), front(i + 1)},
			[3]int{1, back(i + 1), back(i)},
			[3]int{front(i), back(i), back(i + 1)},
			[3]int{front(i), back(i + 1), front(i + 1)},
		)
	}
	return m
}
