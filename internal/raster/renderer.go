package raster

import (
	"image"
	"image/color"

	"memory-tree/internal/animate"
	"memory-tree/internal/classify"
	"memory-tree/internal/layout"
	"memory-tree/internal/mathutil"
	"memory-tree/internal/orbit"
	"memory-tree/internal/scene"
	"memory-tree/internal/texture"
)

// Scene colors.
var (
	Background     = color.NRGBA{0x03, 0x07, 0x12, 0xFF}
	FrameGold      = color.RGBA{0xD4, 0xAF, 0x37, 0xFF}
	FrameHighlight = color.RGBA{0xFF, 0xAA, 0x00, 0xFF}
	StarGold       = color.RGBA{0xFF, 0xD7, 0x00, 0xFF}
)

// starEmission is the star's emissive intensity.
const starEmission = 2.0

var (
	unitCube  = Box(1, 1, 1)
	frameBox  = Box(1.2, 1.2, 0.1)
	photoQuad = Quad(1, 1, 0.055)
	starMesh  = Prism(layout.StarOutline(layout.StarPoints, layout.StarOuterRadius, layout.StarInnerRadius), layout.StarDepth)
)

// StarMesh returns the topper's mesh in star-local space. The slices are
// shared and must not be modified.
func StarMesh() Mesh { return starMesh }

// Instance is one ornament as drawn.
type Instance struct {
	Transform animate.Transform
	Color     color.RGBA
}

// Layer is one render batch.
type Layer struct {
	Key       classify.Key
	Shape     layout.Shape
	Material  classify.Material
	Instances []Instance
}

// FramePhoto is one photo frame as drawn. A nil Photo draws the placeholder.
type FramePhoto struct {
	State  animate.FrameState
	Photo  *image.NRGBA
	Active bool
}

// View is a self-contained copy of everything needed to draw one image.
type View struct {
	Camera animate.CameraPose
	FOV    float64 // vertical, degrees
	Group  animate.GroupPose
	Layers []Layer
	Frames []FramePhoto
	Topper *animate.Topper // nil draws no star
	// Environment is an optional backdrop stretched behind the scene.
	Environment *image.NRGBA
}

// Capture copies the current poses of sc so the scene can keep ticking while
// the view renders elsewhere. Photos are shared; decoded images are never
// modified.
func Capture(sc *scene.Scene, cam animate.CameraPose) View {
	topper := sc.Topper()
	v := View{
		Camera: cam,
		FOV:    orbit.FOV,
		Group:  sc.Group(),
		Topper: &topper,
	}

	for _, b := range sc.Batches() {
		if b.Len() == 0 {
			continue
		}
		l := Layer{
			Key:       b.Key,
			Shape:     sc.Shape(b.Key),
			Material:  sc.Material(b.Key),
			Instances: make([]Instance, b.Len()),
		}
		for i, t := range b.Transforms() {
			l.Instances[i] = Instance{Transform: t, Color: b.Base(i).Color}
		}
		v.Layers = append(v.Layers, l)
	}

	sel := sc.Selection()
	v.Frames = make([]FramePhoto, sc.FrameCount())
	for i, st := range sc.Frames() {
		v.Frames[i] = FramePhoto{State: st, Photo: sc.Photo(st.ID), Active: sel.Is(st.ID)}
	}
	return v
}

// RenderScene draws view at size*supersample pixels square.
func RenderScene(view View, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample
	if renderSize <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	drawBackdrop(fb, view.Environment)

	fov := view.FOV
	if fov <= 0 {
		fov = orbit.FOV
	}
	lc := DefaultLightConfig()
	cam := NewCamera(view.Camera, fov, renderSize)
	p := painter{fb: fb, cam: &cam, lc: &lc}
	group := view.Group.Matrix()

	for _, l := range view.Layers {
		emissive := lc.EmissiveOf(l.Material.Emissive, l.Material.EmissiveIntensity)
		for _, in := range l.Instances {
			model := mathutil.Mat4Mul(group, in.Transform.Matrix())
			surf := Surface{Color: in.Color, Emissive: emissive}
			if l.Shape == layout.Cube {
				p.drawMesh(model, &unitCube, surf, true)
				continue
			}
			center := cam.View.MulPoint(model.MulPoint(mathutil.Vec3{}))
			RasterizeSphere(fb, &cam, center, in.Transform.Scale, &surf, &lc)
		}
	}

	placeholder := color.RGBA(texture.Placeholder)
	for _, f := range view.Frames {
		model := mathutil.Mat4Mul(group, f.State.Matrix())
		gold := FrameGold
		if f.Active {
			gold = FrameHighlight
		}
		p.drawMesh(model, &frameBox, Surface{Color: gold}, true)
		p.drawMesh(model, &photoQuad, Surface{Color: placeholder, Tex: f.Photo}, false)
	}

	if t := view.Topper; t != nil {
		star := mathutil.Mat4Mul(group, mathutil.Compose(t.Position, t.Rotation(), 1))
		p.drawMesh(star, &starMesh, Surface{Color: StarGold, Emissive: lc.EmissiveOf(StarGold, starEmission)}, true)
	}

	return fb.Image()
}

// painter draws meshes, reusing its vertex buffers between calls.
type painter struct {
	fb  *FrameBuffer
	cam *Camera
	lc  *LightConfig

	view []mathutil.Vec3
	proj []Vertex
	ok   []bool
}

// drawMesh draws m under model. Unlit surfaces skip lighting so photos keep
// their colors.
func (p *painter) drawMesh(model mathutil.Mat4, m *Mesh, s Surface, lit bool) {
	mv := mathutil.Mat4Mul(p.cam.View, model)

	p.view, p.proj, p.ok = p.view[:0], p.proj[:0], p.ok[:0]
	for i, vert := range m.Verts {
		vp := mv.MulPoint(vert)
		pv, ok := p.cam.Project(vp)
		if m.UVs != nil {
			pv.U, pv.V = m.UVs[i][0], m.UVs[i][1]
		}
		p.view = append(p.view, vp)
		p.proj = append(p.proj, pv)
		p.ok = append(p.ok, ok)
	}

	s.Shade = 1
	for _, t := range m.Tris {
		// Triangles crossing the near plane are dropped whole.
		if !p.ok[t[0]] || !p.ok[t[1]] || !p.ok[t[2]] {
			continue
		}
		if lit {
			a, b, c := p.view[t[0]], p.view[t[1]], p.view[t[2]]
			n := b.Sub(a).Cross(c.Sub(a))
			if n.Len() < 1e-12 {
				continue
			}
			n = n.Normalize()
			// Face the viewer at the origin of view space.
			if n.Dot(a) > 0 {
				n = n.Scale(-1)
			}
			s.Shade = p.lc.ComputeShade(n)
		}
		RasterizeTriangle(p.fb, [3]Vertex{p.proj[t[0]], p.proj[t[1]], p.proj[t[2]]}, &s, p.lc)
	}
}
