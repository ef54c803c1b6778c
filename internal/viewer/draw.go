package viewer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-tree/internal/animate"
	"memory-tree/internal/layout"
	"memory-tree/internal/mathutil"
	"memory-tree/internal/raster"
	"memory-tree/internal/scene"
)

// Mesh resolution for sphere ornaments.
const (
	sphereRings  = 12
	sphereSlices = 16
)

// emissionScale matches the headless renderer's emissive strength.
const emissionScale = 0.35

// photoOffset places the photo plane just in front of the frame box, rotated
// from raylib's XZ plane to face +Z.
var photoOffset = mathutil.FromMat3Translation(mathutil.RotX(math.Pi/2), mathutil.Vec3{0, 0, 0.055})

// resources holds the meshes and materials, created after the window exists.
type resources struct {
	sphere rl.Mesh
	cube   rl.Mesh
	frame  rl.Mesh
	plane  rl.Mesh

	lit   rl.Material
	photo rl.Material

	viewPosLoc  int32
	emissionLoc int32

	starTris [][3]mathutil.Vec3
}

func newResources() *resources {
	r := &resources{
		sphere: rl.GenMeshSphere(1, sphereRings, sphereSlices),
		cube:   rl.GenMeshCube(1, 1, 1),
		frame:  rl.GenMeshCube(1.2, 1.2, 0.1),
		plane:  rl.GenMeshPlane(1, 1, 1, 1),
		lit:    rl.LoadMaterialDefault(),
		photo:  rl.LoadMaterialDefault(),
	}

	shader := rl.LoadShaderFromMemory(litVS, litFS)
	if rl.IsShaderValid(shader) {
		r.lit.Shader = shader
		r.viewPosLoc = rl.GetShaderLocation(shader, "viewPos")
		r.emissionLoc = rl.GetShaderLocation(shader, "emission")
		setLights(shader)
	} else {
		r.viewPosLoc, r.emissionLoc = -1, -1
	}
	if albedo := r.photo.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}

	star := raster.StarMesh()
	for _, t := range star.Tris {
		r.starTris = append(r.starTris, [3]mathutil.Vec3{star.Verts[t[0]], star.Verts[t[1]], star.Verts[t[2]]})
	}
	return r
}

func (r *resources) unload() {
	rl.UnloadMesh(&r.sphere)
	rl.UnloadMesh(&r.cube)
	rl.UnloadMesh(&r.frame)
	rl.UnloadMesh(&r.plane)
	if rl.IsShaderValid(r.lit.Shader) {
		rl.UnloadShader(r.lit.Shader)
	}
}

// drawView draws every batch, frame and the star straight from the scene's
// arenas. Call between BeginMode3D and EndMode3D.
func (r *resources) drawView(sc *scene.Scene, cam animate.CameraPose, photos *photoTextures) {
	group := sc.Group().Matrix()
	if r.viewPosLoc >= 0 {
		p := cam.Position
		viewPos := [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
		rl.SetShaderValueV(r.lit.Shader, r.viewPosLoc, viewPos[:], rl.ShaderUniformVec3, 1)
	}

	for _, b := range sc.Batches() {
		if b.Len() == 0 {
			continue
		}
		m := sc.Material(b.Key)
		r.setEmission(m.Emissive, m.EmissiveIntensity)
		mesh := r.sphere
		if sc.Shape(b.Key) == layout.Cube {
			mesh = r.cube
		}
		for i, t := range b.Transforms() {
			r.setColor(b.Base(i).Color)
			rl.DrawMesh(mesh, r.lit, toMatrix(mathutil.Mat4Mul(group, t.Matrix())))
		}
	}

	r.setEmission(color.RGBA{}, 0)
	sel := sc.Selection()
	for _, f := range sc.Frames() {
		model := mathutil.Mat4Mul(group, f.Matrix())
		gold := raster.FrameGold
		if sel.Is(f.ID) {
			gold = raster.FrameHighlight
		}
		r.setColor(gold)
		rl.DrawMesh(r.frame, r.lit, toMatrix(model))

		rl.SetMaterialTexture(&r.photo, rl.MapAlbedo, photos.texture(f.ID))
		rl.DrawMesh(r.plane, r.photo, toMatrix(mathutil.Mat4Mul(model, photoOffset)))
	}

	t := sc.Topper()
	r.drawStar(mathutil.Mat4Mul(group, mathutil.Compose(t.Position, t.Rotation(), 1)))
}

// drawStar draws the topper unlit in its own color; it is the brightest
// thing in the scene.
func (r *resources) drawStar(model mathutil.Mat4) {
	c := rl.NewColor(raster.StarGold.R, raster.StarGold.G, raster.StarGold.B, 255)
	rl.DisableBackfaceCulling()
	for _, t := range r.starTris {
		rl.DrawTriangle3D(toVector3(model.MulPoint(t[0])), toVector3(model.MulPoint(t[1])), toVector3(model.MulPoint(t[2])), c)
	}
	rl.EnableBackfaceCulling()
}

func (r *resources) setColor(c color.RGBA) {
	if albedo := r.lit.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(c.R, c.G, c.B, 255)
	}
}

func (r *resources) setEmission(c color.RGBA, intensity float64) {
	if r.emissionLoc < 0 {
		return
	}
	k := float32(intensity * emissionScale / 255)
	e := [3]float32{float32(c.R) * k, float32(c.G) * k, float32(c.B) * k}
	rl.SetShaderValueV(r.lit.Shader, r.emissionLoc, e[:], rl.ShaderUniformVec3, 1)
}

// toMatrix converts a row-major transform to raylib's layout, where M0, M4,
// M8 and M12 form the first row.
func toMatrix(m mathutil.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M4: float32(m[1]), M8: float32(m[2]), M12: float32(m[3]),
		M1: float32(m[4]), M5: float32(m[5]), M9: float32(m[6]), M13: float32(m[7]),
		M2: float32(m[8]), M6: float32(m[9]), M10: float32(m[10]), M14: float32(m[11]),
		M3: float32(m[12]), M7: float32(m[13]), M11: float32(m[14]), M15: float32(m[15]),
	}
}

func toVector3(v mathutil.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}
