package viewer

import (
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-tree/internal/raster"
)

// skyboxScale must stay inside the camera's far plane.
const skyboxScale = 500

// skyboxPaths are tried in order so the sky is found whether run from the
// repo root or cmd/viewer.
var skyboxPaths = []string{
	"assets/skybox/skybox.png",
	"assets/skybox/skybox.jpg",
	"../../assets/skybox/skybox.png",
	"../../assets/skybox/skybox.jpg",
}

// skybox is an optional equirectangular panorama drawn behind everything.
// Any failure leaves it unloaded and the scene draws over the clear color.
type skybox struct {
	tex    rl.Texture2D
	mesh   rl.Mesh
	mtl    rl.Material
	camLoc int32
	loaded bool
}

func newSkybox(path string) *skybox {
	s := &skybox{}
	if path == "" {
		path = findSkybox()
		if path == "" {
			return s
		}
	}

	img := raster.LoadEnvironment(path)
	if img == nil {
		return s
	}
	shader := rl.LoadShaderFromMemory(skyboxVS, skyboxFS)
	if !rl.IsShaderValid(shader) {
		slog.Warn("viewer: skybox shader failed")
		return s
	}
	s.tex = upload(img)
	if !rl.IsTextureValid(s.tex) {
		slog.Warn("viewer: skybox upload failed", "path", path)
		rl.UnloadShader(shader)
		return s
	}

	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	rl.SetMaterialTexture(&s.mtl, rl.MapAlbedo, s.tex)
	s.camLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.loaded = true
	return s
}

func findSkybox() string {
	for _, p := range skyboxPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// draw renders the sky as a large cube centered on the camera.
func (s *skybox) draw(cam rl.Vector3) {
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	if s.camLoc >= 0 {
		pos := []float32{cam.X, cam.Y, cam.Z}
		rl.SetShaderValueV(s.mtl.Shader, s.camLoc, pos, rl.ShaderUniformVec3, 1)
	}
	transform := rl.MatrixMultiply(
		rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale),
		rl.MatrixTranslate(cam.X, cam.Y, cam.Z),
	)
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func (s *skybox) unload() {
	if !s.loaded {
		return
	}
	rl.UnloadTexture(s.tex)
	rl.UnloadMesh(&s.mesh)
	rl.UnloadShader(s.mtl.Shader)
}

const (
	skyboxVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	skyboxFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D texture0;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  vec2 uv = vec2(lon / 6.28318530718 + 0.5, 0.5 - lat / 3.14159265359);
  finalColor = texture(texture0, uv);
}
`
)
