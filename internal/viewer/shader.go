package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// Point lights in world space: a warm key above and an orange rim below.
var (
	keyLightPos   = [3]float32{10, 20, 10}
	keyLightColor = [3]float32{1.0, 0.97, 0.9}
	rimLightPos   = [3]float32{-10, -10, -10}
	rimLightColor = [3]float32{1.0, 0.55, 0.1}
	ambientColor  = [4]float32{0.3, 0.3, 0.33, 1}
)

const (
	specularPower    = float32(24)
	specularStrength = float32(0.6)
)

// setLights uploads the uniforms that never change between frames.
func setLights(shader rl.Shader) {
	vec3 := map[string][3]float32{
		"keyPos":   keyLightPos,
		"keyColor": keyLightColor,
		"rimPos":   rimLightPos,
		"rimColor": rimLightColor,
	}
	for name, v := range vec3 {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v[:], rl.ShaderUniformVec3, 1)
		}
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, ambientColor[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularStrength}, rl.ShaderUniformFloat)
	}
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 keyPos;
uniform vec3 keyColor;
uniform vec3 rimPos;
uniform vec3 rimColor;
uniform vec4 ambient;
uniform vec3 emission;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 K = normalize(keyPos - fragPosition);
  vec3 R = normalize(rimPos - fragPosition);
  float key = max(dot(N, K), 0.0);
  float rim = max(dot(N, R), 0.0);
  float spec = pow(max(dot(N, normalize(K + V)), 0.0), specularPower) * specularStrength;
  vec3 lit = colDiffuse.rgb * (ambient.rgb + key * keyColor + rim * rimColor * 0.55);
  vec3 color = lit + keyColor * spec * (key > 0.0 ? 1.0 : 0.0) + emission;
  // ACES filmic approximation
  color = clamp((color * (2.51 * color + 0.03)) / (color * (2.43 * color + 0.59) + 0.14), 0.0, 1.0);
  finalColor = vec4(color, colDiffuse.a);
}
`
)
