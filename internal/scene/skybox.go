package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const skyboxScale = 1000

// equirectAspectMin/Max: width/height ratio for equirectangular panorama (typically 2:1).
const (
	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

// skybox is the environment drawn behind everything: a cube centered on the
// camera, textured with a cubemap or sampled from an equirectangular panorama.
type skybox struct {
	tex      rl.Texture2D
	mesh     rl.Mesh
	mtl      rl.Material
	equirect bool
	camPos   int32
	texLoc   int32
	loaded   bool
}

// load reads path and uploads it. Needs the window (GL context) to exist.
func (s *skybox) load(path string) error {
	img := rl.LoadImage(path)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("scene: environment %s: cannot decode image", path)
	}
	defer rl.UnloadImage(img)
	aspect := float32(img.Width) / float32(img.Height)
	s.equirect = aspect >= equirectAspectMin && aspect <= equirectAspectMax

	if !s.equirect {
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		if !rl.IsTextureValid(s.tex) {
			return fmt.Errorf("scene: environment %s: not a cubemap layout", path)
		}
		s.mesh = rl.GenMeshCube(1, 1, 1)
		s.mtl = rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
		s.loaded = true
		return nil
	}

	s.tex = rl.LoadTextureFromImage(img)
	if !rl.IsTextureValid(s.tex) {
		return fmt.Errorf("scene: environment %s: texture upload failed", path)
	}
	shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.tex)
		return fmt.Errorf("scene: environment %s: skybox shader failed", path)
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	s.camPos = rl.GetShaderLocation(shader, "cameraPosition")
	s.texLoc = rl.GetShaderLocation(shader, "skybox")
	s.loaded = true
	return nil
}

// Equirectangular skybox shader: samples a 2D panorama by view direction.
const (
	equirectVS = `#version 330
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
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  vec3 hdr = texture(skybox, vec2(u, v)).rgb;
  finalColor = vec4(hdr / (hdr + vec3(1.0)), 1.0);
}
`
)

// draw renders the cube around pos. Depth writes are off so the museum draws over it.
func (s *skybox) draw(pos rl.Vector3) {
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	transform := rl.MatrixMultiply(
		rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale),
		rl.MatrixTranslate(pos.X, pos.Y, pos.Z),
	)
	if s.equirect {
		if s.camPos >= 0 {
			rl.SetShaderValueV(s.mtl.Shader, s.camPos, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
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
	if s.equirect {
		rl.UnloadShader(s.mtl.Shader)
	}
	s.loaded = false
}
