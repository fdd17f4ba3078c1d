package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Model is a GPU-resident glTF/GLB model. Release frees its meshes, materials and textures.
type Model struct {
	model    rl.Model
	released bool
}

// LoadModel decodes and uploads the model at path. Must run on the main thread.
func LoadModel(path string) (*Model, error) {
	m := rl.LoadModel(path)
	if !rl.IsModelValid(m) {
		return nil, fmt.Errorf("scene: model %s: cannot load", path)
	}
	return &Model{model: m}, nil
}

// Release unloads the model. Further calls do nothing.
func (m *Model) Release() {
	if m.released {
		return
	}
	m.released = true
	rl.UnloadModel(m.model)
}

func (m *Model) draw(pos, scale rl.Vector3) {
	rl.DrawModelEx(m.model, pos, rl.NewVector3(0, 1, 0), 0, scale, rl.White)
}
