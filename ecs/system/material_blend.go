package system

import (
	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
)

// TickSeconds is the duration of one fixed update.
const TickSeconds = 1.0 / 60.0

// MaterialBlendSystem advances every active material transition.
type MaterialBlendSystem struct {
	dt float64
}

func NewMaterialBlendSystem() *MaterialBlendSystem {
	return &MaterialBlendSystem{dt: TickSeconds}
}

func (m *MaterialBlendSystem) Update(w *ecs.World) {
	if m == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.MeshComponent.Kind(), func(_ ecs.Entity, mesh *component.Mesh) {
		for i := range mesh.Materials {
			mesh.Materials[i].Advance(m.dt)
		}
	})
}
