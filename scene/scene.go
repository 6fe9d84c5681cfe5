// Package scene exposes ECS avatars to the paint effect.
package scene

import (
	"fmt"

	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
	"github.com/milk9111/campfire/paint"
	"github.com/milk9111/campfire/sound"
)

// ObjectID maps an entity onto the identifier the effect tracks. Entity
// handles carry their generation, so a recycled slot never aliases a
// departed avatar.
func ObjectID(e ecs.Entity) paint.ObjectID {
	return paint.ObjectID(e)
}

func Entity(id paint.ObjectID) ecs.Entity {
	return ecs.Entity(id)
}

// Scene resolves avatars in a world.
type Scene struct {
	world *ecs.World
}

func New(w *ecs.World) *Scene {
	return &Scene{world: w}
}

func (s *Scene) ResolveAgent(id paint.ObjectID) (paint.Agent, error) {
	if s == nil || s.world == nil {
		return nil, paint.ErrAgentNotFound
	}
	e := Entity(id)
	if !ecs.IsAlive(s.world, e) {
		return nil, fmt.Errorf("scene: %v: %w", e, paint.ErrAgentNotFound)
	}
	avatar, ok := ecs.Get(s.world, e, component.AvatarComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("scene: %v is not an avatar: %w", e, paint.ErrAgentNotFound)
	}
	return &agent{world: s.world, entity: e, name: avatar.Name}, nil
}

// EmitterOrigin returns the position of the first audio emitter, or the
// origin when none exists.
func (s *Scene) EmitterOrigin() sound.Position {
	if s == nil {
		return sound.Position{}
	}
	e, ok := ecs.First(s.world, component.AudioEmitterComponent.Kind())
	if !ok {
		return sound.Position{}
	}
	t, ok := ecs.Get(s.world, e, component.TransformComponent.Kind())
	if !ok {
		return sound.Position{}
	}
	return sound.Position{X: t.X, Y: t.Y}
}

type agent struct {
	world  *ecs.World
	entity ecs.Entity
	name   string
}

func (a *agent) ID() paint.ObjectID { return ObjectID(a.entity) }
func (a *agent) Name() string       { return a.name }

func (a *agent) Mesh() (paint.Mesh, error) {
	if _, ok := ecs.Get(a.world, a.entity, component.MeshComponent.Kind()); !ok {
		return nil, fmt.Errorf("scene: %v: %w", a.entity, paint.ErrMeshNotFound)
	}
	return &mesh{world: a.world, entity: a.entity}, nil
}

// mesh re-reads the component on every call so it never holds a pointer
// across a destroy.
type mesh struct {
	world  *ecs.World
	entity ecs.Entity
}

func (m *mesh) component() *component.Mesh {
	c, ok := ecs.Get(m.world, m.entity, component.MeshComponent.Kind())
	if !ok {
		return nil
	}
	return c
}

func (m *mesh) Visible() bool {
	c := m.component()
	return c != nil && c.Visible
}

func (m *mesh) SetVisible(visible bool) {
	if c := m.component(); c != nil {
		c.Visible = visible
	}
}

func (m *mesh) Materials() []paint.Material {
	c := m.component()
	if c == nil {
		return nil
	}
	out := make([]paint.Material, len(c.Materials))
	for i := range c.Materials {
		out[i] = &material{mesh: m, index: i}
	}
	return out
}

type material struct {
	mesh  *mesh
	index int
}

func (m *material) slot() *component.Material {
	c := m.mesh.component()
	if c == nil || m.index >= len(c.Materials) {
		return nil
	}
	return &c.Materials[m.index]
}

func (m *material) Properties() paint.MaterialProperties {
	if s := m.slot(); s != nil {
		return s.Properties
	}
	return paint.MaterialProperties{}
}

func (m *material) SetProperties(p paint.MaterialProperties, duration float64, mode paint.InterpolationMode) {
	if s := m.slot(); s != nil {
		s.BeginBlend(p, duration, mode)
	}
}
