package system

import (
	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
	"github.com/milk9111/campfire/paint"
)

// AvatarSpawn describes an avatar entering the scene.
type AvatarSpawn struct {
	Name      string
	X, Y      float64
	Width     float64
	Height    float64
	Materials []component.Material
	Walker    *component.Walker
	Hidden    bool
}

// SpawnAvatar creates the avatar entity and queues its join announcement.
func SpawnAvatar(w *ecs.World, spawn AvatarSpawn) (ecs.Entity, error) {
	if w == nil {
		return 0, component.ErrEntityNotAlive
	}
	e := ecs.CreateEntity(w)

	mats := make([]component.Material, len(spawn.Materials))
	copy(mats, spawn.Materials)

	if err := ecs.Add(w, e, component.AvatarComponent.Kind(), &component.Avatar{Name: spawn.Name, Width: spawn.Width, Height: spawn.Height}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spawn.X, Y: spawn.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{Visible: !spawn.Hidden, Materials: mats}); err != nil {
		return 0, err
	}
	if spawn.Walker != nil {
		walker := *spawn.Walker
		if err := ecs.Add(w, e, component.WalkerComponent.Kind(), &walker); err != nil {
			return 0, err
		}
	}
	if err := ecs.Add(w, e, component.JoinRequestComponent.Kind(), &component.JoinRequest{}); err != nil {
		return 0, err
	}
	return e, nil
}

// RemoveAvatar marks an avatar to leave on the next avatar update.
func RemoveAvatar(w *ecs.World, e ecs.Entity) bool {
	if !ecs.Has(w, e, component.AvatarComponent.Kind()) {
		return false
	}
	return ecs.Add(w, e, component.LeaveRequestComponent.Kind(), &component.LeaveRequest{}) == nil
}

// Palette builds material slots from tints, one slot per color.
func Palette(colors ...paint.Color) []component.Material {
	mats := make([]component.Material, 0, len(colors))
	for _, c := range colors {
		mats = append(mats, component.Material{Properties: paint.MaterialProperties{Tint: c}})
	}
	return mats
}

// AvatarSystem turns join and leave requests into world events.
type AvatarSystem struct{}

func NewAvatarSystem() *AvatarSystem {
	return &AvatarSystem{}
}

func (a *AvatarSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.JoinRequestComponent.Kind().ID()) {
		ecs.Remove(w, e, component.JoinRequestComponent.Kind())
		if ecs.Has(w, e, component.LeaveRequestComponent.Kind()) {
			continue
		}
		w.Events().Push(ecs.Event{Type: ecs.EventAvatarJoined, Data: ecs.AvatarEvent{Avatar: e}})
	}

	for _, e := range w.Query(component.LeaveRequestComponent.Kind().ID()) {
		w.Events().Push(ecs.Event{Type: ecs.EventAvatarLeft, Data: ecs.AvatarEvent{Avatar: e}})
		ecs.DestroyEntity(w, e)
	}
}
