package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
)

const (
	collisionTypeAvatar cp.CollisionType = iota + 1
	collisionTypeVolume
)

// avatarGroup keeps avatar sensors from reporting each other.
const avatarGroup uint = 1

// TriggerSystem owns a Chipmunk space of sensor shapes. Volumes are static
// boxes, avatars are kinematic-looking dynamic boxes that follow their
// transforms. Overlap begin and separate become TriggerEvents.
type TriggerSystem struct {
	// Debug enables body lifecycle logging.
	Debug bool

	space         *cp.Space
	handlersReady bool
	dt            float64

	bodies  map[ecs.Entity]*bodyInfo
	volumes map[*cp.Shape]ecs.Entity
	avatars map[*cp.Shape]ecs.Entity

	pending []ecs.TriggerEvent
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	width  float64
	height float64
}

func NewTriggerSystem() *TriggerSystem {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &TriggerSystem{
		space:   space,
		dt:      TickSeconds,
		bodies:  make(map[ecs.Entity]*bodyInfo),
		volumes: make(map[*cp.Shape]ecs.Entity),
		avatars: make(map[*cp.Shape]ecs.Entity),
	}
}

func (ts *TriggerSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
		return
	}

	ts.ensureHandlers()
	ts.cleanupEntities(w)
	ts.syncVolumes(w)
	ts.syncAvatars(w)

	ts.space.Step(ts.dt)

	for _, evt := range ts.pending {
		w.Events().Push(ecs.Event{Type: ecs.EventTrigger, Data: evt})
	}
	ts.pending = ts.pending[:0]
}

// Overlapping reports whether the avatar currently overlaps the volume.
func (ts *TriggerSystem) Overlapping(volume, avatar ecs.Entity) bool {
	if ts == nil {
		return false
	}
	v, ok := ts.bodies[volume]
	if !ok {
		return false
	}
	a, ok := ts.bodies[avatar]
	if !ok {
		return false
	}
	return v.shape.BB().Intersects(a.shape.BB())
}

func (ts *TriggerSystem) ensureHandlers() {
	if ts.handlersReady {
		return
	}

	handler := ts.space.NewCollisionHandler(collisionTypeAvatar, collisionTypeVolume)
	handler.UserData = ts
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*TriggerSystem); ok {
			sys.record(arb, ecs.TriggerEnter)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if sys, ok := userData.(*TriggerSystem); ok {
			sys.record(arb, ecs.TriggerExit)
		}
	}

	ts.handlersReady = true
}

func (ts *TriggerSystem) record(arb *cp.Arbiter, phase ecs.TriggerPhase) {
	a, b := arb.Shapes()
	avatar, okA := ts.avatars[a]
	volume, okV := ts.volumes[b]
	if !okA || !okV {
		avatar, okA = ts.avatars[b]
		volume, okV = ts.volumes[a]
	}
	if !okA || !okV {
		return
	}
	ts.pending = append(ts.pending, ecs.TriggerEvent{Volume: volume, Other: avatar, Phase: phase})
}

func (ts *TriggerSystem) syncVolumes(w *ecs.World) {
	ecs.ForEach2(w, component.TriggerVolumeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, v *component.TriggerVolume, t *component.Transform) {
		if info, ok := ts.bodies[e]; ok {
			if info.width == v.Width && info.height == v.Height {
				return
			}
			ts.removeBody(e, info)
		}
		if v.Width <= 0 || v.Height <= 0 {
			return
		}

		bb := cp.BB{L: t.X - v.Width/2, B: t.Y - v.Height/2, R: t.X + v.Width/2, T: t.Y + v.Height/2}
		shape := cp.NewBox2(ts.space.StaticBody, bb, 0)
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeVolume)
		ts.space.AddShape(shape)

		ts.volumes[shape] = e
		ts.bodies[e] = &bodyInfo{body: ts.space.StaticBody, shape: shape, static: true, width: v.Width, height: v.Height}
	})
}

func (ts *TriggerSystem) syncAvatars(w *ecs.World) {
	ecs.ForEach2(w, component.AvatarComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, a *component.Avatar, t *component.Transform) {
		info, ok := ts.bodies[e]
		if !ok {
			width, height := a.Width, a.Height
			if width <= 0 {
				width = 1
			}
			if height <= 0 {
				height = 1
			}
			body := cp.NewBody(1, math.Inf(1))
			body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
			shape := cp.NewBox(body, width, height, 0)
			shape.SetSensor(true)
			shape.SetCollisionType(collisionTypeAvatar)
			shape.SetFilter(cp.NewShapeFilter(avatarGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
			ts.space.AddBody(body)
			ts.space.AddShape(shape)

			info = &bodyInfo{body: body, shape: shape, width: width, height: height}
			ts.bodies[e] = info
			ts.avatars[shape] = e
		}
		info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		info.body.SetVelocity(0, 0)
	})
}

// cleanupEntities drops bodies whose entity died or lost its volume/avatar
// component. Removing an overlapping shape reports an exit.
func (ts *TriggerSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ts.bodies {
		keep := false
		if w.IsAlive(e) {
			if info.static {
				keep = ecs.Has(w, e, component.TriggerVolumeComponent.Kind())
			} else {
				keep = ecs.Has(w, e, component.AvatarComponent.Kind())
			}
		}
		if keep {
			continue
		}
		ts.removeBody(e, info)
	}
}

func (ts *TriggerSystem) removeBody(e ecs.Entity, info *bodyInfo) {
	if info.shape != nil {
		ts.space.RemoveShape(info.shape)
		delete(ts.volumes, info.shape)
		delete(ts.avatars, info.shape)
	}
	if info.body != nil && !info.static {
		ts.space.RemoveBody(info.body)
	}
	delete(ts.bodies, e)
	if ts.Debug {
		log.Printf("trigger: removed body for %v", e)
	}
}
