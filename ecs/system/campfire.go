package system

import (
	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
	"github.com/milk9111/campfire/paint"
	"github.com/milk9111/campfire/scene"
)

// CampfireSystem delivers world events to the paint effect. It is the only
// consumer of the event queue.
type CampfireSystem struct {
	effect *paint.Effect
}

func NewCampfireSystem(effect *paint.Effect) *CampfireSystem {
	return &CampfireSystem{effect: effect}
}

func (c *CampfireSystem) Update(w *ecs.World) {
	if c == nil || c.effect == nil || w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventAvatarJoined:
			if data, ok := evt.Data.(ecs.AvatarEvent); ok {
				c.effect.OnAvatarJoin(scene.ObjectID(data.Avatar))
			}
		case ecs.EventAvatarLeft:
			if data, ok := evt.Data.(ecs.AvatarEvent); ok {
				c.effect.OnAvatarLeave(scene.ObjectID(data.Avatar))
			}
		case ecs.EventTrigger:
			if data, ok := evt.Data.(ecs.TriggerEvent); ok {
				c.routeTrigger(w, data)
			}
		}
	}
}

func (c *CampfireSystem) routeTrigger(w *ecs.World, evt ecs.TriggerEvent) {
	volume, ok := ecs.Get(w, evt.Volume, component.TriggerVolumeComponent.Kind())
	if !ok {
		return
	}
	out := paint.TriggerEvent{Object: scene.ObjectID(evt.Other), Phase: phase(evt.Phase)}
	switch volume.Role {
	case component.TriggerWarm:
		c.effect.OnWarmArea(out)
	case component.TriggerBurn:
		c.effect.OnBurnArea(out)
	}
}

func phase(p ecs.TriggerPhase) paint.Phase {
	switch p {
	case ecs.TriggerEnter:
		return paint.PhaseEnter
	case ecs.TriggerExit:
		return paint.PhaseExit
	default:
		return 0
	}
}
