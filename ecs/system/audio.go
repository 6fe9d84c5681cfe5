package system

import (
	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
	"github.com/milk9111/campfire/sound"
)

// ListenerSink receives the listener position each tick.
type ListenerSink interface {
	SetListener(p sound.Position)
}

// AudioSystem keeps the audio listener on the Listener entity.
type AudioSystem struct {
	sink ListenerSink
}

func NewAudioSystem(sink ListenerSink) *AudioSystem {
	return &AudioSystem{sink: sink}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || a.sink == nil || w == nil {
		return
	}
	e, ok := ecs.First(w, component.ListenerComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	a.sink.SetListener(sound.Position{X: t.X, Y: t.Y})
}
