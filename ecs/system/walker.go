package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
	"github.com/milk9111/campfire/prefabs"
)

// ScriptLoader returns the source of a walker script.
type ScriptLoader func(name string) ([]byte, error)

// WalkerSystem moves avatars along paths computed by tengo scripts. A
// script reads x, y, home_x, home_y, t, phase, speed and radius, and sets
// target_x and target_y.
type WalkerSystem struct {
	dt     float64
	load   ScriptLoader
	cache  map[string]*tengo.Compiled
	failed map[string]bool
}

var walkerInputs = []string{"x", "y", "home_x", "home_y", "t", "phase", "speed", "radius"}

func NewWalkerSystem(load ScriptLoader) *WalkerSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &WalkerSystem{
		dt:     TickSeconds,
		load:   load,
		cache:  make(map[string]*tengo.Compiled),
		failed: make(map[string]bool),
	}
}

// Invalidate drops compiled scripts so edited sources are picked up.
func (ws *WalkerSystem) Invalidate() {
	if ws == nil {
		return
	}
	ws.cache = make(map[string]*tengo.Compiled)
	ws.failed = make(map[string]bool)
}

func (ws *WalkerSystem) Update(w *ecs.World) {
	if ws == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.WalkerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, walker *component.Walker, t *component.Transform) {
		walker.Time += ws.dt
		x, y, err := ws.step(walker, t)
		if err != nil {
			log.Printf("walker: entity=%v script %s: %v", e, walker.Script, err)
			return
		}
		t.X, t.Y = x, y
	})
}

func (ws *WalkerSystem) step(walker *component.Walker, t *component.Transform) (float64, float64, error) {
	compiled, err := ws.compiled(walker.Script)
	if err != nil || compiled == nil {
		return t.X, t.Y, err
	}

	values := []float64{t.X, t.Y, walker.HomeX, walker.HomeY, walker.Time, walker.Phase, walker.Speed, walker.Radius}
	for i, name := range walkerInputs {
		if err := compiled.Set(name, values[i]); err != nil {
			return t.X, t.Y, err
		}
	}
	if err := compiled.Run(); err != nil {
		return t.X, t.Y, err
	}
	if !compiled.IsDefined("target_x") || !compiled.IsDefined("target_y") {
		return t.X, t.Y, fmt.Errorf("script must set target_x and target_y")
	}
	return compiled.Get("target_x").Float(), compiled.Get("target_y").Float(), nil
}

// compiled returns the cached program for name. A script that failed to
// compile is reported once and then skipped until Invalidate.
func (ws *WalkerSystem) compiled(name string) (*tengo.Compiled, error) {
	name = strings.TrimSpace(name)
	if name == "" || ws.failed[name] {
		return nil, nil
	}
	if c, ok := ws.cache[name]; ok {
		return c, nil
	}

	src, err := ws.load(name)
	if err != nil {
		ws.failed[name] = true
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript(src)
	for _, in := range walkerInputs {
		_ = script.Add(in, 0.0)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	c, err := script.Compile()
	if err != nil {
		ws.failed[name] = true
		return nil, fmt.Errorf("compile: %w", err)
	}
	ws.cache[name] = c
	return c, nil
}
