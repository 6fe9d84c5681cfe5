package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/campfire/assets"
	"github.com/milk9111/campfire/audio"
	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
	"github.com/milk9111/campfire/ecs/system"
	"github.com/milk9111/campfire/paint"
	"github.com/milk9111/campfire/prefabs"
	"github.com/milk9111/campfire/scene"
	"github.com/milk9111/campfire/sound"
)

type Options struct {
	ConfigPath string
	Debug      bool
	Watch      bool
}

type Game struct {
	frames int
	width  int
	height int

	opts Options
	spec *prefabs.CampfireSpec

	world     *ecs.World
	scheduler *ecs.Scheduler
	walkers   *system.WalkerSystem
	render    *system.RenderSystem
	triggers  *system.TriggerSystem
	effect    *paint.Effect

	audio   *audio.Manager
	fader   *sound.FadeController
	ctx     context.Context
	cancel  context.CancelFunc
	watcher *prefabs.Watcher

	avatars []ecs.Entity
	spawned int
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadCampfireSpec(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		spec.Debug = true
	}

	world := ecs.NewWorld()
	sc := scene.New(world)

	g := &Game{
		width:  max(spec.Scene.Width, 1),
		height: max(spec.Scene.Height, 1),
		opts:   opts,
		spec:   spec,
		world:  world,
		audio:  audio.NewManager(assets.DecodeSound),
	}

	var effectOpts []paint.Option
	if err := g.audio.Initialize(); err != nil {
		log.Printf("audio: %v; burn sounds disabled", err)
	} else {
		g.fader = sound.NewFadeController(g.audio, spec.SoundSettings(), sound.WithOrigin(sc.EmitterOrigin))
		effectOpts = append(effectOpts, paint.WithFader(g.fader))
	}
	g.effect = paint.NewEffect(sc, spec.EffectConfig(), effectOpts...)

	g.walkers = system.NewWalkerSystem(nil)
	g.render = system.NewRenderSystem(g.effect)
	g.render.Debug = spec.Debug
	g.triggers = system.NewTriggerSystem()
	g.triggers.Debug = spec.Debug
	g.scheduler = ecs.NewScheduler(
		system.NewAvatarSystem(),
		g.walkers,
		g.triggers,
		system.NewCampfireSystem(g.effect),
		system.NewMaterialBlendSystem(),
		system.NewAudioSystem(g.audio),
	)

	if err := g.buildScene(); err != nil {
		g.Close()
		return nil, err
	}

	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.fader.Start(g.ctx)

	if opts.Watch {
		g.watcher = g.startWatcher()
	}
	return g, nil
}

func (g *Game) buildScene() error {
	s := g.spec.Scene
	fire := s.Campfire

	emitter := ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, emitter, component.TransformComponent.Kind(), &component.Transform{X: fire.X, Y: fire.Y}); err != nil {
		return err
	}
	if err := ecs.Add(g.world, emitter, component.AudioEmitterComponent.Kind(), &component.AudioEmitter{}); err != nil {
		return err
	}
	if err := ecs.Add(g.world, emitter, component.TriggerVolumeComponent.Kind(), &component.TriggerVolume{
		Role:   component.TriggerBurn,
		Width:  s.BurnArea.Width,
		Height: s.BurnArea.Height,
	}); err != nil {
		return err
	}

	warm := ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, warm, component.TransformComponent.Kind(), &component.Transform{X: fire.X, Y: fire.Y}); err != nil {
		return err
	}
	if err := ecs.Add(g.world, warm, component.TriggerVolumeComponent.Kind(), &component.TriggerVolume{
		Role:   component.TriggerWarm,
		Width:  s.WarmArea.Width,
		Height: s.WarmArea.Height,
	}); err != nil {
		return err
	}

	listener := ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, listener, component.TransformComponent.Kind(), &component.Transform{X: float64(g.width) / 2, Y: float64(g.height) / 2}); err != nil {
		return err
	}
	if err := ecs.Add(g.world, listener, component.ListenerComponent.Kind(), &component.Listener{}); err != nil {
		return err
	}

	for range s.Avatars {
		if err := g.spawnNext(); err != nil {
			return err
		}
	}
	return nil
}

// spawnNext spawns the next configured avatar, cycling through the list.
func (g *Game) spawnNext() error {
	list := g.spec.Scene.Avatars
	if len(list) == 0 {
		return nil
	}
	a := list[g.spawned%len(list)]
	g.spawned++

	colors := make([]paint.Color, len(a.Colors))
	for i, c := range a.Colors {
		colors[i] = c.Color
	}

	name := a.Name
	if g.spawned > len(list) {
		name = fmt.Sprintf("%s-%d", a.Name, g.spawned)
	}

	e, err := system.SpawnAvatar(g.world, system.AvatarSpawn{
		Name:      name,
		X:         a.Home.X + a.Radius,
		Y:         a.Home.Y,
		Width:     a.Width,
		Height:    a.Height,
		Materials: system.Palette(colors...),
		Walker: &component.Walker{
			Script: a.Script,
			Speed:  a.Speed,
			Radius: a.Radius,
			Phase:  a.Phase + float64(g.spawned/len(list)),
			HomeX:  a.Home.X,
			HomeY:  a.Home.Y,
		},
	})
	if err != nil {
		return fmt.Errorf("spawn %s: %w", name, err)
	}
	g.avatars = append(g.avatars, e)
	return nil
}

func (g *Game) removeLast() {
	for len(g.avatars) > 0 {
		e := g.avatars[len(g.avatars)-1]
		g.avatars = g.avatars[:len(g.avatars)-1]
		if system.RemoveAvatar(g.world, e) {
			return
		}
	}
}

func (g *Game) toggleFirstVisibility() {
	for _, e := range g.avatars {
		if m, ok := ecs.Get(g.world, e, component.MeshComponent.Kind()); ok {
			m.Visible = !m.Visible
			return
		}
	}
}

func (g *Game) startWatcher() *prefabs.Watcher {
	dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
	if g.opts.ConfigPath != "" {
		dirs = append(dirs, filepath.Dir(g.opts.ConfigPath))
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("watch: %v; hot reload disabled", err)
		return nil
	}
	return w
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for _, c := range g.watcher.Poll() {
		g.reload(c)
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("watch: %v", err)
	default:
	}
}

func (g *Game) reload(c prefabs.Change) {
	switch c.Kind {
	case prefabs.ChangeScript:
		g.walkers.Invalidate()
		log.Printf("reload: script %s", c.Name())
	case prefabs.ChangeSpec:
		want := prefabs.DefaultConfigName
		if g.opts.ConfigPath != "" {
			want = filepath.Base(g.opts.ConfigPath)
		}
		if c.Name() != want {
			return
		}
		spec, err := prefabs.LoadCampfireSpec(g.opts.ConfigPath)
		if err != nil {
			log.Printf("reload: %v", err)
			return
		}
		if g.opts.Debug {
			spec.Debug = true
		}
		g.effect.Reconfigure(spec.EffectConfig())
		g.fader.SetSettings(spec.SoundSettings())
		if g.fader.Start(g.ctx) {
			log.Printf("reload: fade loop started")
		}
		g.render.Debug = spec.Debug
		g.triggers.Debug = spec.Debug
		g.spec.Debug = spec.Debug
		log.Printf("reload: spec %s", c.Name())
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		if err := g.spawnNext(); err != nil {
			log.Printf("avatar: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.removeLast()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.toggleFirstVisibility()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.render.Debug = !g.render.Debug
	}

	g.pollWatcher()
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    avatars: %d\nJ join  L leave  H hide  F3 debug", g.frames, ebiten.ActualFPS(), len(g.avatars)))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the fade loop and releases audio and the watcher.
func (g *Game) Close() {
	if g.cancel != nil {
		g.cancel()
	}
	g.fader.Stop()
	g.fader.StopSound(false)
	g.audio.Cleanup()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
