// Package paint tints avatars cold outside a warm area, restores their
// original look inside it and burns them inside a burn area.
package paint

import (
	"fmt"
	"log"

	"github.com/milk9111/campfire/sound"
)

// Fader plays the burn sound and retargets its loudness and pitch.
// *sound.FadeController satisfies it.
type Fader interface {
	Play(res sound.Resource) error
	Adjust(loudnessPct, pitch float64)
}

// Config holds the load-time options of the effect.
type Config struct {
	Debug bool
	// ColdOnJoin applies the cold target as soon as an avatar joins.
	ColdOnJoin bool
	// EvictOnLeave drops an avatar's snapshot when it leaves the scene.
	EvictOnLeave bool
	// Interpolation names the blend curve used by cool, restore and burn.
	// It defaults to linear; unknown names fall back to linear.
	Interpolation string

	Cold             ColorTarget
	Burnt            ColorTarget
	WarmRestoreSpeed float64

	BurnSound    sound.Resource
	BurnLoudness float64
	BurnPitch    float64
}

func DefaultConfig() Config {
	return Config{
		ColdOnJoin:    true,
		Interpolation: "linear",
		Cold: ColorTarget{
			Tint:              Color{R: 0, G: 1, B: 1, A: 0.5},
			EmissiveIntensity: 3,
			TransitionSpeed:   1.5,
		},
		Burnt: ColorTarget{
			Tint:              Color{R: 0, G: 0, B: 0, A: 1},
			EmissiveIntensity: 0,
			TransitionSpeed:   1.5,
		},
		WarmRestoreSpeed: 1.5,
		BurnLoudness:     50,
	}
}

// Effect is the per-scene state machine. Handlers are expected to be
// called serially from the host's event dispatch.
type Effect struct {
	scene     Scene
	cfg       Config
	mode      InterpolationMode
	fader     Fader
	logger    *log.Logger
	snapshots *SnapshotStore
	states    map[ObjectID]ThermalState
}

type Option func(*Effect)

// WithFader enables the burn sound. Without a fader the effect runs
// silently.
func WithFader(f Fader) Option {
	return func(e *Effect) {
		e.fader = f
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Effect) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEffect(scene Scene, cfg Config, opts ...Option) *Effect {
	e := &Effect{
		scene:     scene,
		logger:    log.Default(),
		snapshots: NewSnapshotStore(),
		states:    make(map[ObjectID]ThermalState),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reconfigure(cfg)
	return e
}

// Reconfigure replaces the options used by subsequent transitions.
func (e *Effect) Reconfigure(cfg Config) {
	if e == nil {
		return
	}
	e.cfg = cfg
	mode, ok := ParseInterpolationMode(cfg.Interpolation)
	if !ok {
		e.debugf("unknown interpolation mode %q, using linear", cfg.Interpolation)
	}
	e.mode = mode
}

func (e *Effect) Config() Config {
	if e == nil {
		return Config{}
	}
	return e.cfg
}

func (e *Effect) Snapshots() *SnapshotStore {
	if e == nil {
		return nil
	}
	return e.snapshots
}

// State returns the last transition applied to id.
func (e *Effect) State(id ObjectID) (ThermalState, bool) {
	if e == nil {
		return 0, false
	}
	s, ok := e.states[id]
	return s, ok
}

// OnWarmArea handles the warm volume: leaving it cools the avatar, entering
// it restores the captured look.
func (e *Effect) OnWarmArea(evt TriggerEvent) {
	if e == nil {
		return
	}
	switch evt.Phase {
	case PhaseExit:
		e.guard("warm exit", evt.Object, func() error { return e.cool(evt.Object) })
	case PhaseEnter:
		e.guard("warm enter", evt.Object, func() error { return e.restore(evt.Object) })
	}
}

// OnBurnArea handles the burn volume. Leaving it changes nothing; a burnt
// avatar recovers only through the warm volume.
func (e *Effect) OnBurnArea(evt TriggerEvent) {
	if e == nil || evt.Phase != PhaseEnter {
		return
	}
	e.guard("burn enter", evt.Object, func() error { return e.burn(evt.Object) })
}

// OnAvatarJoin captures the avatar's baseline materials and, with
// ColdOnJoin, cools it immediately.
func (e *Effect) OnAvatarJoin(id ObjectID) {
	if e == nil {
		return
	}
	e.guard("join", id, func() error { return e.join(id) })
}

// OnAvatarLeave forgets the avatar's state. The snapshot is dropped only
// with EvictOnLeave.
func (e *Effect) OnAvatarLeave(id ObjectID) {
	if e == nil {
		return
	}
	delete(e.states, id)
	if e.cfg.EvictOnLeave && e.snapshots.Evict(id) {
		e.debugf("evicted snapshot for %v", id)
	}
}

func (e *Effect) join(id ObjectID) error {
	agent, mesh, err := e.resolve(id)
	if err != nil {
		return err
	}
	if e.snapshots.Capture(id, captureMesh(mesh)) {
		e.debugf("captured %d material slots for %q", len(mesh.Materials()), agent.Name())
	} else {
		e.debugf("snapshot for %q already exists", agent.Name())
	}
	if _, ok := e.states[id]; !ok {
		e.states[id] = Warm
	}
	if !e.cfg.ColdOnJoin {
		return nil
	}
	return e.cool(id)
}

func (e *Effect) cool(id ObjectID) error {
	agent, mesh, err := e.resolveVisible(id)
	if err != nil {
		return err
	}
	Colorize(mesh, e.cfg.Cold, e.mode)
	e.states[id] = Cold
	e.debugf("cooling %q", agent.Name())
	return nil
}

func (e *Effect) restore(id ObjectID) error {
	snap, ok := e.snapshots.Lookup(id)
	if !ok {
		return fmt.Errorf("restore %v: %w", id, ErrNoSnapshot)
	}
	agent, mesh, err := e.resolve(id)
	if err != nil {
		return err
	}
	mesh.SetVisible(true)

	mats := mesh.Materials()
	n := min(len(mats), len(snap))
	for i := 0; i < n; i++ {
		mats[i].SetProperties(snap[i], e.cfg.WarmRestoreSpeed, e.mode)
	}
	e.states[id] = Warm
	e.debugf("warming %q (%d slots)", agent.Name(), n)
	return nil
}

func (e *Effect) burn(id ObjectID) error {
	agent, mesh, err := e.resolveVisible(id)
	if err != nil {
		return err
	}
	if e.fader != nil && e.cfg.BurnSound != "" {
		if err := e.fader.Play(e.cfg.BurnSound); err != nil {
			e.debugf("burn sound: %v", err)
		} else {
			e.fader.Adjust(e.cfg.BurnLoudness, e.cfg.BurnPitch)
		}
	}
	Colorize(mesh, e.cfg.Burnt, e.mode)
	e.states[id] = Burnt
	e.debugf("burning %q", agent.Name())
	return nil
}

func (e *Effect) resolve(id ObjectID) (Agent, Mesh, error) {
	if e.scene == nil {
		return nil, nil, ErrAgentNotFound
	}
	agent, err := e.scene.ResolveAgent(id)
	if err != nil {
		return nil, nil, err
	}
	if agent == nil {
		return nil, nil, fmt.Errorf("resolve %v: %w", id, ErrAgentNotFound)
	}
	mesh, err := agent.Mesh()
	if err != nil {
		return nil, nil, err
	}
	if mesh == nil {
		return nil, nil, fmt.Errorf("resolve %v: %w", id, ErrMeshNotFound)
	}
	return agent, mesh, nil
}

func (e *Effect) resolveVisible(id ObjectID) (Agent, Mesh, error) {
	agent, mesh, err := e.resolve(id)
	if err != nil {
		return nil, nil, err
	}
	if !mesh.Visible() {
		return nil, nil, fmt.Errorf("resolve %v: %w", id, ErrMeshHidden)
	}
	return agent, mesh, nil
}

// guard is the outer boundary of every handler. Resolution failures are
// expected and only reach the debug log; anything else is logged. Nothing
// escapes to the caller.
func (e *Effect) guard(op string, id ObjectID, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("campfire: %s %v: recovered: %v", op, id, r)
		}
	}()

	err := fn()
	switch {
	case err == nil:
	case isResolution(err):
		e.debugf("%s %v skipped: %v", op, id, err)
	default:
		e.logger.Printf("campfire: %s %v: %v", op, id, err)
	}
}

func (e *Effect) debugf(format string, args ...any) {
	if !e.cfg.Debug {
		return
	}
	e.logger.Printf("campfire: "+format, args...)
}
