package sound

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// TickInterval is the fade loop cadence.
const TickInterval = 100 * time.Millisecond

var tickSeconds = TickInterval.Seconds()

// Settings are the load-time sound options.
type Settings struct {
	// Offset is added to the emitter origin for every playback.
	Offset Position
	// LoudnessVariance and PitchVariance bound the uniform jitter applied by
	// Adjust.
	LoudnessVariance float64
	PitchVariance    float64
	// FadeTime is the duration, in seconds, of an Adjust fade. Zero applies
	// targets immediately and disables the fade loop.
	FadeTime float64
}

// FadeState is the controller's view of the active playback.
type FadeState struct {
	Handle           Handle
	TargetLoudness   float64
	TargetPitch      float64
	PreviousLoudness float64
	PreviousPitch    float64
	Remaining        float64
	Total            float64
}

// Ticker is the subset of time.Ticker the fade loop needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// FadeController owns the single tracked playback handle and the periodic
// fade loop. All methods are safe to call from any goroutine.
type FadeController struct {
	mu        sync.Mutex
	player    Player
	origin    func() Position
	settings  Settings
	rnd       *rand.Rand
	newTicker func(time.Duration) Ticker

	state  FadeState
	cancel context.CancelFunc
	loop   uint64
}

type Option func(*FadeController)

// WithOrigin sets the emitter position source. Defaults to the origin.
func WithOrigin(fn func() Position) Option {
	return func(f *FadeController) {
		if fn != nil {
			f.origin = fn
		}
	}
}

// WithRand replaces the jitter source.
func WithRand(r *rand.Rand) Option {
	return func(f *FadeController) {
		if r != nil {
			f.rnd = r
		}
	}
}

// WithTicker replaces the ticker factory used by the fade loop.
func WithTicker(fn func(time.Duration) Ticker) Option {
	return func(f *FadeController) {
		if fn != nil {
			f.newTicker = fn
		}
	}
}

func NewFadeController(player Player, settings Settings, opts ...Option) *FadeController {
	f := &FadeController{
		player:    player,
		origin:    func() Position { return Position{} },
		settings:  settings,
		rnd:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		newTicker: newTimeTicker,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetSettings replaces the settings for subsequent calls. An armed fade
// keeps the total it was armed with.
func (f *FadeController) SetSettings(s Settings) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = s
}

func (f *FadeController) Settings() Settings {
	if f == nil {
		return Settings{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings
}

// State returns a copy of the current fade state.
func (f *FadeController) State() FadeState {
	if f == nil {
		return FadeState{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Play starts res once at origin+offset and tracks the new handle. A
// previously tracked playback is left to finish on its own. An armed fade
// carries over to the new handle.
func (f *FadeController) Play(res Resource) error {
	if f == nil || f.player == nil {
		return ErrNoPlayer
	}
	if res == "" {
		return ErrNoResource
	}

	f.mu.Lock()
	at := f.origin().Add(f.settings.Offset)
	f.mu.Unlock()

	h, err := f.player.PlayAt(res, at)
	if err != nil {
		return fmt.Errorf("sound: play %s: %w", res, err)
	}

	f.mu.Lock()
	f.state.Handle = h
	f.mu.Unlock()
	return nil
}

// Adjust retargets the playing handle. Without a playing handle it does
// nothing.
func (f *FadeController) Adjust(loudnessPct, pitch float64) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	h := f.state.Handle
	if h == nil || !h.IsPlaying() {
		return
	}

	f.state.TargetLoudness = loudnessPct + f.settings.LoudnessVariance*f.jitter()
	f.state.TargetPitch = pitch + f.settings.PitchVariance*f.jitter()

	if f.settings.FadeTime > 0 {
		f.state.PreviousLoudness = DbToPercent(h.Loudness())
		f.state.PreviousPitch = h.PitchShift()
		f.state.Remaining = f.settings.FadeTime
		f.state.Total = f.settings.FadeTime
		return
	}

	f.state.Remaining = 0
	h.SetLoudness(PercentToDb(f.state.TargetLoudness))
	h.SetPitchShift(f.state.TargetPitch)
}

// Step advances an armed fade by dt seconds and writes the blended values
// to the handle.
func (f *FadeController) Step(dt float64) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step(dt)
}

func (f *FadeController) step(dt float64) {
	s := &f.state
	if s.Remaining <= 0 || s.Total <= 0 || s.Handle == nil || !s.Handle.IsPlaying() {
		return
	}

	s.Remaining = max(s.Remaining-dt, 0)
	t := s.Remaining / s.Total

	loudness := s.PreviousLoudness*t + s.TargetLoudness*(1-t)
	pitch := s.PreviousPitch*t + s.TargetPitch*(1-t)

	s.Handle.SetLoudness(PercentToDb(loudness))
	s.Handle.SetPitchShift(pitch)
}

// StopSound stops and forgets the tracked handle.
func (f *FadeController) StopSound(fadeout bool) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Handle != nil {
		f.state.Handle.Stop(fadeout)
		f.state.Handle = nil
	}
	f.state.Remaining = 0
}

// Start launches the fade loop. It reports false when the loop is already
// running or fading is disabled. Callers that enable fading through
// SetSettings call Start again.
func (f *FadeController) Start(ctx context.Context) bool {
	if f == nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil || f.settings.FadeTime <= 0 {
		return false
	}

	f.state.Remaining = 0
	f.state.PreviousLoudness = 0
	f.state.PreviousPitch = 0

	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.loop++
	ticker := f.newTicker(TickInterval)
	go f.run(ctx, f.loop, ticker)
	return true
}

// Stop aborts the fade loop. The loop exits at its next tick boundary and
// never writes to a handle after Stop returns.
func (f *FadeController) Stop() {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel == nil {
		return
	}
	f.cancel()
	f.cancel = nil
	f.loop++
}

// Running reports whether a fade loop is active.
func (f *FadeController) Running() bool {
	if f == nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancel != nil
}

func (f *FadeController) run(ctx context.Context, id uint64, ticker Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			f.mu.Lock()
			if f.loop == id {
				f.cancel = nil
			}
			f.mu.Unlock()
			return
		case <-ticker.C():
			f.mu.Lock()
			if f.loop != id {
				f.mu.Unlock()
				return
			}
			f.step(tickSeconds)
			f.mu.Unlock()
		}
	}
}

// jitter returns a uniform value in [-1, 1].
func (f *FadeController) jitter() float64 {
	return f.rnd.Float64()*2 - 1
}
