// Package audio plays one-shot positional sounds through beep.
package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/campfire/sound"
)

const (
	sampleRate = beep.SampleRate(48000)

	resampleQuality = 4
	// rolloff is the distance at which a sound plays at half gain.
	rolloff = 200.0
	// panWidth is the horizontal distance that pans a sound fully to one side.
	panWidth = 300.0

	stopFade = 250 * time.Millisecond
)

var ErrNotInitialized = errors.New("audio: not initialized")

// Opener decodes a sound resource.
type Opener func(res sound.Resource) (beep.StreamSeekCloser, beep.Format, error)

// Manager owns the speaker mixer and decoded clip buffers. It implements
// sound.Player.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	open        Opener
	buffers     map[sound.Resource]*beep.Buffer
	listener    sound.Position
	initialized bool

	// lock guards mixer and voice mutation against the speaker goroutine.
	lock   func()
	unlock func()
}

func NewManager(open Opener) *Manager {
	return &Manager{
		mixer:   &beep.Mixer{},
		open:    open,
		buffers: make(map[sound.Resource]*beep.Buffer),
		lock:    speaker.Lock,
		unlock:  speaker.Unlock,
	}
}

// Initialize starts the speaker.
func (m *Manager) Initialize() error {
	if m == nil {
		return ErrNotInitialized
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup silences every voice. beep has no speaker close, so the mixer is
// cleared instead.
func (m *Manager) Cleanup() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.lock()
	m.mixer.Clear()
	m.unlock()
	m.initialized = false
}

func (m *Manager) SetListener(p sound.Position) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.listener = p
	m.mu.Unlock()
}

// Voices returns the number of streams in the mixer.
func (m *Manager) Voices() int {
	if m == nil {
		return 0
	}
	m.lock()
	defer m.unlock()
	return m.mixer.Len()
}

// PlayAt starts res once. Gain falls off with distance from the listener
// and the sound pans toward the side it is on.
func (m *Manager) PlayAt(res sound.Resource, at sound.Position) (sound.Handle, error) {
	if m == nil {
		return nil, ErrNotInitialized
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil, ErrNotInitialized
	}
	buf, err := m.buffer(res)
	if err != nil {
		return nil, err
	}

	dx := at.X - m.listener.X
	dist := math.Hypot(dx, math.Hypot(at.Y-m.listener.Y, at.Z-m.listener.Z))
	gain := 1 / (1 + dist/rolloff)
	pan := max(-1, min(1, dx/panWidth))

	v := newVoice(buf.Streamer(0, buf.Len()), buf.Format(), gain, pan, m.lock, m.unlock)

	m.lock()
	m.mixer.Add(v.ctrl)
	m.unlock()
	return v, nil
}

func (m *Manager) buffer(res sound.Resource) (*beep.Buffer, error) {
	if buf, ok := m.buffers[res]; ok {
		return buf, nil
	}
	if m.open == nil {
		return nil, fmt.Errorf("audio: no opener for %s", res)
	}
	stream, format, err := m.open(res)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", res, err)
	}
	m.buffers[res] = buf
	return buf, nil
}
