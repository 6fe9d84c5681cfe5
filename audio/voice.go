package audio

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// voice is one playing clip. Loudness is applied in decibels through
// effects.Volume and pitch through the resampler ratio.
type voice struct {
	lock   func()
	unlock func()

	ctrl      *beep.Ctrl
	resampler *beep.Resampler
	volume    *effects.Volume
	fade      *fadeOut
	baseRatio float64
	fadeLen   int

	mu       sync.Mutex
	loudness float64
	pitch    float64
	done     atomic.Bool
}

func newVoice(src beep.Streamer, format beep.Format, gain, pan float64, lock, unlock func()) *voice {
	v := &voice{
		lock:      lock,
		unlock:    unlock,
		baseRatio: float64(format.SampleRate) / float64(sampleRate),
		fadeLen:   sampleRate.N(stopFade),
	}
	v.resampler = beep.ResampleRatio(resampleQuality, v.baseRatio, src)
	v.volume = &effects.Volume{Streamer: v.resampler, Base: 10}
	spatial := &effects.Pan{
		Streamer: &effects.Gain{Streamer: v.volume, Gain: gain - 1},
		Pan:      pan,
	}
	v.fade = &fadeOut{Streamer: spatial}
	v.ctrl = &beep.Ctrl{Streamer: beep.Seq(v.fade, beep.Callback(func() {
		v.done.Store(true)
	}))}
	return v
}

func (v *voice) IsPlaying() bool {
	return !v.done.Load()
}

func (v *voice) Loudness() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loudness
}

// SetLoudness sets the voice loudness in decibels.
func (v *voice) SetLoudness(db float64) {
	v.mu.Lock()
	v.loudness = db
	v.mu.Unlock()

	v.lock()
	v.volume.Volume = db / 20
	v.unlock()
}

func (v *voice) PitchShift() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pitch
}

// SetPitchShift shifts the voice by semitones.
func (v *voice) SetPitchShift(semitones float64) {
	v.mu.Lock()
	v.pitch = semitones
	v.mu.Unlock()

	v.lock()
	v.resampler.SetRatio(v.baseRatio * math.Pow(2, semitones/12))
	v.unlock()
}

func (v *voice) Stop(fadeout bool) {
	if v.done.Load() {
		return
	}
	v.lock()
	defer v.unlock()
	if fadeout {
		v.fade.start(v.fadeLen)
		return
	}
	v.ctrl.Streamer = nil
	v.done.Store(true)
}

// fadeOut passes samples through until started, then ramps to silence over
// the given number of samples and ends the stream.
type fadeOut struct {
	Streamer beep.Streamer
	total    int
	left     int
	active   bool
}

func (f *fadeOut) start(samples int) {
	if f.active {
		return
	}
	f.active = true
	f.total = max(samples, 1)
	f.left = f.total
}

func (f *fadeOut) Stream(samples [][2]float64) (int, bool) {
	if f.active && f.left <= 0 {
		return 0, false
	}
	n, ok := f.Streamer.Stream(samples)
	if !f.active {
		return n, ok
	}
	for i := 0; i < n; i++ {
		if f.left <= 0 {
			return i, false
		}
		g := float64(f.left) / float64(f.total)
		samples[i][0] *= g
		samples[i][1] *= g
		f.left--
	}
	return n, ok
}

func (f *fadeOut) Err() error {
	return f.Streamer.Err()
}
