// Package sound tracks a single one-shot playback handle and fades its
// loudness and pitch toward jittered targets on a fixed tick.
package sound

import "errors"

var (
	ErrNoPlayer   = errors.New("sound: no audio output")
	ErrNoResource = errors.New("sound: no sound resource")
)

// Resource names a playable clip. The empty Resource means "not configured".
type Resource string

// Position is a world-space position.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Handle is a live playback. Loudness is in decibels, pitch shift in
// semitones.
type Handle interface {
	IsPlaying() bool
	Loudness() float64
	SetLoudness(db float64)
	PitchShift() float64
	SetPitchShift(semitones float64)
	Stop(fadeout bool)
}

// Player starts unsynchronized one-shot playback of a resource at a world
// position.
type Player interface {
	PlayAt(res Resource, at Position) (Handle, error)
}
