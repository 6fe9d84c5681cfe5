package paint

import (
	"fmt"
	"strings"
	"testing"
)

func newTestEffect(cfg Config) (*Effect, *fakeScene, *fakeFader) {
	scene := newFakeScene()
	fader := &fakeFader{}
	logger, _ := bufferLogger()
	return NewEffect(scene, cfg, WithFader(fader), WithLogger(logger)), scene, fader
}

func TestJoinColdWarmRestoresOriginal(t *testing.T) {
	e, scene, _ := newTestEffect(DefaultConfig())
	mesh := newFakeMesh(red, green)
	scene.add(1, mesh)

	e.OnAvatarJoin(1)

	snap, ok := e.Snapshots().Lookup(1)
	if !ok || snap[0] != red || snap[1] != green {
		t.Fatalf("expected original colors captured, got %+v", snap)
	}
	cold := DefaultConfig().Cold.Properties()
	if mesh.props(0) != cold || mesh.props(1) != cold {
		t.Fatalf("expected cold tint after join, got %+v", mesh.props(0))
	}
	if s, _ := e.State(1); s != Cold {
		t.Fatalf("expected cold state, got %v", s)
	}

	e.OnWarmArea(TriggerEvent{Object: 1, Phase: PhaseEnter})

	if mesh.props(0) != red || mesh.props(1) != green {
		t.Fatalf("restore wrote %+v / %+v", mesh.props(0), mesh.props(1))
	}
	last := mesh.mats[0].calls[len(mesh.mats[0].calls)-1]
	if last.duration != DefaultConfig().WarmRestoreSpeed || last.mode != Linear {
		t.Fatalf("unexpected restore blend %+v", last)
	}
	if s, _ := e.State(1); s != Warm {
		t.Fatalf("expected warm state, got %v", s)
	}
}

func TestJoinWithoutColdOnJoin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColdOnJoin = false
	e, scene, _ := newTestEffect(cfg)
	mesh := newFakeMesh(red)
	scene.add(1, mesh)

	e.OnAvatarJoin(1)

	if mesh.writes() != 0 {
		t.Fatalf("join without cold should not touch materials")
	}
	if s, ok := e.State(1); !ok || s != Warm {
		t.Fatalf("expected warm state, got %v %v", s, ok)
	}
}

func TestJoinTwiceKeepsFirstSnapshot(t *testing.T) {
	e, scene, _ := newTestEffect(DefaultConfig())
	mesh := newFakeMesh(red)
	scene.add(1, mesh)

	e.OnAvatarJoin(1)
	e.OnAvatarJoin(1)

	snap, _ := e.Snapshots().Lookup(1)
	if snap[0] != red {
		t.Fatalf("second join replaced the snapshot with %+v", snap[0])
	}
}

func TestJoinHiddenMeshCapturesButSkipsCold(t *testing.T) {
	e, scene, _ := newTestEffect(DefaultConfig())
	mesh := newFakeMesh(red)
	mesh.visible = false
	scene.add(1, mesh)

	e.OnAvatarJoin(1)

	if _, ok := e.Snapshots().Lookup(1); !ok {
		t.Fatalf("snapshot should be captured for hidden avatars")
	}
	if mesh.writes() != 0 {
		t.Fatalf("hidden mesh was tinted")
	}
}

func TestWarmExitCools(t *testing.T) {
	cases := []struct {
		name      string
		visible   bool
		wantWrite bool
	}{
		{"visible", true, true},
		{"hidden", false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, scene, _ := newTestEffect(DefaultConfig())
			mesh := newFakeMesh(red, green, blue)
			mesh.visible = c.visible
			scene.add(2, mesh)

			e.OnWarmArea(TriggerEvent{Object: 2, Phase: PhaseExit})

			if got := mesh.writes() == 3; got != c.wantWrite {
				t.Fatalf("writes=%d", mesh.writes())
			}
			if c.wantWrite {
				call := mesh.mats[2].calls[0]
				if call.duration != 1.5 || call.props.EmissiveIntensity != 3 {
					t.Fatalf("unexpected cold blend %+v", call)
				}
			}
		})
	}
}

func TestWarmEnterWithoutSnapshotIsSkipped(t *testing.T) {
	e, scene, _ := newTestEffect(DefaultConfig())
	mesh := newFakeMesh(red)
	mesh.visible = false
	scene.add(1, mesh)

	e.OnWarmArea(TriggerEvent{Object: 1, Phase: PhaseEnter})

	if mesh.writes() != 0 || mesh.visible {
		t.Fatalf("restore without snapshot touched the mesh")
	}
	if _, ok := e.State(1); ok {
		t.Fatalf("skipped transition recorded a state")
	}
}

func TestWarmEnterForcesVisibleAndRestoresCapturedSlotsOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColdOnJoin = false
	e, scene, _ := newTestEffect(cfg)
	mesh := newFakeMesh(red)
	scene.add(1, mesh)
	e.OnAvatarJoin(1)

	mesh.visible = false
	mesh.mats = append(mesh.mats, &fakeMaterial{props: blue})
	mesh.mats[0].props = green

	e.OnWarmArea(TriggerEvent{Object: 1, Phase: PhaseEnter})

	if !mesh.visible {
		t.Fatalf("warm enter should make the mesh visible")
	}
	if mesh.props(0) != red {
		t.Fatalf("slot 0 not restored: %+v", mesh.props(0))
	}
	if len(mesh.mats[1].calls) != 0 {
		t.Fatalf("slot added after capture was written")
	}
}

func TestBurnEnter(t *testing.T) {
	cases := []struct {
		name      string
		sound     string
		visible   bool
		fader     bool
		faderErr  error
		wantTint  bool
		wantSound int
	}{
		{"visible_with_sound", "crackle", true, true, nil, true, 1},
		{"no_sound_resource", "", true, true, nil, true, 0},
		{"no_audio_output", "crackle", true, false, nil, true, 0},
		{"play_fails", "crackle", true, true, errBoom, true, 0},
		{"hidden_mesh", "crackle", false, true, nil, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.BurnSound = soundResource(c.sound)
			cfg.BurnPitch = 2
			scene := newFakeScene()
			fader := &fakeFader{err: c.faderErr}
			logger, _ := bufferLogger()
			opts := []Option{WithLogger(logger)}
			if c.fader {
				opts = append(opts, WithFader(fader))
			}
			e := NewEffect(scene, cfg, opts...)

			mesh := newFakeMesh(red, green)
			mesh.visible = c.visible
			scene.add(1, mesh)

			e.OnBurnArea(TriggerEvent{Object: 1, Phase: PhaseEnter})

			burnt := cfg.Burnt.Properties()
			if got := mesh.props(0) == burnt && mesh.props(1) == burnt; got != c.wantTint {
				t.Fatalf("burnt tint applied=%v, want %v", got, c.wantTint)
			}
			if len(fader.played) != c.wantSound {
				t.Fatalf("played %d sounds, want %d", len(fader.played), c.wantSound)
			}
			if c.wantSound > 0 {
				if len(fader.adjusts) != 1 || fader.adjusts[0] != (adjustCall{loudness: 50, pitch: 2}) {
					t.Fatalf("unexpected adjust calls %+v", fader.adjusts)
				}
			}
			if s, ok := e.State(1); c.wantTint && (!ok || s != Burnt) {
				t.Fatalf("expected burnt state, got %v", s)
			}
		})
	}
}

func TestBurnExitDoesNothing(t *testing.T) {
	e, scene, fader := newTestEffect(DefaultConfig())
	mesh := newFakeMesh(red)
	scene.add(1, mesh)

	e.OnBurnArea(TriggerEvent{Object: 1, Phase: PhaseExit})

	if mesh.writes() != 0 || len(fader.played) != 0 {
		t.Fatalf("burn exit should not transition")
	}
}

func TestBurntRecoversThroughWarmArea(t *testing.T) {
	e, scene, _ := newTestEffect(DefaultConfig())
	mesh := newFakeMesh(red)
	scene.add(1, mesh)

	e.OnAvatarJoin(1)
	e.OnBurnArea(TriggerEvent{Object: 1, Phase: PhaseEnter})
	e.OnBurnArea(TriggerEvent{Object: 1, Phase: PhaseExit})
	if s, _ := e.State(1); s != Burnt {
		t.Fatalf("expected burnt after burn exit, got %v", s)
	}

	e.OnWarmArea(TriggerEvent{Object: 1, Phase: PhaseEnter})
	if s, _ := e.State(1); s != Warm || mesh.props(0) != red {
		t.Fatalf("expected warm original look, got %v %+v", s, mesh.props(0))
	}
}

func TestHandlersSuppressFailures(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(s *fakeScene)
		debug   bool
		wantLog string
	}{
		{"agent_left", func(s *fakeScene) {}, false, ""},
		{"agent_left_debug", func(s *fakeScene) {}, true, "agent not found"},
		{"mesh_missing", func(s *fakeScene) { s.add(1, nil) }, false, ""},
		{"unexpected_error", func(s *fakeScene) { s.err = errBoom }, false, "boom"},
		{"panic", func(s *fakeScene) { s.add(1, newFakeMesh(red)).panics = true }, false, "recovered"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			scene := newFakeScene()
			c.setup(scene)
			logger, buf := bufferLogger()
			cfg := DefaultConfig()
			cfg.Debug = c.debug
			e := NewEffect(scene, cfg, WithLogger(logger))

			e.OnAvatarJoin(1)
			e.OnWarmArea(TriggerEvent{Object: 1, Phase: PhaseExit})
			e.OnBurnArea(TriggerEvent{Object: 1, Phase: PhaseEnter})

			out := buf.String()
			if c.wantLog == "" && out != "" {
				t.Fatalf("expected silent skip, got %q", out)
			}
			if c.wantLog != "" && !strings.Contains(out, c.wantLog) {
				t.Fatalf("expected log containing %q, got %q", c.wantLog, out)
			}
		})
	}
}

func TestUnknownInterpolationFallsBackToLinear(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.Interpolation = "bogus"
	scene := newFakeScene()
	logger, buf := bufferLogger()
	e := NewEffect(scene, cfg, WithLogger(logger))
	mesh := newFakeMesh(red)
	scene.add(1, mesh)

	e.OnWarmArea(TriggerEvent{Object: 1, Phase: PhaseExit})

	if mesh.mats[0].calls[0].mode != Linear {
		t.Fatalf("expected linear, got %v", mesh.mats[0].calls[0].mode)
	}
	if !strings.Contains(buf.String(), `unknown interpolation mode "bogus"`) {
		t.Fatalf("expected debug warning, got %q", buf.String())
	}

	cfg.Debug = false
	buf.Reset()
	e.Reconfigure(cfg)
	if buf.Len() != 0 {
		t.Fatalf("warning logged without debug: %q", buf.String())
	}
}

func TestReconfigureChangesMode(t *testing.T) {
	e, scene, _ := newTestEffect(DefaultConfig())
	mesh := newFakeMesh(red)
	scene.add(1, mesh)

	cfg := DefaultConfig()
	cfg.Interpolation = "SmoothStep"
	cfg.Cold.TransitionSpeed = 4
	e.Reconfigure(cfg)
	e.OnWarmArea(TriggerEvent{Object: 1, Phase: PhaseExit})

	call := mesh.mats[0].calls[0]
	if call.mode != Smoothstep || call.duration != 4 {
		t.Fatalf("reconfigure not applied: %+v", call)
	}
}

func TestAvatarLeave(t *testing.T) {
	for _, evict := range []bool{false, true} {
		t.Run(fmt.Sprintf("evict=%v", evict), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.EvictOnLeave = evict
			e, scene, _ := newTestEffect(cfg)
			scene.add(1, newFakeMesh(red))

			e.OnAvatarJoin(1)
			delete(scene.agents, 1)
			e.OnAvatarLeave(1)

			if _, ok := e.State(1); ok {
				t.Fatalf("state kept after leave")
			}
			if _, ok := e.Snapshots().Lookup(1); ok == evict {
				t.Fatalf("snapshot present=%v with evict=%v", ok, evict)
			}
		})
	}
}

func TestNilEffectIsInert(t *testing.T) {
	var e *Effect
	e.OnAvatarJoin(1)
	e.OnWarmArea(TriggerEvent{Object: 1, Phase: PhaseEnter})
	e.OnBurnArea(TriggerEvent{Object: 1, Phase: PhaseEnter})
	e.OnAvatarLeave(1)
	if _, ok := e.State(1); ok {
		t.Fatalf("nil effect reported state")
	}
}
