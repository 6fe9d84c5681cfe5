package scene

import (
	"errors"
	"testing"

	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
	"github.com/milk9111/campfire/paint"
	"github.com/milk9111/campfire/sound"
)

func addAvatar(t *testing.T, w *ecs.World, name string, tints ...paint.Color) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AvatarComponent.Kind(), &component.Avatar{Name: name}); err != nil {
		t.Fatal(err)
	}
	mats := make([]component.Material, len(tints))
	for i, c := range tints {
		mats[i].Properties.Tint = c
	}
	if err := ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{Visible: true, Materials: mats}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestResolveAgent(t *testing.T) {
	w := ecs.NewWorld()
	s := New(w)

	avatar := addAvatar(t, w, "ash", paint.Color{R: 1, A: 1})
	plain := ecs.CreateEntity(w)
	gone := addAvatar(t, w, "birch")
	ecs.DestroyEntity(w, gone)

	tests := []struct {
		name    string
		id      paint.ObjectID
		wantErr error
	}{
		{"avatar", ObjectID(avatar), nil},
		{"not_an_avatar", ObjectID(plain), paint.ErrAgentNotFound},
		{"destroyed", ObjectID(gone), paint.ErrAgentNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := s.ResolveAgent(tc.id)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if a.ID() != tc.id || a.Name() != "ash" {
				t.Fatalf("unexpected agent %v %q", a.ID(), a.Name())
			}
		})
	}
}

func TestRecycledEntityDoesNotResolveStaleID(t *testing.T) {
	w := ecs.NewWorld()
	s := New(w)

	old := addAvatar(t, w, "ash")
	ecs.DestroyEntity(w, old)
	fresh := addAvatar(t, w, "birch")

	if ObjectID(fresh) == ObjectID(old) {
		t.Fatalf("recycled entity reused object id %v", ObjectID(old))
	}
	if _, err := s.ResolveAgent(ObjectID(old)); !errors.Is(err, paint.ErrAgentNotFound) {
		t.Fatalf("stale id resolved: %v", err)
	}
}

func TestMeshMissing(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AvatarComponent.Kind(), &component.Avatar{Name: "bare"}); err != nil {
		t.Fatal(err)
	}

	a, err := New(w).ResolveAgent(ObjectID(e))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Mesh(); !errors.Is(err, paint.ErrMeshNotFound) {
		t.Fatalf("expected ErrMeshNotFound, got %v", err)
	}
}

func TestMeshWritesThroughToComponent(t *testing.T) {
	w := ecs.NewWorld()
	e := addAvatar(t, w, "ash", paint.Color{R: 1, A: 1}, paint.Color{G: 1, A: 1})

	a, err := New(w).ResolveAgent(ObjectID(e))
	if err != nil {
		t.Fatal(err)
	}
	m, err := a.Mesh()
	if err != nil {
		t.Fatal(err)
	}

	m.SetVisible(false)
	mats := m.Materials()
	if len(mats) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(mats))
	}

	cold := paint.MaterialProperties{Tint: paint.Color{B: 1, A: 1}, EmissiveIntensity: 2}
	mats[0].SetProperties(cold, 0, paint.Linear)
	mats[1].SetProperties(cold, 1, paint.Linear)

	c, _ := ecs.Get(w, e, component.MeshComponent.Kind())
	if c.Visible {
		t.Fatalf("visibility not written through")
	}
	if c.Materials[0].Properties != cold {
		t.Fatalf("zero duration should apply immediately, got %+v", c.Materials[0].Properties)
	}
	if !c.Materials[1].Blend.Active || c.Materials[1].Blend.To != cold {
		t.Fatalf("expected an active blend toward cold, got %+v", c.Materials[1].Blend)
	}
	if mats[1].Properties().Tint != (paint.Color{G: 1, A: 1}) {
		t.Fatalf("properties should report the current value while blending")
	}

	ecs.DestroyEntity(w, e)
	if m.Visible() || m.Materials() != nil {
		t.Fatalf("mesh of destroyed entity should read empty")
	}
	mats[0].SetProperties(cold, 0, paint.Linear)
	if mats[0].Properties() != (paint.MaterialProperties{}) {
		t.Fatalf("material of destroyed entity should read zero")
	}
}

func TestEmitterOrigin(t *testing.T) {
	w := ecs.NewWorld()
	s := New(w)

	if got := s.EmitterOrigin(); got != (sound.Position{}) {
		t.Fatalf("expected origin without emitters, got %+v", got)
	}

	fire := ecs.CreateEntity(w)
	if err := ecs.Add(w, fire, component.AudioEmitterComponent.Kind(), &component.AudioEmitter{}); err != nil {
		t.Fatal(err)
	}
	if got := s.EmitterOrigin(); got != (sound.Position{}) {
		t.Fatalf("emitter without transform should report origin, got %+v", got)
	}
	if err := ecs.Add(w, fire, component.TransformComponent.Kind(), &component.Transform{X: 40, Y: -8}); err != nil {
		t.Fatal(err)
	}
	if got := s.EmitterOrigin(); got != (sound.Position{X: 40, Y: -8}) {
		t.Fatalf("unexpected emitter origin %+v", got)
	}
}
