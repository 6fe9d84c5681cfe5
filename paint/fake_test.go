package paint

import (
	"bytes"
	"errors"
	"log"

	"github.com/milk9111/campfire/sound"
)

type setCall struct {
	props    MaterialProperties
	duration float64
	mode     InterpolationMode
}

type fakeMaterial struct {
	props MaterialProperties
	calls []setCall
}

func (m *fakeMaterial) Properties() MaterialProperties { return m.props }

func (m *fakeMaterial) SetProperties(p MaterialProperties, duration float64, mode InterpolationMode) {
	m.props = p
	m.calls = append(m.calls, setCall{props: p, duration: duration, mode: mode})
}

type fakeMesh struct {
	visible bool
	mats    []*fakeMaterial
}

func newFakeMesh(props ...MaterialProperties) *fakeMesh {
	m := &fakeMesh{visible: true}
	for _, p := range props {
		m.mats = append(m.mats, &fakeMaterial{props: p})
	}
	return m
}

func (m *fakeMesh) Visible() bool                  { return m.visible }
func (m *fakeMesh) SetVisible(v bool)              { m.visible = v }
func (m *fakeMesh) props(i int) MaterialProperties { return m.mats[i].props }

func (m *fakeMesh) Materials() []Material {
	out := make([]Material, len(m.mats))
	for i, mat := range m.mats {
		out[i] = mat
	}
	return out
}

func (m *fakeMesh) writes() int {
	n := 0
	for _, mat := range m.mats {
		n += len(mat.calls)
	}
	return n
}

type fakeAgent struct {
	id      ObjectID
	mesh    *fakeMesh
	meshErr error
	panics  bool
}

func (a *fakeAgent) ID() ObjectID { return a.id }
func (a *fakeAgent) Name() string { return "avatar" }

func (a *fakeAgent) Mesh() (Mesh, error) {
	if a.panics {
		panic("mesh component torn down")
	}
	if a.meshErr != nil {
		return nil, a.meshErr
	}
	if a.mesh == nil {
		return nil, ErrMeshNotFound
	}
	return a.mesh, nil
}

type fakeScene struct {
	agents map[ObjectID]*fakeAgent
	err    error
}

func newFakeScene() *fakeScene {
	return &fakeScene{agents: make(map[ObjectID]*fakeAgent)}
}

func (s *fakeScene) add(id ObjectID, mesh *fakeMesh) *fakeAgent {
	a := &fakeAgent{id: id, mesh: mesh}
	s.agents[id] = a
	return a
}

func (s *fakeScene) ResolveAgent(id ObjectID) (Agent, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.agents[id]
	if !ok {
		return nil, ErrAgentNotFound
	}
	return a, nil
}

type adjustCall struct {
	loudness, pitch float64
}

type fakeFader struct {
	played  []sound.Resource
	adjusts []adjustCall
	err     error
}

func (f *fakeFader) Play(res sound.Resource) error {
	if f.err != nil {
		return f.err
	}
	f.played = append(f.played, res)
	return nil
}

func (f *fakeFader) Adjust(loudness, pitch float64) {
	f.adjusts = append(f.adjusts, adjustCall{loudness: loudness, pitch: pitch})
}

var errBoom = errors.New("boom")

func bufferLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}

var (
	red   = MaterialProperties{Tint: Color{R: 1, A: 1}, EmissiveIntensity: 0.25}
	green = MaterialProperties{Tint: Color{G: 1, A: 1}, EmissiveIntensity: 0.5}
	blue  = MaterialProperties{Tint: Color{B: 1, A: 1}, EmissiveIntensity: 1}
)
