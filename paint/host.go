package paint

import "fmt"

// ObjectID identifies an avatar or scene object for the lifetime of its
// presence in the scene.
type ObjectID uint64

func (id ObjectID) String() string {
	return fmt.Sprintf("obj#%d", uint64(id))
}

// Color is a straight-alpha RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float64
}

func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: lerp(c.R, to.R, t),
		G: lerp(c.G, to.G, t),
		B: lerp(c.B, to.B, t),
		A: lerp(c.A, to.A, t),
	}
}

// MaterialProperties is the per-slot state the effect reads and writes.
type MaterialProperties struct {
	Tint              Color
	EmissiveIntensity float64
}

func (p MaterialProperties) Lerp(to MaterialProperties, t float64) MaterialProperties {
	return MaterialProperties{
		Tint:              p.Tint.Lerp(to.Tint, t),
		EmissiveIntensity: lerp(p.EmissiveIntensity, to.EmissiveIntensity, t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Material is one render-material slot of a mesh.
type Material interface {
	Properties() MaterialProperties
	// SetProperties blends the slot toward p over duration seconds. A
	// non-positive duration writes p immediately.
	SetProperties(p MaterialProperties, duration float64, mode InterpolationMode)
}

// Mesh is the renderable component of an agent (component index 0).
type Mesh interface {
	Visible() bool
	SetVisible(visible bool)
	Materials() []Material
}

// Agent is a resolved avatar.
type Agent interface {
	ID() ObjectID
	Name() string
	// Mesh returns the agent's primary mesh or ErrMeshNotFound.
	Mesh() (Mesh, error)
}

// Scene resolves identifiers delivered with host events. ResolveAgent
// returns ErrAgentNotFound when the avatar has already left.
type Scene interface {
	ResolveAgent(id ObjectID) (Agent, error)
}

// Phase is the overlap phase of a trigger volume event.
type Phase uint8

const (
	PhaseEnter Phase = iota + 1
	PhaseExit
)

func (p Phase) String() string {
	switch p {
	case PhaseEnter:
		return "enter"
	case PhaseExit:
		return "exit"
	default:
		return "unknown"
	}
}

// TriggerEvent is delivered by a trigger volume subscription.
type TriggerEvent struct {
	Object ObjectID
	Phase  Phase
}
