package component

import "github.com/milk9111/campfire/paint"

// MaterialBlend is an in-flight transition of one material slot.
type MaterialBlend struct {
	Active   bool
	From     paint.MaterialProperties
	To       paint.MaterialProperties
	Duration float64
	Elapsed  float64
	Mode     paint.InterpolationMode
}

// Material is one render-material slot. Properties is the value drawn this
// frame.
type Material struct {
	Name       string
	Properties paint.MaterialProperties
	Blend      MaterialBlend
}

// BeginBlend starts a transition from the current value to to. A
// non-positive duration applies to immediately.
func (m *Material) BeginBlend(to paint.MaterialProperties, duration float64, mode paint.InterpolationMode) {
	if m == nil {
		return
	}
	if duration <= 0 {
		m.Properties = to
		m.Blend = MaterialBlend{}
		return
	}
	m.Blend = MaterialBlend{
		Active:   true,
		From:     m.Properties,
		To:       to,
		Duration: duration,
		Mode:     mode,
	}
}

// Advance moves an active blend forward by dt seconds and reports whether
// it is still running.
func (m *Material) Advance(dt float64) bool {
	if m == nil || !m.Blend.Active {
		return false
	}
	b := &m.Blend
	b.Elapsed += dt
	if b.Elapsed >= b.Duration {
		m.Properties = b.To
		m.Blend = MaterialBlend{}
		return false
	}
	m.Properties = b.From.Lerp(b.To, b.Mode.Apply(b.Elapsed/b.Duration))
	return true
}

// Mesh is the renderable part of an avatar.
type Mesh struct {
	Visible   bool
	Materials []Material
}

var MeshComponent = NewComponent[Mesh]()
