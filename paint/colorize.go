package paint

// ColorTarget is a desired appearance and the time, in seconds, taken to
// blend into it.
type ColorTarget struct {
	Tint              Color
	EmissiveIntensity float64
	TransitionSpeed   float64
}

// Properties returns the material properties the target writes.
func (t ColorTarget) Properties() MaterialProperties {
	return MaterialProperties{Tint: t.Tint, EmissiveIntensity: t.EmissiveIntensity}
}

// Colorize blends every material slot currently on mesh toward target.
// Callers check visibility first.
func Colorize(mesh Mesh, target ColorTarget, mode InterpolationMode) {
	if mesh == nil {
		return
	}
	props := target.Properties()
	for _, mat := range mesh.Materials() {
		mat.SetProperties(props, target.TransitionSpeed, mode)
	}
}
