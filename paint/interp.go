package paint

import "strings"

// InterpolationMode is the curve used to blend a material toward a target.
type InterpolationMode uint8

const (
	Linear InterpolationMode = iota
	EaseIn
	EaseOut
	Smoothstep
	Step
)

var interpolationNames = map[string]InterpolationMode{
	"easein":     EaseIn,
	"easeout":    EaseOut,
	"linear":     Linear,
	"smoothstep": Smoothstep,
	"step":       Step,
}

// ParseInterpolationMode parses a mode name case-insensitively. Unknown
// names resolve to Linear with ok=false.
func ParseInterpolationMode(s string) (mode InterpolationMode, ok bool) {
	mode, ok = interpolationNames[strings.ToLower(s)]
	if !ok {
		return Linear, false
	}
	return mode, true
}

func (m InterpolationMode) String() string {
	switch m {
	case EaseIn:
		return "easein"
	case EaseOut:
		return "easeout"
	case Linear:
		return "linear"
	case Smoothstep:
		return "smoothstep"
	case Step:
		return "step"
	default:
		return "unknown"
	}
}

// Apply maps blend progress t in [0,1] onto the curve.
func (m InterpolationMode) Apply(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	switch m {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case Smoothstep:
		return t * t * (3 - 2*t)
	case Step:
		return 0
	default:
		return t
	}
}
