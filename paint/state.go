package paint

// ThermalState is the tint state of a tracked avatar.
type ThermalState uint8

const (
	Warm ThermalState = iota + 1
	Cold
	Burnt
)

func (s ThermalState) String() string {
	switch s {
	case Warm:
		return "warm"
	case Cold:
		return "cold"
	case Burnt:
		return "burnt"
	default:
		return "unknown"
	}
}
