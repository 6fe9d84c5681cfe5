package component

// TriggerRole selects the handler a trigger volume feeds.
type TriggerRole string

const (
	TriggerWarm TriggerRole = "warm"
	TriggerBurn TriggerRole = "burn"
)

// TriggerVolume is an axis-aligned sensor box centered on the entity's
// transform.
type TriggerVolume struct {
	Role   TriggerRole
	Width  float64
	Height float64
}

var TriggerVolumeComponent = NewComponent[TriggerVolume]()
