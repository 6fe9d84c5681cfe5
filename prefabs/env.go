package prefabs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are optional environment overrides applied after the yaml
// is decoded. Unset variables leave the loaded values untouched.
type EnvOverrides struct {
	Debug         *bool    `env:"CAMPFIRE_DEBUG"`
	ColdOnJoin    *bool    `env:"CAMPFIRE_COLD_ON_JOIN"`
	EvictOnLeave  *bool    `env:"CAMPFIRE_EVICT_ON_LEAVE"`
	Interpolation *string  `env:"CAMPFIRE_INTERPOLATION"`
	BurnSound     *string  `env:"CAMPFIRE_BURN_SOUND"`
	FadeTime      *float64 `env:"CAMPFIRE_FADE_TIME"`
}

// ApplyEnv parses CAMPFIRE_* variables into spec.
func ApplyEnv(spec *CampfireSpec) error {
	if spec == nil {
		return nil
	}
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("prefabs: parse env: %w", err)
	}
	if o.Debug != nil {
		spec.Debug = *o.Debug
	}
	if o.ColdOnJoin != nil {
		spec.ColdOnJoin = *o.ColdOnJoin
	}
	if o.EvictOnLeave != nil {
		spec.EvictOnLeave = *o.EvictOnLeave
	}
	if o.Interpolation != nil {
		spec.Interpolation = *o.Interpolation
	}
	if o.BurnSound != nil {
		spec.Sound.Burn = *o.BurnSound
	}
	if o.FadeTime != nil {
		spec.Sound.FadeTime = *o.FadeTime
	}
	return nil
}
