package prefabs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/campfire/paint"
	"github.com/milk9111/campfire/sound"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the campfire spec loaded when no path is given.
const DefaultConfigName = "campfire.yaml"

// CampfireSpec is the full load-time configuration of the campfire scene.
type CampfireSpec struct {
	Debug            bool            `yaml:"debug"`
	ColdOnJoin       bool            `yaml:"cold_on_join"`
	EvictOnLeave     bool            `yaml:"evict_on_leave"`
	Interpolation    string          `yaml:"interpolation"`
	WarmRestoreSpeed float64         `yaml:"warm_restore_speed"`
	Cold             ColorTargetSpec `yaml:"cold"`
	Burnt            ColorTargetSpec `yaml:"burnt"`
	Sound            SoundSpec       `yaml:"sound"`
	Scene            SceneSpec       `yaml:"scene"`
}

type ColorTargetSpec struct {
	Color    YAMLColor `yaml:"color"`
	Emissive float64   `yaml:"emissive"`
	Speed    float64   `yaml:"speed"`
}

type SoundSpec struct {
	Burn             string         `yaml:"burn"`
	Offset           sound.Position `yaml:"offset"`
	Loudness         float64        `yaml:"loudness"`
	Pitch            float64        `yaml:"pitch"`
	LoudnessVariance float64        `yaml:"loudness_variance"`
	PitchVariance    float64        `yaml:"pitch_variance"`
	FadeTime         float64        `yaml:"fade_time"`
}

type SceneSpec struct {
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Campfire PointSpec    `yaml:"campfire"`
	WarmArea SizeSpec     `yaml:"warm_area"`
	BurnArea SizeSpec     `yaml:"burn_area"`
	Avatars  []AvatarSpec `yaml:"avatars"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type AvatarSpec struct {
	Name   string      `yaml:"name"`
	Script string      `yaml:"script"`
	Home   PointSpec   `yaml:"home"`
	Radius float64     `yaml:"radius"`
	Speed  float64     `yaml:"speed"`
	Phase  float64     `yaml:"phase"`
	Width  float64     `yaml:"width"`
	Height float64     `yaml:"height"`
	Colors []YAMLColor `yaml:"colors"`
}

// DefaultCampfireSpec mirrors the built-in effect defaults.
func DefaultCampfireSpec() CampfireSpec {
	cfg := paint.DefaultConfig()
	return CampfireSpec{
		ColdOnJoin:       cfg.ColdOnJoin,
		Interpolation:    cfg.Interpolation,
		WarmRestoreSpeed: cfg.WarmRestoreSpeed,
		Cold:             colorTargetSpec(cfg.Cold),
		Burnt:            colorTargetSpec(cfg.Burnt),
		Sound: SoundSpec{
			Loudness: cfg.BurnLoudness,
			FadeTime: 0.5,
		},
		Scene: SceneSpec{Width: 640, Height: 480},
	}
}

func colorTargetSpec(t paint.ColorTarget) ColorTargetSpec {
	return ColorTargetSpec{Color: YAMLColor{Color: t.Tint}, Emissive: t.EmissiveIntensity, Speed: t.TransitionSpeed}
}

// LoadCampfireSpec reads the yaml at path, or the default prefab when path
// is empty, over the defaults and then applies environment overrides.
func LoadCampfireSpec(path string) (*CampfireSpec, error) {
	name := path
	var (
		data []byte
		err  error
	)
	if path == "" {
		name = DefaultConfigName
		data, err = Load(name)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}

	spec := DefaultCampfireSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	if err := ApplyEnv(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// EffectConfig converts s into the paint effect configuration.
func (s *CampfireSpec) EffectConfig() paint.Config {
	if s == nil {
		return paint.DefaultConfig()
	}
	return paint.Config{
		Debug:            s.Debug,
		ColdOnJoin:       s.ColdOnJoin,
		EvictOnLeave:     s.EvictOnLeave,
		Interpolation:    s.Interpolation,
		Cold:             s.Cold.target(),
		Burnt:            s.Burnt.target(),
		WarmRestoreSpeed: s.WarmRestoreSpeed,
		BurnSound:        sound.Resource(strings.TrimSpace(s.Sound.Burn)),
		BurnLoudness:     s.Sound.Loudness,
		BurnPitch:        s.Sound.Pitch,
	}
}

// SoundSettings converts s into fade controller settings.
func (s *CampfireSpec) SoundSettings() sound.Settings {
	if s == nil {
		return sound.Settings{}
	}
	return sound.Settings{
		Offset:           s.Sound.Offset,
		LoudnessVariance: s.Sound.LoudnessVariance,
		PitchVariance:    s.Sound.PitchVariance,
		FadeTime:         s.Sound.FadeTime,
	}
}

func (c ColorTargetSpec) target() paint.ColorTarget {
	return paint.ColorTarget{Tint: c.Color.Color, EmissiveIntensity: c.Emissive, TransitionSpeed: c.Speed}
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or a list of three or four
// floats in [0,1].
type YAMLColor struct {
	paint.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return c.parseHex(value.Value)
	case yaml.SequenceNode:
		var parts []float64
		if err := value.Decode(&parts); err != nil {
			return fmt.Errorf("invalid color list: %w", err)
		}
		if len(parts) != 3 && len(parts) != 4 {
			return fmt.Errorf("color list needs 3 or 4 components, got %d", len(parts))
		}
		col := paint.Color{R: parts[0], G: parts[1], B: parts[2], A: 1}
		if len(parts) == 4 {
			col.A = parts[3]
		}
		c.Color = col
		return nil
	default:
		return fmt.Errorf("color must be a string or a list")
	}
}

func (c *YAMLColor) parseHex(raw string) error {
	s := strings.TrimPrefix(raw, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", raw)
	}

	parse := func(start int) (float64, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return float64(v) / 255, err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := 1.0
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = paint.Color{R: r, G: g, B: b, A: a}
	return nil
}
