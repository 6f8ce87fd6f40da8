package animation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownTheme is returned for a theme name with no built-in theme.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrInvalidTheme is returned when a theme fails validation.
	ErrInvalidTheme = errors.New("invalid theme")
)

// MaxParticleCap bounds Theme.ParticleCap.
const MaxParticleCap = 100

// ColorMode selects how effect colours change with the phase.
type ColorMode string

const (
	// ColorFixed keeps palette colours as they are.
	ColorFixed ColorMode = "fixed"
	// ColorPulse modulates brightness.
	ColorPulse ColorMode = "pulse"
	// ColorCycle rotates hue.
	ColorCycle ColorMode = "cycle"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Sample returns a value in [Min, Max].
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Palette holds one colour per effect role.
type Palette struct {
	Hearts       Color `yaml:"hearts"`
	Orbit        Color `yaml:"orbit"`
	Wave         Color `yaml:"wave"`
	Pulse        Color `yaml:"pulse"`
	Bounce       Color `yaml:"bounce"`
	Spiral       Color `yaml:"spiral"`
	Text         Color `yaml:"text"`
	Glow         Color `yaml:"glow"`
	ParticleLow  Color `yaml:"particle_low"`
	ParticleHigh Color `yaml:"particle_high"`
}

// Theme parametrizes every effect.
type Theme struct {
	Name string `yaml:"name"`
	// Base is the built-in theme a file theme was derived from.
	Base string `yaml:"-"`

	// TimeScale is the number of clock milliseconds per phase unit.
	TimeScale float64 `yaml:"time_scale"`

	ParticleCap  int     `yaml:"particle_cap"`
	EmitPerFrame int     `yaml:"emit_per_frame"`
	Gravity      float64 `yaml:"gravity"`
	Decay        float64 `yaml:"decay"`
	TrailLength  int     `yaml:"trail_length"`
	VelocityX    Range   `yaml:"velocity_x"`
	VelocityY    Range   `yaml:"velocity_y"`
	ParticleSize Range   `yaml:"particle_size"`

	GlowLayers int `yaml:"glow_layers"`
	HaloRadius int `yaml:"halo_radius"`

	ColorMode ColorMode `yaml:"color_mode"`
	// CycleSpeed is hue degrees per phase unit in cycle mode.
	CycleSpeed float64 `yaml:"cycle_speed"`

	Palette  Palette           `yaml:"palette"`
	Captions map[string]string `yaml:"captions"`
}

func defaultCaptions() map[string]string {
	return map[string]string{
		"i_love_you": "I LOVE YOU",
		"open_hand":  "HI GUYS!",
		"fist":       "POWER!",
		"thumbs_up":  "OK!",
		"one":        "NUMBER ONE!",
	}
}

// ClassicTheme is the default warm palette.
func ClassicTheme() Theme {
	return Theme{
		Name:         "classic",
		TimeScale:    1000,
		ParticleCap:  50,
		EmitPerFrame: 1,
		Gravity:      0.1,
		Decay:        0.02,
		TrailLength:  0,
		VelocityX:    Range{Min: -3, Max: 3},
		VelocityY:    Range{Min: -5, Max: -1},
		ParticleSize: Range{Min: 2, Max: 6},
		GlowLayers:   3,
		HaloRadius:   60,
		ColorMode:    ColorFixed,
		Palette: Palette{
			Hearts:       MustHex("#ff6400"),
			Orbit:        MustHex("#ffc864"),
			Wave:         MustHex("#64c8ff"),
			Pulse:        MustHex("#00c8ff"),
			Bounce:       MustHex("#64ff00"),
			Spiral:       MustHex("#ff64c8"),
			Text:         MustHex("#9664ff"),
			Glow:         MustHex("#64c8ff"),
			ParticleLow:  MustHex("#9664c8"),
			ParticleHigh: MustHex("#ffc8ff"),
		},
		Captions: defaultCaptions(),
	}
}

// NeonTheme is a faster, trail-heavy palette with pulsing brightness.
func NeonTheme() Theme {
	return Theme{
		Name:         "neon",
		TimeScale:    600,
		ParticleCap:  80,
		EmitPerFrame: 2,
		Gravity:      0.05,
		Decay:        0.015,
		TrailLength:  6,
		VelocityX:    Range{Min: -4, Max: 4},
		VelocityY:    Range{Min: -6, Max: -2},
		ParticleSize: Range{Min: 2, Max: 5},
		GlowLayers:   4,
		HaloRadius:   70,
		ColorMode:    ColorPulse,
		Palette: Palette{
			Hearts:       MustHex("#ff2a6d"),
			Orbit:        MustHex("#05d9e8"),
			Wave:         MustHex("#00fff5"),
			Pulse:        MustHex("#ff00ff"),
			Bounce:       MustHex("#39ff14"),
			Spiral:       MustHex("#d300c5"),
			Text:         MustHex("#05d9e8"),
			Glow:         MustHex("#01c5c4"),
			ParticleLow:  MustHex("#005678"),
			ParticleHigh: MustHex("#00fff5"),
		},
		Captions: defaultCaptions(),
	}
}

// RainbowTheme cycles the hue of every role.
func RainbowTheme() Theme {
	return Theme{
		Name:         "rainbow",
		TimeScale:    800,
		ParticleCap:  100,
		EmitPerFrame: 3,
		Gravity:      0.08,
		Decay:        0.018,
		TrailLength:  4,
		VelocityX:    Range{Min: -3.5, Max: 3.5},
		VelocityY:    Range{Min: -5.5, Max: -1.5},
		ParticleSize: Range{Min: 2, Max: 7},
		GlowLayers:   3,
		HaloRadius:   65,
		ColorMode:    ColorCycle,
		CycleSpeed:   60,
		Palette: Palette{
			Hearts:       MustHex("#ff0000"),
			Orbit:        MustHex("#ff7f00"),
			Wave:         MustHex("#ffff00"),
			Pulse:        MustHex("#00ff00"),
			Bounce:       MustHex("#0000ff"),
			Spiral:       MustHex("#8b00ff"),
			Text:         MustHex("#ffffff"),
			Glow:         MustHex("#ff00ff"),
			ParticleLow:  MustHex("#ff0000"),
			ParticleHigh: MustHex("#00ffff"),
		},
		Captions: defaultCaptions(),
	}
}

var builtinThemes = map[string]func() Theme{
	"classic": ClassicTheme,
	"neon":    NeonTheme,
	"rainbow": RainbowTheme,
}

// ThemeNames returns the built-in theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a fresh copy of a built-in theme.
func ThemeByName(name string) (Theme, error) {
	ctor, ok := builtinThemes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return ctor(), nil
}

// LoadTheme reads a YAML theme file. The file may name a built-in theme in
// "base"; fields it sets override that theme (classic when omitted).
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme file: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme decodes a YAML theme document.
func ParseTheme(data []byte) (Theme, error) {
	var header struct {
		Base string `yaml:"base"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}
	if header.Base == "" {
		header.Base = "classic"
	}

	theme, err := ThemeByName(header.Base)
	if err != nil {
		return Theme{}, err
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}
	if theme.Name == "" {
		theme.Name = header.Base
	}
	theme.Base = header.Base

	if err := theme.Validate(); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

// BuiltinName returns the name of the built-in theme t is, or was derived
// from.
func (t Theme) BuiltinName() string {
	if t.Base != "" {
		return t.Base
	}
	return t.Name
}

// Validate checks that every field is usable.
func (t *Theme) Validate() error {
	switch {
	case t.TimeScale <= 0:
		return fmt.Errorf("%w: time_scale must be positive, got %v", ErrInvalidTheme, t.TimeScale)
	case t.ParticleCap < 1 || t.ParticleCap > MaxParticleCap:
		return fmt.Errorf("%w: particle_cap must be in [1, %d], got %d", ErrInvalidTheme, MaxParticleCap, t.ParticleCap)
	case t.EmitPerFrame < 0:
		return fmt.Errorf("%w: emit_per_frame must not be negative", ErrInvalidTheme)
	case t.Decay < 0:
		return fmt.Errorf("%w: decay must not be negative", ErrInvalidTheme)
	case t.TrailLength < 0 || t.TrailLength > 32:
		return fmt.Errorf("%w: trail_length must be in [0, 32], got %d", ErrInvalidTheme, t.TrailLength)
	case t.GlowLayers < 0 || t.GlowLayers > 8:
		return fmt.Errorf("%w: glow_layers must be in [0, 8], got %d", ErrInvalidTheme, t.GlowLayers)
	case t.HaloRadius < 0:
		return fmt.Errorf("%w: halo_radius must not be negative", ErrInvalidTheme)
	}

	for name, r := range map[string]Range{
		"velocity_x":    t.VelocityX,
		"velocity_y":    t.VelocityY,
		"particle_size": t.ParticleSize,
	} {
		if r.Min > r.Max {
			return fmt.Errorf("%w: %s range invalid: min(%.1f) > max(%.1f)", ErrInvalidTheme, name, r.Min, r.Max)
		}
	}

	switch t.ColorMode {
	case ColorFixed, ColorPulse, ColorCycle:
	default:
		return fmt.Errorf("%w: unknown color_mode %q", ErrInvalidTheme, t.ColorMode)
	}
	return nil
}

// Tint applies the colour mode to c at the given phase.
func (t *Theme) Tint(c Color, phase float64) Color {
	switch t.ColorMode {
	case ColorPulse:
		return c.Scale(0.7 + 0.3*math.Sin(phase*3))
	case ColorCycle:
		return c.ShiftHue(phase * t.CycleSpeed)
	default:
		return c
	}
}

// Caption returns the text shown for a gesture, if any.
func (t *Theme) Caption(label string) string {
	return t.Captions[label]
}
