package animation

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is an sRGB colour stored as a hex string in theme files.
type Color struct {
	colorful.Color
}

// Hex parses a "#rrggbb" colour.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{c}, nil
}

// MustHex is Hex for package-level literals.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := Hex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// Scale multiplies every channel by k.
func (c Color) Scale(k float64) Color {
	return Color{colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()}
}

// ShiftHue rotates the hue by deg degrees.
func (c Color) ShiftHue(deg float64) Color {
	h, s, v := c.Hsv()
	h = math.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	return Color{colorful.Hsv(h, s, v).Clamped()}
}

// Lerp blends toward o in RGB.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{c.BlendRgb(o.Color, clamp01(t)).Clamped()}
}

// WithAlpha converts c to color.RGBA with alpha in [0,1].
func (c Color) WithAlpha(alpha float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

// Opaque converts c to a fully opaque color.RGBA.
func (c Color) Opaque() color.RGBA {
	return c.WithAlpha(1)
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
