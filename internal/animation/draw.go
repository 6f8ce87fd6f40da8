package animation

import (
	"image"
	"math"
)

// heartSamples is the number of vertices in a heart outline.
const heartSamples = 30

// heartPolygon traces the parametric heart curve
//
//	x = 16 sin³t
//	y = -(13 cos t - 5 cos 2t - 2 cos 3t - cos 4t)
//
// scaled by scale and centred on center.
func heartPolygon(center image.Point, scale float64) []image.Point {
	pts := make([]image.Point, heartSamples)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / heartSamples
		s := math.Sin(t)
		hx := 16 * s * s * s
		hy := -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
		pts[i] = image.Pt(
			center.X+int(math.Round(hx*scale)),
			center.Y+int(math.Round(hy*scale)),
		)
	}
	return pts
}

// dot draws a filled disc of radius base*intensity when its centre is on
// screen.
func dot(c Canvas, p Point2, base, intensity float64, col Color) {
	pos := p.Pixel()
	r := int(base * intensity)
	if r < 1 || !inFrame(pos, c.Size()) {
		return
	}
	c.Circle(pos, r, col.Opaque(), -1)
}

// polar returns center offset by radius at angle, with the vertical
// component squashed by flatten.
func polar(center Point2, radius, angle, flatten float64) Point2 {
	return Point2{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle)*flatten,
	}
}

// caption draws centred text near the bottom of the frame with layered
// translucent copies underneath for a soft glow.
func caption(c Canvas, text string, col Color, layers int, intensity, phase float64) {
	if text == "" {
		return
	}
	size := c.Size()
	if size.X == 0 || size.Y == 0 {
		return
	}

	const thickness = 3
	scale := 1.2 + 0.2*math.Sin(phase*2)
	ts := c.TextSize(text, scale, thickness)

	x := (size.X - ts.X) / 2
	y := size.Y - 80
	if y < ts.Y {
		y = ts.Y
	}

	fade := clamp01(intensity)
	for i := 1; i <= layers; i++ {
		alpha := 0.3 / float64(i) * fade
		c.Text(text, image.Pt(x+i, y+i), scale, col.WithAlpha(alpha), thickness*3)
	}
	c.Text(text, image.Pt(x, y), scale, col.WithAlpha(fade), thickness)
}

// halo draws concentric rings every 5 pixels, brightest near the centre.
func halo(c Canvas, center Point2, radius int, col Color, intensity float64) {
	pos := center.Pixel()
	if radius <= 0 || !inFrame(pos, c.Size()) {
		return
	}
	fade := clamp01(intensity)
	for r := radius; r > 0; r -= 5 {
		alpha := (1 - float64(r)/float64(radius)) * fade
		if alpha <= 0 {
			continue
		}
		c.Circle(pos, r, col.WithAlpha(alpha), 2)
	}
}
