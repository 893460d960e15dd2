package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/voicefield/dsp/core"
)

// paletteEntry places one color on the 1D gradient coordinate with a
// bell-shaped influence curve.
type paletteEntry struct {
	color  mgl64.Vec3
	center float64
	width  float64
}

// The palette favors the deep indigo as dominant hue (widest bell); the
// others appear as secondary regions with smooth bridging zones in between.
var palette = [6]paletteEntry{
	{color: mgl64.Vec3{0.16, 0.10, 0.52}, center: 0.50, width: 0.34}, // deep indigo (dominant)
	{color: mgl64.Vec3{0.06, 0.04, 0.26}, center: 0.08, width: 0.16}, // midnight
	{color: mgl64.Vec3{0.12, 0.45, 0.62}, center: 0.28, width: 0.14}, // petrol teal
	{color: mgl64.Vec3{0.52, 0.18, 0.66}, center: 0.68, width: 0.14}, // violet
	{color: mgl64.Vec3{0.86, 0.32, 0.48}, center: 0.86, width: 0.12}, // coral
	{color: mgl64.Vec3{0.94, 0.78, 0.42}, center: 0.98, width: 0.10}, // amber
}

const (
	fresnelExponent   = 3.0
	fresnelCoordShift = 0.25
	fresnelBrighten   = 0.35
)

// Color returns the RGB color at surface point p with corrected normal n and
// view direction toward the camera. Channels are clamped to [0, 1].
func (f *Field) Color(p, n, view mgl64.Vec3, params ColorParams) mgl64.Vec3 {
	freq := params.Frequency
	if freq <= 0 {
		freq = 1
	}

	t := math.Mod(params.Time, f.tint.Period())
	q := p.Mul(1 / freq)

	// Two independent large-scale samples, offset in space and time, drive
	// the gradient coordinate.
	g1 := f.tint.FBM(q.X()+t, q.Y()+t, q.Z()-t, 2)
	g2 := f.tint.FBM(q.X()-t+2.7, q.Y()+1.3, q.Z()+t+4.1, 2)

	fr := fresnel(n, view) * params.Fresnel

	coord := core.Saturate(0.5 + 0.35*g1 + 0.25*g2 + fresnelCoordShift*fr)

	c := gradientColor(coord)

	// Edge brightening, then saturation boost and per-channel clamp.
	c = c.Add(mgl64.Vec3{fr * fresnelBrighten, fr * fresnelBrighten, fr * fresnelBrighten})
	c = saturate3(boostSaturation(c, params.Saturation))

	return c
}

// gradientColor blends the palette by bell-curve influence at coord.
func gradientColor(coord float64) mgl64.Vec3 {
	var sum mgl64.Vec3
	total := 0.0

	for _, entry := range palette {
		d := coord - entry.center
		w := math.Exp(-(d * d) / (2 * entry.width * entry.width))

		sum = sum.Add(entry.color.Mul(w))
		total += w
	}

	if total == 0 {
		return palette[0].color
	}

	return sum.Mul(1 / total)
}

// fresnel is the view-angle brightening factor, strongest at grazing angles.
func fresnel(n, view mgl64.Vec3) float64 {
	if n.Len() == 0 || view.Len() == 0 {
		return 0
	}

	facing := core.Clamp(n.Normalize().Dot(view.Normalize()), 0, 1)

	return math.Pow(1-facing, fresnelExponent)
}

// boostSaturation scales chroma around the luma axis.
func boostSaturation(c mgl64.Vec3, amount float64) mgl64.Vec3 {
	if amount == 1 {
		return c
	}

	luma := 0.2126*c.X() + 0.7152*c.Y() + 0.0722*c.Z()
	grey := mgl64.Vec3{luma, luma, luma}

	return grey.Add(c.Sub(grey).Mul(amount))
}

func saturate3(c mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		core.Saturate(c.X()),
		core.Saturate(c.Y()),
		core.Saturate(c.Z()),
	}
}
