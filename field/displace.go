package field

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/voicefield/dsp/core"
	"github.com/cwbudde/voicefield/field/noise"
)

// Term amplitudes relative to the base radius. The squared distort
// parameters land in roughly [0.3, 3]; these bring the summed displacement
// into a fraction of the radius.
const (
	gooAmplitude   = 0.35
	ridgeAmplitude = 0.06
)

// polarCap is the band of normalized latitude over which attenuation ramps
// from zero at the pole to the sine profile.
const polarCap = 0.3

// Field evaluates displacement and color over a sphere-like base surface.
type Field struct {
	radius  float64
	goo     *noise.Periodic
	surface *noise.Periodic
	tint    *noise.Periodic
}

// New creates a field for a base sphere of the given radius. The seed
// decorrelates the three internal noise samplers deterministically.
func New(radius float64, seed uint32) (*Field, error) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("field radius must be positive and finite: %f", radius)
	}

	return &Field{
		radius:  radius,
		goo:     noise.Default(seed),
		surface: noise.Default(seed ^ 0x5bd1e995),
		tint:    noise.Default(seed ^ 0x2545f491),
	}, nil
}

// Radius returns the base sphere radius.
func (f *Field) Radius() float64 { return f.radius }

// Period returns the time period after which all noise-driven motion loops
// seamlessly.
func (f *Field) Period() float64 { return f.goo.Period() }

// Displace returns the scalar displacement along the outward normal at
// point p on the base surface.
func (f *Field) Displace(p mgl64.Vec3, params DisplaceParams) float64 {
	ny := core.Clamp(p.Y()/f.radius, -1, 1)
	att := poleAttenuation(ny)

	gooAtt := core.Mix(1, att, core.Clamp(params.GooPoleAmount, 0, 1))
	ridgeAtt := core.Mix(1, att, core.Clamp(params.SurfacePoleAmount, 0, 1))

	d := gooAtt * f.gooTerm(p, params)
	d += ridgeAtt * f.ridgeTerm(p, params)
	d += hitTerm(p, params)

	return d
}

// Displaced returns the displaced surface point for p on the base surface.
func (f *Field) Displaced(p mgl64.Vec3, params DisplaceParams) mgl64.Vec3 {
	if p.Len() == 0 {
		return p
	}

	return p.Add(p.Normalize().Mul(f.Displace(p, params)))
}

// Normal recomputes the outward surface normal at p after displacement by
// sampling two tangential offsets and crossing the displaced tangents. The
// analytic sphere normal is wrong once displacement is applied; lighting
// needs this corrected one.
func (f *Field) Normal(p mgl64.Vec3, params DisplaceParams, eps float64) mgl64.Vec3 {
	if eps <= 0 {
		eps = 1e-4
	}

	n := p
	if n.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	n = n.Normalize()

	t1, t2 := tangentBasis(n)

	p1 := p.Add(t1.Mul(eps * f.radius)).Normalize().Mul(p.Len())
	p2 := p.Add(t2.Mul(eps * f.radius)).Normalize().Mul(p.Len())

	d0 := f.Displaced(p, params)
	d1 := f.Displaced(p1, params)
	d2 := f.Displaced(p2, params)

	out := d1.Sub(d0).Cross(d2.Sub(d0))
	if out.Len() == 0 {
		return n
	}
	out = out.Normalize()

	if out.Dot(n) < 0 {
		out = out.Mul(-1)
	}

	return out
}

func (f *Field) gooTerm(p mgl64.Vec3, params DisplaceParams) float64 {
	freq := params.Frequency
	if freq <= 0 {
		return 0
	}

	t := math.Mod(params.Time, f.goo.Period())
	q := p.Mul(1 / freq)

	n := f.goo.Eval3(q.X()+t, q.Y()+t, q.Z()+t)

	return gooAmplitude * n * params.Distort * params.Distort
}

func (f *Field) ridgeTerm(p mgl64.Vec3, params DisplaceParams) float64 {
	freq := params.SurfaceFrequency
	if freq <= 0 {
		return 0
	}

	t := math.Mod(params.SurfaceTime, f.surface.Period())
	q := p.Mul(1 / freq)

	// Secondary noise perturbs the wave phase so the ridges wander instead
	// of spinning rigidly.
	phase := f.surface.Eval3(q.X()+t, q.Y()-t, q.Z()+t)
	azimuth := math.Atan2(p.Z(), p.X())

	wave := math.Sin(params.NumberOfWaves*azimuth + 2*phase)

	return ridgeAmplitude * wave * params.SurfaceDistort * params.SurfaceDistort
}

// hitTerm is the localized radial push around the smoothed pointer hit:
// strength * exp(-distance^2 / radius^2).
func hitTerm(p mgl64.Vec3, params DisplaceParams) float64 {
	if params.HitStrength == 0 || params.HitRadius <= 0 {
		return 0
	}

	d := p.Sub(params.HitPoint).Len()

	return params.HitStrength * math.Exp(-(d*d)/(params.HitRadius*params.HitRadius))
}

// poleAttenuation fades displacement near the two poles. ny is the
// normalized pole-axis coordinate in [-1, 1]. The smoothstep removes a
// narrow polar cap entirely; the sine rolls the remainder off smoothly so
// the surface never pinches at the converging vertices.
func poleAttenuation(ny float64) float64 {
	a := 1 - math.Abs(ny)

	return core.Smoothstep(0, polarCap, a) * math.Sin(a*math.Pi/2)
}

// tangentBasis returns two orthonormal vectors perpendicular to n.
func tangentBasis(n mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	ref := mgl64.Vec3{0, 1, 0}
	if math.Abs(n.Y()) > 0.99 {
		ref = mgl64.Vec3{1, 0, 0}
	}

	t1 := n.Cross(ref).Normalize()
	t2 := n.Cross(t1)

	return t1, t2
}
