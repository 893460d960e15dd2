package field

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func flatParams() DisplaceParams {
	p := DefaultDisplaceParams()
	p.Distort = 0
	p.SurfaceDistort = 0
	return p
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 1); err == nil {
		t.Fatalf("expected error for zero radius")
	}

	if _, err := New(math.NaN(), 1); err == nil {
		t.Fatalf("expected error for NaN radius")
	}

	if _, err := New(1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDisplaceTimePeriodicity(t *testing.T) {
	f, err := New(1, 7)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	params := DefaultDisplaceParams()
	params.Time = 1.35
	params.SurfaceTime = 0.8

	p := mgl64.Vec3{0.3, 0.5, -0.81}
	base := f.Displace(p, params)

	params.Time += f.Period()
	params.SurfaceTime += f.Period()

	if got := f.Displace(p, params); math.Abs(got-base) > 1e-12 {
		t.Fatalf("displacement not periodic in time: %f != %f", got, base)
	}
}

func TestDisplaceVanishesAtPoles(t *testing.T) {
	f, _ := New(1, 3)

	params := DefaultDisplaceParams()
	params.GooPoleAmount = 1
	params.SurfacePoleAmount = 1
	params.Time = 2.2
	params.SurfaceTime = 1.1

	for _, pole := range []mgl64.Vec3{{0, 1, 0}, {0, -1, 0}} {
		if d := f.Displace(pole, params); d != 0 {
			t.Fatalf("pole %v displaced by %f want=0", pole, d)
		}
	}
}

func TestPoleAmountBypass(t *testing.T) {
	f, _ := New(1, 3)

	params := DefaultDisplaceParams()
	params.Time = 0.37
	params.SurfaceTime = 0.52
	params.GooPoleAmount = 0
	params.SurfacePoleAmount = 0

	// With attenuation bypassed the pole behaves like any other point: at
	// least one pole must receive nonzero displacement.
	d0 := f.Displace(mgl64.Vec3{0, 1, 0}, params)
	d1 := f.Displace(mgl64.Vec3{0, -1, 0}, params)
	if d0 == 0 && d1 == 0 {
		t.Fatalf("bypassed pole attenuation still zeroed both poles")
	}
}

func TestHitTerm(t *testing.T) {
	f, _ := New(1, 3)

	params := flatParams()
	params.HitPoint = mgl64.Vec3{1, 0, 0}
	params.HitRadius = 0.75
	params.HitStrength = 0.4

	// At the hit point the push equals the full strength.
	at := f.Displace(mgl64.Vec3{1, 0, 0}, params)
	if math.Abs(at-0.4) > 1e-12 {
		t.Fatalf("displacement at hit point=%f want=0.4", at)
	}

	// The push decays monotonically with distance.
	prev := at
	for _, angle := range []float64{0.2, 0.5, 1.0, 2.0} {
		p := mgl64.Vec3{math.Cos(angle), 0, math.Sin(angle)}
		d := f.Displace(p, params)
		if d >= prev {
			t.Fatalf("hit push did not decay at angle %f: %f >= %f", angle, d, prev)
		}
		prev = d
	}

	// Zero strength disables the term entirely.
	params.HitStrength = 0
	if d := f.Displace(mgl64.Vec3{1, 0, 0}, params); d != 0 {
		t.Fatalf("zero-strength hit displaced by %f", d)
	}
}

func TestDisplacedStaysRadial(t *testing.T) {
	f, _ := New(1, 9)

	params := DefaultDisplaceParams()
	params.Time = 1.9

	p := mgl64.Vec3{0.6, 0.3, 0.74}
	out := f.Displaced(p, params)

	// Displacement moves along the base normal, so the displaced point must
	// stay colinear with p.
	if cross := p.Cross(out).Len(); cross > 1e-9 {
		t.Fatalf("displaced point left the radial line: cross=%e", cross)
	}

	if zero := f.Displaced(mgl64.Vec3{}, params); zero.Len() != 0 {
		t.Fatalf("origin should not displace: %v", zero)
	}
}

func TestNormalMatchesSphereWhenFlat(t *testing.T) {
	f, _ := New(1, 11)

	params := flatParams()

	p := mgl64.Vec3{0.48, 0.6, 0.64}
	n := f.Normal(p, params, 1e-4)
	want := p.Normalize()

	if math.Abs(n.Dot(want)-1) > 1e-6 {
		t.Fatalf("flat-field normal %v deviates from sphere normal %v", n, want)
	}
}

func TestNormalIsUnitAndOutward(t *testing.T) {
	f, _ := New(1, 11)

	params := DefaultDisplaceParams()
	params.Time = 0.9
	params.SurfaceTime = 0.4

	for _, p := range []mgl64.Vec3{
		{1, 0, 0},
		{0.26, 0.83, -0.49},
		{-0.7, 0.1, 0.7},
	} {
		n := f.Normal(p, params, 1e-4)
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Fatalf("normal at %v not unit length: %f", p, n.Len())
		}

		if n.Dot(p.Normalize()) <= 0 {
			t.Fatalf("normal at %v points inward", p)
		}
	}
}

func TestPoleAttenuationProfile(t *testing.T) {
	if got := poleAttenuation(1); got != 0 {
		t.Fatalf("attenuation at north pole=%f want=0", got)
	}

	if got := poleAttenuation(-1); got != 0 {
		t.Fatalf("attenuation at south pole=%f want=0", got)
	}

	eq := poleAttenuation(0)
	if math.Abs(eq-1) > 1e-12 {
		t.Fatalf("attenuation at equator=%f want=1", eq)
	}

	// Monotonic from pole to equator.
	prev := -1.0
	for ny := 1.0; ny >= 0; ny -= 0.05 {
		v := poleAttenuation(ny)
		if v < prev {
			t.Fatalf("attenuation not monotonic at ny=%f", ny)
		}
		prev = v
	}
}
