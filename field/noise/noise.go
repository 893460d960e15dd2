// Package noise implements periodic 3D gradient noise.
//
// The lattice wraps with an integer period on every axis, so advancing any
// coordinate by exactly one period returns the identical value. The animation
// clocks feed their time offsets through this wrap, which makes looping the
// time input seamless within one period.
package noise

import (
	"fmt"
	"math"
)

// DefaultPeriod is the lattice period used by the displacement and color
// fields. Animation clocks are reduced modulo this value before sampling.
const DefaultPeriod = 8

// grad3 is the classic 12-direction gradient set: the edge midpoints of a
// cube, which avoids axis-aligned clumping.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Periodic is a seeded gradient-noise sampler with integer lattice period.
type Periodic struct {
	period int
	seed   uint32
}

// NewPeriodic creates a sampler with the given per-axis lattice period.
// period must be >= 1.
func NewPeriodic(period int, seed uint32) (*Periodic, error) {
	if period < 1 {
		return nil, fmt.Errorf("noise period must be >= 1: %d", period)
	}

	return &Periodic{period: period, seed: seed}, nil
}

// Default returns a sampler with [DefaultPeriod] and the given seed.
func Default(seed uint32) *Periodic {
	return &Periodic{period: DefaultPeriod, seed: seed}
}

// Period returns the lattice period as a float for clock arithmetic.
func (p *Periodic) Period() float64 { return float64(p.period) }

// Eval3 samples the noise at (x, y, z). The result lies in roughly [-1, 1]
// and is exactly periodic in every axis with the lattice period.
func (p *Periodic) Eval3(x, y, z float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	fz := math.Floor(z)

	ix := p.wrap(int(fx))
	iy := p.wrap(int(fy))
	iz := p.wrap(int(fz))

	ix1 := p.wrap(ix + 1)
	iy1 := p.wrap(iy + 1)
	iz1 := p.wrap(iz + 1)

	rx := x - fx
	ry := y - fy
	rz := z - fz

	u := fade(rx)
	v := fade(ry)
	w := fade(rz)

	c000 := p.gradDot(ix, iy, iz, rx, ry, rz)
	c100 := p.gradDot(ix1, iy, iz, rx-1, ry, rz)
	c010 := p.gradDot(ix, iy1, iz, rx, ry-1, rz)
	c110 := p.gradDot(ix1, iy1, iz, rx-1, ry-1, rz)
	c001 := p.gradDot(ix, iy, iz1, rx, ry, rz-1)
	c101 := p.gradDot(ix1, iy, iz1, rx-1, ry, rz-1)
	c011 := p.gradDot(ix, iy1, iz1, rx, ry-1, rz-1)
	c111 := p.gradDot(ix1, iy1, iz1, rx-1, ry-1, rz-1)

	x00 := lerp(c000, c100, u)
	x10 := lerp(c010, c110, u)
	x01 := lerp(c001, c101, u)
	x11 := lerp(c011, c111, u)

	y0 := lerp(x00, x10, v)
	y1 := lerp(x01, x11, v)

	return lerp(y0, y1, w)
}

// FBM sums octave-doubled samples of Eval3. Octave frequencies are integer
// multiples of the base, so the summed signal keeps the lattice period.
func (p *Periodic) FBM(x, y, z float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}

	sum := 0.0
	amp := 1.0
	freq := 1.0
	norm := 0.0

	for i := 0; i < octaves; i++ {
		sum += amp * p.Eval3(x*freq, y*freq, z*freq)
		norm += amp
		amp *= 0.5
		freq *= 2
	}

	return sum / norm
}

func (p *Periodic) wrap(i int) int {
	i %= p.period
	if i < 0 {
		i += p.period
	}

	return i
}

func (p *Periodic) gradDot(ix, iy, iz int, dx, dy, dz float64) float64 {
	g := grad3[p.hash(ix, iy, iz)%12]
	return g[0]*dx + g[1]*dy + g[2]*dz
}

// hash mixes the lattice coordinate and seed with xorshift steps. The same
// (coordinate, seed) pair always yields the same gradient.
func (p *Periodic) hash(ix, iy, iz int) uint32 {
	h := p.seed ^ 0x9e3779b9
	h ^= uint32(ix) * 0x85ebca6b
	h ^= h << 13
	h ^= uint32(iy) * 0xc2b2ae35
	h ^= h >> 17
	h ^= uint32(iz) * 0x27d4eb2f
	h ^= h << 5

	return h
}

// fade is the quintic interpolant 6t^5 - 15t^4 + 10t^3 with zero first and
// second derivatives at the cell borders.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
