package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// raySphere intersects a ray with a sphere of the given radius centered at
// the origin and returns the nearest hit point in front of the ray origin.
func raySphere(origin, dir mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	if dir.Len() == 0 || radius <= 0 {
		return mgl64.Vec3{}, false
	}

	d := dir.Normalize()

	// |o + t*d|^2 = r^2 with |d| = 1.
	b := origin.Dot(d)
	c := origin.Dot(origin) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return mgl64.Vec3{}, false
	}

	sq := math.Sqrt(disc)

	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return mgl64.Vec3{}, false
	}

	return origin.Add(d.Mul(t)), true
}
