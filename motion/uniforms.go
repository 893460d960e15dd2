package motion

import "github.com/cwbudde/voicefield/field"

// UniformSet is the live parameter block driving the displacement and color
// fields. The animator owns it and rewrites it once per frame; the render
// host reads it during draw and never mutates it.
type UniformSet struct {
	Displace field.DisplaceParams
	Color    field.ColorParams

	// Breathing size of the whole surface.
	Scale float64

	// Fade-in factor in [0, 1]; Opaque flips once the ramp completes so the
	// host can disable transparency and render cheaper.
	Visibility float64
	Opaque     bool

	// Passive rotation angles in radians.
	RotationX float64
	RotationY float64

	// Smoothed speed parameters, already multiplied by the animation-speed
	// setting. The clocks advance by these values.
	Speed        float64
	SurfaceSpeed float64
}
