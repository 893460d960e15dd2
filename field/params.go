package field

import "github.com/go-gl/mathgl/mgl64"

// DisplaceParams is the per-frame parameter set for the displacement field.
// It is written once per frame by the animator and read during evaluation.
type DisplaceParams struct {
	// Large-scale organic term.
	Distort   float64
	Frequency float64
	Time      float64

	// Ridge/wave term.
	SurfaceDistort   float64
	SurfaceFrequency float64
	SurfaceTime      float64
	NumberOfWaves    float64

	// Pole attenuation mix per term: 0 bypasses attenuation, 1 applies it
	// fully.
	GooPoleAmount     float64
	SurfacePoleAmount float64

	// Pointer interaction, in the surface's local frame.
	HitPoint    mgl64.Vec3
	HitRadius   float64
	HitStrength float64
}

// ColorParams is the per-frame parameter set for the color field.
type ColorParams struct {
	Time       float64
	Frequency  float64
	Saturation float64
	Fresnel    float64
}

// DefaultDisplaceParams returns the idle-state field parameters.
func DefaultDisplaceParams() DisplaceParams {
	return DisplaceParams{
		Distort:           0.6,
		Frequency:         1.8,
		Time:              0,
		SurfaceDistort:    1.4,
		SurfaceFrequency:  1.2,
		SurfaceTime:       0,
		NumberOfWaves:     5,
		GooPoleAmount:     1,
		SurfacePoleAmount: 1,
		HitRadius:         0.75,
	}
}

// DefaultColorParams returns the idle-state color parameters.
func DefaultColorParams() ColorParams {
	return ColorParams{
		Frequency:  1.5,
		Saturation: 1.25,
		Fresnel:    0.6,
	}
}
