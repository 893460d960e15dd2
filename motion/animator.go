package motion

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/voicefield/dsp/core"
	"github.com/cwbudde/voicefield/dsp/envelope"
	"github.com/cwbudde/voicefield/field"
	"github.com/cwbudde/voicefield/voice"
)

const (
	// Large dt spikes after tab-suspend are clamped so the surface never
	// jumps.
	maxFrameDelta = 0.1

	// Fade-in: progress accumulates at this rate, displayed value is the
	// square of the progress (ease-in over roughly 1.5 s).
	fadeRate = 0.7

	// Idle/active shape tuples; amplitude interpolates between them.
	idleDistort   = 0.6
	activeDistort = 0.70

	idleSpeed   = 0.5
	activeSpeed = 0.58

	idleSurfaceDistort   = 1.4
	activeSurfaceDistort = 1.7

	idleSurfaceSpeed   = 0.4
	activeSurfaceSpeed = 0.48

	idleScale   = 0.64
	activeScale = 0.96

	// Rising (louder) responds faster than falling (quieter).
	shapeRise = 0.02
	shapeFall = 0.008
	scaleRise = 0.06
	scaleFall = 0.03

	// Ambient rotation rates in rad/s, independent of audio level.
	rotationRateY = 0.08
	rotationRateX = 0.03

	// Pointer raycasting runs every 3rd frame, telemetry publishes every
	// 6th; both purely for cost control.
	pointerInterval   = 3
	telemetryInterval = 6

	pointerSmoothing   = 0.12
	pointerMaxStrength = 0.4
	pointerRampRate    = 0.12
	pointerMissDecay   = 0.92
)

// Config defines animator settings fixed at construction.
type Config struct {
	Radius           float64
	Frequency        float64
	SurfaceFrequency float64
	NumberOfWaves    float64
	HitRadius        float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the animator defaults for a unit sphere.
func DefaultConfig() Config {
	d := field.DefaultDisplaceParams()
	return Config{
		Radius:           1,
		Frequency:        d.Frequency,
		SurfaceFrequency: d.SurfaceFrequency,
		NumberOfWaves:    d.NumberOfWaves,
		HitRadius:        d.HitRadius,
	}
}

// WithRadius sets the base sphere radius.
func WithRadius(r float64) Option {
	return func(cfg *Config) {
		if r > 0 {
			cfg.Radius = r
		}
	}
}

// WithNumberOfWaves sets the ridge wave count.
func WithNumberOfWaves(n float64) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.NumberOfWaves = n
		}
	}
}

// WithHitRadius sets the pointer-push falloff radius.
func WithHitRadius(r float64) Option {
	return func(cfg *Config) {
		if r > 0 {
			cfg.HitRadius = r
		}
	}
}

// Animator advances the uniform set once per render frame.
type Animator struct {
	cfg      Config
	data     *voice.VoiceData
	settings *voice.Settings

	uniforms UniformSet
	fade     float64
	frame    uint64

	distort        *envelope.Tracker
	speed          *envelope.Tracker
	surfaceDistort *envelope.Tracker
	surfaceSpeed   *envelope.Tracker
	scale          *envelope.Tracker

	pointerActive bool
	pointerOrigin mgl64.Vec3
	pointerDir    mgl64.Vec3
	hitSmoothed   mgl64.Vec3
	hadHit        bool
	hitStrength   float64

	telemetry Cell
}

// NewAnimator creates an animator reading the given analysis record and
// shared settings.
func NewAnimator(data *voice.VoiceData, settings *voice.Settings, opts ...Option) (*Animator, error) {
	if data == nil {
		return nil, fmt.Errorf("animator requires a voice data record")
	}

	if settings == nil {
		return nil, fmt.Errorf("animator requires a settings record")
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	an := &Animator{cfg: cfg, data: data, settings: settings}

	an.distort, _ = envelope.NewTracker(shapeRise, shapeFall)
	an.speed, _ = envelope.NewTracker(shapeRise, shapeFall)
	an.surfaceDistort, _ = envelope.NewTracker(shapeRise, shapeFall)
	an.surfaceSpeed, _ = envelope.NewTracker(shapeRise, shapeFall)
	an.scale, _ = envelope.NewTracker(scaleRise, scaleFall)

	an.distort.Set(idleDistort)
	an.speed.Set(idleSpeed)
	an.surfaceDistort.Set(idleSurfaceDistort)
	an.surfaceSpeed.Set(idleSurfaceSpeed)
	an.scale.Set(idleScale)

	an.uniforms.Displace = field.DefaultDisplaceParams()
	an.uniforms.Displace.Frequency = cfg.Frequency
	an.uniforms.Displace.SurfaceFrequency = cfg.SurfaceFrequency
	an.uniforms.Displace.NumberOfWaves = cfg.NumberOfWaves
	an.uniforms.Displace.HitRadius = cfg.HitRadius
	an.uniforms.Color = field.DefaultColorParams()
	an.uniforms.Scale = idleScale

	return an, nil
}

// Uniforms returns the live uniform set. Read-only for callers.
func (an *Animator) Uniforms() *UniformSet { return &an.uniforms }

// Telemetry returns the throttled band-energy channel.
func (an *Animator) Telemetry() *Cell { return &an.telemetry }

// SetPointerRay records the pointer ray (world space) for the next throttled
// intersection pass.
func (an *Animator) SetPointerRay(origin, dir mgl64.Vec3) {
	an.pointerActive = true
	an.pointerOrigin = origin
	an.pointerDir = dir
}

// ClearPointer marks the pointer as having left the viewport.
func (an *Animator) ClearPointer() {
	an.pointerActive = false
}

// Step advances the animation by dt seconds.
func (an *Animator) Step(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	s := an.settings.Clamped()

	an.stepFade(dt)
	an.stepShape(s)
	an.stepClocks(dt, s)

	if an.frame%pointerInterval == 0 {
		an.stepPointer()
	}

	if an.frame%telemetryInterval == 0 {
		an.telemetry.publish(Telemetry{
			Low:  an.data.Low,
			Mid:  an.data.Mid,
			High: an.data.High,
		})
	}

	an.frame++
}

func (an *Animator) stepFade(dt float64) {
	if an.fade >= 1 {
		return
	}

	an.fade += dt * fadeRate
	if an.fade >= 1 {
		an.fade = 1
	}

	an.uniforms.Visibility = an.fade * an.fade
	an.uniforms.Opaque = an.fade >= 1
}

func (an *Animator) stepShape(s voice.Settings) {
	amp := core.Saturate(an.data.Amplitude)
	surf := core.Saturate(math.Max(an.data.Mid, an.data.High))

	an.uniforms.Displace.Distort = an.distort.Track(core.Mix(idleDistort, activeDistort, amp))
	an.uniforms.Displace.SurfaceDistort = an.surfaceDistort.Track(core.Mix(idleSurfaceDistort, activeSurfaceDistort, surf))

	an.uniforms.Speed = an.speed.Track(core.Mix(idleSpeed, activeSpeed, amp)) * s.AnimationSpeed
	an.uniforms.SurfaceSpeed = an.surfaceSpeed.Track(core.Mix(idleSurfaceSpeed, activeSurfaceSpeed, amp)) * s.AnimationSpeed

	an.uniforms.Scale = an.scale.Track(core.Mix(idleScale, activeScale, amp))
}

func (an *Animator) stepClocks(dt float64, s voice.Settings) {
	// Both clocks are monotonic and unbounded; the field wraps them through
	// periodic noise sampling.
	an.uniforms.Displace.Time += dt * an.uniforms.Speed
	an.uniforms.Displace.SurfaceTime += dt * an.uniforms.SurfaceSpeed
	an.uniforms.Color.Time = an.uniforms.Displace.Time

	an.uniforms.RotationY += dt * rotationRateY * s.AnimationSpeed
	an.uniforms.RotationX += dt * rotationRateX * s.AnimationSpeed
}

// stepPointer casts the stored ray against the undisplaced base sphere at
// the current scale and updates the smoothed hit state.
func (an *Animator) stepPointer() {
	hit, ok := an.castPointer()
	if !ok {
		// Strength fades per evaluated frame, not per native frame.
		an.hitStrength *= pointerMissDecay
		an.uniforms.Displace.HitStrength = an.hitStrength
		return
	}

	if !an.hadHit {
		an.hitSmoothed = hit
		an.hadHit = true
	} else {
		an.hitSmoothed = an.hitSmoothed.Add(hit.Sub(an.hitSmoothed).Mul(pointerSmoothing))
	}

	an.hitStrength += (pointerMaxStrength - an.hitStrength) * pointerRampRate

	an.uniforms.Displace.HitPoint = an.hitSmoothed
	an.uniforms.Displace.HitStrength = an.hitStrength
}

func (an *Animator) castPointer() (mgl64.Vec3, bool) {
	if !an.pointerActive {
		return mgl64.Vec3{}, false
	}

	world, ok := raySphere(an.pointerOrigin, an.pointerDir, an.cfg.Radius*an.uniforms.Scale)
	if !ok {
		return mgl64.Vec3{}, false
	}

	return an.worldToLocal(world), true
}

// worldToLocal undoes the model transform (rotation then scale) so the hit
// point lives in the same frame the displacement field samples.
func (an *Animator) worldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	rot := mgl64.Rotate3DY(an.uniforms.RotationY).Mul3(mgl64.Rotate3DX(an.uniforms.RotationX))
	local := rot.Transpose().Mul3x1(p)

	if an.uniforms.Scale != 0 {
		local = local.Mul(1 / an.uniforms.Scale)
	}

	return local
}
