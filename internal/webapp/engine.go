package webapp

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/voicefield/dsp/core"
	"github.com/cwbudde/voicefield/field"
	"github.com/cwbudde/voicefield/motion"
	"github.com/cwbudde/voicefield/voice"
)

const (
	defaultLatBands  = 48
	defaultLongBands = 96
	defaultSeed      = 1337

	// Central-difference step for the displaced-normal recomputation.
	normalEpsilon = 1e-3
)

// Config holds engine construction parameters.
type Config struct {
	SampleRate float64
	FFTSize    int
	LatBands   int
	LongBands  int
	Seed       uint32
	ViewPoint  mgl64.Vec3
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		LatBands:   defaultLatBands,
		LongBands:  defaultLongBands,
		Seed:       defaultSeed,
		ViewPoint:  mgl64.Vec3{0, 0, 5},
	}
}

// WithSampleRate sets the capture sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		cfg.SampleRate = sampleRate
	}
}

// WithFFTSize sets the analysis FFT size (power of two).
func WithFFTSize(size int) Option {
	return func(cfg *Config) {
		cfg.FFTSize = size
	}
}

// WithMeshBands sets the sphere subdivision counts.
func WithMeshBands(latBands, longBands int) Option {
	return func(cfg *Config) {
		cfg.LatBands = latBands
		cfg.LongBands = longBands
	}
}

// WithSeed sets the noise-field seed.
func WithSeed(seed uint32) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// WithViewPoint sets the camera position used for fresnel shading.
func WithViewPoint(v mgl64.Vec3) Option {
	return func(cfg *Config) {
		cfg.ViewPoint = v
	}
}

// Engine runs the full voice-reactive surface pipeline for a render host.
type Engine struct {
	cfg      Config
	settings *voice.Settings
	analyzer *voice.Analyzer
	animator *motion.Animator
	surface  *field.Field
	mesh     *Mesh

	devices       []voice.Device
	currentDevice string

	positions []float32
	normals   []float32
	colors    []float32
}

// NewEngine creates a configured engine.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("engine sample rate must be > 0: %f", cfg.SampleRate)
	}

	settings := voice.DefaultSettings()

	analyzerOpts := []voice.Option{voice.WithSampleRate(cfg.SampleRate)}
	if cfg.FFTSize > 0 {
		analyzerOpts = append(analyzerOpts, voice.WithFFTSize(cfg.FFTSize))
	}

	analyzer, err := voice.NewAnalyzer(settings, analyzerOpts...)
	if err != nil {
		return nil, fmt.Errorf("engine analyzer: %w", err)
	}

	animator, err := motion.NewAnimator(analyzer.Data(), settings)
	if err != nil {
		return nil, fmt.Errorf("engine animator: %w", err)
	}

	surface, err := field.New(1, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("engine field: %w", err)
	}

	mesh, err := NewSphereMesh(cfg.LatBands, cfg.LongBands)
	if err != nil {
		return nil, fmt.Errorf("engine mesh: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		settings: settings,
		analyzer: analyzer,
		animator: animator,
		surface:  surface,
		mesh:     mesh,
	}

	n := mesh.VertexCount() * 3
	e.positions = core.EnsureLen32(nil, n)
	e.normals = core.EnsureLen32(nil, n)
	e.colors = core.EnsureLen32(nil, n)

	return e, nil
}

// Frame advances the analysis and animation by dt seconds and re-evaluates
// the displaced geometry and vertex colors.
func (e *Engine) Frame(dt float64) {
	e.analyzer.Tick()
	e.animator.Step(dt)
	e.evaluate()
}

func (e *Engine) evaluate() {
	u := e.animator.Uniforms()

	for i, base := range e.mesh.vertices {
		pos := e.surface.Displaced(base, u.Displace)
		n := e.surface.Normal(base, u.Displace, normalEpsilon)

		view := e.cfg.ViewPoint.Sub(pos)
		if l := view.Len(); l > 0 {
			view = view.Mul(1 / l)
		}

		c := e.surface.Color(base, n, view, u.Color)

		o := i * 3
		e.positions[o] = float32(pos[0])
		e.positions[o+1] = float32(pos[1])
		e.positions[o+2] = float32(pos[2])

		e.normals[o] = float32(n[0])
		e.normals[o+1] = float32(n[1])
		e.normals[o+2] = float32(n[2])

		e.colors[o] = float32(c[0])
		e.colors[o+1] = float32(c[1])
		e.colors[o+2] = float32(c[2])
	}
}

// Positions returns the displaced vertex positions as packed xyz triples.
// The buffer is reused across frames.
func (e *Engine) Positions() []float32 { return e.positions }

// Normals returns the recomputed vertex normals as packed xyz triples.
func (e *Engine) Normals() []float32 { return e.normals }

// Colors returns the vertex colors as packed rgb triples in [0, 1].
func (e *Engine) Colors() []float32 { return e.colors }

// Indices returns the sphere triangle list.
func (e *Engine) Indices() []uint32 { return e.mesh.Indices() }

// VertexCount returns the number of mesh vertices.
func (e *Engine) VertexCount() int { return e.mesh.VertexCount() }

// Uniforms exposes the live uniform set. The host applies Scale, the
// rotation angles, and Visibility in its model transform and material.
func (e *Engine) Uniforms() *motion.UniformSet { return e.animator.Uniforms() }

// PushSamples feeds capture PCM into the analyzer ring.
func (e *Engine) PushSamples(samples []float64) {
	e.analyzer.Push(samples)
}

// Start begins a listening session. A nil open func selects the pushed
// source, for hosts that deliver PCM through PushSamples.
func (e *Engine) Start(open voice.OpenFunc) error {
	if open == nil {
		open = func() (voice.Source, error) { return voice.Pushed(), nil }
	}
	return e.analyzer.Start(open)
}

// SwitchDevice moves the session to another capture device without dropping
// the current one on failure. The device id is recorded only once the new
// source actually opened.
func (e *Engine) SwitchDevice(id string, open voice.OpenFunc) error {
	if open == nil {
		open = func() (voice.Source, error) { return voice.Pushed(), nil }
	}

	if err := e.analyzer.Switch(open); err != nil {
		return err
	}

	e.currentDevice = id
	return nil
}

// CurrentDevice returns the id of the active capture device, empty when the
// host never selected one.
func (e *Engine) CurrentDevice() string { return e.currentDevice }

// Stop ends the listening session.
func (e *Engine) Stop() { e.analyzer.Stop() }

// Listening reports whether a session is active.
func (e *Engine) Listening() bool { return e.analyzer.Listening() }

// SetDevices stores the host-enumerated capture devices.
func (e *Engine) SetDevices(devices []voice.Device) {
	e.devices = append(e.devices[:0], devices...)
}

// Devices returns the stored capture device list.
func (e *Engine) Devices() []voice.Device { return e.devices }

// Settings returns the current control-surface settings.
func (e *Engine) Settings() voice.Settings { return *e.settings }

// SetSettings applies control-surface settings, clamped to their ranges.
func (e *Engine) SetSettings(s voice.Settings) {
	*e.settings = s.Clamped()
}

// SetPointerRay forwards the pointer ray (world space) to the animator.
func (e *Engine) SetPointerRay(origin, dir mgl64.Vec3) {
	e.animator.SetPointerRay(origin, dir)
}

// ClearPointer forwards a pointer-leave to the animator.
func (e *Engine) ClearPointer() { e.animator.ClearPointer() }

// Telemetry returns the latest published band snapshot, if any.
func (e *Engine) Telemetry() (motion.Telemetry, bool) {
	return e.animator.Telemetry().Load()
}
