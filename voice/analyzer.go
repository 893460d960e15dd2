package voice

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/voicefield/dsp/core"
	"github.com/cwbudde/voicefield/dsp/envelope"
	"github.com/cwbudde/voicefield/dsp/spectrum"
	"github.com/cwbudde/voicefield/dsp/window"
)

const (
	// minFFTSize guarantees at least 128 spectrum bins.
	minFFTSize     = 256
	defaultFFTSize = 256

	// Mid-weighted band scaling: voice presence concentrates in the mids.
	bandWeightLow  = 1.0
	bandWeightMid  = 1.2
	bandWeightHigh = 0.8

	// Fast rise, slow decay. Visually calming, avoids flicker on transients.
	envelopeAttack  = 0.025
	envelopeRelease = 0.992

	// Per-tick fade ratio while muted; a smooth fall to silence instead of
	// an instant zero.
	muteDecay = 0.9
)

// Config defines analyzer settings fixed at construction.
type Config struct {
	SampleRate float64
	FFTSize    int
	Window     window.Type
	Bands      *spectrum.Bands
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the live-analysis defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		FFTSize:    defaultFFTSize,
		Window:     window.TypeHann,
		Bands:      spectrum.DefaultBands(),
	}
}

// WithSampleRate sets the capture sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFFTSize sets the transform window size. Must be a power of two and at
// least 256; invalid values are rejected by NewAnalyzer.
func WithFFTSize(size int) Option {
	return func(cfg *Config) {
		cfg.FFTSize = size
	}
}

// WithWindow sets the analysis window type.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		cfg.Window = t
	}
}

// WithBands sets a custom band splitter.
func WithBands(b *spectrum.Bands) Option {
	return func(cfg *Config) {
		if b != nil {
			cfg.Bands = b
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Analyzer computes VoiceData from a live capture stream, one tick at a
// time. Ticks are scheduled by the host's frame pump; the analyzer itself
// never blocks.
type Analyzer struct {
	cfg      Config
	settings *Settings
	data     VoiceData

	source    Source
	listening bool

	// Capture ring holding the newest FFT window worth of samples.
	ring      []float64
	ringWrite int

	win      []float64
	winGain  float64
	plan     *algofft.Plan[complex128]
	fftIn    []complex128
	fftOut   []complex128
	mags     []float64
	readBuf  []float64
	bins     int

	low  *envelope.Follower
	mid  *envelope.Follower
	high *envelope.Follower
}

// NewAnalyzer creates an analyzer sharing the given settings record.
func NewAnalyzer(settings *Settings, opts ...Option) (*Analyzer, error) {
	if settings == nil {
		return nil, fmt.Errorf("voice analyzer requires a settings record")
	}

	cfg := ApplyOptions(opts...)

	if cfg.FFTSize < minFFTSize || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return nil, fmt.Errorf("voice fft size must be a power of two >= %d: %d",
			minFFTSize, cfg.FFTSize)
	}

	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("voice sample rate must be positive and finite: %f", cfg.SampleRate)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("voice init fft plan: %w", err)
	}

	win := window.Generate(cfg.Window, cfg.FFTSize, window.WithPeriodic())
	gain := window.CoherentGain(win)
	if gain <= 0 {
		return nil, fmt.Errorf("voice window has non-positive coherent gain")
	}

	a := &Analyzer{
		cfg:      cfg,
		settings: settings,
		ring:     make([]float64, cfg.FFTSize),
		win:      win,
		winGain:  gain,
		plan:     plan,
		fftIn:    make([]complex128, cfg.FFTSize),
		fftOut:   make([]complex128, cfg.FFTSize),
		mags:     make([]float64, cfg.FFTSize/2),
		readBuf:  make([]float64, cfg.FFTSize),
		bins:     cfg.FFTSize / 2,
	}

	a.low, _ = envelope.NewFollower(envelopeAttack, envelopeRelease)
	a.mid, _ = envelope.NewFollower(envelopeAttack, envelopeRelease)
	a.high, _ = envelope.NewFollower(envelopeAttack, envelopeRelease)

	return a, nil
}

// Data returns the live analysis record. The animator reads it every frame;
// only the analyzer writes it.
func (a *Analyzer) Data() *VoiceData { return &a.data }

// Listening reports whether a capture source is active.
func (a *Analyzer) Listening() bool { return a.listening }

// Config returns the construction-time configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Start acquires a capture source and begins analysis. On failure the prior
// source and VoiceData are left untouched, so a failed start cannot kill an
// already-working session.
func (a *Analyzer) Start(open OpenFunc) error {
	if open == nil {
		return fmt.Errorf("voice start requires an open function")
	}

	src, err := open()
	if err != nil {
		return fmt.Errorf("voice open capture source: %w", err)
	}
	if src == nil {
		return fmt.Errorf("voice open returned no capture source")
	}

	// New source is live; now tear the previous one down fully.
	a.closeSource()
	a.source = src
	a.resetState()
	a.listening = true

	return nil
}

// Switch changes capture device: stop-then-start on the new source, with the
// old session kept alive until the new device actually opened.
func (a *Analyzer) Switch(open OpenFunc) error {
	return a.Start(open)
}

// Stop releases the capture source and zeroes VoiceData. Safe to call
// repeatedly or before any start.
func (a *Analyzer) Stop() {
	a.closeSource()
	a.listening = false
	a.resetState()
}

// Push appends captured samples into the analysis ring. Hosts that receive
// audio via their own callback (rather than a pollable source) feed the
// analyzer here.
func (a *Analyzer) Push(samples []float64) {
	for _, s := range samples {
		a.ring[a.ringWrite] = s
		a.ringWrite++
		if a.ringWrite >= len(a.ring) {
			a.ringWrite = 0
		}
	}
}

// Tick runs one analysis pass. While muted the spectrum stage is skipped and
// all fields decay smoothly instead.
func (a *Analyzer) Tick() {
	if !a.listening {
		return
	}

	s := a.settings.Clamped()

	if s.Muted {
		a.data.Low = a.low.Decay(muteDecay)
		a.data.Mid = a.mid.Decay(muteDecay)
		a.data.High = a.high.Decay(muteDecay)
		a.data.Amplitude *= muteDecay
		return
	}

	a.drainSource()

	rawLow, rawMid, rawHigh := a.bandEnergies()

	lowT := bandTarget(rawLow, s, bandWeightLow)
	midT := bandTarget(rawMid, s, bandWeightMid)
	highT := bandTarget(rawHigh, s, bandWeightHigh)

	a.data.Low = core.Saturate(a.low.Process(lowT))
	a.data.Mid = core.Saturate(a.mid.Process(midT))
	a.data.High = core.Saturate(a.high.Process(highT))
	a.data.Amplitude = math.Max(a.data.Low, math.Max(a.data.Mid, a.data.High))
}

// drainSource pulls any newly captured samples from a pollable source.
// Transient read errors are swallowed; the tick just reuses the previous
// window contents.
func (a *Analyzer) drainSource() {
	if a.source == nil {
		return
	}

	n, err := a.source.Read(a.readBuf)
	if err != nil || n <= 0 {
		return
	}

	a.Push(a.readBuf[:n])
}

// bandEnergies computes the normalized low/mid/high magnitudes of the
// current capture window.
func (a *Analyzer) bandEnergies() (low, mid, high float64) {
	read := a.ringWrite
	for i := 0; i < a.cfg.FFTSize; i++ {
		a.fftIn[i] = complex(a.ring[read]*a.win[i], 0)
		read++
		if read >= a.cfg.FFTSize {
			read = 0
		}
	}

	if err := a.plan.Forward(a.fftOut, a.fftIn); err != nil {
		return 0, 0, 0
	}

	spectrum.MagnitudeInto(a.mags, a.fftOut[:a.bins])

	// Normalize to full scale: window gain plus the factor two for the
	// discarded negative-frequency half.
	norm := 2 / (float64(a.cfg.FFTSize) * a.winGain)
	for i := range a.mags {
		a.mags[i] = core.Saturate(a.mags[i] * norm)
	}

	return a.cfg.Bands.Average(a.mags)
}

// bandTarget applies the noise gate and sensitivity weighting to one raw
// band value.
func bandTarget(raw float64, s Settings, weight float64) float64 {
	gated := gate(raw, s.NoiseGate)

	return math.Min(1, gated*s.Sensitivity*weight)
}

// gate remaps the post-gate range back to [0, 1] rather than leaving a
// discontinuity at the threshold.
func gate(raw, threshold float64) float64 {
	if raw <= threshold {
		return 0
	}

	if threshold >= 1 {
		return 0
	}

	return (raw - threshold) / (1 - threshold)
}

func (a *Analyzer) closeSource() {
	if a.source == nil {
		return
	}

	a.source.Close()
	a.source = nil
}

func (a *Analyzer) resetState() {
	a.data.reset()
	a.low.Reset()
	a.mid.Reset()
	a.high.Reset()
	core.Zero(a.ring)
	a.ringWrite = 0
}
