package voice

import (
	"errors"
	"math"
	"testing"
)

type sineSource struct {
	phase  float64
	step   float64
	amp    float64
	closed int
}

func newSineSource(freqHz, sampleRate, amp float64) *sineSource {
	return &sineSource{step: 2 * math.Pi * freqHz / sampleRate, amp: amp}
}

func (s *sineSource) Read(dst []float64) (int, error) {
	for i := range dst {
		dst[i] = s.amp * math.Sin(s.phase)
		s.phase += s.step
	}
	return len(dst), nil
}

func (s *sineSource) Close() error {
	s.closed++
	return nil
}

func openSine(freqHz, sampleRate, amp float64) (OpenFunc, *sineSource) {
	src := newSineSource(freqHz, sampleRate, amp)
	return func() (Source, error) { return src, nil }, src
}

func mustAnalyzer(t *testing.T, settings *Settings, opts ...Option) *Analyzer {
	t.Helper()

	a, err := NewAnalyzer(settings, opts...)
	if err != nil {
		t.Fatalf("NewAnalyzer error: %v", err)
	}
	return a
}

func TestNewAnalyzerValidation(t *testing.T) {
	if _, err := NewAnalyzer(nil); err == nil {
		t.Fatalf("expected error for nil settings")
	}

	if _, err := NewAnalyzer(DefaultSettings(), WithFFTSize(100)); err == nil {
		t.Fatalf("expected error for non-power-of-two fft size")
	}

	if _, err := NewAnalyzer(DefaultSettings(), WithFFTSize(128)); err == nil {
		t.Fatalf("expected error for fft size below minimum")
	}

	if _, err := NewAnalyzer(DefaultSettings(), WithSampleRate(-1)); err != nil {
		// Negative rates are ignored by the option, so the default applies.
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGateRemap(t *testing.T) {
	// Exactly zero at or below the threshold.
	if got := gate(0.05, 0.05); got != 0 {
		t.Fatalf("gate at threshold=%f want=0", got)
	}

	if got := gate(0.01, 0.05); got != 0 {
		t.Fatalf("gate below threshold=%f want=0", got)
	}

	// Remapped back to full range above the threshold.
	if got := gate(1, 0.2); math.Abs(got-1) > 1e-12 {
		t.Fatalf("gate(1, 0.2)=%f want=1", got)
	}

	want := (0.5 - 0.2) / 0.8
	if got := gate(0.5, 0.2); math.Abs(got-want) > 1e-12 {
		t.Fatalf("gate(0.5, 0.2)=%f want=%f", got, want)
	}
}

func TestGateMonotonicity(t *testing.T) {
	const raw = 0.5

	prev := math.Inf(1)
	for g := 0.0; g <= raw+0.1; g += 0.01 {
		out := gate(raw, g)
		if out > prev {
			t.Fatalf("gate output increased at threshold %f: %f > %f", g, out, prev)
		}

		if g >= raw && out != 0 {
			t.Fatalf("gate output %f nonzero for threshold %f >= raw", out, g)
		}
		prev = out
	}
}

func TestTickInvariants(t *testing.T) {
	settings := DefaultSettings()
	settings.NoiseGate = 0

	a := mustAnalyzer(t, settings)

	open, _ := openSine(440, 48000, 0.8)
	if err := a.Start(open); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	for i := 0; i < 300; i++ {
		a.Tick()

		d := a.Data()
		for name, v := range map[string]float64{
			"low": d.Low, "mid": d.Mid, "high": d.High, "amplitude": d.Amplitude,
		} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("tick %d: %s=%f outside [0,1]", i, name, v)
			}
		}

		wantAmp := math.Max(d.Low, math.Max(d.Mid, d.High))
		if d.Amplitude != wantAmp {
			t.Fatalf("tick %d: amplitude=%f want max of bands=%f", i, d.Amplitude, wantAmp)
		}
	}
}

func TestTickRespondsToSignal(t *testing.T) {
	settings := DefaultSettings()
	settings.NoiseGate = 0

	a := mustAnalyzer(t, settings)

	open, _ := openSine(440, 48000, 0.8)
	if err := a.Start(open); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	for i := 0; i < 400; i++ {
		a.Tick()
	}

	if a.Data().Amplitude == 0 {
		t.Fatalf("a sustained tone produced zero amplitude")
	}
}

func TestMuteFade(t *testing.T) {
	settings := DefaultSettings()
	settings.NoiseGate = 0

	a := mustAnalyzer(t, settings)

	open, _ := openSine(440, 48000, 0.8)
	if err := a.Start(open); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	for i := 0; i < 400; i++ {
		a.Tick()
	}

	before := *a.Data()
	if before.Amplitude == 0 {
		t.Fatalf("need positive energy before muting")
	}

	settings.Muted = true

	expect := before
	for i := 0; i < 20; i++ {
		a.Tick()

		expect.Low *= muteDecay
		expect.Mid *= muteDecay
		expect.High *= muteDecay
		expect.Amplitude *= muteDecay

		d := a.Data()
		if math.Abs(d.Low-expect.Low) > 1e-12 ||
			math.Abs(d.Mid-expect.Mid) > 1e-12 ||
			math.Abs(d.High-expect.High) > 1e-12 ||
			math.Abs(d.Amplitude-expect.Amplitude) > 1e-12 {
			t.Fatalf("mute tick %d: got %+v want %+v", i, *d, expect)
		}

		if d.Low < 0 || d.Mid < 0 || d.High < 0 || d.Amplitude < 0 {
			t.Fatalf("mute fade went negative: %+v", *d)
		}
	}

	// After 20 ticks the fields are below 0.9^20 of their start.
	bound := before.Amplitude * math.Pow(muteDecay, 20)
	if d := a.Data(); d.Amplitude > bound+1e-12 {
		t.Fatalf("amplitude %f above fade bound %f", d.Amplitude, bound)
	}
}

func TestStartFailureKeepsSession(t *testing.T) {
	settings := DefaultSettings()
	settings.NoiseGate = 0

	a := mustAnalyzer(t, settings)

	open, src := openSine(440, 48000, 0.8)
	if err := a.Start(open); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	for i := 0; i < 200; i++ {
		a.Tick()
	}
	before := *a.Data()

	err := a.Switch(func() (Source, error) { return nil, errors.New("permission denied") })
	if err == nil {
		t.Fatalf("expected switch failure")
	}

	if !a.Listening() {
		t.Fatalf("failed switch stopped the running session")
	}

	if *a.Data() != before {
		t.Fatalf("failed switch mutated VoiceData: %+v != %+v", *a.Data(), before)
	}

	if src.closed != 0 {
		t.Fatalf("failed switch closed the active source")
	}
}

func TestSwitchClosesPreviousSource(t *testing.T) {
	a := mustAnalyzer(t, DefaultSettings())

	openA, srcA := openSine(440, 48000, 0.8)
	if err := a.Start(openA); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	openB, _ := openSine(880, 48000, 0.8)
	if err := a.Switch(openB); err != nil {
		t.Fatalf("Switch error: %v", err)
	}

	if srcA.closed != 1 {
		t.Fatalf("previous source closed %d times, want 1", srcA.closed)
	}
}

func TestStopResetsAndIsIdempotent(t *testing.T) {
	settings := DefaultSettings()
	settings.NoiseGate = 0

	a := mustAnalyzer(t, settings)

	// Stop before any start must be a safe no-op.
	a.Stop()

	open, src := openSine(440, 48000, 0.8)
	if err := a.Start(open); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	for i := 0; i < 200; i++ {
		a.Tick()
	}

	a.Stop()
	if *a.Data() != (VoiceData{}) {
		t.Fatalf("Stop left VoiceData %+v", *a.Data())
	}

	if a.Listening() {
		t.Fatalf("Stop left analyzer listening")
	}

	if src.closed != 1 {
		t.Fatalf("source closed %d times, want 1", src.closed)
	}

	// Second stop stays safe.
	a.Stop()
	if src.closed != 1 {
		t.Fatalf("repeated Stop closed the source again")
	}

	// Restart begins from the zero record before any tick mutates it.
	open2, _ := openSine(440, 48000, 0.8)
	if err := a.Start(open2); err != nil {
		t.Fatalf("restart error: %v", err)
	}

	if *a.Data() != (VoiceData{}) {
		t.Fatalf("restart did not begin from zero: %+v", *a.Data())
	}
}

func TestTickWithoutStartIsNoOp(t *testing.T) {
	a := mustAnalyzer(t, DefaultSettings())

	a.Tick()
	if *a.Data() != (VoiceData{}) {
		t.Fatalf("tick without start mutated data: %+v", *a.Data())
	}
}

func TestPushedSource(t *testing.T) {
	settings := DefaultSettings()
	settings.NoiseGate = 0

	a := mustAnalyzer(t, settings)

	if err := a.Start(func() (Source, error) { return Pushed(), nil }); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	// Feed a loud frame by hand, as a host capture callback would.
	frame := make([]float64, 256)
	for i := range frame {
		frame[i] = 0.9 * math.Sin(2*math.Pi*float64(i)/16)
	}

	for i := 0; i < 300; i++ {
		a.Push(frame)
		a.Tick()
	}

	if a.Data().Amplitude == 0 {
		t.Fatalf("pushed samples produced no amplitude")
	}
}

func TestSettingsClamped(t *testing.T) {
	s := &Settings{Sensitivity: 99, NoiseGate: -1, AnimationSpeed: 0, Muted: true}

	c := s.Clamped()
	if c.Sensitivity != MaxSensitivity {
		t.Fatalf("Sensitivity=%f want=%f", c.Sensitivity, MaxSensitivity)
	}

	if c.NoiseGate != MinNoiseGate {
		t.Fatalf("NoiseGate=%f want=%f", c.NoiseGate, MinNoiseGate)
	}

	if c.AnimationSpeed != MinAnimationSpeed {
		t.Fatalf("AnimationSpeed=%f want=%f", c.AnimationSpeed, MinAnimationSpeed)
	}

	if !c.Muted {
		t.Fatalf("Muted flag lost in clamp")
	}
}
