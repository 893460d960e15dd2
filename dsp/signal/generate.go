// Package signal generates deterministic test and simulation signals for
// feeding the capture pipeline without a microphone.
package signal

import (
	"fmt"
	"math"
	"math/rand"
)

// Tone is a streaming sine generator. Phase carries across Fill calls so
// consecutive blocks form one continuous waveform.
type Tone struct {
	step      float64
	amplitude float64
	phase     float64
}

// NewTone creates a sine generator at the given frequency and sample rate.
func NewTone(freqHz, amplitude, sampleRate float64) (*Tone, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("tone sample rate must be > 0: %f", sampleRate)
	}
	if freqHz < 0 || freqHz > sampleRate/2 {
		return nil, fmt.Errorf("tone frequency must be in [0, %f]: %f", sampleRate/2, freqHz)
	}

	return &Tone{
		step:      2 * math.Pi * freqHz / sampleRate,
		amplitude: amplitude,
	}, nil
}

// Fill writes the next len(dst) samples, overwriting dst.
func (t *Tone) Fill(dst []float64) {
	for i := range dst {
		dst[i] = t.amplitude * math.Sin(t.phase)
		t.phase += t.step
	}

	t.phase = math.Mod(t.phase, 2*math.Pi)
}

// Add mixes the next len(dst) samples into dst.
func (t *Tone) Add(dst []float64) {
	for i := range dst {
		dst[i] += t.amplitude * math.Sin(t.phase)
		t.phase += t.step
	}

	t.phase = math.Mod(t.phase, 2*math.Pi)
}

// Reset rewinds the generator to phase zero.
func (t *Tone) Reset() {
	t.phase = 0
}

// Mix is a bank of tones filling blocks as one summed signal.
type Mix struct {
	tones []*Tone
}

// NewMix creates a summed multi-tone generator. Each entry is a
// frequency/amplitude pair.
func NewMix(sampleRate float64, tones ...[2]float64) (*Mix, error) {
	if len(tones) == 0 {
		return nil, fmt.Errorf("mix needs at least one tone")
	}

	m := &Mix{tones: make([]*Tone, 0, len(tones))}
	for _, ta := range tones {
		t, err := NewTone(ta[0], ta[1], sampleRate)
		if err != nil {
			return nil, fmt.Errorf("mix tone %f Hz: %w", ta[0], err)
		}
		m.tones = append(m.tones, t)
	}

	return m, nil
}

// Fill writes the next len(dst) summed samples, overwriting dst.
func (m *Mix) Fill(dst []float64) {
	Silence(dst)
	for _, t := range m.tones {
		t.Add(dst)
	}
}

// Reset rewinds every tone to phase zero.
func (m *Mix) Reset() {
	for _, t := range m.tones {
		t.Reset()
	}
}

// Silence zeroes dst.
func Silence(dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
}

// WhiteNoise fills dst with deterministic uniform noise in
// [-amplitude, amplitude] from the given seed.
func WhiteNoise(dst []float64, amplitude float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range dst {
		dst[i] = amplitude * (2*rng.Float64() - 1)
	}
}
