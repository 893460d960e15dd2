package signal

import (
	"math"
	"testing"
)

func TestNewToneValidation(t *testing.T) {
	if _, err := NewTone(440, 1, 0); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}

	if _, err := NewTone(30000, 1, 48000); err == nil {
		t.Fatalf("expected error for frequency above nyquist")
	}
}

func TestTonePhaseContinuity(t *testing.T) {
	full, err := NewTone(440, 0.8, 48000)
	if err != nil {
		t.Fatalf("NewTone error: %v", err)
	}

	split, err := NewTone(440, 0.8, 48000)
	if err != nil {
		t.Fatalf("NewTone error: %v", err)
	}

	// One 512-sample fill must equal four consecutive 128-sample fills.
	want := make([]float64, 512)
	full.Fill(want)

	got := make([]float64, 512)
	for i := 0; i < 4; i++ {
		split.Fill(got[i*128 : (i+1)*128])
	}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d: got=%f want=%f", i, got[i], want[i])
		}
	}
}

func TestToneReset(t *testing.T) {
	tone, err := NewTone(1000, 1, 48000)
	if err != nil {
		t.Fatalf("NewTone error: %v", err)
	}

	first := make([]float64, 64)
	tone.Fill(first)

	tone.Reset()

	second := make([]float64, 64)
	tone.Fill(second)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs after reset", i)
		}
	}
}

func TestMixSumsTones(t *testing.T) {
	mix, err := NewMix(48000, [2]float64{120, 0.5}, [2]float64{1200, 0.25})
	if err != nil {
		t.Fatalf("NewMix error: %v", err)
	}

	a, err := NewTone(120, 0.5, 48000)
	if err != nil {
		t.Fatalf("NewTone error: %v", err)
	}
	b, err := NewTone(1200, 0.25, 48000)
	if err != nil {
		t.Fatalf("NewTone error: %v", err)
	}

	got := make([]float64, 256)
	mix.Fill(got)

	want := make([]float64, 256)
	a.Fill(want)
	b.Add(want)

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d: got=%f want=%f", i, got[i], want[i])
		}
	}
}

func TestMixValidation(t *testing.T) {
	if _, err := NewMix(48000); err == nil {
		t.Fatalf("expected error for empty mix")
	}

	if _, err := NewMix(48000, [2]float64{90000, 1}); err == nil {
		t.Fatalf("expected error for invalid tone")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	a := make([]float64, 128)
	b := make([]float64, 128)

	WhiteNoise(a, 0.5, 7)
	WhiteNoise(b, 0.5, 7)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for equal seeds", i)
		}
		if a[i] < -0.5 || a[i] > 0.5 {
			t.Fatalf("sample %d out of range: %f", i, a[i])
		}
	}

	WhiteNoise(b, 0.5, 8)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical noise")
	}
}
