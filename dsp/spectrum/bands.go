package spectrum

import "fmt"

// Voice-tuned default split points, expressed as fractions of the bin count
// so they scale with any FFT size. The values correspond to bins 6 and 50 of
// a 128-bin spectrum: the low band catches fundamentals, the mid band the
// region where voice presence concentrates, and the high band the remainder.
const (
	defaultLowFraction = 6.0 / 128.0
	defaultMidFraction = 50.0 / 128.0
)

// Bands partitions a magnitude spectrum into three contiguous low/mid/high
// ranges by bin-count fractions.
type Bands struct {
	lowFraction float64
	midFraction float64
}

// NewBands creates a band splitter with the given fraction boundaries.
// Both fractions are relative to the total bin count and must satisfy
// 0 < lowFraction < midFraction < 1.
func NewBands(lowFraction, midFraction float64) (*Bands, error) {
	if !(lowFraction > 0 && lowFraction < midFraction && midFraction < 1) {
		return nil, fmt.Errorf("band fractions must satisfy 0 < low < mid < 1: %f, %f",
			lowFraction, midFraction)
	}

	return &Bands{lowFraction: lowFraction, midFraction: midFraction}, nil
}

// DefaultBands returns the voice-tuned splitter.
func DefaultBands() *Bands {
	return &Bands{lowFraction: defaultLowFraction, midFraction: defaultMidFraction}
}

// LowFraction returns the low/mid boundary fraction.
func (b *Bands) LowFraction() float64 { return b.lowFraction }

// MidFraction returns the mid/high boundary fraction.
func (b *Bands) MidFraction() float64 { return b.midFraction }

// Split returns the exclusive end bins of the low and mid bands for a
// spectrum of the given size. Each band is guaranteed at least one bin when
// bins >= 3.
func (b *Bands) Split(bins int) (lowEnd, midEnd int) {
	if bins <= 0 {
		return 0, 0
	}

	lowEnd = int(b.lowFraction * float64(bins))
	if lowEnd < 1 {
		lowEnd = 1
	}

	midEnd = int(b.midFraction * float64(bins))
	if midEnd <= lowEnd {
		midEnd = lowEnd + 1
	}

	if midEnd >= bins {
		midEnd = bins - 1
	}

	if lowEnd >= midEnd {
		lowEnd = midEnd - 1
	}

	if lowEnd < 0 {
		lowEnd = 0
	}

	return lowEnd, midEnd
}

// Average reduces a magnitude spectrum to its per-band arithmetic means.
// Inputs are expected in [0, 1]; outputs then stay in [0, 1]. An empty
// spectrum yields all zeros.
func (b *Bands) Average(mags []float64) (low, mid, high float64) {
	if len(mags) == 0 {
		return 0, 0, 0
	}

	lowEnd, midEnd := b.Split(len(mags))

	low = mean(mags[:lowEnd])
	mid = mean(mags[lowEnd:midEnd])
	high = mean(mags[midEnd:])

	return low, mid, high
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}

	sum := 0.0
	for _, x := range v {
		sum += x
	}

	return sum / float64(len(v))
}
