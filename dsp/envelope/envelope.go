// Package envelope provides the asymmetric smoothing primitives used across
// the visual pipeline: a decay-style follower for band energies and a
// two-rate tracker for shape parameters.
package envelope

import (
	"fmt"
	"math"
)

// Follower is an asymmetric envelope follower with fast rise and geometric
// decay.
//
// When the target exceeds the current value the follower rises by
// attack*(target-value) per step; otherwise the value decays multiplicatively
// by the release ratio, independent of the target. This produces the fast
// attack / slow fade behavior that keeps a visual calm on transients.
//
// The zero value is not usable; construct with [NewFollower].
type Follower struct {
	attack  float64
	release float64
	value   float64
}

// NewFollower creates a follower with the given per-step rates.
// attack must be in (0, 1]; release must be in [0, 1).
func NewFollower(attack, release float64) (*Follower, error) {
	if !(attack > 0 && attack <= 1) || math.IsNaN(attack) {
		return nil, fmt.Errorf("envelope attack must be in (0, 1]: %f", attack)
	}

	if !(release >= 0 && release < 1) || math.IsNaN(release) {
		return nil, fmt.Errorf("envelope release must be in [0, 1): %f", release)
	}

	return &Follower{attack: attack, release: release}, nil
}

// Process advances the follower toward target by one step and returns the
// new value. NaN targets are treated as zero.
func (f *Follower) Process(target float64) float64 {
	if math.IsNaN(target) {
		target = 0
	}

	if target > f.value {
		f.value += (target - f.value) * f.attack
	} else {
		f.value *= f.release
	}

	return f.value
}

// Decay applies one release step without a target, used for mute fading at
// an explicit ratio.
func (f *Follower) Decay(ratio float64) float64 {
	f.value *= ratio
	return f.value
}

// Value returns the current envelope value.
func (f *Follower) Value() float64 { return f.value }

// Attack returns the per-step attack rate.
func (f *Follower) Attack() float64 { return f.attack }

// Release returns the per-step release ratio.
func (f *Follower) Release() float64 { return f.release }

// Reset zeroes the envelope state.
func (f *Follower) Reset() {
	f.value = 0
}

// Tracker is a two-rate exponential tracker: it approaches the target by a
// fraction of the remaining distance each step, using a faster fraction when
// rising than when falling. Shape parameters smoothed with it breathe rather
// than jitter.
//
// The zero value is not usable; construct with [NewTracker].
type Tracker struct {
	rise  float64
	fall  float64
	value float64
}

// NewTracker creates a tracker with the given per-step fractions, both in
// (0, 1].
func NewTracker(rise, fall float64) (*Tracker, error) {
	if !(rise > 0 && rise <= 1) || math.IsNaN(rise) {
		return nil, fmt.Errorf("tracker rise must be in (0, 1]: %f", rise)
	}

	if !(fall > 0 && fall <= 1) || math.IsNaN(fall) {
		return nil, fmt.Errorf("tracker fall must be in (0, 1]: %f", fall)
	}

	return &Tracker{rise: rise, fall: fall}, nil
}

// Track advances the value toward target by one step and returns it.
func (t *Tracker) Track(target float64) float64 {
	if math.IsNaN(target) {
		return t.value
	}

	rate := t.rise
	if target < t.value {
		rate = t.fall
	}

	t.value += (target - t.value) * rate

	return t.value
}

// Value returns the current tracked value.
func (t *Tracker) Value() float64 { return t.value }

// Set forces the tracked value, bypassing smoothing.
func (t *Tracker) Set(value float64) {
	if !math.IsNaN(value) {
		t.value = value
	}
}
