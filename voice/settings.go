package voice

import "github.com/cwbudde/voicefield/dsp/core"

// Settings ranges enforced at read time. The record itself performs no
// validation; writers (the control surface) stay within these ranges by UI
// construction, and readers clamp defensively.
const (
	MinSensitivity = 0.2
	MaxSensitivity = 5.0

	MinNoiseGate = 0.0
	MaxNoiseGate = 0.3

	MinAnimationSpeed = 0.1
	MaxAnimationSpeed = 5.0
)

// Settings is the shared tunable state edited by the control surface and
// polled every frame by the analyzer and the animator. Plain record,
// last-write-wins, no change notification.
type Settings struct {
	Sensitivity    float64
	NoiseGate      float64
	AnimationSpeed float64
	Muted          bool
}

// DefaultSettings returns a fresh settings record with neutral tuning.
func DefaultSettings() *Settings {
	return &Settings{
		Sensitivity:    1.0,
		NoiseGate:      0.05,
		AnimationSpeed: 1.0,
	}
}

// Clamped returns a copy with every field forced into its valid range.
// Readers use this instead of the raw fields.
func (s *Settings) Clamped() Settings {
	return Settings{
		Sensitivity:    core.Clamp(s.Sensitivity, MinSensitivity, MaxSensitivity),
		NoiseGate:      core.Clamp(s.NoiseGate, MinNoiseGate, MaxNoiseGate),
		AnimationSpeed: core.Clamp(s.AnimationSpeed, MinAnimationSpeed, MaxAnimationSpeed),
		Muted:          s.Muted,
	}
}
