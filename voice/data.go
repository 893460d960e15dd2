package voice

// VoiceData is the per-tick analysis result. All fields are in [0, 1] and
// Amplitude always equals the maximum of the three band energies.
//
// The record is allocated once by the analyzer, mutated on every analysis
// tick, zeroed on stop, and read (never written) by the animator. With both
// sides driven off the same cooperative scheduler no locking is needed.
type VoiceData struct {
	Amplitude float64
	Low       float64
	Mid       float64
	High      float64
}

func (d *VoiceData) reset() {
	*d = VoiceData{}
}
