// Package voice turns a live microphone stream into per-frame band energies.
//
// Each analysis tick reduces the newest capture window to three normalized
// band energies (low/mid/high) and an overall amplitude, applying a noise
// gate, sensitivity weighting, and asymmetric envelope smoothing. The
// resulting VoiceData record is the single shared input that drives the
// surface animation.
package voice
