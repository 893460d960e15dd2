// Package spectrum provides magnitude extraction and contiguous band
// averaging over FFT bins.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by external FFT backends and reduces them
// to the normalized low/mid/high band energies the visual pipeline consumes.
package spectrum
