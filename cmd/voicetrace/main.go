// Command voicetrace runs the voice-reactive surface pipeline offline on a
// synthetic capture signal and prints how the band envelopes and animation
// uniforms converge, phase by phase.
//
// Usage:
//
//	voicetrace [flags]
//
// The trace is fully deterministic: samples are generated, frames are driven
// by a manual pump, and no audio or graphics device is touched.
//
// Examples:
//
//	voicetrace
//	voicetrace -frames 600 -every 30
//	voicetrace -rate 44100 -fft 512 -sensitivity 2
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/voicefield/dsp/signal"
	"github.com/cwbudde/voicefield/internal/webapp"
	"github.com/cwbudde/voicefield/motion"
)

const frameDt = 1.0 / 60.0

type phase struct {
	name   string
	frames int
	voiced bool
	muted  bool
}

func main() {
	frames := flag.Int("frames", 240, "frames per phase")
	every := flag.Int("every", 24, "print one row every N frames")
	rate := flag.Float64("rate", 48000, "capture sample rate in Hz")
	fftSize := flag.Int("fft", 256, "analysis FFT size (power of two)")
	sensitivity := flag.Float64("sensitivity", 1, "input sensitivity")
	gate := flag.Float64("gate", 0.05, "noise gate threshold")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: voicetrace [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the analysis and animation pipeline on synthetic input\n")
		fmt.Fprintf(os.Stderr, "and prints envelope and uniform convergence per phase.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	engine, err := webapp.NewEngine(
		webapp.WithSampleRate(*rate),
		webapp.WithFFTSize(*fftSize),
		webapp.WithMeshBands(12, 24),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s := engine.Settings()
	s.Sensitivity = *sensitivity
	s.NoiseGate = *gate
	engine.SetSettings(s)

	if err := engine.Start(nil); err != nil {
		fmt.Fprintf(os.Stderr, "error: start session: %v\n", err)
		os.Exit(1)
	}

	// Three tones placed in the low, mid, and high analysis bands.
	mix, err := signal.NewMix(*rate,
		[2]float64{120, 0.6},
		[2]float64{1200, 0.3},
		[2]float64{9000, 0.2},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: build voiced signal: %v\n", err)
		os.Exit(1)
	}

	phases := []phase{
		{name: "silence", frames: *frames},
		{name: "voiced", frames: *frames, voiced: true},
		{name: "muted", frames: *frames, voiced: true, muted: true},
		{name: "release", frames: *frames},
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Phase\tFrame\tLow\tMid\tHigh\tDistort\tSurfDist\tScale\tSpeed\tVisibility\n")
	fmt.Fprintf(tw, "-----\t-----\t---\t---\t----\t-------\t--------\t-----\t-----\t----------\n")

	pump := motion.NewManualPump()
	block := make([]float64, *fftSize)

	frame := 0
	for _, p := range phases {
		s := engine.Settings()
		s.Muted = p.muted
		engine.SetSettings(s)

		for i := 0; i < p.frames; i++ {
			if p.voiced {
				mix.Fill(block)
			} else {
				signal.Silence(block)
			}
			engine.PushSamples(block)

			pump.Request(func(now float64) { engine.Frame(frameDt) })
			pump.Advance(frameDt)

			if frame%*every == 0 {
				printRow(tw, engine, p.name, frame)
			}
			frame++
		}

		// Phase boundary row so transitions are visible even with a
		// coarse -every.
		printRow(tw, engine, p.name, frame-1)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: flush output: %v\n", err)
	}
}

func printRow(tw *tabwriter.Writer, engine *webapp.Engine, name string, frame int) {
	t, _ := engine.Telemetry()
	u := engine.Uniforms()

	fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
		name,
		frame,
		t.Low,
		t.Mid,
		t.High,
		u.Displace.Distort,
		u.Displace.SurfaceDistort,
		u.Scale,
		u.Speed,
		u.Visibility,
	)
}
