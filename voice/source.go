package voice

// Device describes one available capture input. Read-only snapshot,
// refreshed by the host on permission grant or device switch.
type Device struct {
	ID    string
	Label string
}

// Source is an open mono capture stream delivering samples in [-1, 1].
//
// Read fills dst with up to len(dst) new samples and returns how many were
// written. A short read is not an error; it simply means less audio has
// arrived since the last tick.
type Source interface {
	Read(dst []float64) (int, error)
	Close() error
}

// OpenFunc acquires a capture source. The permission prompt and device
// plumbing live behind this function; it must not be called until the
// analyzer actually starts.
type OpenFunc func() (Source, error)

// CaptureConstraints are the stream constraints the host should request when
// opening a device. Echo cancellation and noise suppression stay off so the
// gate and envelope stages see the raw dynamics; automatic gain stays on.
type CaptureConstraints struct {
	EchoCancellation bool
	NoiseSuppression bool
	AutoGainControl  bool
}

// DefaultCaptureConstraints returns the constraint set the pipeline is tuned
// for.
func DefaultCaptureConstraints() CaptureConstraints {
	return CaptureConstraints{
		EchoCancellation: false,
		NoiseSuppression: false,
		AutoGainControl:  true,
	}
}

// Pushed returns a Source for hosts that deliver samples by calling
// [Analyzer.Push] from their own capture callback instead of being polled.
func Pushed() Source { return pushedSource{} }

type pushedSource struct{}

func (pushedSource) Read(dst []float64) (int, error) { return 0, nil }

func (pushedSource) Close() error { return nil }
