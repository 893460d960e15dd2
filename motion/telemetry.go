package motion

import "sync/atomic"

// Telemetry is the band-energy snapshot published for display purposes.
type Telemetry struct {
	Low  float64
	Mid  float64
	High float64
}

// Cell is a single-slot, latest-value-wins telemetry channel. Publishing
// never blocks; consumers tolerate staleness up to the publish throttle and
// must not assume delivery of every frame.
type Cell struct {
	v atomic.Pointer[Telemetry]
}

// Load returns the most recently published snapshot, if any.
func (c *Cell) Load() (Telemetry, bool) {
	p := c.v.Load()
	if p == nil {
		return Telemetry{}, false
	}

	return *p, true
}

func (c *Cell) publish(t Telemetry) {
	c.v.Store(&t)
}
