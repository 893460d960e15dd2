package motion

// Handle identifies one scheduled tick request.
type Handle int

// Pump schedules single-shot per-frame callbacks. The browser host backs it
// with requestAnimationFrame; tests and offline tools drive it by hand so
// ticks are fully deterministic.
type Pump interface {
	// Request schedules fn for the next frame and returns a cancel handle.
	// now is the pump's monotonic time in seconds.
	Request(fn func(now float64)) Handle

	// Cancel drops a pending request. Unknown or already-fired handles are
	// ignored.
	Cancel(Handle)
}

// ManualPump is a hand-driven Pump for tests and offline runs.
type ManualPump struct {
	next    Handle
	now     float64
	pending map[Handle]func(now float64)
}

// NewManualPump creates an empty manual pump at time zero.
func NewManualPump() *ManualPump {
	return &ManualPump{pending: make(map[Handle]func(now float64))}
}

// Request schedules fn for the next Advance call.
func (p *ManualPump) Request(fn func(now float64)) Handle {
	p.next++
	h := p.next
	p.pending[h] = fn
	return h
}

// Cancel drops a pending request.
func (p *ManualPump) Cancel(h Handle) {
	delete(p.pending, h)
}

// Advance moves time forward by dt seconds and fires every pending
// callback. Callbacks requested during Advance run on the following call,
// matching the one-frame granularity of a real display loop.
func (p *ManualPump) Advance(dt float64) {
	p.now += dt

	due := p.pending
	p.pending = make(map[Handle]func(now float64), len(due))

	for _, fn := range due {
		fn(p.now)
	}
}

// Pending returns the number of scheduled callbacks.
func (p *ManualPump) Pending() int { return len(p.pending) }

// Now returns the pump's current time in seconds.
func (p *ManualPump) Now() float64 { return p.now }
