package core

import "time"

// FixedStep converts a free-running frame loop into game ticks at a steady
// ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
// The first call to Due always yields a tick.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive values fall back to 10.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 10
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the tick interval.
func (f *FixedStep) Step() time.Duration { return f.step }

// Due reports how many ticks have elapsed at now. At most max ticks are
// reported per call so a stalled loop does not replay a burst of ticks.
func (f *FixedStep) Due(now time.Time, max int) int {
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := 0
	for f.accumulator >= f.step {
		f.accumulator -= f.step
		n++
	}
	if max > 0 && n > max {
		n = max
		f.accumulator = 0
	}
	return n
}

// ShouldStep reports whether at least one tick is due right now.
func (f *FixedStep) ShouldStep() bool {
	return f.Due(time.Now(), 1) > 0
}
