package core

import "time"

// FixedStep converts wall-clock time into a number of due simulation ticks so
// a sim can run at a steady TPS regardless of the host's render rate.
type FixedStep struct {
	step     time.Duration
	acc      time.Duration
	last     time.Time
	maxBurst int
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	f := &FixedStep{maxBurst: 4}
	f.SetTPS(tps)
	f.acc = f.step
	return f
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Steps reports how many ticks are due since the previous call. Bursts are
// capped and the remainder discarded so a stalled window does not trigger a
// catch-up spiral.
func (f *FixedStep) Steps() int {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	f.acc += now.Sub(f.last)
	f.last = now

	n := 0
	for f.acc >= f.step && n < f.maxBurst {
		f.acc -= f.step
		n++
	}
	if f.acc >= f.step {
		f.acc = 0
	}
	return n
}
