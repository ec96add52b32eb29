package core

import "time"

// FixedStep paces solver ticks at a target ticks-per-second rate. The
// streaming server polls it from a fast loop; it accumulates real elapsed
// time and releases one tick whenever a full step interval has passed.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep returns a pacer targeting the given TPS. The accumulator
// starts full so the first poll releases a tick immediately.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS retargets the tick rate. Callers that poll from another goroutine
// must hold their own lock around SetTPS and ShouldStep.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// ShouldStep reports whether enough real time has passed for the next tick.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
