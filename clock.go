package lurk

import (
	"math/rand/v2"
	"time"
)

// Clock supplies the current time to the host frame loop. The creature itself
// never reads a clock; every state-machine call takes an explicit now.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to. Used by tests and the
// scripted runner.
type ManualClock struct {
	t time.Time
}

// NewManualClock returns a ManualClock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

// Now returns the clock's current reading.
func (c *ManualClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d. Negative values move it backward,
// which is how tests simulate clock skew.
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) { c.t = t }

// elapsed returns now - start, clamped to zero when now precedes start.
func elapsed(now, start time.Time) time.Duration {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// progress returns elapsed/duration clamped to [0, 1]. A non-positive
// duration counts as already finished.
func progress(now, start time.Time, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	u := float64(elapsed(now, start)) / float64(duration)
	if u > 1 {
		return 1
	}
	return u
}

// DeltaTimer measures the time between successive Tick calls.
type DeltaTimer struct {
	clock Clock
	last  time.Time
}

// NewDeltaTimer starts a timer at the clock's current reading.
func NewDeltaTimer(clock Clock) *DeltaTimer {
	return &DeltaTimer{clock: clock, last: clock.Now()}
}

// Tick returns the time since the previous Tick (or construction). A clock
// that went backward yields zero rather than a negative delta.
func (d *DeltaTimer) Tick() time.Duration {
	next := d.clock.Now()
	dt := next.Sub(d.last)
	if dt < 0 {
		logger().Debug("clock went backward, clamping delta to zero", "delta", dt)
		dt = 0
	}
	d.last = next
	return dt
}

// Rand is the source of every random decision the creature and the
// hiding-spot finder make. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a PCG-backed Rand. Equal seeds give equal sequences.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randBetween returns a uniform integer in [lo, hi].
func randBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// randMillis returns a uniform duration in [lo, hi] milliseconds.
func randMillis(r Rand, lo, hi int) time.Duration {
	return time.Duration(randBetween(r, lo, hi)) * time.Millisecond
}
