package lurk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock(t0)
	assert.Equal(t, t0, c.Now())

	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, t0.Add(1500*time.Millisecond), c.Now())

	c.Advance(-2 * time.Second)
	assert.Equal(t, t0.Add(-500*time.Millisecond), c.Now())

	c.Set(t0)
	assert.Equal(t, t0, c.Now())
}

func TestElapsedClampsSkew(t *testing.T) {
	assert.Equal(t, time.Second, elapsed(t0.Add(time.Second), t0))
	assert.Equal(t, time.Duration(0), elapsed(t0.Add(-time.Second), t0))
}

func TestProgress(t *testing.T) {
	d := 800 * time.Millisecond
	assert.Equal(t, 0.0, progress(t0, t0, d))
	assert.InDelta(t, 0.5, progress(t0.Add(400*time.Millisecond), t0, d), 1e-9)
	assert.Equal(t, 1.0, progress(t0.Add(d), t0, d))
	assert.Equal(t, 1.0, progress(t0.Add(10*d), t0, d))
	assert.Equal(t, 0.0, progress(t0.Add(-d), t0, d), "clock skew clamps to the start")
	assert.Equal(t, 1.0, progress(t0, t0, 0), "zero duration is already done")
}

func TestDeltaTimer(t *testing.T) {
	c := NewManualClock(t0)
	dt := NewDeltaTimer(c)

	c.Advance(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, dt.Tick())
	assert.Equal(t, time.Duration(0), dt.Tick())

	c.Advance(-time.Second)
	assert.Equal(t, time.Duration(0), dt.Tick(), "backward clock yields zero")

	c.Advance(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, dt.Tick())
}

func TestRandBetweenInclusive(t *testing.T) {
	r := NewRand(42)
	seenLo, seenHi := false, false
	for range 2000 {
		v := randBetween(r, 3, 6)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 6)
		seenLo = seenLo || v == 3
		seenHi = seenHi || v == 6
	}
	assert.True(t, seenLo && seenHi, "both bounds should be reachable")
	assert.Equal(t, 5, randBetween(r, 5, 5))
}

func TestRandMillisRange(t *testing.T) {
	r := NewRand(7)
	for range 500 {
		d := randMillis(r, peekMinMs, peekMaxMs)
		assert.GreaterOrEqual(t, d, 250*time.Millisecond)
		assert.LessOrEqual(t, d, 750*time.Millisecond)
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(99), NewRand(99)
	for range 20 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
