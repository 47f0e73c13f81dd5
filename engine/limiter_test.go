package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func newTestLimiter(fps int, clock *fakeClock) *frameLimiter {
	l := newFrameLimiter(fps)
	l.now = clock.Now
	l.sleep = clock.Sleep
	return l
}

func TestFrameLimiterPeriod(t *testing.T) {
	assert.Equal(t, 4*time.Millisecond, newFrameLimiter(250).period)
	assert.Equal(t, time.Second/uncappedFPS, newFrameLimiter(0).period)
	assert.Equal(t, time.Second/uncappedFPS, newFrameLimiter(-1).period)
}

func TestFrameLimiterAbsoluteDeadlines(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := newTestLimiter(100, clock)

	l.Wait()
	assert.Empty(t, clock.sleeps)

	// 3ms of work each frame: the sleep absorbs the remainder of the 10ms period.
	for i := 0; i < 3; i++ {
		clock.now = clock.now.Add(3 * time.Millisecond)
		l.Wait()
	}
	assert.Equal(t, []time.Duration{7 * time.Millisecond, 7 * time.Millisecond, 7 * time.Millisecond}, clock.sleeps)
	assert.Equal(t, time.Unix(0, 0).Add(30*time.Millisecond), clock.now)
}

func TestFrameLimiterCatchesUpWithinOnePeriod(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := newTestLimiter(100, clock)
	l.Wait()

	// A 15ms frame is late for its deadline; the next frame starts without sleeping.
	clock.now = clock.now.Add(15 * time.Millisecond)
	l.Wait()
	clock.now = clock.now.Add(1 * time.Millisecond)
	l.Wait()

	assert.Equal(t, []time.Duration{4 * time.Millisecond}, clock.sleeps)
}

func TestFrameLimiterResyncsWhenFarBehind(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := newTestLimiter(100, clock)
	l.Wait()

	clock.now = clock.now.Add(500 * time.Millisecond)
	l.Wait()
	assert.Empty(t, clock.sleeps)
	assert.Equal(t, clock.now, l.next)

	l.Wait()
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, clock.sleeps)
}
