package engine

import "time"

// uncappedFPS is the effective cap used when no frame limit is set.
const uncappedFPS = 8192

// frameLimiter paces a loop on absolute deadlines so sleep overshoot does not accumulate.
type frameLimiter struct {
	period time.Duration
	next   time.Time
	now    func() time.Time
	sleep  func(time.Duration)
}

// newFrameLimiter creates a limiter for maxFPS frames per second; 0 or less means uncappedFPS.
func newFrameLimiter(maxFPS int) *frameLimiter {
	if maxFPS <= 0 {
		maxFPS = uncappedFPS
	}
	return &frameLimiter{
		period: time.Second / time.Duration(maxFPS),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Wait blocks until the next frame deadline. A loop more than one period late resynchronizes
// to now instead of bursting to catch up.
func (l *frameLimiter) Wait() {
	now := l.now()
	if l.next.IsZero() {
		l.next = now
		return
	}

	l.next = l.next.Add(l.period)
	if now.Sub(l.next) > l.period {
		l.next = now
		return
	}
	if wait := l.next.Sub(now); wait > 0 {
		l.sleep(wait)
	}
}
