package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFenceStartsSignaled(t *testing.T) {
	f := NewFence()
	assert.True(t, f.Signaled())

	polls := 0
	f.Wait(func() { polls++ })
	assert.Zero(t, polls)
}

func TestFenceWaitPollsUntilSignaled(t *testing.T) {
	f := NewFence()
	f.Reset()
	assert.False(t, f.Signaled())

	polls := 0
	f.Wait(func() {
		polls++
		if polls == 3 {
			f.Signal()
		}
	})
	assert.Equal(t, 3, polls)
}

func TestFenceWaitBacksOff(t *testing.T) {
	f := NewFence()
	f.Reset()

	polls := 0
	var sleeps []time.Duration
	f.wait(func() {
		polls++
		if polls == fenceSpinPolls+4 {
			f.Signal()
		}
	}, func(d time.Duration) { sleeps = append(sleeps, d) })

	assert.Equal(t, fenceSpinPolls+4, polls)
	assert.Len(t, sleeps, 4)
	for _, d := range sleeps {
		assert.Equal(t, fencePollSleep, d)
	}
}

func TestFrameRingRotates(t *testing.T) {
	r := newFrameRing()
	assert.Equal(t, 0, r.Current())
	r.Advance()
	assert.Equal(t, 1, r.Current())
	r.Advance()
	assert.Equal(t, 0, r.Current())

	r.Fence(0).Reset()
	r.Fence(1).Reset()
	assert.Equal(t, 2, r.Outstanding())
	r.SignalAll()
	assert.Zero(t, r.Outstanding())
}
