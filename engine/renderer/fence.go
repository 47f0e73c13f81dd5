package renderer

import (
	"runtime"
	"sync/atomic"
	"time"
)

// MaxFramesInFlight is the number of frames the CPU may record ahead of the GPU.
const MaxFramesInFlight = 2

// A waiting fence yields between its first fenceSpinPolls polls and sleeps fencePollSleep after.
const (
	fenceSpinPolls = 16
	fencePollSleep = 100 * time.Microsecond
)

// Fence is a CPU-visible completion flag for one frame's GPU work. It starts signaled so the
// first use of each frame slot does not wait.
type Fence struct {
	signaled atomic.Bool
}

// NewFence creates a signaled fence.
func NewFence() *Fence {
	f := &Fence{}
	f.signaled.Store(true)
	return f
}

// Signal marks the work complete. Called from the queue's work-done callback.
func (f *Fence) Signal() {
	f.signaled.Store(true)
}

// Reset marks the fence pending ahead of a submit.
func (f *Fence) Reset() {
	f.signaled.Store(false)
}

// Signaled reports whether the last submitted work has completed.
func (f *Fence) Signaled() bool {
	return f.signaled.Load()
}

// Wait blocks until the fence is signaled, calling poll between checks. poll must make progress
// on GPU callbacks, e.g. by polling the device. The thread yields and then sleeps between polls
// rather than spinning.
func (f *Fence) Wait(poll func()) {
	f.wait(poll, time.Sleep)
}

func (f *Fence) wait(poll func(), sleep func(time.Duration)) {
	for polls := 0; !f.Signaled(); polls++ {
		switch {
		case polls == 0:
		case polls < fenceSpinPolls:
			runtime.Gosched()
		default:
			sleep(fencePollSleep)
		}
		poll()
	}
}

// frameRing rotates through MaxFramesInFlight fences.
type frameRing struct {
	fences  [MaxFramesInFlight]*Fence
	current int
}

func newFrameRing() *frameRing {
	r := &frameRing{}
	for i := range r.fences {
		r.fences[i] = NewFence()
	}
	return r
}

// Current returns the index of the frame slot being recorded.
func (r *frameRing) Current() int {
	return r.current
}

// Fence returns the fence guarding frame slot i.
func (r *frameRing) Fence(i int) *Fence {
	return r.fences[i]
}

// Advance moves to the next frame slot.
func (r *frameRing) Advance() {
	r.current = (r.current + 1) % MaxFramesInFlight
}

// Outstanding counts fences whose work has been submitted but not completed.
func (r *frameRing) Outstanding() int {
	n := 0
	for _, f := range r.fences {
		if !f.Signaled() {
			n++
		}
	}
	return n
}

// SignalAll marks every slot complete; used after the device has been waited idle.
func (r *frameRing) SignalAll() {
	for _, f := range r.fences {
		f.Signal()
	}
}
