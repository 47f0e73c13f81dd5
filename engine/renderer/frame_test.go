package renderer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeFrameBackend simulates a GPU that finishes one submitted frame per Poll.
type fakeFrameBackend struct {
	calls   []string
	pending []func()

	acquireErrs []error
	recordErr   error

	maxOutstanding int
	ring           *frameRing
}

func (f *fakeFrameBackend) Poll() {
	f.calls = append(f.calls, "poll")
	if len(f.pending) > 0 {
		done := f.pending[0]
		f.pending = f.pending[1:]
		done()
	}
}

func (f *fakeFrameBackend) Acquire() error {
	f.calls = append(f.calls, "acquire")
	if len(f.acquireErrs) > 0 {
		err := f.acquireErrs[0]
		f.acquireErrs = f.acquireErrs[1:]
		return err
	}
	return nil
}

func (f *fakeFrameBackend) Upload(frame int, _ *scene.Snapshot) {
	f.calls = append(f.calls, fmt.Sprintf("upload %d", frame))
}

func (f *fakeFrameBackend) Record(frame int, _ *scene.Snapshot) error {
	f.calls = append(f.calls, fmt.Sprintf("record %d", frame))
	return f.recordErr
}

func (f *fakeFrameBackend) Submit(onDone func()) {
	f.calls = append(f.calls, "submit")
	f.pending = append(f.pending, onDone)
	if f.ring != nil {
		f.maxOutstanding = max(f.maxOutstanding, f.ring.Outstanding())
	}
}

func (f *fakeFrameBackend) Present() {
	f.calls = append(f.calls, "present")
}

func (f *fakeFrameBackend) Discard() {
	f.calls = append(f.calls, "discard")
}

func (f *fakeFrameBackend) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func newTestLoop(t *testing.T, backend *fakeFrameBackend) (*frameLoop, *int) {
	rebuilds := 0
	l := newFrameLoop(backend, func() error {
		rebuilds++
		return nil
	}, zaptest.NewLogger(t))
	backend.ring = l.ring
	return l, &rebuilds
}

func TestFrameOrder(t *testing.T) {
	backend := &fakeFrameBackend{}
	l, _ := newTestLoop(t, backend)

	require.NoError(t, l.Draw(&scene.Snapshot{}))
	assert.Equal(t, []string{"acquire", "upload 0", "record 0", "submit", "present"}, backend.calls)

	backend.calls = nil
	require.NoError(t, l.Draw(&scene.Snapshot{}))
	assert.Equal(t, []string{"acquire", "upload 1", "record 1", "submit", "present"}, backend.calls)
}

func TestOutstandingFramesBounded(t *testing.T) {
	backend := &fakeFrameBackend{}
	l, _ := newTestLoop(t, backend)

	for range 50 {
		require.NoError(t, l.Draw(&scene.Snapshot{}))
		assert.LessOrEqual(t, l.Outstanding(), MaxFramesInFlight)
	}
	assert.Equal(t, MaxFramesInFlight, backend.maxOutstanding)
	// every frame after the first two had to wait for one completion
	assert.Equal(t, 48, backend.count("poll"))
}

func TestOutdatedAcquireRebuildsAndSkips(t *testing.T) {
	backend := &fakeFrameBackend{
		acquireErrs: []error{classifyAcquireError(errors.New("surface texture status: Outdated"))},
	}
	l, rebuilds := newTestLoop(t, backend)

	require.NoError(t, l.Draw(&scene.Snapshot{}))
	assert.Equal(t, 1, *rebuilds)
	assert.Zero(t, backend.count("submit"))
	assert.Zero(t, backend.count("present"))
	assert.Equal(t, 0, l.ring.Current())
	assert.Zero(t, l.Outstanding())

	require.NoError(t, l.Draw(&scene.Snapshot{}))
	assert.Equal(t, 1, backend.count("submit"))
	assert.Equal(t, 1, backend.count("present"))
}

func TestFatalAcquireError(t *testing.T) {
	for _, msg := range []string{
		"wgpu.(*Surface).GetCurrentTexture(): device-lost",
		"device lost: out of memory",
		"wgpu.(*Surface).GetCurrentTexture(): out-of-memory",
		"validation error",
	} {
		backend := &fakeFrameBackend{acquireErrs: []error{errors.New(msg)}}
		l, rebuilds := newTestLoop(t, backend)

		err := l.Draw(&scene.Snapshot{})
		require.Error(t, err, msg)
		assert.NotErrorIs(t, err, ErrSurfaceOutdated, msg)
		assert.Zero(t, *rebuilds, msg)
	}
}

func TestLostSurfaceRebuilds(t *testing.T) {
	backend := &fakeFrameBackend{acquireErrs: []error{errors.New("wgpu.(*Surface).GetCurrentTexture(): lost")}}
	l, rebuilds := newTestLoop(t, backend)

	require.NoError(t, l.Draw(&scene.Snapshot{}))
	assert.Equal(t, 1, *rebuilds)
	assert.Zero(t, backend.count("present"))
}

func TestWindowClosedDuringRebuild(t *testing.T) {
	backend := &fakeFrameBackend{acquireErrs: []error{classifyAcquireError(errors.New("outdated"))}}
	l := newFrameLoop(backend, func() error { return ErrWindowClosed }, zaptest.NewLogger(t))

	require.NoError(t, l.Draw(&scene.Snapshot{}))
	assert.Zero(t, backend.count("submit"))

	backend.acquireErrs = nil
	l.MarkResized()
	require.NoError(t, l.Draw(&scene.Snapshot{}))
	assert.Equal(t, 1, backend.count("present"))
}

func TestRecordFailureReleasesSlot(t *testing.T) {
	backend := &fakeFrameBackend{recordErr: errors.New("encoder failed")}
	l, _ := newTestLoop(t, backend)

	require.Error(t, l.Draw(&scene.Snapshot{}))
	assert.Equal(t, 1, backend.count("discard"))
	assert.Zero(t, backend.count("submit"))
	assert.True(t, l.ring.Fence(0).Signaled())
}

func TestResizeRebuildsAfterPresent(t *testing.T) {
	backend := &fakeFrameBackend{}
	l, rebuilds := newTestLoop(t, backend)

	l.MarkResized()
	require.NoError(t, l.Draw(&scene.Snapshot{}))
	assert.Equal(t, 1, *rebuilds)
	assert.Equal(t, "present", backend.calls[len(backend.calls)-1])

	require.NoError(t, l.Draw(&scene.Snapshot{}))
	assert.Equal(t, 1, *rebuilds)
}

func TestClassifyAcquireError(t *testing.T) {
	for _, msg := range []string{"Outdated", "surface lost", "Timeout", "GetCurrentTexture(): outdated"} {
		assert.ErrorIs(t, classifyAcquireError(errors.New(msg)), ErrSurfaceOutdated, msg)
	}
	for _, msg := range []string{"device-lost", "Device Lost", "out of memory", "out-of-memory", "timeouts exceeded", "lostness"} {
		assert.NotErrorIs(t, classifyAcquireError(errors.New(msg)), ErrSurfaceOutdated, msg)
	}
	assert.NoError(t, classifyAcquireError(nil))

	once := classifyAcquireError(errors.New("outdated"))
	assert.Equal(t, once, classifyAcquireError(once))
}
