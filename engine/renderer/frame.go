package renderer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"go.uber.org/zap"
)

// ErrSurfaceOutdated reports that the swapchain no longer matches the surface and must be
// rebuilt before the next frame. The current frame is skipped.
var ErrSurfaceOutdated = errors.New("renderer: surface outdated")

// Surface statuses a swapchain rebuild recovers from, and failures of the device itself that it
// cannot.
var (
	recoverableAcquireStatuses = []string{"outdated", "lost", "timeout"}
	fatalAcquireStatuses       = []string{"device-lost", "device lost", "out-of-memory", "out of memory"}
)

// classifyAcquireError maps a surface acquire failure to ErrSurfaceOutdated when rebuilding the
// swapchain can recover from it. Statuses are matched as whole words; a lost device or exhausted
// memory is always fatal.
func classifyAcquireError(err error) error {
	if err == nil || errors.Is(err, ErrSurfaceOutdated) {
		return err
	}
	msg := strings.ToLower(err.Error())
	for _, status := range fatalAcquireStatuses {
		if strings.Contains(msg, status) {
			return err
		}
	}
	words := strings.FieldsFunc(msg, func(r rune) bool {
		return (r < 'a' || r > 'z') && r != '-'
	})
	for _, word := range words {
		if slices.Contains(recoverableAcquireStatuses, word) {
			return fmt.Errorf("%w: %w", ErrSurfaceOutdated, err)
		}
	}
	return err
}

// frameBackend is the GPU side of one frame. The wgpu backend implements it; tests use fakes.
type frameBackend interface {
	// Poll makes progress on device callbacks without blocking.
	Poll()

	// Acquire takes the next swapchain image. Errors wrapping ErrSurfaceOutdated are recoverable.
	Acquire() error

	// Upload writes the uniforms of frame slot frame from the snapshot.
	Upload(frame int, snap *scene.Snapshot)

	// Record encodes the shadow and main passes of frame slot frame.
	Record(frame int, snap *scene.Snapshot) error

	// Submit queues the recorded commands; onDone runs once the GPU has finished them.
	Submit(onDone func())

	// Present hands the acquired image to the display.
	Present()

	// Discard drops an acquired image that will not be presented.
	Discard()
}

// frameLoop drives one frame at a time through the ring of in-flight slots:
// wait fence, acquire, reset fence, upload, record, submit, present, advance.
type frameLoop struct {
	backend frameBackend
	ring    *frameRing
	rebuild func() error
	logger  *zap.Logger

	resized atomic.Bool

	presented uint64
	skipped   uint64
}

func newFrameLoop(backend frameBackend, rebuild func() error, logger *zap.Logger) *frameLoop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &frameLoop{
		backend: backend,
		ring:    newFrameRing(),
		rebuild: rebuild,
		logger:  logger,
	}
}

// MarkResized requests a swapchain rebuild after the next present.
func (l *frameLoop) MarkResized() {
	l.resized.Store(true)
}

// Draw renders snap into the next frame slot. A frame whose image could not be acquired is
// skipped after rebuilding the swapchain; that is not an error. Neither is a window that closed
// while the rebuild waited for it to be restored.
func (l *frameLoop) Draw(snap *scene.Snapshot) error {
	slot := l.ring.Current()
	fence := l.ring.Fence(slot)
	fence.Wait(l.backend.Poll)

	if err := classifyAcquireError(l.backend.Acquire()); err != nil {
		if errors.Is(err, ErrSurfaceOutdated) {
			l.skipped++
			l.logger.Debug("acquire failed, rebuilding swapchain", zap.Error(err))
			return l.rebuildNow()
		}
		return fmt.Errorf("failed to acquire frame: %w", err)
	}

	fence.Reset()
	l.backend.Upload(slot, snap)
	if err := l.backend.Record(slot, snap); err != nil {
		fence.Signal()
		l.backend.Discard()
		return fmt.Errorf("failed to record frame: %w", err)
	}
	l.backend.Submit(fence.Signal)
	l.backend.Present()
	l.presented++

	if l.resized.Swap(false) {
		if err := l.rebuildNow(); err != nil {
			return err
		}
	}
	l.ring.Advance()
	return nil
}

// Outstanding returns the number of submitted frames the GPU has not finished.
func (l *frameLoop) Outstanding() int {
	return l.ring.Outstanding()
}

func (l *frameLoop) rebuildNow() error {
	if err := l.rebuild(); err != nil {
		if errors.Is(err, ErrWindowClosed) {
			l.logger.Debug("window closed during swapchain rebuild")
			return nil
		}
		return fmt.Errorf("failed to rebuild swapchain: %w", err)
	}
	// rebuild waited for the device to go idle
	l.ring.SignalAll()
	return nil
}
