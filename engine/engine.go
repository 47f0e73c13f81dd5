package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-flap/engine/physics"
	"github.com/Carmen-Shannon/oxy-flap/engine/profiler"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/Carmen-Shannon/oxy-flap/engine/window"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// engine implements the Engine interface.
// Coordinates the simulation goroutine with the render loop on the window thread.
type engine struct {
	logger *zap.Logger

	window    window.Window
	scene     scene.Scene
	renderer  renderer.Renderer
	simulator physics.Simulator

	profiler         *profiler.Profiler
	profilingEnabled bool

	maxFPS  int
	limiter *frameLimiter

	quitOnce sync.Once

	renderErr error
	frames    atomic.Uint64
}

// Engine is the main entry point for the engine.
// It owns the game's two threads: the fixed-rate simulation goroutine and the render loop, which
// runs on the calling (main) thread inside the window's message loop.
type Engine interface {
	// Run initializes the renderer for the scene, starts the simulation and blocks in the window
	// message loop until the window closes, ctx is cancelled or Quit is called. On return the
	// simulation goroutine has been joined and every GPU resource released.
	//
	// Parameters:
	//   - ctx: cancelling it shuts the engine down
	//
	// Returns:
	//   - error: the first render or simulation failure, nil on a normal shutdown
	Run(ctx context.Context) error

	// Quit asks the engine to shut down. Safe to call multiple times and from any goroutine.
	Quit()

	// Frames returns the number of frames the render loop has run.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A window, scene, renderer and simulator are required; missing any of them panics.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger: zap.NewNop(),
		maxFPS: 240,
	}
	for _, opt := range options {
		opt(e)
	}

	switch {
	case e.window == nil:
		panic("engine: a window is required")
	case e.scene == nil:
		panic("engine: a scene is required")
	case e.renderer == nil:
		panic("engine: a renderer is required")
	case e.simulator == nil:
		panic("engine: a simulator is required")
	}

	e.limiter = newFrameLimiter(e.maxFPS)
	if e.profilingEnabled {
		e.profiler = profiler.NewProfiler(e.logger)
	}
	return e
}

func (e *engine) Run(ctx context.Context) error {
	if err := e.renderer.Init(e.scene); err != nil {
		e.shutdown()
		return fmt.Errorf("engine: failed to initialize renderer: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.simulator.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("engine: simulation failed: %w", err)
		}
		return nil
	})

	e.window.SetResizeCallback(func(int, int) {
		e.renderer.Resize()
	})
	e.window.SetJumpCallback(e.simulator.Jump)
	e.window.SetUpdateCallback(func() {
		e.frame(gctx)
	})

	// A cancelled context must also reach a main thread parked in WaitEvents, e.g. while a
	// minimized window holds up a swapchain rebuild.
	woken := make(chan struct{})
	stopWake := context.AfterFunc(gctx, func() {
		defer close(woken)
		e.window.RequestClose()
	})

	e.logger.Info("engine running",
		zap.Int("tick_rate", e.simulator.TickRate()),
		zap.Int("max_fps", e.maxFPS),
	)
	e.window.ProcessMessages()

	if !stopWake() {
		<-woken
	}
	cancel()
	simErr := g.Wait()
	e.shutdown()

	e.logger.Info("engine stopped", zap.Uint64("frames", e.frames.Load()))
	return errors.Join(e.renderErr, simErr)
}

// frame runs one iteration of the render loop.
func (e *engine) frame(ctx context.Context) {
	if ctx.Err() != nil {
		e.window.RequestClose()
		return
	}

	e.limiter.Wait()
	if err := e.renderer.Draw(e.scene.Snapshot()); err != nil {
		if errors.Is(err, renderer.ErrWindowClosed) {
			e.window.RequestClose()
			return
		}
		e.logger.Error("frame failed", zap.Error(err))
		e.renderErr = err
		e.window.RequestClose()
		return
	}
	e.frames.Add(1)

	if e.profiler != nil {
		e.profiler.Tick()
	}
}

// shutdown frees the scene's GPU objects before the renderer's device.
func (e *engine) shutdown() {
	e.scene.Release()
	e.renderer.Release()
	if err := e.window.Close(); err != nil {
		e.logger.Warn("failed to close window", zap.Error(err))
	}
}

func (e *engine) Quit() {
	e.quitOnce.Do(e.window.RequestClose)
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}
