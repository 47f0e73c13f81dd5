package engine

import (
	"github.com/Carmen-Shannon/oxy-flap/engine/physics"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/Carmen-Shannon/oxy-flap/engine/window"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables the per-second frame and heap report.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window the engine renders into and reads input from.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene sets the scene shared by the simulation and the renderer.
//
// Parameters:
//   - s: the Scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithRenderer sets the renderer driven by the render loop.
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithSimulator sets the simulation run on its own goroutine.
func WithSimulator(s physics.Simulator) EngineBuilderOption {
	return func(e *engine) {
		e.simulator = s
	}
}

// WithMaxFPS caps the render loop. Pass 0 for the uncapped limit of 8192 frames per second.
//
// Parameters:
//   - fps: maximum render frames per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxFPS(fps int) EngineBuilderOption {
	return func(e *engine) {
		if fps >= 0 {
			e.maxFPS = fps
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if l != nil {
			e.logger = l.Named("engine")
		}
	}
}
