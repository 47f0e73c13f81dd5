package renderer

import (
	"github.com/Carmen-Shannon/oxy-flap/engine/camera"
	"github.com/Carmen-Shannon/oxy-flap/engine/light"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/material"
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithVSync selects whether presentation waits for vertical blank. Defaults to true.
//
// Parameters:
//   - vsync: true for Mailbox/Fifo, false for Immediate/Fifo
//
// Returns:
//   - RendererBuilderOption: a function that applies the vsync option to a renderer
func WithVSync(vsync bool) RendererBuilderOption {
	return func(r *renderer) {
		r.vsync = vsync
	}
}

// WithMSAA caps the multisample anti-aliasing sample count of the main pass.
// When not specified, the cap is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount cap
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithShadowMapResolution sets the edge length of the square shadow map in texels.
// Zero is ignored.
//
// Parameters:
//   - resolution: the shadow map resolution
//
// Returns:
//   - RendererBuilderOption: a function that applies the resolution to a renderer
func WithShadowMapResolution(resolution uint32) RendererBuilderOption {
	return func(r *renderer) {
		if resolution > 0 {
			r.shadowResolution = resolution
		}
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithLogger sets the renderer's logger.
func WithLogger(l *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if l != nil {
			r.logger = l.Named("renderer")
		}
	}
}

// WithMaterial sets the material shared by every object.
func WithMaterial(m material.Material) RendererBuilderOption {
	return func(r *renderer) {
		r.material = m
	}
}

// WithCamera replaces the default scripted camera.
func WithCamera(c camera.Camera) RendererBuilderOption {
	return func(r *renderer) {
		r.sources.Camera = c
	}
}

// WithLight replaces the default directional light.
func WithLight(l light.Directional) RendererBuilderOption {
	return func(r *renderer) {
		r.sources.Light = l
	}
}

// WithWorkers sets how many workers compute per-object uniforms. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker count to a renderer
func WithWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n >= 1 {
			r.workers = n
		}
	}
}
