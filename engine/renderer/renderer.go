package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-flap/engine/camera"
	"github.com/Carmen-Shannon/oxy-flap/engine/light"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// Target is the window the renderer presents to.
type Target interface {
	FramebufferSource

	// SurfaceDescriptor returns the platform surface descriptor of the window.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// FrameSources are the per-frame inputs shared by every object's uniforms.
type FrameSources struct {
	Camera camera.Camera
	Light  light.Directional
	Pool   worker.DynamicWorkerPool
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     sync.Mutex
	logger *zap.Logger

	backend   rendererBackend
	swapchain *swapchain
	loop      *frameLoop

	sources  FrameSources
	material material.Material

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	vsync                bool
	msaa                 MSAASampleCount
	shadowResolution     uint32
	workers              int

	initialized bool
	released    bool
}

// Renderer draws scene snapshots through the two-pass shadow-mapped frame graph.
//
// The Renderer owns the device, the swapchain and the ring of in-flight frames. It must be created
// and driven from the main thread. Snapshots come from the physics goroutine through the scene's
// snapshot container, so drawing never touches live game objects.
type Renderer interface {
	// Init uploads the scene's meshes, the material and the shadow map, creates both pipelines and
	// the uniforms of every object currently in the scene. Must be called once before Draw.
	//
	// Parameters:
	//   - sc: the scene to draw
	//
	// Returns:
	//   - error: an error if any GPU resource could not be created
	Init(sc scene.Scene) error

	// Draw renders one frame from snap. A frame skipped because the swapchain was out of date is
	// not an error.
	//
	// Parameters:
	//   - snap: the snapshot to draw; nil draws nothing
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or recorded
	Draw(snap *scene.Snapshot) error

	// Resize marks the swapchain stale. It is rebuilt after the next present.
	Resize()

	// Config returns the current swapchain configuration.
	//
	// Returns:
	//   - SwapchainConfig: the configuration
	Config() SwapchainConfig

	// Release waits for the GPU and frees every renderer-owned resource. Safe to call more than once.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the device for target's surface and configures the swapchain. Device or
// swapchain creation failures are unrecoverable and panic.
//
// Parameters:
//   - target: the window to present to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer, ready for Init
func NewRenderer(target Target, options ...RendererBuilderOption) Renderer {
	r := newRenderer(options...)
	backend := newWGPURendererBackend(target.SurfaceDescriptor(), r.forceFallbackAdapter, r.logger)
	r.attach(target, backend)
	return r
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		logger:           zap.NewNop(),
		vsync:            true,
		msaa:             MSAA4x,
		shadowResolution: light.ShadowMapResolution,
		workers:          max(runtime.NumCPU()-1, 1),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if r.sources.Camera == nil {
		r.sources.Camera = camera.NewCamera()
	}
	if r.sources.Light == nil {
		r.sources.Light = light.NewDirectional()
	}
	if r.material == nil {
		r.material = material.NewMaterial()
	}
	r.sources.Pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	return r
}

// attach wires the backend, configures the swapchain for the first time and builds the frame loop.
func (r *renderer) attach(target FramebufferSource, backend rendererBackend) {
	r.backend = backend
	r.swapchain = newSwapchain(target, backend, r.vsync, uint32(r.msaa), r.logger)
	if err := r.swapchain.Rebuild(); err != nil {
		panic(fmt.Sprintf("renderer: failed to configure swapchain: %v", err))
	}
	r.loop = newFrameLoop(backend, r.swapchain.Rebuild, r.logger)

	cfg := r.swapchain.Config()
	r.logger.Info("swapchain configured",
		zap.Uint32("width", cfg.Extent.Width),
		zap.Uint32("height", cfg.Extent.Height),
		zap.Uint32("samples", cfg.SampleCount),
		zap.Bool("vsync", r.vsync),
	)
}

func (r *renderer) Init(sc scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}
	r.backend.Bind(sc, r.sources)

	if err := r.backend.InitShadowMap(r.shadowResolution); err != nil {
		return err
	}

	cfg := r.swapchain.Config()
	for _, p := range []pipeline.Pipeline{pipeline.NewShadowPipeline(), pipeline.NewLitPipeline(cfg.SampleCount)} {
		if err := r.backend.RegisterPipeline(p, cfg.Format); err != nil {
			return err
		}
	}

	if err := r.backend.InitMaterial(r.material); err != nil {
		return err
	}

	for _, m := range sc.Meshes() {
		if err := r.backend.InitMeshBuffers(m); err != nil {
			return fmt.Errorf("failed to upload mesh %q: %w", m.Name(), err)
		}
	}

	objects := sc.Objects()
	for _, obj := range objects {
		if err := r.backend.InitObject(obj.ID()); err != nil {
			return err
		}
	}

	r.initialized = true
	r.logger.Info("renderer initialized",
		zap.Int("meshes", len(sc.Meshes())),
		zap.Int("objects", len(objects)),
		zap.Uint32("shadow_map_resolution", r.shadowResolution),
	)
	return nil
}

func (r *renderer) Draw(snap *scene.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snap == nil || !r.initialized || r.released {
		return nil
	}
	return r.loop.Draw(snap)
}

func (r *renderer) Resize() {
	r.loop.MarkResized()
}

func (r *renderer) Config() SwapchainConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.swapchain.Config()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true
	r.backend.WaitIdle()
	r.swapchain.Release()
	r.backend.Release()
}
