package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// ErrNoSurfaceFormat is returned when the surface reports no usable color format.
var ErrNoSurfaceFormat = errors.New("renderer: surface has no supported formats")

// ErrWindowClosed is returned by a rebuild that gave up waiting because the window closed.
var ErrWindowClosed = errors.New("renderer: window closed")

// FramebufferSource is the window as the swapchain sees it.
type FramebufferSource interface {
	// FramebufferSize returns the drawable size in pixels; 0x0 while minimized.
	FramebufferSize() (width, height int)

	// WaitEvents blocks until the window receives an event.
	WaitEvents()

	// IsRunning reports false once the window has been asked to close.
	IsRunning() bool
}

// SurfaceCaps is what the surface and device support.
type SurfaceCaps struct {
	Formats      []wgpu.TextureFormat
	PresentModes []wgpu.PresentMode
	AlphaModes   []wgpu.CompositeAlphaMode
	Extent       ExtentCaps
}

// swapchainDevice is the device side of a swapchain rebuild.
type swapchainDevice interface {
	// WaitIdle blocks until all submitted work has completed.
	WaitIdle()

	// Capabilities queries the surface.
	Capabilities() SurfaceCaps

	// Configure (re)configures the surface.
	Configure(cfg SwapchainConfig)

	// CreateAttachments creates the size-dependent render targets and tracks them in arena.
	CreateAttachments(cfg SwapchainConfig, arena *Arena) error
}

// swapchain owns the surface configuration and the attachments that depend on its size.
type swapchain struct {
	fb     FramebufferSource
	device swapchainDevice
	arena  *Arena
	logger *zap.Logger

	vsync       bool
	maxSamples  uint32
	sampleCheck func(uint32) bool

	config   SwapchainConfig
	rebuilds int
}

func newSwapchain(fb FramebufferSource, device swapchainDevice, vsync bool, maxSamples uint32, logger *zap.Logger) *swapchain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &swapchain{
		fb:          fb,
		device:      device,
		arena:       NewArena(logger),
		logger:      logger,
		vsync:       vsync,
		maxSamples:  maxSamples,
		sampleCheck: webGPUSampleCounts,
	}
}

// Config returns the current configuration.
func (s *swapchain) Config() SwapchainConfig {
	return s.config
}

// Derive computes the configuration for the current framebuffer size without applying it.
func (s *swapchain) Derive(width, height int) (SwapchainConfig, error) {
	caps := s.device.Capabilities()
	format, ok := ChooseSurfaceFormat(caps.Formats)
	if !ok {
		return SwapchainConfig{}, ErrNoSurfaceFormat
	}
	cfg := SwapchainConfig{
		Format:      format,
		PresentMode: ChoosePresentMode(s.vsync, caps.PresentModes),
		Extent:      ChooseExtent(caps.Extent, width, height),
		SampleCount: ChooseSampleCount(s.maxSamples, s.sampleCheck),
	}
	if len(caps.AlphaModes) > 0 {
		cfg.AlphaMode = caps.AlphaModes[0]
	}
	return cfg, nil
}

// Rebuild reconfigures the surface for the current framebuffer size and recreates the
// attachments. While the framebuffer is 0x0 it blocks on window events, returning
// ErrWindowClosed if the window closes first. Pipelines and bind group layouts are not touched.
func (s *swapchain) Rebuild() error {
	w, h := s.fb.FramebufferSize()
	for w == 0 || h == 0 {
		if !s.fb.IsRunning() {
			return ErrWindowClosed
		}
		s.fb.WaitEvents()
		w, h = s.fb.FramebufferSize()
	}

	cfg, err := s.Derive(w, h)
	if err != nil {
		return err
	}

	s.device.WaitIdle()
	s.arena.Release()
	s.device.Configure(cfg)
	if err := s.device.CreateAttachments(cfg, s.arena); err != nil {
		return fmt.Errorf("failed to create swapchain attachments: %w", err)
	}

	s.config = cfg
	s.rebuilds++
	s.logger.Debug("swapchain rebuilt",
		zap.Uint32("width", cfg.Extent.Width),
		zap.Uint32("height", cfg.Extent.Height),
		zap.Uint32("samples", cfg.SampleCount),
		zap.Int("rebuilds", s.rebuilds),
	)
	return nil
}

// Release frees the attachments.
func (s *swapchain) Release() {
	s.arena.Release()
}
