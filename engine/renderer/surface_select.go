package renderer

import (
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// ExtentMatchWindow is the sentinel current extent meaning "size the swapchain to the window".
// A WebGPU surface always reports it since the surface size is whatever gets configured.
const ExtentMatchWindow = math.MaxUint32

// Extent is a 2D size in pixels.
type Extent struct {
	Width  uint32
	Height uint32
}

// Empty reports whether either dimension is zero.
func (e Extent) Empty() bool {
	return e.Width == 0 || e.Height == 0
}

// Aspect returns width / height, or 1 for an empty extent.
func (e Extent) Aspect() float32 {
	if e.Empty() {
		return 1
	}
	return float32(e.Width) / float32(e.Height)
}

// ExtentCaps bounds the sizes a surface can be configured to.
type ExtentCaps struct {
	Current Extent
	Min     Extent
	Max     Extent
}

// SwapchainConfig is the derived configuration of the presentation surface and its attachments.
type SwapchainConfig struct {
	Format      wgpu.TextureFormat
	PresentMode wgpu.PresentMode
	AlphaMode   wgpu.CompositeAlphaMode
	Extent      Extent
	SampleCount uint32
}

// ChooseSurfaceFormat picks the swapchain color format.
//
// Parameters:
//   - formats: the formats the surface supports, in the adapter's preference order
//
// Returns:
//   - wgpu.TextureFormat: BGRA8UnormSrgb when supported, else the first format
//   - bool: false when formats is empty
func ChooseSurfaceFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, bool) {
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined, false
	}
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb {
			return f, true
		}
	}
	return formats[0], true
}

// ChoosePresentMode picks how frames are handed to the display. Fifo is always available.
//
// Parameters:
//   - vsync: whether presentation should wait for vertical blank
//   - modes: the present modes the surface supports
//
// Returns:
//   - wgpu.PresentMode: Mailbox or Fifo with vsync, Immediate or Fifo without
func ChoosePresentMode(vsync bool, modes []wgpu.PresentMode) wgpu.PresentMode {
	want := wgpu.PresentModeImmediate
	if vsync {
		want = wgpu.PresentModeMailbox
	}
	for _, m := range modes {
		if m == want {
			return m
		}
	}
	return wgpu.PresentModeFifo
}

// ChooseExtent picks the swapchain size.
//
// Parameters:
//   - caps: the surface's size bounds
//   - fbWidth, fbHeight: the window's framebuffer size in pixels
//
// Returns:
//   - Extent: caps.Current unless it is the match-window sentinel, else the framebuffer size
//     clamped to [caps.Min, caps.Max]
func ChooseExtent(caps ExtentCaps, fbWidth, fbHeight int) Extent {
	if caps.Current.Width != ExtentMatchWindow {
		return caps.Current
	}
	return Extent{
		Width:  clampDim(fbWidth, caps.Min.Width, caps.Max.Width),
		Height: clampDim(fbHeight, caps.Min.Height, caps.Max.Height),
	}
}

func clampDim(v int, lo, hi uint32) uint32 {
	if v < 0 {
		v = 0
	}
	u := uint32(v)
	if u < lo {
		return lo
	}
	if u > hi {
		return hi
	}
	return u
}

// ChooseSampleCount picks the MSAA sample count for the main pass.
//
// Parameters:
//   - maxSamples: the configured cap
//   - supported: reports whether a count is usable for both the color and depth formats
//
// Returns:
//   - uint32: the highest of 8, 4 and 2 not above maxSamples that is supported, else 1
func ChooseSampleCount(maxSamples uint32, supported func(count uint32) bool) uint32 {
	for _, c := range []uint32{8, 4, 2} {
		if c <= maxSamples && supported(c) {
			return c
		}
	}
	return 1
}

// webGPUSampleCounts are the counts every WebGPU implementation accepts for render attachments.
func webGPUSampleCounts(count uint32) bool {
	return count == 1 || count == 4
}
