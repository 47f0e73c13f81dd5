package renderer

import (
	"github.com/Carmen-Shannon/oxy-flap/engine/model"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// MSAASampleCount caps the multisample count of the main pass. The swapchain picks the highest
// supported count not above the cap.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x allows 8x multisample anti-aliasing where the adapter supports it.
	MSAA8x MSAASampleCount = 8
)

// rendererBackend is everything the Renderer needs from a GPU API: the frame loop's per-frame
// steps, the swapchain's device side, and one-time resource setup.
type rendererBackend interface {
	frameBackend
	swapchainDevice

	// Bind attaches the scene and the per-frame state sources to the backend.
	Bind(sc scene.Scene, frame FrameSources)

	InitShadowMap(resolution uint32) error
	RegisterPipeline(p pipeline.Pipeline, colorFormat wgpu.TextureFormat) error
	InitMeshBuffers(m model.Mesh) error
	InitMaterial(mat material.Material) error

	// InitObject creates the object's uniform buffers and bind groups for every in-flight frame.
	InitObject(id uint64) error

	Release()
}
