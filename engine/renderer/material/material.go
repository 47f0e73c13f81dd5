package material

import (
	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// material is the implementation of the Material interface.
type material struct {
	name    string
	texture common.TextureStagingData
	sampler common.SamplerStagingData

	// GPU resources, populated by the renderer.
	gpuTexture *wgpu.Texture
	view       *wgpu.TextureView
	gpuSampler *wgpu.Sampler
}

// Material is the diffuse texture and sampler shared by every object in the lit pass. Vertex
// colors carry the per-mesh tint, the texture adds detail on top.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Texture retrieves the staged pixel data, mip chain included.
	//
	// Returns:
	//   - common.TextureStagingData: the staged texture
	Texture() common.TextureStagingData

	// Sampler retrieves the sampler description.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler settings
	Sampler() common.SamplerStagingData

	// View returns the GPU texture view, or nil before upload.
	View() *wgpu.TextureView

	// GPUSampler returns the GPU sampler, or nil before upload.
	GPUSampler() *wgpu.Sampler

	// Initialized reports whether the GPU resources exist.
	Initialized() bool

	// SetGPUResources stores the uploaded texture, its view and the sampler.
	//
	// Parameters:
	//   - tex: the texture
	//   - view: a view of every mip level of tex
	//   - sampler: the sampler
	SetGPUResources(tex *wgpu.Texture, view *wgpu.TextureView, sampler *wgpu.Sampler)

	// Release frees the GPU resources. Safe to call more than once.
	Release()
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Without a texture the material uses a single white texel.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		name: "Unnamed Material",
		sampler: common.SamplerStagingData{
			AddressModeU:  wgpu.AddressModeRepeat,
			AddressModeV:  wgpu.AddressModeRepeat,
			AddressModeW:  wgpu.AddressModeRepeat,
			MagFilter:     wgpu.FilterModeLinear,
			MinFilter:     wgpu.FilterModeLinear,
			MipmapFilter:  wgpu.MipmapFilterModeLinear,
			MaxAnisotropy: 16,
		},
	}
	for _, opt := range options {
		opt(m)
	}
	if len(m.texture.Levels) == 0 {
		m.texture = WhiteTexel()
	}
	m.sampler.LodMaxClamp = float32(m.texture.MipLevelCount())
	return m
}

// WhiteTexel returns a 1x1 opaque white texture.
func WhiteTexel() common.TextureStagingData {
	return common.TextureStagingData{
		Width:  1,
		Height: 1,
		Levels: []common.TextureLevel{{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}},
	}
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Texture() common.TextureStagingData {
	return m.texture
}

func (m *material) Sampler() common.SamplerStagingData {
	return m.sampler
}

func (m *material) View() *wgpu.TextureView {
	return m.view
}

func (m *material) GPUSampler() *wgpu.Sampler {
	return m.gpuSampler
}

func (m *material) Initialized() bool {
	return m.view != nil && m.gpuSampler != nil
}

func (m *material) SetGPUResources(tex *wgpu.Texture, view *wgpu.TextureView, sampler *wgpu.Sampler) {
	m.gpuTexture = tex
	m.view = view
	m.gpuSampler = sampler
}

func (m *material) Release() {
	if m.gpuSampler != nil {
		m.gpuSampler.Release()
		m.gpuSampler = nil
	}
	if m.view != nil {
		m.view.Release()
		m.view = nil
	}
	if m.gpuTexture != nil {
		m.gpuTexture.Release()
		m.gpuTexture = nil
	}
}
