package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// Lit pass bindings in group 0.
const (
	BindingSceneUniforms  = 0
	BindingDiffuseTexture = 1
	BindingDiffuseSampler = 2
	BindingShadowMap      = 3
	BindingShadowSampler  = 4
)

// Byte sizes of the per-object uniform blocks; they must match the WGSL structs.
const (
	ShadowUniformSize = 64
	SceneUniformSize  = 464
)

// ShadowBindings describes the shadow pass's group 0: the per-object light-space matrix.
func ShadowBindings() []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		uniformEntry(0, wgpu.ShaderStageVertex, ShadowUniformSize),
	}
}

// LitBindings describes the main pass's group 0: per-object uniforms, the diffuse texture and
// sampler, and the shadow map with its comparison sampler.
func LitBindings() []wgpu.BindGroupLayoutEntry {
	diffuse := wgpu.BindGroupLayoutEntry{Binding: BindingDiffuseTexture, Visibility: wgpu.ShaderStageFragment}
	diffuse.Texture.SampleType = wgpu.TextureSampleTypeFloat
	diffuse.Texture.ViewDimension = wgpu.TextureViewDimension2D

	diffuseSampler := wgpu.BindGroupLayoutEntry{Binding: BindingDiffuseSampler, Visibility: wgpu.ShaderStageFragment}
	diffuseSampler.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	shadowMap := wgpu.BindGroupLayoutEntry{Binding: BindingShadowMap, Visibility: wgpu.ShaderStageFragment}
	shadowMap.Texture.SampleType = wgpu.TextureSampleTypeDepth
	shadowMap.Texture.ViewDimension = wgpu.TextureViewDimension2D

	shadowSampler := wgpu.BindGroupLayoutEntry{Binding: BindingShadowSampler, Visibility: wgpu.ShaderStageFragment}
	shadowSampler.Sampler.Type = wgpu.SamplerBindingTypeComparison

	return []wgpu.BindGroupLayoutEntry{
		uniformEntry(BindingSceneUniforms, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, SceneUniformSize),
		diffuse,
		diffuseSampler,
		shadowMap,
		shadowSampler,
	}
}

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	e := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}
	e.Buffer.Type = wgpu.BufferBindingTypeUniform
	e.Buffer.MinBindingSize = size
	return e
}
