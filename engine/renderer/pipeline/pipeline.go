package pipeline

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-flap/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/shadow.wgsl
var shadowSource string

//go:embed shaders/lit.wgsl
var litSource string

// Pass identifies which pass of the frame a pipeline renders.
type Pass int

const (
	// PassShadow is the depth-only pass rendered from the light.
	PassShadow Pass = iota

	// PassLit is the multisampled main pass rendered from the camera.
	PassLit
)

const (
	// ShadowKey is the pipeline key of the shadow pass pipeline.
	ShadowKey = "shadow"

	// LitKey is the pipeline key of the main pass pipeline.
	LitKey = "lit"

	// ShadowDepthFormat is the shadow map's texture format.
	ShadowDepthFormat = wgpu.TextureFormatDepth32Float

	// SceneDepthFormat is the main pass depth attachment's texture format.
	SceneDepthFormat = wgpu.TextureFormatDepth24Plus
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	key  string
	pass Pass

	source         string
	vertexEntry    string
	fragmentEntry  string
	vertexLayouts  []wgpu.VertexBufferLayout
	layoutEntries  []wgpu.BindGroupLayoutEntry
	colorFormat    wgpu.TextureFormat
	depthFormat    wgpu.TextureFormat
	sampleCount    uint32
	cullMode       wgpu.CullMode
	frontFace      wgpu.FrontFace
	topology       wgpu.PrimitiveTopology
	depthCompare   wgpu.CompareFunction
	depthWrite     bool
	depthBias      int32
	depthBiasSlope float32

	// GPU resources, populated by the renderer.
	bindGroupLayout *wgpu.BindGroupLayout
	renderPipeline  *wgpu.RenderPipeline
}

// Pipeline is the fixed state of one of the frame's two render pipelines: shader source, vertex
// and bind group layouts, rasterizer and depth state. The renderer turns it into GPU objects once
// at startup; swapchain rebuilds leave it untouched.
type Pipeline interface {
	// Key returns the unique pipeline key.
	//
	// Returns:
	//   - string: the key
	Key() string

	// Pass returns which pass this pipeline renders.
	Pass() Pass

	// Source returns the WGSL module source.
	Source() string

	// VertexEntryPoint returns the vertex stage entry point.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment stage entry point, or "" for depth-only pipelines.
	FragmentEntryPoint() string

	// SampleCount returns the multisample count of the pass's attachments.
	SampleCount() uint32

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// FrontFace returns the winding treated as front-facing.
	FrontFace() wgpu.FrontFace

	// DepthFormat returns the depth attachment format.
	DepthFormat() wgpu.TextureFormat

	// BindGroupLayoutDescriptor describes the pipeline's single bind group (group 0).
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
	BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor

	// Descriptor builds the render pipeline descriptor from compiled GPU objects.
	//
	// Parameters:
	//   - module: the compiled shader module for Source
	//   - layout: the pipeline layout wrapping BindGroupLayout
	//   - colorFormat: the swapchain format; ignored by depth-only pipelines
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor to pass to CreateRenderPipeline
	Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, colorFormat wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor

	// BindGroupLayout returns the created bind group layout, or nil before registration.
	BindGroupLayout() *wgpu.BindGroupLayout

	// RenderPipeline returns the created render pipeline, or nil before registration.
	RenderPipeline() *wgpu.RenderPipeline

	// SetGPUResources stores the created layout and pipeline.
	SetGPUResources(layout *wgpu.BindGroupLayout, rp *wgpu.RenderPipeline)

	// Release frees the GPU resources. Safe to call more than once.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline with triangle-list, CCW, back-culled, depth-less-and-write
// defaults and the provided options applied.
//
// Parameters:
//   - key: the unique key for this pipeline
//   - pass: the pass the pipeline renders
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: the new pipeline
func NewPipeline(key string, pass Pass, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:          key,
		pass:         pass,
		vertexEntry:  "vs_main",
		sampleCount:  1,
		cullMode:     wgpu.CullModeBack,
		frontFace:    wgpu.FrontFaceCCW,
		topology:     wgpu.PrimitiveTopologyTriangleList,
		depthCompare: wgpu.CompareFunctionLess,
		depthWrite:   true,
		depthFormat:  SceneDepthFormat,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewShadowPipeline creates the depth-only pipeline rendering the shadow map. Only the position
// attribute is fetched and a slope-scaled bias is applied against acne.
//
// Returns:
//   - Pipeline: the shadow pipeline
func NewShadowPipeline() Pipeline {
	full := model.VertexBufferLayout()
	positionOnly := wgpu.VertexBufferLayout{
		ArrayStride: full.ArrayStride,
		StepMode:    full.StepMode,
		Attributes:  full.Attributes[:1],
	}
	return NewPipeline(ShadowKey, PassShadow,
		WithSource(shadowSource, "vs_main", ""),
		WithVertexLayouts(positionOnly),
		WithBindings(ShadowBindings()...),
		WithDepthFormat(ShadowDepthFormat),
		WithDepthBias(2, 2.0),
	)
}

// NewLitPipeline creates the main pass pipeline.
//
// Parameters:
//   - sampleCount: the MSAA sample count of the main pass attachments
//
// Returns:
//   - Pipeline: the lit pipeline
func NewLitPipeline(sampleCount uint32) Pipeline {
	return NewPipeline(LitKey, PassLit,
		WithSource(litSource, "vs_main", "fs_main"),
		WithVertexLayouts(model.VertexBufferLayout()),
		WithBindings(LitBindings()...),
		WithSampleCount(sampleCount),
	)
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Pass() Pass {
	return p.pass
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntry
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntry
}

func (p *pipeline) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   p.key + " Bind Group Layout",
		Entries: p.layoutEntries,
	}
}

func (p *pipeline) Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, colorFormat wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	desc := &wgpu.RenderPipelineDescriptor{
		Label:  p.key + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.vertexEntry,
			Buffers:    p.vertexLayouts,
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: p.sampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              p.depthFormat,
			DepthWriteEnabled:   p.depthWrite,
			DepthCompare:        p.depthCompare,
			DepthBias:           p.depthBias,
			DepthBiasSlopeScale: p.depthBiasSlope,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	}
	if p.fragmentEntry != "" {
		desc.Fragment = &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.fragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    colorFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		}
	}
	return desc
}

func (p *pipeline) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetGPUResources(layout *wgpu.BindGroupLayout, rp *wgpu.RenderPipeline) {
	p.bindGroupLayout = layout
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
}
