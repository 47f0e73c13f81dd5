package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/Carmen-Shannon/oxy-flap/engine/model"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// ClearColor is the sky color the main pass clears to.
var ClearColor = wgpu.Color{R: 0.63, G: 0.76, B: 1.0, A: 1.0}

// objectProviders are one object's uniform providers for both passes.
type objectProviders struct {
	shadow bind_group_provider.BindGroupProvider
	main   bind_group_provider.BindGroupProvider
}

// wgpuRendererBackendImpl owns the device, the surface and every GPU object of the frame graph.
// It implements frameBackend for the frame loop and swapchainDevice for the swapchain.
type wgpuRendererBackendImpl struct {
	mu     sync.Mutex
	logger *zap.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Size-dependent attachments, recreated by the swapchain.
	config    SwapchainConfig
	msaaView  *wgpu.TextureView
	depthView *wgpu.TextureView

	shadowPipeline pipeline.Pipeline
	litPipeline    pipeline.Pipeline

	// The shadow map does not depend on the window size and survives rebuilds.
	shadowResolution uint32
	shadowTexture    *wgpu.Texture
	shadowView       *wgpu.TextureView
	shadowSampler    *wgpu.Sampler
	shadowUsage      *usageTracker

	scene    scene.Scene
	sources  FrameSources
	material material.Material

	providers map[uint64]objectProviders

	// Per-frame state between Acquire and Present.
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	commands     *wgpu.CommandBuffer
}

var _ rendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter and device. The calling goroutine
// is locked to its OS thread. Any failure here is unrecoverable and panics.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, logger *zap.Logger) *wgpuRendererBackendImpl {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		logger:    logger,
		instance:  wgpu.CreateInstance(nil),
		providers: make(map[uint64]objectProviders),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(fmt.Sprintf("renderer: no adapter can present to the window surface: %v", err))
	}
	b.adapter = a

	limits := wgpu.DefaultLimits()
	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("renderer: failed to create device: %v", err))
	}
	b.device = d
	b.queue = d.GetQueue()

	logger.Info("device ready",
		zap.Bool("fallback_adapter", forceFallbackAdapter),
		zap.Uint32("max_texture_dimension", limits.MaxTextureDimension2D),
	)
	return b
}

// Poll implements frameBackend.
func (b *wgpuRendererBackendImpl) Poll() {
	b.device.Poll(false, nil)
}

// WaitIdle implements swapchainDevice.
func (b *wgpuRendererBackendImpl) WaitIdle() {
	b.device.Poll(true, nil)
}

// Capabilities implements swapchainDevice. A WebGPU surface takes whatever size it is configured
// with, so the current extent is always the match-window sentinel.
func (b *wgpuRendererBackendImpl) Capabilities() SurfaceCaps {
	caps := b.surface.GetCapabilities(b.adapter)
	maxDim := b.device.GetLimits().Limits.MaxTextureDimension2D
	return SurfaceCaps{
		Formats:      caps.Formats,
		PresentModes: caps.PresentModes,
		AlphaModes:   caps.AlphaModes,
		Extent: ExtentCaps{
			Current: Extent{Width: ExtentMatchWindow, Height: ExtentMatchWindow},
			Min:     Extent{Width: 1, Height: 1},
			Max:     Extent{Width: maxDim, Height: maxDim},
		},
	}
}

// Configure implements swapchainDevice.
func (b *wgpuRendererBackendImpl) Configure(cfg SwapchainConfig) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      cfg.Format,
		Width:       cfg.Extent.Width,
		Height:      cfg.Extent.Height,
		PresentMode: cfg.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
	b.config = cfg
}

// CreateAttachments implements swapchainDevice. The MSAA color target is only created when the
// sample count is above 1; the depth target always matches the color sample count.
func (b *wgpuRendererBackendImpl) CreateAttachments(cfg SwapchainConfig, arena *Arena) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := wgpu.Extent3D{
		Width:              cfg.Extent.Width,
		Height:             cfg.Extent.Height,
		DepthOrArrayLayers: 1,
	}

	b.msaaView = nil
	if cfg.SampleCount > 1 {
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   cfg.SampleCount,
			Dimension:     wgpu.TextureDimension2D,
			Format:        cfg.Format,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("failed to create msaa texture: %w", err)
		}
		arena.Track("msaa texture", msaaTexture)
		view, err := msaaTexture.CreateView(nil)
		if err != nil {
			return fmt.Errorf("failed to create msaa view: %w", err)
		}
		arena.Track("msaa view", view)
		b.msaaView = view
	}

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   cfg.SampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.SceneDepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	arena.Track("depth texture", depthTexture)
	view, err := depthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create depth view: %w", err)
	}
	arena.Track("depth view", view)
	b.depthView = view
	return nil
}

// Bind implements rendererBackend.
func (b *wgpuRendererBackendImpl) Bind(sc scene.Scene, sources FrameSources) {
	b.scene = sc
	b.sources = sources
}

// InitShadowMap creates the shadow depth texture, its view and the comparison sampler.
func (b *wgpuRendererBackendImpl) InitShadowMap(resolution uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Shadow Depth Texture",
		Size: wgpu.Extent3D{
			Width:              resolution,
			Height:             resolution,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.ShadowDepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create shadow depth texture view: %w", err)
	}
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("failed to create comparison sampler: %w", err)
	}

	b.shadowResolution = resolution
	b.shadowTexture = tex
	b.shadowView = view
	b.shadowSampler = samp
	b.shadowUsage = newUsageTracker("shadow map")
	return nil
}

// RegisterPipeline compiles p's shader and creates its bind group layout, pipeline layout and
// render pipeline.
func (b *wgpuRendererBackendImpl) RegisterPipeline(p pipeline.Pipeline, colorFormat wgpu.TextureFormat) error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("%s: failed to compile shader: %w", p.Key(), err)
	}
	defer module.Release()

	desc := p.BindGroupLayoutDescriptor()
	layout, err := b.device.CreateBindGroupLayout(&desc)
	if err != nil {
		return fmt.Errorf("%s: failed to create bind group layout: %w", p.Key(), err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.Key(),
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		layout.Release()
		return fmt.Errorf("%s: failed to create pipeline layout: %w", p.Key(), err)
	}
	defer pipelineLayout.Release()

	created, err := b.device.CreateRenderPipeline(p.Descriptor(module, pipelineLayout, colorFormat))
	if err != nil {
		layout.Release()
		return fmt.Errorf("%s: failed to create render pipeline: %w", p.Key(), err)
	}
	p.SetGPUResources(layout, created)

	switch p.Pass() {
	case pipeline.PassShadow:
		b.shadowPipeline = p
	case pipeline.PassLit:
		b.litPipeline = p
	}
	return nil
}

// InitMeshBuffers uploads a mesh's vertex and index data into a new mesh provider.
func (b *wgpuRendererBackendImpl) InitMeshBuffers(m model.Mesh) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	provider := bind_group_provider.NewBindGroupProvider(bind_group_provider.WithLabel(m.Name()))

	vertexData := m.VertexData()
	if len(vertexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, vertexData)
		provider.SetVertexBuffer(buf)
	}

	indexData := m.IndexData()
	if len(indexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			provider.Release()
			return err
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		provider.SetIndexBuffer(buf)
	}

	provider.SetIndexCount(m.IndexCount())
	m.SetMeshProvider(provider)
	return nil
}

// InitMaterial uploads a material's texture with every staged mip level and creates its sampler.
func (b *wgpuRendererBackendImpl) InitMaterial(mat material.Material) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	staging := mat.Texture()
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     mat.Name() + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: staging.MipLevelCount(),
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("failed to create texture for material %q: %w", mat.Name(), err)
	}

	for level, l := range staging.Levels {
		b.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  tex,
				MipLevel: uint32(level),
				Origin:   wgpu.Origin3D{},
				Aspect:   wgpu.TextureAspectAll,
			},
			l.Pixels,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  l.Width * 4,
				RowsPerImage: l.Height,
			},
			&wgpu.Extent3D{
				Width:              l.Width,
				Height:             l.Height,
				DepthOrArrayLayers: 1,
			},
		)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create view for material %q: %w", mat.Name(), err)
	}

	s := mat.Sampler()
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         mat.Name() + " Sampler",
		AddressModeU:  common.Coalesce(s.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(s.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(s.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(s.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(s.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(s.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(s.MaxAnisotropy, 1),
		Compare:       s.Compare,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("failed to create sampler for material %q: %w", mat.Name(), err)
	}

	mat.SetGPUResources(tex, view, samp)
	b.material = mat
	return nil
}

// InitUniforms creates one uniform buffer and one bind group per in-flight frame on provider.
// The buffer is bound at binding 0; extra holds the remaining, frame-independent entries.
func (b *wgpuRendererBackendImpl) InitUniforms(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, size uint64, extra []wgpu.BindGroupEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for frame := range provider.FrameCount() {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("%s Buffer %d", provider.Label(), frame),
			Size:  size,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		provider.SetBuffer(frame, buf)

		entries := make([]wgpu.BindGroupEntry, 0, 1+len(extra))
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: 0,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		})
		entries = append(entries, extra...)

		bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("%s Bind Group %d", provider.Label(), frame),
			Layout:  layout,
			Entries: entries,
		})
		if err != nil {
			return err
		}
		provider.SetBindGroup(frame, bindGroup)
	}
	return nil
}

// litExtraEntries are the main pass bindings shared by every object.
func (b *wgpuRendererBackendImpl) litExtraEntries() []wgpu.BindGroupEntry {
	return []wgpu.BindGroupEntry{
		{Binding: pipeline.BindingDiffuseTexture, TextureView: b.material.View()},
		{Binding: pipeline.BindingDiffuseSampler, Sampler: b.material.GPUSampler()},
		{Binding: pipeline.BindingShadowMap, TextureView: b.shadowView},
		{Binding: pipeline.BindingShadowSampler, Sampler: b.shadowSampler},
	}
}

// ensureProviders returns the uniform providers of object id, creating them on first use.
func (b *wgpuRendererBackendImpl) ensureProviders(id uint64) (objectProviders, bool) {
	if p, ok := b.providers[id]; ok {
		return p, true
	}
	obj, ok := b.scene.Object(id)
	if !ok {
		return objectProviders{}, false
	}

	p := objectProviders{
		shadow: bind_group_provider.NewBindGroupProvider(
			bind_group_provider.WithLabel(obj.Name()+" Shadow"),
			bind_group_provider.WithFrameCount(MaxFramesInFlight),
		),
		main: bind_group_provider.NewBindGroupProvider(
			bind_group_provider.WithLabel(obj.Name()+" Scene"),
			bind_group_provider.WithFrameCount(MaxFramesInFlight),
		),
	}
	if err := b.InitUniforms(p.shadow, b.shadowPipeline.BindGroupLayout(), ShadowUniformSize, nil); err != nil {
		b.logger.Error("failed to create shadow uniforms", zap.Uint64("object", id), zap.Error(err))
		p.shadow.Release()
		return objectProviders{}, false
	}
	if err := b.InitUniforms(p.main, b.litPipeline.BindGroupLayout(), SceneUniformSize, b.litExtraEntries()); err != nil {
		b.logger.Error("failed to create scene uniforms", zap.Uint64("object", id), zap.Error(err))
		p.shadow.Release()
		p.main.Release()
		return objectProviders{}, false
	}
	obj.SetUniformProviders(p.shadow, p.main)
	b.providers[id] = p
	return p, true
}

// Acquire implements frameBackend.
func (b *wgpuRendererBackendImpl) Acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return classifyAcquireError(err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

// Upload implements frameBackend.
func (b *wgpuRendererBackendImpl) Upload(frame int, snap *scene.Snapshot) {
	g := FrameGlobals{
		Camera:   b.sources.Camera.Update(b.config.Extent.Aspect()),
		Shadow:   b.sources.Light.Compute(b.shadowResolution),
		Specular: DefaultSpecular,
	}
	writes := buildUniformWrites(b.sources.Pool, frame, snap.Transforms, g, b.lookup)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, w := range writes {
		buf := w.Provider.Buffer(w.Frame)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

// InitObject implements rendererBackend.
func (b *wgpuRendererBackendImpl) InitObject(id uint64) error {
	if _, ok := b.ensureProviders(id); !ok {
		return fmt.Errorf("failed to create uniforms for object %d", id)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) lookup(id uint64) (bind_group_provider.BindGroupProvider, bind_group_provider.BindGroupProvider, bool) {
	p, ok := b.ensureProviders(id)
	return p.shadow, p.main, ok
}

// drawItem is one indexed draw: a mesh and the object's bind group for the pass.
type drawItem struct {
	mesh      bind_group_provider.BindGroupProvider
	bindGroup *wgpu.BindGroup
}

// drawList resolves every transform in snap to its mesh buffers and bind group for frame slot
// frame. Objects without a loaded mesh or uniforms are skipped.
func (b *wgpuRendererBackendImpl) drawList(frame int, snap *scene.Snapshot, pass pipeline.Pass) []drawItem {
	items := make([]drawItem, 0, len(snap.Transforms))
	for _, t := range snap.Transforms {
		m, ok := b.scene.Mesh(t.MeshName)
		if !ok || m.MeshProvider() == nil {
			continue
		}
		p, ok := b.providers[t.ID]
		if !ok {
			continue
		}
		provider := p.main
		if pass == pipeline.PassShadow {
			provider = p.shadow
		}
		bg := provider.BindGroup(frame)
		if bg == nil {
			continue
		}
		items = append(items, drawItem{mesh: m.MeshProvider(), bindGroup: bg})
	}
	return items
}

func encodeDraws(pass *wgpu.RenderPassEncoder, rp *wgpu.RenderPipeline, items []drawItem) {
	pass.SetPipeline(rp)
	for _, it := range items {
		pass.SetBindGroup(0, it.bindGroup, nil)
		pass.SetVertexBuffer(0, it.mesh.VertexBuffer(), 0, wgpu.WholeSize)
		pass.SetIndexBuffer(it.mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(it.mesh.IndexCount()), 1, 0, 0, 0)
	}
}

// Record implements frameBackend: the shadow pass, the shadow map transition, then the main pass,
// all in one command encoder.
func (b *wgpuRendererBackendImpl) Record(frame int, snap *scene.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameView == nil {
		return errors.New("no acquired surface image")
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	b.shadowUsage.Transition(UsageDepthAttachment)
	shadowPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.shadowView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	encodeDraws(shadowPass, b.shadowPipeline.RenderPipeline(), b.drawList(frame, snap, pipeline.PassShadow))
	shadowPass.End()
	shadowPass.Release()
	b.shadowUsage.Transition(UsageShaderRead)

	color := wgpu.RenderPassColorAttachment{
		View:       b.frameView,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: ClearColor,
	}
	if b.msaaView != nil {
		color.View = b.msaaView
		color.ResolveTarget = b.frameView
		color.StoreOp = wgpu.StoreOpDiscard
	}
	mainPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	encodeDraws(mainPass, b.litPipeline.RenderPipeline(), b.drawList(frame, snap, pipeline.PassLit))
	mainPass.End()
	mainPass.Release()

	commands, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.commands = commands
	return nil
}

// Submit implements frameBackend.
func (b *wgpuRendererBackendImpl) Submit(onDone func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.commands == nil {
		onDone()
		return
	}
	b.queue.Submit(b.commands)
	b.commands.Release()
	b.commands = nil
	b.queue.OnSubmittedWorkDone(func(wgpu.QueueWorkDoneStatus) {
		onDone()
	})
}

// Present implements frameBackend.
func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrame()
}

// Discard implements frameBackend.
func (b *wgpuRendererBackendImpl) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.commands != nil {
		b.commands.Release()
		b.commands = nil
	}
	b.releaseFrame()
}

func (b *wgpuRendererBackendImpl) releaseFrame() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

// Release frees everything the backend created, after the device has gone idle. Object uniform
// providers and mesh buffers are owned by the scene and released there.
func (b *wgpuRendererBackendImpl) Release() {
	b.WaitIdle()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrame()
	for _, p := range []pipeline.Pipeline{b.litPipeline, b.shadowPipeline} {
		if p != nil {
			p.Release()
		}
	}
	if b.material != nil {
		b.material.Release()
	}
	if b.shadowSampler != nil {
		b.shadowSampler.Release()
	}
	if b.shadowView != nil {
		b.shadowView.Release()
	}
	if b.shadowTexture != nil {
		b.shadowTexture.Release()
	}
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
