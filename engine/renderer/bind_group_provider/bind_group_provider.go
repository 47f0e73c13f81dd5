package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// frameCount is the number of in-flight frames this provider holds uniform resources for.
	frameCount int

	// The following fields are GPU allocated resources and must be released when no longer needed.
	// They are populated by the Renderer during initialization, not by user-creation.

	// bindGroups holds one bind group per in-flight frame.
	bindGroups []*wgpu.BindGroup
	// buffers holds one uniform buffer per in-flight frame.
	buffers []*wgpu.Buffer

	// vertexBuffer is the GPU vertex buffer for mesh providers, or nil if not initialized with the Renderer.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer for mesh providers, or nil if not initialized with the Renderer.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices for draw calls.
	indexCount int
}

// BindGroupProvider defines the GPU resources a component needs for drawing.
// A per-object provider holds one uniform buffer and one bind group for every in-flight frame,
// so frame i's buffer is never written while the GPU may still read frame i-1's.
// A mesh provider holds the vertex and index buffers shared by every object using that mesh.
//
// Usage pattern:
//  1. Component creates a BindGroupProvider with a label and frame count
//  2. Renderer.InitUniforms(provider, layout, size) creates the per-frame buffers and bind groups
//  3. Renderer.WriteBuffers writes a frame's uniform bytes once the frame's fence has signaled
//  4. The frame recorder binds BindGroup(frame) for the draw
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider. It is safe to call more than once.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// FrameCount returns the number of in-flight frames this provider holds resources for.
	//
	// Returns:
	//   - int: the frame count
	FrameCount() int

	// BindGroup returns the bind group for the given in-flight frame, or nil if not initialized.
	//
	// Parameters:
	//   - frame: the in-flight frame index
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup(frame int) *wgpu.BindGroup

	// Buffer returns the uniform buffer for the given in-flight frame, or nil if not initialized.
	//
	// Parameters:
	//   - frame: the in-flight frame index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(frame int) *wgpu.Buffer

	// Initialized reports whether every frame has both a buffer and a bind group.
	Initialized() bool

	VertexBuffer() *wgpu.Buffer
	IndexBuffer() *wgpu.Buffer
	IndexCount() int

	// SetBindGroup stores the bind group for a frame. Out of range frames are ignored.
	SetBindGroup(frame int, bg *wgpu.BindGroup)

	// SetBuffer stores the uniform buffer for a frame. Out of range frames are ignored.
	SetBuffer(frame int, buf *wgpu.Buffer)

	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider. The frame count defaults to 1.
//
// Parameters:
//   - options: functional options for the provider
//
// Returns:
//   - BindGroupProvider: the new provider with no GPU resources attached
func NewBindGroupProvider(options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:      "Unnamed Provider",
		frameCount: 1,
	}
	for _, opt := range options {
		opt(p)
	}
	p.bindGroups = make([]*wgpu.BindGroup, p.frameCount)
	p.buffers = make([]*wgpu.Buffer, p.frameCount)
	return p
}

func (p *bindGroupProvider) Release() {
	for i, bg := range p.bindGroups {
		if bg != nil {
			bg.Release()
			p.bindGroups[i] = nil
		}
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
			p.buffers[i] = nil
		}
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) FrameCount() int {
	return p.frameCount
}

func (p *bindGroupProvider) BindGroup(frame int) *wgpu.BindGroup {
	if frame < 0 || frame >= len(p.bindGroups) {
		return nil
	}
	return p.bindGroups[frame]
}

func (p *bindGroupProvider) Buffer(frame int) *wgpu.Buffer {
	if frame < 0 || frame >= len(p.buffers) {
		return nil
	}
	return p.buffers[frame]
}

func (p *bindGroupProvider) Initialized() bool {
	for i := range p.frameCount {
		if p.bindGroups[i] == nil || p.buffers[i] == nil {
			return false
		}
	}
	return true
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(frame int, bg *wgpu.BindGroup) {
	if frame < 0 || frame >= len(p.bindGroups) {
		return
	}
	p.bindGroups[frame] = bg
}

func (p *bindGroupProvider) SetBuffer(frame int, buf *wgpu.Buffer) {
	if frame < 0 || frame >= len(p.buffers) {
		return
	}
	p.buffers[frame] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}
