package model

import (
	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/bind_group_provider"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name         string
	vertices     []GPUVertex
	indices      []uint32
	meshProvider bind_group_provider.BindGroupProvider
}

// Mesh is immutable-after-load geometry shared by every game object that references it by name.
// The GPU vertex and index buffers live on the MeshProvider once the renderer has uploaded them.
type Mesh interface {
	// Name returns the key game objects use to reference this mesh.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Vertices returns the deduplicated vertex list.
	//
	// Returns:
	//   - []GPUVertex: the vertices in buffer order
	Vertices() []GPUVertex

	// Indices returns the triangle list indices into Vertices.
	//
	// Returns:
	//   - []uint32: three indices per triangle
	Indices() []uint32

	// VertexData returns the vertex buffer contents.
	//
	// Returns:
	//   - []byte: len(Vertices())*VertexStride bytes
	VertexData() []byte

	// IndexData returns the index buffer contents in host byte order. The slice aliases the mesh's
	// indices and must not be modified.
	//
	// Returns:
	//   - []byte: len(Indices())*4 bytes
	IndexData() []byte

	// IndexCount returns the number of indices drawn for this mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// MeshProvider returns the provider holding the GPU vertex and index buffers, or nil before upload.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider or nil
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider stores the provider holding the uploaded GPU buffers.
	//
	// Parameters:
	//   - p: the provider
	SetMeshProvider(p bind_group_provider.BindGroupProvider)

	// Release frees the GPU buffers, if any.
	Release()
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh with the provided options applied.
//
// Parameters:
//   - options: variadic list of MeshBuilderOption functions to configure the Mesh
//
// Returns:
//   - Mesh: the newly created Mesh
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{name: "Unnamed Model"}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Vertices() []GPUVertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) VertexData() []byte {
	buf := make([]byte, len(m.vertices)*VertexStride)
	for i := range m.vertices {
		m.vertices[i].Marshal(buf[i*VertexStride:])
	}
	return buf
}

func (m *mesh) IndexData() []byte {
	return common.SliceToBytes(m.indices)
}

func (m *mesh) IndexCount() int {
	return len(m.indices)
}

func (m *mesh) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *mesh) SetMeshProvider(p bind_group_provider.BindGroupProvider) {
	m.meshProvider = p
}

func (m *mesh) Release() {
	if m.meshProvider != nil {
		m.meshProvider.Release()
	}
}
