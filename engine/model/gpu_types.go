package model

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// VertexStride is the byte size of one GPUVertex in the vertex buffer.
const VertexStride = 44

// GPUVertex represents a single vertex as laid out in the vertex buffer.
// Fields are tightly packed float32 values matching VertexBufferLayout.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Color    [3]float32 // offset 12: material diffuse color (12 bytes)
	Normal   [3]float32 // offset 24: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 36: UV texture coordinate (8 bytes)
}

// Marshal writes the vertex into dst, which must hold at least VertexStride bytes.
func (g *GPUVertex) Marshal(dst []byte) {
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range g.Position {
		put(v)
	}
	for _, v := range g.Color {
		put(v)
	}
	for _, v := range g.Normal {
		put(v)
	}
	for _, v := range g.TexCoord {
		put(v)
	}
}

// VertexBufferLayout describes GPUVertex to the render pipelines.
// Shader locations: 0 position, 1 color, 2 normal, 3 texcoord.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 36, ShaderLocation: 3},
		},
	}
}
