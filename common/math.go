package common

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// DepthRangeCorrection remaps OpenGL-style clip space depth [-w, w] onto the [0, w] range WebGPU
// expects. It is applied on the left of every projection built with mgl32.
var DepthRangeCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// ModelMatrix builds the object-to-world matrix translate * rotZ * rotX * rotY * scale.
// Rotation angles are in degrees.
//
// Parameters:
//   - position: world-space translation
//   - rotation: per-axis rotation in degrees
//   - scale: per-axis scale
//
// Returns:
//   - mgl32.Mat4: the composed model matrix
func ModelMatrix(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(position[0], position[1], position[2])
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rotation[2])))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rotation[0])))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rotation[1])))
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// InverseTranspose returns transpose(inverse(m)), the matrix that carries normals through m.
// A singular matrix yields the zero matrix, matching mgl32's Inv.
func InverseTranspose(m mgl32.Mat4) mgl32.Mat4 {
	return m.Inv().Transpose()
}

// PutMat4 writes m into dst as 16 little-endian float32 values in column-major order.
//
// Parameters:
//   - dst: destination buffer (must be at least 64 bytes)
//   - m: the matrix to write
//
// Returns:
//   - int: the number of bytes written (always 64)
func PutMat4(dst []byte, m mgl32.Mat4) int {
	for i, v := range m {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
	return 64
}

// PutVec3 writes v into dst as a WGSL vec3<f32> padded to 16 bytes.
//
// Parameters:
//   - dst: destination buffer (must be at least 16 bytes)
//   - v: the vector to write
//
// Returns:
//   - int: the number of bytes consumed including padding (always 16)
func PutVec3(dst []byte, v mgl32.Vec3) int {
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(dst[8:], math.Float32bits(v[2]))
	binary.LittleEndian.PutUint32(dst[12:], 0)
	return 16
}
