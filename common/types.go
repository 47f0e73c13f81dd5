package common

import "github.com/cogentcore/webgpu/wgpu"

// TextureStagingData holds decoded RGBA8 pixel data ready for upload.
// Levels holds the full mip chain with level 0 first; each level's Pixels are tightly packed rows.
type TextureStagingData struct {
	Levels []TextureLevel
	Width  uint32
	Height uint32
}

// TextureLevel is one mip level of a TextureStagingData.
type TextureLevel struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// SamplerStagingData describes a sampler. Zero fields fall back to the renderer defaults
// (repeat addressing, linear filtering, anisotropy 1).
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	Compare                                  wgpu.CompareFunction
	MaxAnisotropy                            uint16
}

// MipLevelCount returns the number of levels in the staged mip chain, at least 1.
func (t TextureStagingData) MipLevelCount() uint32 {
	return max(uint32(len(t.Levels)), 1)
}
