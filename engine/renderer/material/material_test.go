package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMaterialUsesWhiteTexel(t *testing.T) {
	m := NewMaterial()
	tex := m.Texture()
	require.Len(t, tex.Levels, 1)
	assert.Equal(t, []byte{255, 255, 255, 255}, tex.Levels[0].Pixels)
	assert.Equal(t, uint32(1), tex.MipLevelCount())
	assert.False(t, m.Initialized())
	m.Release()
}

func TestSamplerDefaults(t *testing.T) {
	tex := common.TextureStagingData{
		Width:  4,
		Height: 4,
		Levels: []common.TextureLevel{
			{Pixels: make([]byte, 64), Width: 4, Height: 4},
			{Pixels: make([]byte, 16), Width: 2, Height: 2},
			{Pixels: make([]byte, 4), Width: 1, Height: 1},
		},
	}
	m := NewMaterial(WithName("Diffuse"), WithTexture(tex), WithMaxAnisotropy(8))
	s := m.Sampler()
	assert.Equal(t, "Diffuse", m.Name())
	assert.Equal(t, wgpu.AddressModeRepeat, s.AddressModeU)
	assert.Equal(t, wgpu.MipmapFilterModeLinear, s.MipmapFilter)
	assert.Equal(t, uint16(8), s.MaxAnisotropy)
	assert.Equal(t, float32(3), s.LodMaxClamp)
}
