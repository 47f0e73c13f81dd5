package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderDefaults(t *testing.T) {
	p := NewBindGroupProvider()
	assert.Equal(t, "Unnamed Provider", p.Label())
	assert.Equal(t, 1, p.FrameCount())
	assert.False(t, p.Initialized())
}

func TestWithFrameCount(t *testing.T) {
	p := NewBindGroupProvider(WithLabel("bird scene"), WithFrameCount(2))
	assert.Equal(t, "bird scene", p.Label())
	assert.Equal(t, 2, p.FrameCount())

	p = NewBindGroupProvider(WithFrameCount(0))
	assert.Equal(t, 1, p.FrameCount())
}

func TestOutOfRangeFramesAreIgnored(t *testing.T) {
	p := NewBindGroupProvider(WithFrameCount(2))
	p.SetBuffer(5, nil)
	p.SetBindGroup(-1, nil)
	assert.Nil(t, p.Buffer(2))
	assert.Nil(t, p.BindGroup(-1))
}

func TestReleaseWithoutResources(t *testing.T) {
	p := NewBindGroupProvider(WithFrameCount(2))
	p.SetIndexCount(36)
	assert.NotPanics(t, p.Release)
	assert.NotPanics(t, p.Release)
	assert.Equal(t, 36, p.IndexCount())
}
