package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPlacement(t *testing.T) {
	l := NewDirectional()
	assert.True(t, l.Position().ApproxEqualThreshold(mgl32.Vec3{90, -80, 100}, 1e-4))
	assert.Equal(t, mgl32.Vec3{20, 20, 0}, l.Target())
	assert.InDelta(t, 1.0, l.Direction().Len(), 1e-5)

	// the direction points back toward the light
	toLight := l.Position().Sub(l.Target()).Normalize()
	assert.True(t, l.Direction().ApproxEqualThreshold(toLight, 1e-5))
}

func TestBiasFactor(t *testing.T) {
	assert.InDelta(t, 0.02, BiasFactor(1000, 4096), 1e-6)
	assert.InDelta(t, 0.01, BiasFactor(1000, 8192), 1e-6)
	assert.Zero(t, BiasFactor(1000, 0))
}

func TestComputeDepthRange(t *testing.T) {
	l := NewDirectional()
	p := l.Compute(ShadowMapResolution)
	assert.Equal(t, float32(ShadowMapResolution), p.Resolution)

	// the target sits on the light's axis: centre of the map, inside [0,1] depth
	c := p.LightSpace.Mul4x1(l.Target().Vec4(1))
	assert.InDelta(t, 0, c.X()/c.W(), 1e-4)
	assert.InDelta(t, 0, c.Y()/c.W(), 1e-4)
	assert.Greater(t, c.Z()/c.W(), float32(0))
	assert.Less(t, c.Z()/c.W(), float32(1))

	// points closer to the light have smaller depth
	nearer := l.Target().Add(l.Direction().Mul(50))
	n := p.LightSpace.Mul4x1(nearer.Vec4(1))
	assert.Less(t, n.Z()/n.W(), c.Z()/c.W())
}

func TestOptions(t *testing.T) {
	l := NewDirectional(WithRadius(10), WithShift(0, 0, 0), WithColor(1, 0, 0), WithShadowFrustum(5, 1, 50))
	assert.True(t, l.Position().ApproxEqualThreshold(mgl32.Vec3{7, -10, 10}, 1e-5))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, l.Color())
	assert.Equal(t, float32(50), l.Far())
}
