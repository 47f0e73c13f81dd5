package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFirstUpdateUsesInitialRotation(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, float32(15), c.Rotation())

	v := c.Update(2)
	rad := float64(mgl32.DegToRad(15))
	want := mgl32.Vec3{float32(math.Sin(rad)) * 20, -float32(math.Cos(rad)) * 20, 0}.
		Add(mgl32.Vec3{0, 0, 13}).
		Add(mgl32.Vec3{10, 0, 0})
	assert.True(t, v.Position.ApproxEqualThreshold(want, 1e-4))
	assert.InDelta(t, -2.5, c.Rotation(), 1e-5)
}

func TestRotationForAspect(t *testing.T) {
	assert.InDelta(t, 15, RotationForAspect(1), 1e-6)
	assert.InDelta(t, -20+35/(16.0/9.0), RotationForAspect(16.0/9.0), 1e-5)
}

func TestUpdateLooksAtTarget(t *testing.T) {
	c := NewCamera()
	v := c.Update(4.0 / 3.0)

	target := mgl32.Vec3{4 + 3*(4.0/3.0), 0, 11}
	p := v.View.Mul4x1(target.Vec4(1))
	// view space looks down -Z
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.Less(t, p.Z(), float32(0))

	clip := v.Projection.Mul4x1(p)
	depth := clip.Z() / clip.W()
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))
}

func TestUpdateZeroAspect(t *testing.T) {
	c := NewCamera()
	v := c.Update(0)
	assert.Equal(t, float32(1), v.Aspect)
}

func TestOptions(t *testing.T) {
	c := NewCamera(WithFov(45), WithClip(1, 100), WithDistance(5), WithRotation(0))
	assert.Equal(t, float32(45), c.Fov())
	assert.Equal(t, float32(1), c.Near())
	assert.Equal(t, float32(100), c.Far())

	v := c.Update(1)
	assert.True(t, v.Position.ApproxEqualThreshold(mgl32.Vec3{7, -5, 13}, 1e-5))
}
