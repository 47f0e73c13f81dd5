package game_object

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	g := NewGameObject()
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, g.Scale())
	assert.False(t, g.IsBad())
	assert.False(t, g.IsScored())
	assert.Nil(t, g.ShadowUniforms())
	assert.Nil(t, g.SceneUniforms())
}

func TestIntegrateOrder(t *testing.T) {
	g := NewGameObject(
		WithPosition(0, 0, 10),
		WithVelocity(1, 0, 0),
		WithAcceleration(0, 0, -0.5),
		WithRotationSpeed(0, 0, 2),
	)
	g.Integrate()
	// velocity is updated before position
	assert.Equal(t, mgl32.Vec3{1, 0, -0.5}, g.Velocity())
	assert.Equal(t, mgl32.Vec3{1, 0, 9.5}, g.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, g.Rotation())
}

func TestClone(t *testing.T) {
	template := NewGameObject(
		WithName("Pair of Tubes"),
		WithMesh("Tubes Model"),
		WithBad(true),
		WithVelocity(-0.015, 0, 0),
		WithScale(1.5, 1.5, 1.2),
	)
	c := Clone(template, WithPosition(30, 0, 8))
	assert.Equal(t, "Tubes Model", c.MeshName())
	assert.True(t, c.IsBad())
	assert.Equal(t, mgl32.Vec3{1.5, 1.5, 1.2}, c.Scale())
	assert.Equal(t, mgl32.Vec3{30, 0, 8}, c.Position())

	c.SetScale(mgl32.Vec3{1, 1, 1})
	assert.Equal(t, mgl32.Vec3{1.5, 1.5, 1.2}, template.Scale())
}

func TestModelMatrix(t *testing.T) {
	g := NewGameObject(WithPosition(1, 2, 3))
	p := g.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, p)
}
