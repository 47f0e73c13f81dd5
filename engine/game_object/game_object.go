package game_object

import (
	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// gameObject is the implementation of the GameObject interface.
// Kinematic state and flags are written by a single owner (the physics simulator); the renderer
// works from published snapshots and only touches the uniform providers.
type gameObject struct {
	id       uint64
	name     string
	meshName string
	bad      bool
	scored   bool

	position      mgl32.Vec3
	velocity      mgl32.Vec3
	acceleration  mgl32.Vec3
	rotation      mgl32.Vec3
	rotationSpeed mgl32.Vec3
	scale         mgl32.Vec3

	shadowUniforms bind_group_provider.BindGroupProvider
	sceneUniforms  bind_group_provider.BindGroupProvider
}

// GameObject defines a scene entity: identity flags, kinematic state, the name of the mesh it
// draws with and the per-frame uniform providers for the shadow and main passes.
type GameObject interface {
	// ID retrieves the unique identifier assigned by the scene.
	//
	// Returns:
	//   - uint64: the object's ID
	ID() uint64

	// Name retrieves the debug name of the object.
	//
	// Returns:
	//   - string: the name
	Name() string

	// MeshName retrieves the name of the mesh this object is drawn with.
	//
	// Returns:
	//   - string: the mesh name
	MeshName() string

	// IsBad reports whether the object is an obstacle.
	IsBad() bool

	// IsScored reports whether the obstacle has already been counted this pass.
	IsScored() bool

	Position() mgl32.Vec3
	Velocity() mgl32.Vec3
	Acceleration() mgl32.Vec3

	// Rotation retrieves the per-axis rotation in degrees.
	Rotation() mgl32.Vec3

	// RotationSpeed retrieves the per-tick rotation increment in degrees.
	RotationSpeed() mgl32.Vec3

	Scale() mgl32.Vec3

	// Integrate advances the object by one tick: rotation += rotationSpeed,
	// velocity += acceleration, position += velocity.
	Integrate()

	// ModelMatrix returns the object-to-world matrix for the current state.
	//
	// Returns:
	//   - mgl32.Mat4: translate * rotZ * rotX * rotY * scale
	ModelMatrix() mgl32.Mat4

	// ShadowUniforms retrieves the per-frame uniform provider for the shadow pass, or nil.
	ShadowUniforms() bind_group_provider.BindGroupProvider

	// SceneUniforms retrieves the per-frame uniform provider for the main pass, or nil.
	SceneUniforms() bind_group_provider.BindGroupProvider

	SetID(id uint64)
	SetScored(scored bool)
	SetPosition(p mgl32.Vec3)
	SetVelocity(v mgl32.Vec3)
	SetAcceleration(a mgl32.Vec3)
	SetRotation(r mgl32.Vec3)
	SetRotationSpeed(r mgl32.Vec3)
	SetScale(s mgl32.Vec3)

	// SetUniformProviders stores the shadow and main pass providers created by the renderer.
	//
	// Parameters:
	//   - shadow: the shadow pass provider
	//   - scene: the main pass provider
	SetUniformProviders(shadow, scene bind_group_provider.BindGroupProvider)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with unit scale and the provided options applied.
//
// Parameters:
//   - options: variadic list of GameObjectBuilderOption functions to configure the object
//
// Returns:
//   - GameObject: the newly created GameObject
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		name:     "Unnamed Object",
		meshName: "Unnamed Model",
		scale:    mgl32.Vec3{1, 1, 1},
	}
	for _, option := range options {
		option(obj)
	}
	return obj
}

// Clone returns a copy of src with the given options applied on top, used to stamp obstacles out
// of a template. Uniform providers are not copied.
//
// Parameters:
//   - src: the template object
//   - options: overrides applied to the copy
//
// Returns:
//   - GameObject: the new object
func Clone(src GameObject, options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		name:          src.Name(),
		meshName:      src.MeshName(),
		bad:           src.IsBad(),
		scored:        src.IsScored(),
		position:      src.Position(),
		velocity:      src.Velocity(),
		acceleration:  src.Acceleration(),
		rotation:      src.Rotation(),
		rotationSpeed: src.RotationSpeed(),
		scale:         src.Scale(),
	}
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) MeshName() string {
	return g.meshName
}

func (g *gameObject) IsBad() bool {
	return g.bad
}

func (g *gameObject) IsScored() bool {
	return g.scored
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.position
}

func (g *gameObject) Velocity() mgl32.Vec3 {
	return g.velocity
}

func (g *gameObject) Acceleration() mgl32.Vec3 {
	return g.acceleration
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	return g.rotation
}

func (g *gameObject) RotationSpeed() mgl32.Vec3 {
	return g.rotationSpeed
}

func (g *gameObject) Scale() mgl32.Vec3 {
	return g.scale
}

func (g *gameObject) Integrate() {
	g.rotation = g.rotation.Add(g.rotationSpeed)
	g.velocity = g.velocity.Add(g.acceleration)
	g.position = g.position.Add(g.velocity)
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	return common.ModelMatrix(g.position, g.rotation, g.scale)
}

func (g *gameObject) ShadowUniforms() bind_group_provider.BindGroupProvider {
	return g.shadowUniforms
}

func (g *gameObject) SceneUniforms() bind_group_provider.BindGroupProvider {
	return g.sceneUniforms
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetScored(scored bool) {
	g.scored = scored
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.position = p
}

func (g *gameObject) SetVelocity(v mgl32.Vec3) {
	g.velocity = v
}

func (g *gameObject) SetAcceleration(a mgl32.Vec3) {
	g.acceleration = a
}

func (g *gameObject) SetRotation(r mgl32.Vec3) {
	g.rotation = r
}

func (g *gameObject) SetRotationSpeed(r mgl32.Vec3) {
	g.rotationSpeed = r
}

func (g *gameObject) SetScale(s mgl32.Vec3) {
	g.scale = s
}

func (g *gameObject) SetUniformProviders(shadow, scene bind_group_provider.BindGroupProvider) {
	g.shadowUniforms = shadow
	g.sceneUniforms = scene
}
