package game_object

import "github.com/go-gl/mathgl/mgl32"

// GameObjectBuilderOption is a functional option for configuring a GameObject via NewGameObject.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the debug name of the GameObject.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithMesh sets the name of the mesh the GameObject is drawn with.
//
// Parameters:
//   - meshName: the key of a mesh registered on the scene
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the mesh name
func WithMesh(meshName string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.meshName = meshName
	}
}

// WithBad marks the GameObject as an obstacle.
//
// Parameters:
//   - bad: true for obstacles
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the flag
func WithBad(bad bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.bad = bad
	}
}

// WithPosition sets the initial world position.
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = mgl32.Vec3{x, y, z}
	}
}

// WithVelocity sets the initial per-tick velocity.
func WithVelocity(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.velocity = mgl32.Vec3{x, y, z}
	}
}

// WithAcceleration sets the constant per-tick acceleration.
func WithAcceleration(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.acceleration = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial rotation in degrees.
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = mgl32.Vec3{rx, ry, rz}
	}
}

// WithRotationSpeed sets the per-tick rotation increment in degrees.
func WithRotationSpeed(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotationSpeed = mgl32.Vec3{rx, ry, rz}
	}
}

// WithScale sets the per-axis scale.
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = mgl32.Vec3{sx, sy, sz}
	}
}
