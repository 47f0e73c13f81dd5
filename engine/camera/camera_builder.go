package camera

// CameraBuilderOption is a function that configures a camera during construction.
type CameraBuilderOption func(*cameraImpl)

// WithFov is an option builder that sets the vertical field of view.
//
// Parameters:
//   - degrees: the field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that applies the fov option
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = degrees
	}
}

// WithClip is an option builder that sets the near and far clipping planes.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the clip planes
func WithClip(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithDistance sets the orbit radius around the target.
func WithDistance(d float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.distance = d
	}
}

// WithRotation sets the initial yaw in degrees.
func WithRotation(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.rotation = degrees
	}
}
