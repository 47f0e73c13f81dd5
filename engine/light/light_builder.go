package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Directional light during construction.
type LightBuilderOption func(*directional)

// WithRadius is an option builder that sets the light's distance scale from its target.
//
// Parameters:
//   - r: the radius
//
// Returns:
//   - LightBuilderOption: a function that applies the radius option
func WithRadius(r float32) LightBuilderOption {
	return func(l *directional) {
		l.radius = r
	}
}

// WithShift is an option builder that sets the offset applied to both the light and its target.
//
// Parameters:
//   - x, y, z: the offset
//
// Returns:
//   - LightBuilderOption: a function that applies the shift option
func WithShift(x, y, z float32) LightBuilderOption {
	return func(l *directional) {
		l.shift = mgl32.Vec3{x, y, z}
	}
}

// WithShadowFrustum sets the orthographic half-extent and depth range of the shadow projection.
func WithShadowFrustum(halfExtent, near, far float32) LightBuilderOption {
	return func(l *directional) {
		l.halfExtent = halfExtent
		l.near = near
		l.far = far
	}
}

// WithColor sets the light color.
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *directional) {
		l.color = mgl32.Vec3{r, g, b}
	}
}
