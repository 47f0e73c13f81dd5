package light

import "github.com/go-gl/mathgl/mgl32"

// ShadowMapResolution is the default width and height in texels of the shadow depth texture.
const ShadowMapResolution = 4096

// DefaultRadius is the light's distance scale from its target.
const DefaultRadius float32 = 100.0

// DefaultShift moves both the light and its target so the shadow frustum covers the stretch of
// level in front of the player.
var DefaultShift = mgl32.Vec3{20, 20, 0}

// DefaultShadowHalfExtent is the orthographic half-extent (in world units) of the shadow frustum.
const DefaultShadowHalfExtent float32 = 100.0

// DefaultShadowNear is the near plane for the orthographic shadow projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the far plane for the orthographic shadow projection.
const DefaultShadowFar float32 = 1000.0
