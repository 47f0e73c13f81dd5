package light

import (
	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/go-gl/mathgl/mgl32"
)

// directional is the implementation of the Directional interface.
type directional struct {
	radius     float32
	shift      mgl32.Vec3
	halfExtent float32
	near       float32
	far        float32
	color      mgl32.Vec3
}

// ShadowParams is everything the shadow and main passes need from the light for one frame.
type ShadowParams struct {
	// LightSpace is projection * view of the light, already remapped to a [0,1] depth range.
	// Multiply by an object's model matrix to get its shadow-pass transform.
	LightSpace mgl32.Mat4
	// Direction points from the lit surface toward the light.
	Direction mgl32.Vec3
	// BiasFactor scales the depth comparison bias in the lit shader.
	BiasFactor float32
	// Resolution is the shadow map's edge length in texels.
	Resolution float32
}

// Directional is the single shadow-casting sun of the scene. Its orthographic shadow frustum is
// centred on a fixed point rather than following the camera.
type Directional interface {
	// Position returns the world-space eye point the shadow map is rendered from.
	//
	// Returns:
	//   - mgl32.Vec3: (0.7r, -r, r) + shift
	Position() mgl32.Vec3

	// Target returns the world-space point the light looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the shift vector
	Target() mgl32.Vec3

	// Direction returns the normalized vector from Target toward Position.
	//
	// Returns:
	//   - mgl32.Vec3: the direction to the light
	Direction() mgl32.Vec3

	// Color returns the light color.
	Color() mgl32.Vec3

	// Far returns the far plane of the shadow projection.
	Far() float32

	// Compute builds the per-frame shadow parameters for a shadow map of the given resolution.
	//
	// Parameters:
	//   - shadowMapResolution: the shadow map edge length in texels
	//
	// Returns:
	//   - ShadowParams: the light-space matrix, direction and bias
	Compute(shadowMapResolution uint32) ShadowParams
}

var _ Directional = &directional{}

// NewDirectional creates the scene light with the default placement and any options applied.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - Directional: the light
func NewDirectional(options ...LightBuilderOption) Directional {
	l := &directional{
		radius:     DefaultRadius,
		shift:      DefaultShift,
		halfExtent: DefaultShadowHalfExtent,
		near:       DefaultShadowNear,
		far:        DefaultShadowFar,
		color:      mgl32.Vec3{1, 1, 1},
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *directional) Position() mgl32.Vec3 {
	r := l.radius
	return mgl32.Vec3{0.7 * r, -r, r}.Add(l.shift)
}

func (l *directional) Target() mgl32.Vec3 {
	return l.shift
}

func (l *directional) Direction() mgl32.Vec3 {
	return l.Target().Sub(l.Position()).Normalize().Mul(-1)
}

func (l *directional) Color() mgl32.Vec3 {
	return l.color
}

func (l *directional) Far() float32 {
	return l.far
}

func (l *directional) Compute(shadowMapResolution uint32) ShadowParams {
	view := mgl32.LookAtV(l.Position(), l.Target(), mgl32.Vec3{0, 0, 1})
	h := l.halfExtent
	proj := common.DepthRangeCorrection.Mul4(mgl32.Ortho(-h, h, -h, h, l.near, l.far))
	return ShadowParams{
		LightSpace: proj.Mul4(view),
		Direction:  l.Direction(),
		BiasFactor: BiasFactor(l.far, shadowMapResolution),
		Resolution: float32(shadowMapResolution),
	}
}

// BiasFactor scales the shadow comparison bias so that it stays roughly constant in world units
// across shadow map resolutions. 8192 texels is the reference resolution.
//
// Parameters:
//   - far: the shadow projection's far plane
//   - resolution: the shadow map edge length in texels
//
// Returns:
//   - float32: 10 / far / (resolution / 8192)
func BiasFactor(far float32, resolution uint32) float32 {
	if resolution == 0 {
		return 0
	}
	return 10 / far / (float32(resolution) / 8192)
}
