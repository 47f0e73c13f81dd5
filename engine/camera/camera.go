package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov      float32
	near     float32
	far      float32
	distance float32

	// rotation is the yaw around the look target in degrees.
	rotation float32

	eyeOffset    mgl32.Vec3
	targetOffset mgl32.Vec3
}

// View is the camera state for one frame.
type View struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Position   mgl32.Vec3
	Aspect     float32
}

// Camera is a scripted side-on camera orbiting a target that slides with the aspect ratio, so a
// wider window shows more of the level ahead of the player.
type Camera interface {
	// Fov returns the vertical field of view in degrees.
	Fov() float32

	Near() float32
	Far() float32

	// Rotation returns the current yaw in degrees.
	Rotation() float32

	// Update computes the view for a surface of the given aspect ratio, then settles the yaw for
	// that aspect ratio. The first call therefore uses the initial yaw.
	//
	// Parameters:
	//   - aspect: width / height of the swapchain
	//
	// Returns:
	//   - View: view and projection matrices (depth remapped to [0,1]) and the eye position
	Update(aspect float32) View
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with the default rig and any options applied.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:           &sync.Mutex{},
		up:           mgl32.Vec3{0, 0, 1},
		fov:          60,
		near:         0.1,
		far:          500,
		distance:     20,
		rotation:     15,
		eyeOffset:    mgl32.Vec3{0, 0, 13},
		targetOffset: mgl32.Vec3{0, 0, 11},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Rotation() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) Update(aspect float32) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if aspect <= 0 {
		aspect = 1
	}
	rad := float64(mgl32.DegToRad(c.rotation))
	shift := mgl32.Vec3{4 + 3*aspect, 0, 0}
	eye := mgl32.Vec3{
		float32(math.Sin(rad)) * c.distance,
		-float32(math.Cos(rad)) * c.distance,
		0,
	}.Add(c.eyeOffset).Add(shift)
	target := c.targetOffset.Add(shift)

	c.rotation = RotationForAspect(aspect)

	return View{
		View:       mgl32.LookAtV(eye, target, c.up),
		Projection: common.DepthRangeCorrection.Mul4(mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, c.near, c.far)),
		Position:   eye,
		Aspect:     aspect,
	}
}

// RotationForAspect returns the yaw the camera settles on for an aspect ratio.
//
// Parameters:
//   - aspect: width / height
//
// Returns:
//   - float32: -20 + 35/aspect degrees
func RotationForAspect(aspect float32) float32 {
	return -20 + 35/aspect
}
