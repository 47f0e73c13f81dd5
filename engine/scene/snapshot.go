package scene

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the render-relevant state of one object at the instant a snapshot was taken.
type Transform struct {
	ID       uint64
	MeshName string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// ModelMatrix returns the object-to-world matrix for this transform.
func (t Transform) ModelMatrix() mgl32.Mat4 {
	return common.ModelMatrix(t.Position, t.Rotation, t.Scale)
}

// Snapshot is an immutable copy of the world published after a simulation tick.
// Once published it is never written again; readers may hold it for as long as they like.
type Snapshot struct {
	// Tick counts simulation steps since start.
	Tick uint64
	// Time is the round's simulation time in seconds.
	Time float64
	// Phase is a printable name of the round phase.
	Phase     string
	Score     int
	BestScore int
	// Transforms holds one entry per live object, in scene order.
	Transforms []Transform
}

// snapshotContainer hands the latest snapshot from the simulation goroutine to the render loop.
type snapshotContainer struct {
	latest atomic.Pointer[Snapshot]
}

func (c *snapshotContainer) Update(s *Snapshot) {
	c.latest.Store(s)
}

func (c *snapshotContainer) Get() *Snapshot {
	return c.latest.Load()
}
