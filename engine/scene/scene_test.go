package scene

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-flap/engine/game_object"
	"github.com/Carmen-Shannon/oxy-flap/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T) Scene {
	t.Helper()
	s := NewScene(WithName("test"))
	require.NoError(t, s.AddMesh(model.NewMesh(model.WithName("Tubes Model"))))
	require.NoError(t, s.AddMesh(model.NewMesh(model.WithName("Flappy Bird Model"))))
	return s
}

func TestAddMeshDuplicate(t *testing.T) {
	s := newTestScene(t)
	err := s.AddMesh(model.NewMesh(model.WithName("Tubes Model")))
	assert.ErrorIs(t, err, ErrDuplicateMesh)

	meshes := s.Meshes()
	require.Len(t, meshes, 2)
	assert.Equal(t, "Flappy Bird Model", meshes[0].Name())
	assert.Equal(t, "Tubes Model", meshes[1].Name())
}

func TestSpawnUnknownMesh(t *testing.T) {
	s := newTestScene(t)
	_, err := s.Spawn(game_object.NewGameObject(game_object.WithMesh("Missing")))
	assert.ErrorIs(t, err, ErrUnknownMesh)
}

func TestSpawnIsDeferredUntilApply(t *testing.T) {
	s := newTestScene(t)
	id, err := s.Spawn(game_object.NewGameObject(game_object.WithMesh("Tubes Model")))
	require.NoError(t, err)
	assert.NotZero(t, id)

	assert.Empty(t, s.Objects())
	_, ok := s.Object(id)
	assert.False(t, ok)

	spawned, despawned := s.ApplyQueues()
	assert.Equal(t, 1, spawned)
	assert.Equal(t, 0, despawned)

	obj, ok := s.Object(id)
	require.True(t, ok)
	assert.Equal(t, id, obj.ID())
}

func TestDespawn(t *testing.T) {
	s := newTestScene(t)
	a, _ := s.Spawn(game_object.NewGameObject(game_object.WithMesh("Tubes Model")))
	b, _ := s.Spawn(game_object.NewGameObject(game_object.WithMesh("Tubes Model")))
	s.ApplyQueues()

	s.Despawn(a)
	s.Despawn(999)
	_, despawned := s.ApplyQueues()
	assert.Equal(t, 1, despawned)

	objs := s.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, b, objs[0].ID())
}

func TestCaptureCopiesTransforms(t *testing.T) {
	s := newTestScene(t)
	bird := game_object.NewGameObject(
		game_object.WithMesh("Flappy Bird Model"),
		game_object.WithPosition(0, 0, 10),
		game_object.WithRotation(0, 0, 90),
	)
	id, _ := s.Spawn(bird)
	s.ApplyQueues()

	snap := s.Capture(7, 0.5)
	bird.SetPosition(mgl32.Vec3{0, 0, 1})

	assert.Equal(t, uint64(7), snap.Tick)
	require.Len(t, snap.Transforms, 1)
	assert.Equal(t, id, snap.Transforms[0].ID)
	assert.Equal(t, "Flappy Bird Model", snap.Transforms[0].MeshName)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, snap.Transforms[0].Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, snap.Transforms[0].Scale)
}

func TestPublishSnapshot(t *testing.T) {
	s := newTestScene(t)
	assert.Nil(t, s.Snapshot())

	first := &Snapshot{Tick: 1}
	s.Publish(first)
	assert.Same(t, first, s.Snapshot())

	second := &Snapshot{Tick: 2}
	s.Publish(second)
	assert.Same(t, second, s.Snapshot())
}

// Readers must always observe a snapshot whose fields were written together.
func TestSnapshotConcurrentReaders(t *testing.T) {
	s := newTestScene(t)
	const ticks = 2000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint64(1); i <= ticks; i++ {
			snap := &Snapshot{Tick: i, Score: int(i), Transforms: []Transform{{ID: i}}}
			s.Publish(snap)
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var last uint64
			for i := 0; i < ticks; i++ {
				snap := s.Snapshot()
				if snap == nil {
					continue
				}
				assert.Equal(t, int(snap.Tick), snap.Score)
				assert.Equal(t, snap.Tick, snap.Transforms[0].ID)
				assert.GreaterOrEqual(t, snap.Tick, last)
				last = snap.Tick
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(ticks), s.Snapshot().Tick)
}

func TestTransformModelMatrix(t *testing.T) {
	tr := Transform{Position: mgl32.Vec3{1, 2, 3}, Scale: mgl32.Vec3{1, 1, 1}}
	p := tr.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, p)
}
