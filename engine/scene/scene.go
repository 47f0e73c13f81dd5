package scene

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-flap/engine/game_object"
	"github.com/Carmen-Shannon/oxy-flap/engine/model"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateMesh is returned when a mesh name is registered twice.
	ErrDuplicateMesh = errors.New("scene: duplicate mesh")

	// ErrUnknownMesh is returned when an object references a mesh that was never registered.
	ErrUnknownMesh = errors.New("scene: unknown mesh")
)

// scene is the implementation of the Scene interface.
type scene struct {
	mu     sync.RWMutex
	name   string
	logger *zap.Logger

	meshes  map[string]model.Mesh
	objects []game_object.GameObject
	byID    map[uint64]game_object.GameObject
	nextID  uint64

	spawnQueue   []game_object.GameObject
	despawnQueue []uint64

	snapshots snapshotContainer
}

// Scene is the data store shared by the simulation and the renderer: meshes keyed by name, the
// ordered list of live objects and the spawn/despawn queues.
//
// Ownership: object kinematics are written only by the simulation goroutine, which also drains
// the queues (ApplyQueues) and publishes snapshots. The render loop reads snapshots and looks
// objects up by ID for their uniform providers; it never reads kinematic state directly.
type Scene interface {
	// Name retrieves the scene's debug name.
	Name() string

	// AddMesh registers a mesh under its name.
	//
	// Parameters:
	//   - m: the mesh to register
	//
	// Returns:
	//   - error: ErrDuplicateMesh if a mesh with the same name exists
	AddMesh(m model.Mesh) error

	// Mesh looks up a mesh by name.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - model.Mesh: the mesh, or nil
	//   - bool: whether the mesh was found
	Mesh(name string) (model.Mesh, bool)

	// Meshes returns all meshes ordered by name.
	Meshes() []model.Mesh

	// Spawn assigns obj an ID and queues it for insertion at the next ApplyQueues.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the assigned ID
	//   - error: ErrUnknownMesh if the object's mesh is not registered
	Spawn(obj game_object.GameObject) (uint64, error)

	// Despawn queues the object with the given ID for removal at the next ApplyQueues.
	Despawn(id uint64)

	// ApplyQueues drains the spawn queue then the despawn queue.
	//
	// Returns:
	//   - spawned: the number of objects inserted
	//   - despawned: the number of objects removed
	ApplyQueues() (spawned, despawned int)

	// Objects returns a copy of the live object list in insertion order.
	Objects() []game_object.GameObject

	// Object looks up a live object by ID.
	Object(id uint64) (game_object.GameObject, bool)

	// Capture copies the current transforms of all live objects into a new snapshot.
	// Only the goroutine that owns object kinematics may call it.
	//
	// Parameters:
	//   - tick: the simulation tick the snapshot belongs to
	//   - time: the simulation time in seconds
	//
	// Returns:
	//   - *Snapshot: an unpublished snapshot the caller may still fill in
	Capture(tick uint64, time float64) *Snapshot

	// Publish makes s the latest snapshot. s must not be modified afterwards.
	Publish(s *Snapshot)

	// Snapshot returns the most recently published snapshot, or nil before the first publish.
	Snapshot() *Snapshot

	// Release frees GPU resources of every mesh and object.
	Release()
}

var _ Scene = &scene{}

// NewScene creates an empty Scene.
//
// Parameters:
//   - options: functional options for the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		name:   "Unnamed Scene",
		logger: zap.NewNop(),
		meshes: make(map[string]model.Mesh),
		byID:   make(map[uint64]game_object.GameObject),
		nextID: 1,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) AddMesh(m model.Mesh) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meshes[m.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMesh, m.Name())
	}
	s.meshes[m.Name()] = m
	return nil
}

func (s *scene) Mesh(name string) (model.Mesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meshes[name]
	return m, ok
}

func (s *scene) Meshes() []model.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Mesh, 0, len(s.meshes))
	for _, m := range s.meshes {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b model.Mesh) int {
		switch {
		case a.Name() < b.Name():
			return -1
		case a.Name() > b.Name():
			return 1
		}
		return 0
	})
	return out
}

func (s *scene) Spawn(obj game_object.GameObject) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meshes[obj.MeshName()]; !ok {
		return 0, fmt.Errorf("%w: %q referenced by %q", ErrUnknownMesh, obj.MeshName(), obj.Name())
	}
	id := s.nextID
	s.nextID++
	obj.SetID(id)
	s.spawnQueue = append(s.spawnQueue, obj)
	return id, nil
}

func (s *scene) Despawn(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.despawnQueue = append(s.despawnQueue, id)
}

func (s *scene) ApplyQueues() (spawned, despawned int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range s.spawnQueue {
		s.objects = append(s.objects, obj)
		s.byID[obj.ID()] = obj
		spawned++
	}
	s.spawnQueue = s.spawnQueue[:0]

	for _, id := range s.despawnQueue {
		if _, ok := s.byID[id]; !ok {
			s.logger.Warn("despawn of unknown object", zap.Uint64("id", id))
			continue
		}
		delete(s.byID, id)
		s.objects = slices.DeleteFunc(s.objects, func(o game_object.GameObject) bool {
			return o.ID() == id
		})
		despawned++
	}
	s.despawnQueue = s.despawnQueue[:0]

	if spawned > 0 || despawned > 0 {
		s.logger.Debug("applied scene queues", zap.Int("spawned", spawned), zap.Int("despawned", despawned), zap.Int("live", len(s.objects)))
	}
	return spawned, despawned
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.objects)
}

func (s *scene) Object(id uint64) (game_object.GameObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.byID[id]
	return obj, ok
}

func (s *scene) Capture(tick uint64, time float64) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		Tick:       tick,
		Time:       time,
		Transforms: make([]Transform, len(s.objects)),
	}
	for i, obj := range s.objects {
		snap.Transforms[i] = Transform{
			ID:       obj.ID(),
			MeshName: obj.MeshName(),
			Position: obj.Position(),
			Rotation: obj.Rotation(),
			Scale:    obj.Scale(),
		}
	}
	return snap
}

func (s *scene) Publish(snap *Snapshot) {
	s.snapshots.Update(snap)
}

func (s *scene) Snapshot() *Snapshot {
	return s.snapshots.Get()
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range s.objects {
		if p := obj.ShadowUniforms(); p != nil {
			p.Release()
		}
		if p := obj.SceneUniforms(); p != nil {
			p.Release()
		}
	}
	for _, m := range s.meshes {
		m.Release()
	}
}
