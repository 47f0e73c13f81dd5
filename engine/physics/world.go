package physics

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-flap/engine/game_object"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// PlayerName is the object name of the bird.
	PlayerName = "FlappyBird"

	PlayerMesh   = "Flappy Bird Model"
	TerrainMesh  = "Terrain Model"
	ObstacleMesh = "Tubes Model"

	// ObstacleCount is the number of tube pairs cycling through the level.
	ObstacleCount = 15

	gravity float32 = -0.0003
)

// PlayerStart is where the bird is placed on every reset.
var PlayerStart = mgl32.Vec3{0, 0, 10}

// Populate spawns the bird, the terrain and ObstacleCount tube pairs into sc. The meshes must
// already be registered. Objects become live at the next ApplyQueues.
//
// Parameters:
//   - sc: the scene to fill
//
// Returns:
//   - error: a wrapped scene error if a mesh is missing
func Populate(sc scene.Scene) error {
	bird := game_object.NewGameObject(
		game_object.WithName(PlayerName),
		game_object.WithMesh(PlayerMesh),
		game_object.WithPosition(PlayerStart.X(), PlayerStart.Y(), PlayerStart.Z()),
		game_object.WithRotation(0, 0, 90),
		game_object.WithAcceleration(0, 0, gravity),
	)
	if _, err := sc.Spawn(bird); err != nil {
		return fmt.Errorf("failed to spawn player: %w", err)
	}

	terrain := game_object.NewGameObject(
		game_object.WithName("Terrain"),
		game_object.WithMesh(TerrainMesh),
		game_object.WithScale(100, 10, 1),
	)
	if _, err := sc.Spawn(terrain); err != nil {
		return fmt.Errorf("failed to spawn terrain: %w", err)
	}

	template := game_object.NewGameObject(
		game_object.WithName("Pair of Tubes"),
		game_object.WithMesh(ObstacleMesh),
		game_object.WithBad(true),
		game_object.WithVelocity(-baseSpeed, 0, 0),
		game_object.WithScale(1.5, 1.5, baseGap),
	)
	for i := 0; i < ObstacleCount; i++ {
		if _, err := sc.Spawn(game_object.Clone(template)); err != nil {
			return fmt.Errorf("failed to spawn obstacle %d: %w", i, err)
		}
	}
	return nil
}
