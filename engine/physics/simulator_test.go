package physics

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-flap/engine/game_object"
	"github.com/Carmen-Shannon/oxy-flap/engine/model"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestScene(t *testing.T) scene.Scene {
	t.Helper()
	sc := scene.NewScene()
	for _, name := range []string{PlayerMesh, TerrainMesh, ObstacleMesh} {
		require.NoError(t, sc.AddMesh(model.NewMesh(model.WithName(name))))
	}
	return sc
}

// newHoverWorld builds a scene with a weightless bird and a single obstacle so tests control
// every collision by hand.
func newHoverWorld(t *testing.T) (Simulator, game_object.GameObject, game_object.GameObject, *observer.ObservedLogs) {
	t.Helper()
	sc := newTestScene(t)
	bird := game_object.NewGameObject(
		game_object.WithName(PlayerName),
		game_object.WithMesh(PlayerMesh),
	)
	tube := game_object.NewGameObject(
		game_object.WithName("Pair of Tubes"),
		game_object.WithMesh(ObstacleMesh),
		game_object.WithBad(true),
		game_object.WithVelocity(-0.015, 0, 0),
		game_object.WithScale(1.5, 1.5, 1.2),
	)
	_, err := sc.Spawn(bird)
	require.NoError(t, err)
	_, err = sc.Spawn(tube)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	sim := NewSimulator(sc, WithRand(rand.New(rand.NewSource(1))), WithLogger(zap.New(core)))
	return sim, bird, tube, logs
}

func stepUntil(t *testing.T, sim Simulator, limit int, cond func(RoundState) bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond(sim.State()) {
			return
		}
		sim.Step()
	}
	require.True(t, cond(sim.State()), "condition not reached after %d steps", limit)
}

func playing(s RoundState) bool { return s.Phase == PhasePlaying }
func dead(s RoundState) bool    { return s.Phase == PhaseDead }

func TestPopulate(t *testing.T) {
	sc := newTestScene(t)
	require.NoError(t, Populate(sc))
	sc.ApplyQueues()

	objs := sc.Objects()
	require.Len(t, objs, 2+ObstacleCount)
	assert.Equal(t, PlayerName, objs[0].Name())
	assert.Equal(t, mgl32.Vec3{0, 0, 90}, objs[0].Rotation())
	assert.Equal(t, mgl32.Vec3{100, 10, 1}, objs[1].Scale())
	for _, o := range objs[2:] {
		assert.True(t, o.IsBad())
		assert.Equal(t, ObstacleMesh, o.MeshName())
	}
}

func TestPopulateMissingMesh(t *testing.T) {
	assert.Error(t, Populate(scene.NewScene()))
}

func TestResetPlacesObstacles(t *testing.T) {
	sc := newTestScene(t)
	require.NoError(t, Populate(sc))
	NewSimulator(sc, WithRand(rand.New(rand.NewSource(3))))

	var i int
	for _, o := range sc.Objects() {
		if !o.IsBad() {
			continue
		}
		p := o.Position()
		assert.InDelta(t, 30+float64(i)*200.0/15.0, p.X(), 1e-4)
		assert.GreaterOrEqual(t, p.Z(), float32(6))
		assert.LessOrEqual(t, p.Z(), float32(6+10.5*0.99)+1e-4)
		assert.Equal(t, float32(1.2), o.Scale().Z())
		assert.False(t, o.IsScored())
		i++
	}
	assert.Equal(t, ObstacleCount, i)
}

func TestCountdownEndsWithSingleImpulse(t *testing.T) {
	sim, bird, _, logs := newHoverWorld(t)

	assert.Equal(t, PhaseCountdown, sim.State().Phase)
	stepUntil(t, sim, 2000, playing)

	st := sim.State()
	assert.Equal(t, 4, st.Countdown)
	assert.InDelta(t, 3.0, st.Time, 0.01)
	assert.Equal(t, 3, logs.FilterMessage("countdown").Len())
	assert.Equal(t, 1, logs.FilterMessage("Start!").Len())
	assert.InDelta(t, JumpSpeed, bird.Velocity().Z(), 1e-6)

	for i := 0; i < 500; i++ {
		sim.Step()
	}
	assert.Equal(t, 1, logs.FilterMessage("Start!").Len())
	assert.Equal(t, PhasePlaying, sim.State().Phase)
}

func TestBirdFrozenDuringCountdown(t *testing.T) {
	sim, bird, _, _ := newHoverWorld(t)
	bird.SetVelocity(mgl32.Vec3{0, 0, 1})
	for i := 0; i < 100; i++ {
		sim.Step()
	}
	assert.Equal(t, PlayerStart, bird.Position())
}

func TestJumpOnlyWhilePlaying(t *testing.T) {
	sim, bird, _, _ := newHoverWorld(t)

	sim.Jump()
	sim.Step()
	assert.Zero(t, bird.Velocity().Z())

	stepUntil(t, sim, 2000, playing)
	bird.SetVelocity(mgl32.Vec3{})
	sim.Jump()
	sim.Step()
	assert.Equal(t, JumpSpeed, bird.Velocity().Z())

	// a consumed request does not fire twice
	bird.SetVelocity(mgl32.Vec3{})
	sim.Step()
	assert.Zero(t, bird.Velocity().Z())
}

func TestGroundDeathOnceAndFrozen(t *testing.T) {
	sc := newTestScene(t)
	require.NoError(t, Populate(sc))
	core, logs := observer.New(zapcore.InfoLevel)
	sim := NewSimulator(sc, WithRand(rand.New(rand.NewSource(1))), WithLogger(zap.New(core)))

	stepUntil(t, sim, 5000, dead)
	st := sim.State()
	assert.InDelta(t, st.Time+5, st.RespawnAt, 0.01)
	assert.False(t, st.Running)
	assert.Equal(t, 0, st.Countdown)
	require.Equal(t, 1, logs.FilterMessage("You Died!").Len())

	bird := sc.Objects()[0]
	frozen := bird.Position()
	assert.LessOrEqual(t, frozen.Z(), float32(1.1))
	for i := 0; i < 1000; i++ {
		sim.Step()
	}
	assert.Equal(t, frozen, bird.Position())
	assert.Equal(t, 1, logs.FilterMessage("You Died!").Len())
	assert.Equal(t, PhaseDead, sim.State().Phase)
}

func TestRespawnAfterDelay(t *testing.T) {
	sc := newTestScene(t)
	require.NoError(t, Populate(sc))
	sim := NewSimulator(sc, WithRand(rand.New(rand.NewSource(1))))

	stepUntil(t, sim, 5000, dead)
	stepUntil(t, sim, 5*480+10, func(s RoundState) bool { return s.Phase == PhaseCountdown })

	st := sim.State()
	assert.True(t, st.Running)
	assert.Equal(t, 0, st.Score)
	assert.Less(t, st.Time, 0.01)

	bird := sc.Objects()[0]
	assert.Equal(t, PlayerStart, bird.Position())
	assert.Equal(t, mgl32.Vec3{}, bird.Velocity())
	assert.Zero(t, bird.Rotation().X())
}

func TestScoreOncePerObstacle(t *testing.T) {
	sim, bird, tube, logs := newHoverWorld(t)
	stepUntil(t, sim, 2000, playing)
	bird.SetVelocity(mgl32.Vec3{})

	tube.SetPosition(mgl32.Vec3{-2.14, 0, bird.Position().Z()})
	for i := 0; i < 50; i++ {
		sim.Step()
	}
	assert.Equal(t, 1, sim.State().Score)
	assert.True(t, tube.IsScored())

	stepUntil(t, sim, 5000, func(RoundState) bool { return tube.Position().X() > 100 })
	assert.False(t, tube.IsScored())
	assert.Equal(t, 1, sim.State().Score)
	assert.Equal(t, 1, logs.FilterMessage("score").Len())
}

func TestObstacleWrap(t *testing.T) {
	sim, bird, tube, _ := newHoverWorld(t)
	stepUntil(t, sim, 2000, playing)
	bird.SetVelocity(mgl32.Vec3{})

	tube.SetPosition(mgl32.Vec3{-41, 0, 5})
	tube.SetScored(true)
	sim.Step()

	p := tube.Position()
	assert.Equal(t, float32(160), p.X())
	assert.GreaterOrEqual(t, p.Z(), float32(6))
	assert.False(t, tube.IsScored())
	assert.Less(t, tube.Velocity().X(), float32(-0.015))
	assert.Equal(t, 0, sim.State().Score)
}

func TestObstacleCollision(t *testing.T) {
	sim, bird, tube, logs := newHoverWorld(t)
	stepUntil(t, sim, 2000, playing)
	bird.SetVelocity(mgl32.Vec3{})

	// gap half-height at scale 1.2 is 3.314
	tube.SetPosition(mgl32.Vec3{0, 0, bird.Position().Z() - 4})
	sim.Step()
	assert.Equal(t, PhaseDead, sim.State().Phase)
	assert.Equal(t, 1, logs.FilterMessage("You Died!").Len())
}

func TestObstacleCollisionBounds(t *testing.T) {
	cases := []struct {
		name  string
		x, dz float32
		dies  bool
	}{
		{"inside the gap", 0, 0, false},
		{"near the top of the gap", 0, 3.2, false},
		{"near the bottom of the gap", 0, -3.2, false},
		{"above the gap", 0, 4, true},
		{"below the gap", 0, -4, true},
		{"at the left edge of the column", collisionMinX, 4, false},
		{"at the right edge of the column", collisionMaxX, -4, false},
		{"just inside the left edge", collisionMinX + 0.05, -4, true},
		{"just inside the right edge", collisionMaxX - 0.05, 4, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sim, bird, tube, _ := newHoverWorld(t)
			stepUntil(t, sim, 2000, playing)
			bird.SetVelocity(mgl32.Vec3{})

			// dz is the bird's height relative to the gap center
			tube.SetPosition(mgl32.Vec3{c.x, 0, bird.Position().Z() - c.dz})
			sim.Step()
			assert.Equal(t, c.dies, sim.State().Phase == PhaseDead)
		})
	}
}

func TestBestScoreNeverDecreases(t *testing.T) {
	sim, bird, tube, _ := newHoverWorld(t)
	stepUntil(t, sim, 2000, playing)
	bird.SetVelocity(mgl32.Vec3{})
	tube.SetPosition(mgl32.Vec3{-2.14, 0, bird.Position().Z()})
	sim.Step()
	sim.Step()
	require.Equal(t, 1, sim.State().Score)

	bird.SetPosition(mgl32.Vec3{0, 0, 0.5})
	sim.Step()
	require.Equal(t, PhaseDead, sim.State().Phase)
	assert.Equal(t, 1, sim.State().BestScore)

	stepUntil(t, sim, 3000, func(s RoundState) bool { return s.Phase == PhaseCountdown })
	stepUntil(t, sim, 2000, playing)
	bird.SetPosition(mgl32.Vec3{0, 0, 0.5})
	sim.Step()
	require.Equal(t, PhaseDead, sim.State().Phase)
	assert.Equal(t, 0, sim.State().Score)
	assert.Equal(t, 1, sim.State().BestScore)
}

func TestSnapshotPerTick(t *testing.T) {
	sc := newTestScene(t)
	require.NoError(t, Populate(sc))
	var snaps []*scene.Snapshot
	sim := NewSimulator(sc, WithSnapshotSink(func(s *scene.Snapshot) { snaps = append(snaps, s) }))

	for i := 0; i < 10; i++ {
		sim.Step()
	}
	require.Len(t, snaps, 11)
	for i, s := range snaps {
		assert.Equal(t, uint64(i), s.Tick)
		assert.Len(t, s.Transforms, 2+ObstacleCount)
		assert.Equal(t, "countdown", s.Phase)
	}
	assert.Nil(t, sc.Snapshot())
}

func TestRunStopsOnCancel(t *testing.T) {
	sc := newTestScene(t)
	require.NoError(t, Populate(sc))
	sim := NewSimulator(sc, WithTickRate(1000))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := sim.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, sim.State().Tick)
	assert.NotNil(t, sc.Snapshot())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "countdown", PhaseCountdown.String())
	assert.Equal(t, "playing", PhasePlaying.String())
	assert.Equal(t, "dead", PhaseDead.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
