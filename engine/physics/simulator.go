package physics

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-flap/engine/game_object"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	// JumpSpeed is the upward velocity given to the player by a jump.
	JumpSpeed float32 = 0.05

	countdownSeconds = 3.0
	respawnDelay     = 5.0

	groundLevel float32 = 1.1

	// Obstacles count as passed once they move behind this x.
	scoreLineX float32 = -2.15

	// The player overlaps an obstacle's column while its x is inside (collisionMinX, collisionMaxX).
	collisionMinX float32 = -2.32
	collisionMaxX float32 = 2.9

	// The gap half-height is gapScale*scale.z - gapInset.
	gapScale float32 = 3.57
	gapInset float32 = 0.97

	wrapX     float32 = -40
	respawnX  float32 = 160
	baseGap   float32 = 1.2
	firstX    float32 = 30
	spanX     float32 = 200
	baseSpeed float32 = 0.015
)

// simulator is the implementation of the Simulator interface.
type simulator struct {
	scene      scene.Scene
	logger     *zap.Logger
	tickRate   int
	maxBehind  int
	rng        *rand.Rand
	playerName string
	sink       func(*scene.Snapshot)

	jumpRequested atomic.Bool

	mu    sync.Mutex
	state RoundState

	// objects caches the scene's live list; refreshed when the queues change it.
	objects []game_object.GameObject
}

// Simulator advances the game world at a fixed tick rate. It is the only writer of object
// kinematics and flags; after every tick it publishes a scene.Snapshot for the renderer.
type Simulator interface {
	// Run ticks on an absolute-deadline schedule until ctx is cancelled.
	//
	// Parameters:
	//   - ctx: cancelling it stops the loop
	//
	// Returns:
	//   - error: ctx.Err() once stopped
	Run(ctx context.Context) error

	// Step performs exactly one simulation tick.
	Step()

	// Jump requests an upward impulse for the player. Safe to call from any goroutine; the request
	// is consumed by the next tick and ignored unless the round is playing.
	Jump()

	// Reset puts the player and obstacles at their starting positions and zeroes score and time.
	Reset()

	// State returns a copy of the round state.
	State() RoundState

	// TickRate returns the number of ticks per simulated second.
	TickRate() int
}

var _ Simulator = &simulator{}

// NewSimulator creates a Simulator over the given scene and resets the round.
//
// Parameters:
//   - sc: the scene holding the player and obstacles
//   - options: functional options for the simulator
//
// Returns:
//   - Simulator: the new simulator
func NewSimulator(sc scene.Scene, options ...SimulatorBuilderOption) Simulator {
	s := &simulator{
		scene:      sc,
		logger:     zap.NewNop(),
		tickRate:   480,
		maxBehind:  2,
		playerName: PlayerName,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.sink == nil {
		s.sink = sc.Publish
	}
	s.state.Running = true
	s.state.Phase = PhaseCountdown

	s.mu.Lock()
	sc.ApplyQueues()
	s.refreshObjects(true)
	s.reset()
	s.sink(s.capture())
	s.mu.Unlock()
	return s
}

func (s *simulator) TickRate() int {
	return s.tickRate
}

func (s *simulator) Run(ctx context.Context) error {
	period := time.Second / time.Duration(s.tickRate)
	maxBehind := period * time.Duration(s.maxBehind)
	next := time.Now().Add(period)

	timer := time.NewTimer(period)
	defer timer.Stop()

	s.logger.Info("simulation started", zap.Int("tick_rate", s.tickRate))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("simulation stopped", zap.Uint64("ticks", s.State().Tick))
			return ctx.Err()
		default:
		}

		s.Step()

		next = next.Add(period)
		now := time.Now()
		if now.Sub(next) > maxBehind {
			s.logger.Debug("simulation behind schedule, resyncing", zap.Duration("behind", now.Sub(next)))
			next = now.Add(period)
		}

		wait := next.Sub(now)
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			s.logger.Info("simulation stopped", zap.Uint64("ticks", s.State().Tick))
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (s *simulator) Jump() {
	s.jumpRequested.Store(true)
}

func (s *simulator) State() RoundState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *simulator) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	spawned, despawned := s.scene.ApplyQueues()
	s.refreshObjects(spawned > 0 || despawned > 0)

	st := &s.state
	jump := s.jumpRequested.Swap(false)

	if st.Phase == PhaseDead && st.Time > st.RespawnAt {
		s.reset()
		st.Running = true
		st.Phase = PhaseCountdown
		s.logger.Info("round reset")
	}

	switch {
	case st.Time > countdownSeconds && st.Phase != PhaseDead:
		if st.Phase == PhaseCountdown {
			st.Countdown++
			st.Phase = PhasePlaying
			s.impulse()
			s.logger.Info("Start!")
		} else if jump {
			s.impulse()
		}
		s.integrate()
	case st.Time < countdownSeconds && st.Phase == PhaseCountdown:
		if float64(st.Countdown) < st.Time {
			st.Countdown++
			s.logger.Info("countdown", zap.Int("count", st.Countdown))
		}
	}

	st.Time += 1 / float64(s.tickRate)
	st.Tick++
	s.sink(s.capture())
}

// integrate advances every object in scene order and applies the round rules. It stops at the
// first death so the remaining objects keep this tick's pre-death state.
func (s *simulator) integrate() {
	for _, obj := range s.objects {
		obj.Integrate()

		switch {
		case obj.Name() == s.playerName:
			if s.updatePlayer(obj) {
				return
			}
		case obj.IsBad():
			s.updateObstacle(obj)
		}
	}
}

// updatePlayer applies ground, scoring and obstacle rules. It reports whether the player died.
func (s *simulator) updatePlayer(player game_object.GameObject) bool {
	pos := player.Position()
	if pos.Z() <= groundLevel {
		s.die()
		return true
	}

	rot := player.Rotation()
	rot[0] = float32(-math.Atan(float64(player.Velocity().Z()*10)) * 90)
	player.SetRotation(rot)

	for _, obstacle := range s.objects {
		if !obstacle.IsBad() {
			continue
		}
		op := obstacle.Position()
		if op.X() <= scoreLineX && !obstacle.IsScored() {
			obstacle.SetScored(true)
			s.state.Score++
			s.logger.Info("score", zap.Int("score", s.state.Score))
		}
		if op.X() < collisionMaxX && op.X() > collisionMinX {
			dz := pos.Z() - op.Z()
			half := gapScale*obstacle.Scale().Z() - gapInset
			if dz > half || dz < -half {
				s.die()
				return true
			}
		}
	}
	return false
}

func (s *simulator) updateObstacle(obstacle game_object.GameObject) {
	t := s.state.Time
	pos := obstacle.Position()
	if pos.X() <= wrapX {
		pos[0] = respawnX
		pos[2] = s.gapHeight()
		obstacle.SetPosition(pos)

		scale := obstacle.Scale()
		scale[2] = baseGap - 0.26*float32(math.Atan((t-12.5)*0.02))
		obstacle.SetScale(scale)
		obstacle.SetScored(false)
	}
	vel := obstacle.Velocity()
	vel[0] = -(baseSpeed + float32(math.Atan(t*0.01))*0.005)
	obstacle.SetVelocity(vel)
}

func (s *simulator) die() {
	st := &s.state
	st.Countdown = 0
	st.Running = false
	st.Phase = PhaseDead
	st.RespawnAt = st.Time + respawnDelay
	if st.Score > st.BestScore {
		st.BestScore = st.Score
	}
	s.logger.Info("You Died!", zap.Int("score", st.Score), zap.Int("best_score", st.BestScore))
}

func (s *simulator) impulse() {
	for _, obj := range s.objects {
		if obj.Name() != s.playerName {
			continue
		}
		vel := obj.Velocity()
		vel[2] = JumpSpeed
		obj.SetVelocity(vel)
	}
}

// reset must be called with s.mu held.
func (s *simulator) reset() {
	s.state.Time = 0
	s.state.Score = 0

	obstacleIndex := 0
	count := 0
	for _, obj := range s.objects {
		if obj.IsBad() {
			count++
		}
	}
	for _, obj := range s.objects {
		if obj.Name() == s.playerName {
			obj.SetPosition(PlayerStart)
			obj.SetVelocity(mgl32.Vec3{})
			rot := obj.Rotation()
			rot[0] = 0
			obj.SetRotation(rot)
		}
		if obj.IsBad() {
			x := firstX + float32(obstacleIndex)*(spanX/float32(count))
			obj.SetPosition(mgl32.Vec3{x, 0, s.gapHeight()})

			scale := obj.Scale()
			scale[2] = baseGap
			obj.SetScale(scale)
			obj.SetScored(false)
			obstacleIndex++
		}
	}
}

func (s *simulator) gapHeight() float32 {
	return 6 + 10.5*0.01*float32(s.rng.Intn(100))
}

func (s *simulator) refreshObjects(changed bool) {
	if changed || s.objects == nil {
		s.objects = s.scene.Objects()
	}
}

// capture must be called with s.mu held.
func (s *simulator) capture() *scene.Snapshot {
	snap := s.scene.Capture(s.state.Tick, s.state.Time)
	snap.Phase = s.state.Phase.String()
	snap.Score = s.state.Score
	snap.BestScore = s.state.BestScore
	return snap
}
