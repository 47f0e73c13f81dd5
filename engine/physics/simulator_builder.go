package physics

import (
	"math/rand"

	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"go.uber.org/zap"
)

// SimulatorBuilderOption is a functional option for configuring a Simulator via NewSimulator.
type SimulatorBuilderOption func(s *simulator)

// WithTickRate sets the number of ticks per simulated second. Values below 1 are ignored.
//
// Parameters:
//   - hz: the tick rate
//
// Returns:
//   - SimulatorBuilderOption: a function that applies the tick rate
func WithTickRate(hz int) SimulatorBuilderOption {
	return func(s *simulator) {
		if hz > 0 {
			s.tickRate = hz
		}
	}
}

// WithMaxBehind sets how many periods Run may fall behind before it resyncs its schedule
// instead of catching up.
func WithMaxBehind(periods int) SimulatorBuilderOption {
	return func(s *simulator) {
		if periods > 0 {
			s.maxBehind = periods
		}
	}
}

// WithRand sets the random source for obstacle gap heights.
//
// Parameters:
//   - r: the source; tests pass a seeded one for determinism
//
// Returns:
//   - SimulatorBuilderOption: a function that applies the source
func WithRand(r *rand.Rand) SimulatorBuilderOption {
	return func(s *simulator) {
		s.rng = r
	}
}

// WithLogger sets the logger for round events.
func WithLogger(l *zap.Logger) SimulatorBuilderOption {
	return func(s *simulator) {
		if l != nil {
			s.logger = l.Named("physics")
		}
	}
}

// WithPlayerName sets the object name the simulator treats as the player.
func WithPlayerName(name string) SimulatorBuilderOption {
	return func(s *simulator) {
		s.playerName = name
	}
}

// WithSnapshotSink replaces scene.Publish as the destination of per-tick snapshots.
//
// Parameters:
//   - sink: called once per tick with a snapshot the simulator no longer touches
//
// Returns:
//   - SimulatorBuilderOption: a function that applies the sink
func WithSnapshotSink(sink func(*scene.Snapshot)) SimulatorBuilderOption {
	return func(s *simulator) {
		s.sink = sink
	}
}
