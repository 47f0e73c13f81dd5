package physics

// Phase is the stage of the current round.
type Phase int

const (
	// PhaseCountdown is the three-second pause before the player starts moving.
	PhaseCountdown Phase = iota
	// PhasePlaying integrates every object and checks collisions.
	PhasePlaying
	// PhaseDead freezes the world until the respawn deadline passes.
	PhaseDead
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseDead:
		return "dead"
	}
	return "unknown"
}

// RoundState is the simulation's bookkeeping for one play session.
type RoundState struct {
	// Tick counts steps since the simulator was created; it does not reset between rounds.
	Tick uint64
	// Time is the round time in seconds, reset to 0 on respawn.
	Time float64
	// RespawnAt is the round time after which a dead round resets.
	RespawnAt float64
	Score     int
	BestScore int
	// Countdown counts elapsed countdown seconds; it reaches 4 once "Start!" fires.
	Countdown int
	// Running is false while dead.
	Running bool
	Phase   Phase
}
