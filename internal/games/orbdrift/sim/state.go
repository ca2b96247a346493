package sim

import "strings"

// Status is the game state machine position.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusLevelComplete
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusLevelComplete:
		return "level-complete"
	case StatusGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Outcome tells how a round ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCollision
	OutcomeTimeExpired
	OutcomeVictory
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCollision:
		return "collision"
	case OutcomeTimeExpired:
		return "time-expired"
	case OutcomeVictory:
		return "victory"
	default:
		return "none"
	}
}

// GameState is the single record the state machine owns.
// Times are milliseconds.
type GameState struct {
	Score         int
	Level         int
	LevelName     string
	OrbsCollected int
	OrbsRequired  int
	ElapsedTime   float64
	TimeRemaining float64

	IsStarted       bool
	IsGameOver      bool
	IsLevelComplete bool
	DebugMode       bool

	Status     Status
	Outcome    Outcome
	Generation uint64
}

// StateField is a bit set of GameState fields.
type StateField uint32

const (
	FieldScore StateField = 1 << iota
	FieldLevel
	FieldLevelName
	FieldOrbsCollected
	FieldOrbsRequired
	FieldElapsedTime
	FieldTimeRemaining
	FieldIsStarted
	FieldIsGameOver
	FieldIsLevelComplete
	FieldDebugMode
	FieldStatus
	FieldOutcome
	FieldGeneration
	fieldEnd

	FieldAll = fieldEnd - 1
)

var fieldNames = []string{
	"score", "level", "level-name", "orbs-collected", "orbs-required",
	"elapsed-time", "time-remaining", "is-started", "is-game-over",
	"is-level-complete", "debug-mode", "status", "outcome", "generation",
}

// Has reports whether every bit of g is set in f.
func (f StateField) Has(g StateField) bool {
	return g != 0 && f&g == g
}

func (f StateField) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for i, name := range fieldNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Diff compares two states field by field.
func Diff(prev, next GameState) StateField {
	var f StateField
	mark := func(changed bool, bit StateField) {
		if changed {
			f |= bit
		}
	}
	mark(prev.Score != next.Score, FieldScore)
	mark(prev.Level != next.Level, FieldLevel)
	mark(prev.LevelName != next.LevelName, FieldLevelName)
	mark(prev.OrbsCollected != next.OrbsCollected, FieldOrbsCollected)
	mark(prev.OrbsRequired != next.OrbsRequired, FieldOrbsRequired)
	mark(prev.ElapsedTime != next.ElapsedTime, FieldElapsedTime)
	mark(prev.TimeRemaining != next.TimeRemaining, FieldTimeRemaining)
	mark(prev.IsStarted != next.IsStarted, FieldIsStarted)
	mark(prev.IsGameOver != next.IsGameOver, FieldIsGameOver)
	mark(prev.IsLevelComplete != next.IsLevelComplete, FieldIsLevelComplete)
	mark(prev.DebugMode != next.DebugMode, FieldDebugMode)
	mark(prev.Status != next.Status, FieldStatus)
	mark(prev.Outcome != next.Outcome, FieldOutcome)
	mark(prev.Generation != next.Generation, FieldGeneration)
	return f
}

// StateChange is delivered to state subscribers after a mutation.
type StateChange struct {
	Prev   GameState
	Next   GameState
	Fields StateField
}
