package sim

import "fmt"

// EventKind names a semantic event.
type EventKind int

const (
	EventJump EventKind = iota
	EventObstaclePassed
	EventPlayerDied
	EventOrbCollected
	EventLevelUp
	EventRoundStarted
	EventGameOver
	EventObstacleSpawned
	EventOrbSpawned
	eventKindCount
)

var eventKindNames = [eventKindCount]string{
	EventJump:            "jump",
	EventObstaclePassed:  "obstacle-passed",
	EventPlayerDied:      "player-died",
	EventOrbCollected:    "orb-collected",
	EventLevelUp:         "level-up",
	EventRoundStarted:    "round-started",
	EventGameOver:        "game-over",
	EventObstacleSpawned: "obstacle-spawned",
	EventOrbSpawned:      "orb-spawned",
}

func (k EventKind) String() string {
	if k >= 0 && k < eventKindCount {
		return eventKindNames[k]
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// EventKinds returns every semantic event kind.
func EventKinds() []EventKind {
	out := make([]EventKind, 0, eventKindCount)
	for k := EventKind(0); k < eventKindCount; k++ {
		out = append(out, k)
	}
	return out
}

// DeathCause tells how the player died.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseCollision
	CauseGround
)

func (c DeathCause) String() string {
	switch c {
	case CauseCollision:
		return "collision"
	case CauseGround:
		return "ground"
	default:
		return "none"
	}
}

// Event is a semantic notification. Generation and Level are stamped at emission
// so handlers can drop events that outlived their round or level.
type Event struct {
	Kind       EventKind
	Generation uint64
	Level      int
	EntityID   ID
	EntityKind Kind
	Cause      DeathCause
	Outcome    Outcome
	X, Y       float64
}

func eventKindOf(e Event) EventKind {
	return e.Kind
}
