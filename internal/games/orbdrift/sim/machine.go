package sim

import (
	"github.com/charmbracelet/log"
	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/events"
)

// Scheduler queues fn to run delayMS from now under the current generation.
type Scheduler func(delayMS float64, name string, fn func())

// Machine owns GameState and its transitions:
//
//	Idle -> Playing -> LevelComplete -> Playing -> ... -> GameOver -> Idle
//
// It reacts to semantic events and never looks at entities.
type Machine struct {
	cfg       config.Config
	state     GameState
	published GameState
	changes   events.Topic[StateChange]
	emit      func(Event)
	schedule  Scheduler
	logger    *log.Logger
}

// NewMachine creates an Idle machine at level 1.
func NewMachine(cfg config.Config, emit func(Event), schedule Scheduler, logger *log.Logger) *Machine {
	m := &Machine{
		cfg:      cfg,
		emit:     emit,
		schedule: schedule,
		logger:   logger,
	}
	m.state = m.initialState(StatusIdle, 0, false)
	m.published = m.state
	return m
}

// SetPanicHandler installs h for panicking state subscribers.
func (m *Machine) SetPanicHandler(h events.PanicHandler) {
	m.changes.SetPanicHandler(h)
}

func (m *Machine) initialState(status Status, gen uint64, debug bool) GameState {
	lvl, _ := m.cfg.Level(1)
	return GameState{
		Level:         1,
		LevelName:     lvl.Name,
		OrbsRequired:  lvl.OrbsRequired,
		TimeRemaining: lvl.TimeLimitMS,
		IsStarted:     status == StatusPlaying,
		DebugMode:     debug,
		Status:        status,
		Generation:    gen,
	}
}

// State returns a copy of the live state.
func (m *Machine) State() GameState {
	return m.state
}

// Generation returns the current generation token.
func (m *Machine) Generation() uint64 {
	return m.state.Generation
}

// CanStart reports whether Start would begin a round.
func (m *Machine) CanStart() bool {
	return m.state.Status == StatusIdle || m.state.Status == StatusGameOver
}

// Start begins a fresh round at level 1 from Idle or GameOver.
// It is a no-op returning false while a round is in progress.
func (m *Machine) Start() bool {
	if !m.CanStart() {
		return false
	}
	m.state = m.initialState(StatusPlaying, m.state.Generation+1, m.state.DebugMode)
	m.logger.Info("round started", "generation", m.state.Generation, "level", m.state.LevelName)
	m.emit(Event{Kind: EventRoundStarted})
	return true
}

// Reset returns to Idle from any state and invalidates pending deferred work.
func (m *Machine) Reset() {
	m.state = m.initialState(StatusIdle, m.state.Generation+1, m.state.DebugMode)
}

// ToggleDebug flips debug mode and returns the new value.
func (m *Machine) ToggleDebug() bool {
	m.state.DebugMode = !m.state.DebugMode
	return m.state.DebugMode
}

// Tick counts the level timer down while Playing.
func (m *Machine) Tick(deltaMS float64) {
	if m.state.Status != StatusPlaying || !(deltaMS > 0) {
		return
	}
	m.state.ElapsedTime += deltaMS
	m.state.TimeRemaining -= deltaMS
	if m.state.TimeRemaining <= 0 {
		m.state.TimeRemaining = 0
		m.gameOver(OutcomeTimeExpired)
	}
}

// HandleEvent applies a semantic event. Events from another generation or
// level, or arriving outside Playing, are ignored.
func (m *Machine) HandleEvent(ev Event) {
	if ev.Generation != m.state.Generation || m.state.Status != StatusPlaying {
		return
	}
	switch ev.Kind {
	case EventPlayerDied:
		m.gameOver(OutcomeCollision)
	case EventObstaclePassed:
		if ev.Level == m.state.Level {
			m.state.Score += m.cfg.Score.PerObstacle
		}
	case EventOrbCollected:
		if ev.Level != m.state.Level {
			return
		}
		m.state.OrbsCollected++
		m.state.Score += m.cfg.Score.PerOrb
		if m.state.OrbsCollected >= m.state.OrbsRequired {
			m.completeLevel()
		}
	}
}

func (m *Machine) completeLevel() {
	if m.cfg.IsLastLevel(m.state.Level) {
		m.state.OrbsCollected = m.state.OrbsRequired
		m.gameOver(OutcomeVictory)
		return
	}

	next, ok := m.cfg.Level(m.state.Level + 1)
	if !ok {
		m.gameOver(OutcomeVictory)
		return
	}
	finished := m.state.LevelName
	m.state.Level++
	m.state.LevelName = next.Name
	m.state.OrbsCollected = 0
	m.state.OrbsRequired = next.OrbsRequired
	m.state.TimeRemaining = next.TimeLimitMS
	m.state.IsLevelComplete = true
	m.state.Status = StatusLevelComplete
	m.logger.Info("level complete", "finished", finished, "next", next.Name, "score", m.state.Score)

	m.emit(Event{Kind: EventLevelUp})

	gen := m.state.Generation
	m.schedule(m.cfg.Timing.LevelCompleteDelayMS, "level-pulse-clear", func() {
		m.clearLevelPulse(gen)
	})
}

// clearLevelPulse resumes play after the level banner. It does nothing if the
// round has moved on since it was scheduled.
func (m *Machine) clearLevelPulse(gen uint64) {
	if gen != m.state.Generation || m.state.Status != StatusLevelComplete {
		return
	}
	m.state.IsLevelComplete = false
	m.state.Status = StatusPlaying
}

func (m *Machine) gameOver(outcome Outcome) {
	m.state.Status = StatusGameOver
	m.state.Outcome = outcome
	m.state.IsStarted = false
	m.state.IsGameOver = true
	m.state.IsLevelComplete = false
	m.logger.Info("game over", "outcome", outcome, "score", m.state.Score, "level", m.state.Level)
	m.emit(Event{Kind: EventGameOver, Outcome: outcome})
}

// OnStateChanged registers fn for every committed mutation.
func (m *Machine) OnStateChanged(fn func(StateChange)) events.Unsubscribe {
	return m.changes.Subscribe(fn)
}

// OnFieldChanged registers fn for commits that change any of the given fields.
func (m *Machine) OnFieldChanged(fields StateField, fn func(StateChange)) events.Unsubscribe {
	return m.changes.Subscribe(func(c StateChange) {
		if c.Fields&fields != 0 {
			fn(c)
		}
	})
}

// Commit publishes the difference since the previous commit, if any.
func (m *Machine) Commit() StateField {
	fields := Diff(m.published, m.state)
	if fields == 0 {
		return 0
	}
	change := StateChange{Prev: m.published, Next: m.state, Fields: fields}
	m.published = m.state
	m.changes.Publish(change)
	return fields
}
