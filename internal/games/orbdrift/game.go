// Package orbdrift adapts the Orb Drift simulation to the terminal platform.
// It maps input frames to engine commands, draws the world onto a
// core.Screen and reports finished rounds.
package orbdrift

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/core"
	"github.com/vovakirdan/orbdrift/internal/events"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift/sim"
	"github.com/vovakirdan/orbdrift/internal/registry"
	"github.com/vovakirdan/orbdrift/internal/storage"
)

// hitFlashMS is how long the player glyph flashes after a fatal hit.
const hitFlashMS = 400

// RoundSummary describes a finished round.
type RoundSummary struct {
	Round     int
	Seed      int64
	Score     int
	Level     int
	LevelName string
	Orbs      int
	Passed    int
	Outcome   sim.Outcome
	Duration  time.Duration
}

// Record converts the summary into a session history row.
func (s RoundSummary) Record() storage.Round {
	return storage.Round{
		Seed:      s.Seed,
		Score:     s.Score,
		Level:     s.Level,
		LevelName: s.LevelName,
		Orbs:      s.Orbs,
		Passed:    s.Passed,
		Outcome:   s.Outcome.String(),
		Duration:  s.Duration,
	}
}

// Game drives one engine from platform input.
type Game struct {
	cfg    config.Config
	engine *sim.Engine
	assets *ThemeAssets
	logger *log.Logger
	seed   int64
	debug  bool

	paused bool
	flash  float64

	round      int
	roundOrbs  int
	roundPass  int
	roundOpen  bool
	lastRound  *RoundSummary
	roundEnded events.Topic[RoundSummary]
}

// Option configures a Game.
type Option func(*Game) error

// WithLogger sets the logger shared with the engine.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) error {
		if l != nil {
			g.logger = l
		}
		return nil
	}
}

// WithSeed sets the spawn seed.
func WithSeed(seed int64) Option {
	return func(g *Game) error {
		g.seed = seed
		return nil
	}
}

// WithTheme selects a registered glyph theme by ID.
func WithTheme(id string) Option {
	return func(g *Game) error {
		th, err := registry.Create(id)
		if err != nil {
			return err
		}
		g.assets = NewThemeAssets(th)
		return nil
	}
}

// WithDebug starts the game with debug mode enabled.
func WithDebug(on bool) Option {
	return func(g *Game) error {
		g.debug = on
		return nil
	}
}

// New creates a game in the Idle state.
func New(cfg config.Config, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		logger: log.New(io.Discard),
		seed:   1,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, fmt.Errorf("orbdrift: %w", err)
		}
	}
	if g.assets == nil {
		th, err := registry.Create(DefaultTheme)
		if err != nil {
			return nil, fmt.Errorf("orbdrift: %w", err)
		}
		g.assets = NewThemeAssets(th)
	}

	engine, err := sim.NewEngine(cfg,
		sim.WithLogger(g.logger),
		sim.WithAssets(g.assets),
		sim.WithSeed(g.seed),
	)
	if err != nil {
		return nil, fmt.Errorf("orbdrift: %w", err)
	}
	g.engine = engine
	g.cfg = engine.Config()
	g.roundEnded.SetPanicHandler(func(r any) {
		g.logger.Error("recovered panic", "in", "round-end hook", "panic", r)
	})

	engine.OnSemanticEvent(sim.EventRoundStarted, func(sim.Event) {
		g.round++
		g.roundOrbs, g.roundPass = 0, 0
		g.roundOpen = true
		g.flash = 0
	})
	engine.OnSemanticEvent(sim.EventOrbCollected, func(sim.Event) { g.roundOrbs++ })
	engine.OnSemanticEvent(sim.EventObstaclePassed, func(sim.Event) { g.roundPass++ })
	engine.OnSemanticEvent(sim.EventPlayerDied, func(sim.Event) { g.flash = hitFlashMS })
	engine.OnSemanticEvent(sim.EventGameOver, func(ev sim.Event) { g.closeRound(ev.Outcome) })

	if g.debug {
		engine.ToggleDebug()
	}
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "orbdrift"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Orb Drift"
}

// OnRoundEnd registers fn to receive every finished round.
func (g *Game) OnRoundEnd(fn func(RoundSummary)) events.Unsubscribe {
	return g.roundEnded.Subscribe(fn)
}

func (g *Game) closeRound(outcome sim.Outcome) {
	if !g.roundOpen {
		return
	}
	g.roundOpen = false
	st := g.engine.State()
	sum := RoundSummary{
		Round:     g.round,
		Seed:      g.seed,
		Score:     st.Score,
		Level:     st.Level,
		LevelName: st.LevelName,
		Orbs:      g.roundOrbs,
		Passed:    g.roundPass,
		Outcome:   outcome,
		Duration:  time.Duration(st.ElapsedTime * float64(time.Millisecond)),
	}
	g.lastRound = &sum
	g.logger.Info("round finished",
		"round", sum.Round, "outcome", sum.Outcome, "score", sum.Score,
		"level", sum.Level, "orbs", sum.Orbs, "duration", sum.Duration)
	g.roundEnded.Publish(sum)
}

// Step applies one frame of input and advances the simulation by deltaMS.
func (g *Game) Step(in core.InputFrame, deltaMS float64) sim.GameState {
	if in.Has(core.ActionToggleDebug) {
		g.engine.ToggleDebug()
	}
	if in.Has(core.ActionRestart) {
		g.Restart()
	}

	switch st := g.engine.State(); st.Status {
	case sim.StatusIdle, sim.StatusGameOver:
		if in.Has(core.ActionFlap) || in.Has(core.ActionRequestStart) {
			g.paused = false
			g.engine.Start()
		}
	default:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
	}

	if g.paused {
		return g.engine.State()
	}

	for _, a := range in.Actions() {
		switch a {
		case core.ActionFlap:
			g.engine.Flap()
		case core.ActionMoveLeft:
			g.engine.MoveLeft()
		case core.ActionMoveRight:
			g.engine.MoveRight()
		case core.ActionMoveUp:
			g.engine.MoveUp()
		case core.ActionMoveDown:
			g.engine.MoveDown()
		}
	}

	g.engine.Update(deltaMS)
	if g.flash > 0 {
		g.flash -= deltaMS
	}
	return g.engine.State()
}

// Restart abandons the current round and begins a new one.
func (g *Game) Restart() {
	g.Abandon()
	g.paused = false
	g.engine.Start()
}

// Abandon ends a round in progress without an outcome and returns to Idle.
// Abandoned rounds are reported to round-end hooks with OutcomeNone.
func (g *Game) Abandon() {
	if g.roundOpen {
		g.closeRound(sim.OutcomeNone)
	}
	g.engine.Reset()
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// State returns the engine state.
func (g *Game) State() sim.GameState {
	return g.engine.State()
}

// LastRound returns the most recently finished round.
func (g *Game) LastRound() (RoundSummary, bool) {
	if g.lastRound == nil {
		return RoundSummary{}, false
	}
	return *g.lastRound, true
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *sim.Engine {
	return g.engine
}

// Assets returns the asset provider.
func (g *Game) Assets() *ThemeAssets {
	return g.assets
}

// Seed returns the spawn seed.
func (g *Game) Seed() int64 {
	return g.seed
}

// View is a read-only snapshot for controllers.
type View struct {
	State     sim.GameState
	Player    sim.Entity
	HasPlayer bool
	Entities  []sim.Entity
	Field     config.FieldConfig
}

// View returns the current snapshot.
func (g *Game) View() View {
	p, ok := g.engine.Player()
	return View{
		State:     g.engine.State(),
		Player:    p,
		HasPlayer: ok,
		Entities:  g.engine.Entities(),
		Field:     g.cfg.Field,
	}
}
