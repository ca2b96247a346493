package orbdrift

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/core"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift/sim"
)

const frameMS = 16.667

func newTestGame(t *testing.T, cfg config.Config, opts ...Option) *Game {
	t.Helper()
	g, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// runUntilOver steps without input until the round ends or limit frames pass.
func runUntilOver(g *Game, limit int) sim.GameState {
	var st sim.GameState
	for i := 0; i < limit; i++ {
		st = g.Step(frame(), frameMS)
		if st.Status == sim.StatusGameOver {
			break
		}
	}
	return st
}

func TestNewRejectsUnknownTheme(t *testing.T) {
	if _, err := New(config.DefaultConfig(), WithTheme("does-not-exist")); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Levels = nil
	if _, err := New(cfg); err == nil {
		t.Error("expected configuration error")
	}
}

func TestFirstFlapStartsRound(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig())
	if g.State().Status != sim.StatusIdle {
		t.Fatal("new game should be idle")
	}

	st := g.Step(frame(core.ActionFlap), frameMS)
	if st.Status != sim.StatusPlaying {
		t.Fatalf("flap should start a round, status %s", st.Status)
	}
	p, ok := g.Engine().Player()
	if !ok || p.VY >= 0 {
		t.Errorf("the starting flap should lift the player, VY = %v", p.VY)
	}
}

func TestMovementActionsReachEngine(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig())
	g.Step(frame(core.ActionRequestStart), 0)

	g.Step(frame(core.ActionMoveRight), frameMS)
	p, _ := g.Engine().Player()
	if p.X <= g.cfg.Player.StartX {
		t.Errorf("move right should drift the player, X = %v", p.X)
	}

	before := p.VY
	g.Step(frame(core.ActionMoveUp), frameMS)
	p, _ = g.Engine().Player()
	if p.VY >= before {
		t.Errorf("move up should reduce VY, %v -> %v", before, p.VY)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig())

	g.Step(frame(core.ActionPause), frameMS)
	if g.Paused() {
		t.Error("pause has no effect while idle")
	}

	g.Step(frame(core.ActionRequestStart), frameMS)
	g.Step(frame(core.ActionPause), frameMS)
	if !g.Paused() {
		t.Fatal("expected paused")
	}
	elapsed := g.State().ElapsedTime
	for i := 0; i < 30; i++ {
		g.Step(frame(core.ActionFlap), frameMS)
	}
	if g.State().ElapsedTime != elapsed {
		t.Error("simulation advanced while paused")
	}

	g.Step(frame(core.ActionPause), frameMS)
	if g.Paused() || g.State().ElapsedTime <= elapsed {
		t.Error("unpausing should resume the simulation in the same frame")
	}
}

func TestToggleDebug(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig())
	g.Step(frame(core.ActionToggleDebug), frameMS)
	if !g.State().DebugMode {
		t.Error("expected debug mode on")
	}

	g = newTestGame(t, config.DefaultConfig(), WithDebug(true))
	if !g.State().DebugMode {
		t.Error("WithDebug(true) should enable debug mode")
	}
}

func TestRoundEndHook(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), WithSeed(9))
	var got []RoundSummary
	g.OnRoundEnd(func(s RoundSummary) { got = append(got, s) })

	g.Step(frame(core.ActionRequestStart), 0)
	st := runUntilOver(g, 1000)
	if st.Status != sim.StatusGameOver {
		t.Fatal("a player that never flaps should hit the ground")
	}

	if len(got) != 1 {
		t.Fatalf("expected one summary, got %d", len(got))
	}
	s := got[0]
	if s.Round != 1 || s.Seed != 9 || s.Outcome != sim.OutcomeCollision || s.Level != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Duration <= 0 {
		t.Errorf("duration should be positive, got %v", s.Duration)
	}
	if last, ok := g.LastRound(); !ok || !reflect.DeepEqual(last, s) {
		t.Errorf("LastRound = %+v, %v", last, ok)
	}

	// Further frames in GameOver report nothing new.
	for i := 0; i < 20; i++ {
		g.Step(frame(), frameMS)
	}
	if len(got) != 1 {
		t.Errorf("summary delivered %d times", len(got))
	}
}

func TestTimeUpOutcome(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Levels[0].TimeLimitMS = 100
	g := newTestGame(t, cfg)
	g.Step(frame(core.ActionRequestStart), 0)

	st := runUntilOver(g, 100)
	if st.Outcome != sim.OutcomeTimeExpired {
		t.Errorf("expected time-expired, got %s", st.Outcome)
	}
	if last, _ := g.LastRound(); last.Outcome != sim.OutcomeTimeExpired {
		t.Errorf("summary outcome = %s", last.Outcome)
	}
}

func TestRestartAbandonsRound(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig())
	var got []RoundSummary
	g.OnRoundEnd(func(s RoundSummary) { got = append(got, s) })

	g.Step(frame(core.ActionRequestStart), 0)
	for i := 0; i < 10; i++ {
		g.Step(frame(), frameMS)
	}
	st := g.Step(frame(core.ActionRestart), frameMS)

	if len(got) != 1 || got[0].Outcome != sim.OutcomeNone || got[0].Round != 1 {
		t.Fatalf("restart should report the abandoned round, got %+v", got)
	}
	if st.Status != sim.StatusPlaying || st.Level != 1 {
		t.Errorf("restart should begin a fresh round, got %+v", st)
	}

	g.Abandon()
	if len(got) != 2 || got[1].Round != 2 {
		t.Errorf("second round should be numbered 2, got %+v", got)
	}
	if g.State().Status != sim.StatusIdle {
		t.Error("Abandon should return to idle")
	}
}

func TestRoundEndHookPanicIsolated(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig())
	calls := 0
	g.OnRoundEnd(func(RoundSummary) { panic("hook bug") })
	g.OnRoundEnd(func(RoundSummary) { calls++ })

	g.Step(frame(core.ActionRequestStart), 0)
	runUntilOver(g, 1000)
	if calls != 1 {
		t.Errorf("second hook should still run, calls = %d", calls)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() []RoundSummary {
		cfg := config.DefaultConfig()
		g := newTestGame(t, cfg, WithSeed(12345))
		return RunRounds(g, NewAutopilot(cfg), 2, 1500, frameMS)
	}
	a, b := run(), run()
	if len(a) != 2 {
		t.Fatalf("expected two rounds, got %d", len(a))
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("determinism failed:\n%+v\n%+v", a, b)
	}
}

func TestRoundSummaryRecord(t *testing.T) {
	s := RoundSummary{Round: 2, Seed: 5, Score: 9, Level: 3, LevelName: "Gas Giants", Orbs: 4, Passed: 8, Outcome: sim.OutcomeVictory}
	r := s.Record()
	if r.Outcome != "victory" || r.Score != 9 || r.LevelName != "Gas Giants" || r.Passed != 8 {
		t.Errorf("unexpected record %+v", r)
	}
	if r.ID != "" {
		t.Error("the session assigns IDs")
	}
}
