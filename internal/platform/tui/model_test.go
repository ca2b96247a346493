package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/core"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift/sim"
	"github.com/vovakirdan/orbdrift/internal/storage"
)

type harness struct {
	t       *testing.T
	m       Model
	game    *orbdrift.Game
	session *storage.Session
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	game, err := orbdrift.New(config.DefaultConfig(), orbdrift.WithSeed(1))
	if err != nil {
		t.Fatalf("orbdrift.New: %v", err)
	}
	session, err := storage.OpenSession()
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	t.Cleanup(func() { session.Close() })

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	return &harness{
		t:       t,
		m:       NewModel(game, session, cfg, nil),
		game:    game,
		session: session,
		now:     time.Unix(1000, 0),
	}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update returned %T", next)
	}
	h.m = m
	return cmd
}

func (h *harness) tick(d time.Duration) {
	h.now = h.now.Add(d)
	h.send(TickMsg(h.now))
}

func TestModelStartsOnFlapAndUsesRealDeltas(t *testing.T) {
	h := newHarness(t)
	if cmd := h.m.Init(); cmd == nil {
		t.Fatal("Init should start the tick loop")
	}

	h.send(tea.KeyMsg{Type: tea.KeySpace})
	h.tick(0)
	if st := h.game.State(); st.Status != sim.StatusPlaying {
		t.Fatalf("space should start a round, got %s", st.Status)
	}
	first := h.game.State().ElapsedTime

	h.tick(25 * time.Millisecond)
	if got := h.game.State().ElapsedTime - first; got < 24.999 || got > 25.001 {
		t.Errorf("tick should advance by the real delta, got %v", got)
	}

	if view := h.m.View(); !strings.Contains(view, "Score:") {
		t.Error("play view should show the HUD")
	}
}

func TestModelSavesFinishedRounds(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 1000 && h.game.State().Status != sim.StatusGameOver; i++ {
		h.tick(16 * time.Millisecond)
	}
	if h.game.State().Status != sim.StatusGameOver {
		t.Fatal("round should end on the ground")
	}

	n, err := h.session.Count()
	if err != nil || n != 1 {
		t.Fatalf("expected one saved round, got %d (%v)", n, err)
	}
	rounds, _ := h.session.Recent(1)
	if rounds[0].Outcome != sim.OutcomeCollision.String() {
		t.Errorf("saved outcome = %q", rounds[0].Outcome)
	}
}

func TestModelHistoryFreezesWorld(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.tick(16 * time.Millisecond)

	h.send(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(h.m.View(), "SESSION HISTORY") {
		t.Fatal("tab should open the history view")
	}
	elapsed := h.game.State().ElapsedTime
	for i := 0; i < 10; i++ {
		h.tick(16 * time.Millisecond)
	}
	if h.game.State().ElapsedTime != elapsed {
		t.Error("world advanced while the history view was open")
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(h.m.View(), "SESSION HISTORY") {
		t.Error("esc should close the history view")
	}
	h.tick(time.Hour)
	if d := h.game.State().ElapsedTime - elapsed; d > 17 {
		t.Errorf("the first frame after the history view should be nominal, advanced %v", d)
	}
}

func TestModelQuitAbandonsRound(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.tick(16 * time.Millisecond)

	if cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatal("quit should return a command")
	}
	if h.m.View() != "" {
		t.Error("view should be empty after quitting")
	}
	if n, _ := h.session.Count(); n != 1 {
		t.Errorf("abandoned round should be saved, count = %d", n)
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.tick(16 * time.Millisecond)

	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	if h.m.screen.Width() != 120 || h.m.screen.Height() != 40-helpRows {
		t.Errorf("screen = %dx%d", h.m.screen.Width(), h.m.screen.Height())
	}
	if h.game.State().Status != sim.StatusPlaying {
		t.Error("resizing should not end the round")
	}
}

func TestPaletteRenderKeepsText(t *testing.T) {
	scr := core.NewScreen(12, 2)
	scr.DrawTextColored(0, 0, "hello", core.ColorRed)
	scr.DrawText(0, 1, "world")

	out := DefaultPalette().Render(scr)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected two rows, got %q", out)
	}
}

func TestHistoryRows(t *testing.T) {
	rows := HistoryRows([]storage.Round{
		{Score: 7, Level: 2, LevelName: "Asteroid Belt", Orbs: 3, Outcome: "collision", Duration: 1500 * time.Millisecond},
		{Score: 2, Level: 1, LevelName: "Outer Rim", Outcome: "time-expired"},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "2" || rows[0][2] != "2 Asteroid Belt" || rows[0][5] != "1.5s" {
		t.Errorf("unexpected row %v", rows[0])
	}
}
