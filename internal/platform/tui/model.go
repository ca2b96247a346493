package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orbdrift/internal/core"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift"
	"github.com/vovakirdan/orbdrift/internal/storage"
)

// helpRows is the space reserved below the game screen.
const helpRows = 1

// Model is the Bubble Tea model for playing Orb Drift.
type Model struct {
	game    *orbdrift.Game
	session *storage.Session
	logger  *log.Logger
	screen  *core.Screen
	palette Palette
	keys    KeyMap
	help    help.Model
	history HistoryView
	config  core.RuntimeConfig
	input   core.InputFrame
	clock   *frameClock

	showHistory bool
	quitting    bool
}

// NewModel creates a model for game. Finished rounds are saved to session when it is not nil.
func NewModel(game *orbdrift.Game, session *storage.Session, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if session != nil {
		game.OnRoundEnd(func(s orbdrift.RoundSummary) {
			if _, err := session.SaveRound(s.Record()); err != nil {
				logger.Warn("could not save round", "round", s.Round, "error", err)
			}
		})
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:    game,
		session: session,
		logger:  logger,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 1)),
		palette: DefaultPalette(),
		keys:    DefaultKeyMap(),
		help:    h,
		history: NewHistoryView(session, cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		input:   core.NewInputFrame(),
		clock:   &frameClock{rate: cfg.TickRate},
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.game.Abandon()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			m.history.Refresh()
		}
		m.clock.reset()
		return m, nil
	}

	if m.showHistory {
		if key.Matches(msg, m.keys.Pause) {
			m.showHistory = false
			m.clock.reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}

	if a := m.keys.Action(msg); a != core.ActionNone {
		m.input.Set(a)
	}
	return m, nil
}

// handleResize processes window resize events. The round keeps running;
// the renderer rescales the world to the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.history.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the game by the real time since the previous tick.
// The world is frozen while the history view is open.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.showHistory {
		m.game.Step(m.input, m.clock.delta(now))
		m.input.Clear()
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to ~/.orbdrift/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".orbdrift", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHistory {
		return m.history.View() + "\n" + m.help.ShortHelpView([]key.Binding{m.keys.History, m.keys.Pause, m.keys.Quit})
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for game.
func Run(game *orbdrift.Game, session *storage.Session, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, session, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
