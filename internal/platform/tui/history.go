package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/orbdrift/internal/storage"
)

// History layout constants
const (
	maxHistory     = 100 // Max rounds to load
	historyChrome  = 7   // Rows used by title, stats, borders and help
	minTableHeight = 3
)

var (
	historyTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	historyDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	historyFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// HistoryView shows the rounds played in this session.
type HistoryView struct {
	session *storage.Session
	table   table.Model
	rounds  []storage.Round
	stats   storage.Stats
	err     error
	width   int
	height  int
}

// NewHistoryView creates a history view over session. A nil session shows an empty table.
func NewHistoryView(session *storage.Session, width, height int) HistoryView {
	h := HistoryView{session: session, width: width, height: height}
	h.table = h.createTable()
	return h
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 16},
		{Title: "Orbs", Width: 6},
		{Title: "Outcome", Width: 13},
		{Title: "Time", Width: 8},
	}
}

// createTable creates a table sized to the view.
func (h *HistoryView) createTable() table.Model {
	height := h.height - historyChrome
	if height < minTableHeight {
		height = minTableHeight
	}

	t := table.New(
		table.WithColumns(historyColumns()),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	t.SetRows(HistoryRows(h.rounds))
	return t
}

// HistoryRows formats rounds as table rows, numbered from the oldest.
func HistoryRows(rounds []storage.Round) []table.Row {
	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		rows[i] = table.Row{
			fmt.Sprintf("%d", len(rounds)-i),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d %s", r.Level, r.LevelName),
			fmt.Sprintf("%d", r.Orbs),
			r.Outcome,
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
		}
	}
	return rows
}

// Refresh reloads the history from the session.
func (h *HistoryView) Refresh() {
	h.err = nil
	if h.session == nil {
		h.rounds = nil
		h.stats = storage.Stats{}
	} else {
		h.rounds, h.err = h.session.Recent(maxHistory)
		if h.err == nil {
			h.stats, h.err = h.session.Stats()
		}
	}
	h.table.SetRows(HistoryRows(h.rounds))
	h.table.GotoTop()
}

// Resize adapts the table to a new terminal size.
func (h *HistoryView) Resize(width, height int) {
	h.width, h.height = width, height
	h.table = h.createTable()
}

// Update passes scrolling keys to the table.
func (h HistoryView) Update(msg tea.Msg) (HistoryView, tea.Cmd) {
	var cmd tea.Cmd
	h.table, cmd = h.table.Update(msg)
	return h, cmd
}

// View renders the history screen.
func (h HistoryView) View() string {
	var b strings.Builder
	b.WriteString(historyTitle.Render("SESSION HISTORY"))
	b.WriteString("\n")

	switch {
	case h.err != nil:
		b.WriteString(historyDim.Render("history unavailable: " + h.err.Error()))
	case len(h.rounds) == 0:
		b.WriteString(historyDim.Render("No rounds played yet."))
	default:
		b.WriteString(historyDim.Render(fmt.Sprintf(
			"rounds %d  best %d  avg %.1f  orbs %d  victories %d",
			h.stats.Rounds, h.stats.BestScore, h.stats.AvgScore, h.stats.TotalOrbs, h.stats.Victories)))
		b.WriteString("\n")
		b.WriteString(historyFrame.Render(h.table.View()))
	}
	return b.String()
}
