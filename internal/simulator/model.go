// Package simulator is a local stand-in for the in-game pro-settings menu.
// It lets a profile be dry-run and inspected without the game: the same rows,
// the same directional semantics, the same clamping.
package simulator

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/protunedev/protune/internal/profile"
)

// TickerMsg drives the timeout checks.
type TickerMsg time.Time

// Config holds the simulator timeouts.
type Config struct {
	IdleTimeout    time.Duration
	SessionTimeout time.Duration
}

// Row is one menu entry with its live value.
type Row struct {
	Name      string
	Value     float64
	Increment float64
	Absolute  bool
	Range     profile.Range
}

// Adjust applies one Left or Right press. For absolute settings Right moves
// the value down, matching the in-game menu. The value clamps to the row's
// range; it reports whether the value changed.
func (r *Row) Adjust(right bool) bool {
	delta := r.Increment
	if right == r.Absolute {
		delta = -delta
	}
	next := r.Value + delta
	if next < r.Range.Min {
		next = r.Range.Min
	}
	if next > r.Range.Max {
		next = r.Range.Max
	}
	changed := next != r.Value
	r.Value = next
	return changed
}

// Model is the bubbletea model for the menu simulator.
type Model struct {
	Car  string
	Rows []Row

	cursor     int
	lastInput  time.Time
	startedAt  time.Time
	cfg        Config
	quitReason string
	width      int
	height     int
}

// New builds a simulator from a profile. Rows start at the menu's default
// values, not the profile targets; the targets are what the user steers
// toward by hand.
func New(p *profile.Profile, cfg Config) *Model {
	m := &Model{
		Car: p.Car(),
		cfg: cfg,
	}
	for _, s := range p.Settings {
		m.Rows = append(m.Rows, Row{
			Name:      s.Name,
			Value:     s.StartValue(),
			Increment: s.Increment,
			Absolute:  s.Absolute,
			Range:     profile.RangeFor(s.Name),
		})
	}
	now := time.Now()
	m.lastInput = now
	m.startedAt = now
	return m
}

// Cursor returns the index of the highlighted row.
func (m *Model) Cursor() int {
	return m.cursor
}

// QuitReason reports why the simulator exited, if it timed out.
func (m *Model) QuitReason() string {
	return m.quitReason
}

// HandleKey applies one navigation or adjustment key by name ("up", "down",
// "left", "right"). It reports whether the state changed.
func (m *Model) HandleKey(key string) bool {
	m.lastInput = time.Now()
	switch key {
	case "up":
		if m.cursor > 0 {
			m.cursor--
			return true
		}
	case "down":
		if m.cursor < len(m.Rows)-1 {
			m.cursor++
			return true
		}
	case "left", "right":
		if len(m.Rows) > 0 {
			return m.Rows[m.cursor].Adjust(key == "right")
		}
	}
	return false
}

// timedOut checks the idle and session clocks against now.
func (m *Model) timedOut(now time.Time) (bool, string) {
	if now.Sub(m.lastInput) > m.cfg.IdleTimeout {
		return true, fmt.Sprintf("no input received for %s", m.cfg.IdleTimeout)
	}
	if now.Sub(m.startedAt) > m.cfg.SessionTimeout {
		return true, fmt.Sprintf("menu open for more than %s", m.cfg.SessionTimeout)
	}
	return false, ""
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init starts the timeout ticker.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles key and tick messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch key := msg.String(); key {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		default:
			m.HandleKey(key)
			return m, nil
		}

	case TickerMsg:
		if out, reason := m.timedOut(time.Time(msg)); out {
			m.quitReason = reason
			return m, tea.Quit
		}
		return m, tickCmd()
	}
	return m, nil
}

// View renders the menu rows with the current one highlighted.
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(m.render())
	view.AltScreen = true
	return view
}

func (m *Model) render() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("6")).
		Bold(true).
		Padding(0, 1)
	normalStyle := lipgloss.NewStyle().Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	lines := []string{
		titleStyle.Render("Pro Settings: " + m.Car),
		"",
	}
	for i, row := range m.Rows {
		info := fmt.Sprintf("%-22s %8.2f", row.Name, row.Value)
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+info))
		} else {
			lines = append(lines, normalStyle.Render("  "+info))
		}
	}
	lines = append(lines, "",
		dimStyle.Render("↑/↓ select   ←/→ adjust   q quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
