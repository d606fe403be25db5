// Package statsui provides the Bubble Tea reading history browser.
package statsui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuider/internal/model"
	"github.com/verte-zerg/tuider/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

const helpLine = "↑/↓ scroll • g/G top/bottom • q quit"

// Model implements the Bubble Tea history UI.
type Model struct {
	report stats.Report
	window int

	sessions table.Model

	width  int
	height int
}

// NewModel constructs a history UI over a prebuilt report. Sessions are
// listed newest first.
func NewModel(report stats.Report, window int) *Model {
	m := &Model{report: report, window: window}
	m.sessions = buildSessionTable(report.Sessions)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.sessions.GotoTop()
			return m, nil
		case "G", "end":
			m.sessions.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.sessions, cmd = m.sessions.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	footer := headerStyle.Render(helpLine)
	bodyHeight := max(1, m.height-lipgloss.Height(header)-1)
	body := "No reading sessions found."
	if len(m.report.Sessions) > 0 {
		body = m.sessions.View()
	}
	return strings.Join([]string{
		header,
		fitLines(body, m.width, bodyHeight),
		footer,
	}, "\n")
}

func (m *Model) updateLayout() {
	headerHeight := lipgloss.Height(m.renderHeader())
	m.sessions.SetWidth(m.width)
	m.sessions.SetHeight(max(1, m.height-headerHeight-1))
}

func (m *Model) renderHeader() string {
	sum := m.report.Summary
	total := time.Duration(sum.DurationMs) * time.Millisecond
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", sum.Sessions)),
		metricCard("Finished", fmt.Sprintf("%d", sum.Finished)),
		metricCard("Words", fmt.Sprintf("%d", sum.WordsRead)),
		metricCard("Eff. WPM", fmt.Sprintf("%.1f", stats.EffectiveWPM(sum.WordsRead, total))),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if m.width > 0 && m.width < lipgloss.Width(row) {
		row = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	trend := m.trend()
	if trend == "" {
		return row
	}
	return row + "\n" + headerStyle.Render("WPM trend: ") + trend
}

func (m *Model) trend() string {
	if len(m.report.Sessions) < 2 {
		return ""
	}
	values := make([]float64, 0, len(m.report.Sessions))
	for _, rs := range m.report.Sessions {
		values = append(values, float64(rs.FinalWPM))
	}
	return stats.Sparkline(stats.MovingAverage(values, m.window))
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildSessionTable(sessions []model.ReadingSession) table.Model {
	columns := []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "Source", Width: 24},
		{Title: "Read", Width: 11},
		{Title: "Done", Width: 4},
		{Title: "WPM", Width: 5},
		{Title: "Eff. WPM", Width: 8},
	}
	rows := make([]table.Row, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		rs := sessions[i]
		done := ""
		if rs.Finished {
			done = "yes"
		}
		rows = append(rows, table.Row{
			rs.EndedAt.Local().Format("2006-01-02 15:04"),
			truncateLine(rs.Source, 24),
			fmt.Sprintf("%d/%d", rs.WordsRead, rs.TotalWords),
			done,
			fmt.Sprintf("%d", rs.FinalWPM),
			fmt.Sprintf("%.1f", stats.EffectiveWPM(rs.WordsRead, rs.Duration())),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
