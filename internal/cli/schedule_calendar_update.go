package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eventorbit/eventorbit/internal/schedule"
)

func (m calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l":
			m.cursor = m.cursor.AddDays(1)
		case "left", "h":
			m.cursor = m.cursor.AddDays(-1)
		case "down", "j":
			m.cursor = m.cursor.AddDays(7)
		case "up", "k":
			m.cursor = m.cursor.AddDays(-7)
		case "n", "tab":
			if d, ok := m.cal.NextSelectable(m.cursor); ok {
				m.cursor = d
			}
		case "p", "shift+tab":
			if d, ok := m.cal.PrevSelectable(m.cursor); ok {
				m.cursor = d
			}
		case "]":
			m.cursor = m.monthStart(nextMonth(m.cursor.Year, m.cursor.Month))
		case "[":
			m.cursor = m.monthStart(prevMonth(m.cursor.Year, m.cursor.Month))
		}
	}
	return m, nil
}

// monthStart returns the first scheduled day of the month, or the 1st.
func (m calendarModel) monthStart(year int, month time.Month) schedule.Date {
	if days := m.cal.InMonth(year, month); len(days) > 0 {
		return days[0]
	}
	return schedule.Date{Year: year, Month: month, Day: 1}
}
