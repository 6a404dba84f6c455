package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/eventorbit/eventorbit/internal/schedule"
)

func (m calendarModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(renderMonth(m, m.cursor.Year, m.cursor.Month, true))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(schedule.FormatDate(m.cursor)))
	b.WriteString("\n")
	descriptors := m.cal.Descriptors(m.cursor)
	if len(descriptors) == 0 {
		b.WriteString(descriptorStyle.Render(Silent("no time slots")))
		b.WriteString("\n")
	}
	for _, d := range descriptors {
		b.WriteString(descriptorStyle.Render(d))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.MaxWidth(m.termWidth).Render(fmt.Sprintf("%d scheduled days  ←→↑↓ move  n/p next/prev scheduled  [/] month  q quit", m.cal.Len())))
	b.WriteString("\n")
	return b.String()
}

// renderMonth draws a month grid. Scheduled days are highlighted; with
// withCursor the cursor day is shown reversed.
func renderMonth(m calendarModel, year int, month time.Month, withCursor bool) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", month, year)
	b.WriteString(headerStyle.Render(padCenter(title, 7*calCellWidth)))
	b.WriteString("\n")

	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(m.weekStart) + i) % 7)
		b.WriteString(headerStyle.Render(padLeft(wd.String()[:2], calCellWidth)))
	}
	b.WriteString("\n")

	for _, week := range schedule.MonthGrid(year, month, m.weekStart) {
		for _, d := range week {
			if d.IsZero() {
				b.WriteString(strings.Repeat(" ", calCellWidth))
				continue
			}
			cell := padLeft(fmt.Sprintf("%d", d.Day), calCellWidth)
			switch {
			case withCursor && d == m.cursor:
				cell = selectedStyle.Render(cell)
			case m.cal.Selectable(d):
				cell = activeDayStyle.Render(cell)
			default:
				cell = idleDayStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// padLeft right-aligns s in a field of width, truncating if longer.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// padCenter centers s in a field of width, truncating if longer.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
