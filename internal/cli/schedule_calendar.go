package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/schedule"
)

const calCellWidth = 4

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	footerStyle     = lipgloss.NewStyle().Faint(true)
	activeDayStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C5CFF"))
	idleDayStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle   = lipgloss.NewStyle().Reverse(true)
	descriptorStyle = lipgloss.NewStyle().PaddingLeft(2)
)

var scheduleCalendarCmd = LeafCommand{
	Use:     "calendar DRAFT",
	Short:   "Browse the days a draft's schedules produce",
	Aliases: []string{"cal"},
	Args:    cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "month", Usage: "month to open, as YYYY-MM (default: first scheduled month)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		month, _ := cmd.Flags().GetString("month")

		d, rules, err := loadDraftRules(a.homeDir, args[0])
		if err != nil {
			return err
		}
		m, err := newCalendarModel(d.Name, rules, a.cfg.FirstWeekday(), month, time.Now())
		if err != nil {
			return err
		}
		return runScheduleCalendar(cmd, m)
	},
}.Build()

func init() {
	scheduleCalendarCmd.ValidArgsFunction = completeDraftKeys
}

type calendarModel struct {
	title     string
	cal       schedule.Calendar
	weekStart time.Weekday
	cursor    schedule.Date
	termWidth int
}

// newCalendarModel opens on month (YYYY-MM) when given, else on the first
// scheduled day, else on today.
func newCalendarModel(title string, rules schedule.Set, weekStart time.Weekday, month string, now time.Time) (calendarModel, error) {
	m := calendarModel{
		title:     title,
		cal:       schedule.NewCalendar(rules),
		weekStart: weekStart,
		termWidth: 80,
	}

	switch first, ok := m.cal.First(); {
	case month != "":
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return calendarModel{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
		}
		m.cursor = schedule.Date{Year: t.Year(), Month: t.Month(), Day: 1}
		if days := m.cal.InMonth(t.Year(), t.Month()); len(days) > 0 {
			m.cursor = days[0]
		}
	case ok:
		m.cursor = first
	default:
		m.cursor = schedule.DateOf(now)
	}
	return m, nil
}

func (m calendarModel) Init() tea.Cmd {
	return nil
}

func runScheduleCalendar(cmd *cobra.Command, m calendarModel) error {
	out := cmd.OutOrStdout()

	// Non-TTY fallback: print every scheduled month
	if !isTerminal(out) {
		return printStaticCalendar(out, m)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

func printStaticCalendar(w io.Writer, m calendarModel) error {
	if m.cal.Len() == 0 {
		_, err := fmt.Fprintf(w, "%s\n", Silent("(no scheduled days)"))
		return err
	}

	first := m.cal.Days()[0]
	last := m.cal.Days()[m.cal.Len()-1]
	year, month := first.Year, first.Month
	for {
		_, _ = fmt.Fprint(w, renderMonth(m, year, month, false))
		for _, d := range m.cal.InMonth(year, month) {
			_, _ = fmt.Fprintf(w, "  %s\n", Text(fmt.Sprintf("%s:  %s", schedule.FormatDate(d), strings.Join(m.cal.Descriptors(d), ", "))))
		}
		_, _ = fmt.Fprintln(w)

		if year == last.Year && month == last.Month {
			return nil
		}
		year, month = nextMonth(year, month)
	}
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
