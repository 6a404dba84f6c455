package schedule

import "time"

// Calendar answers the per-day questions a calendar view asks: which days
// are selectable and what runs on them. It is built once per rule list.
type Calendar struct {
	daily map[string][]string
	days  []Date // active days, ascending
}

// NewCalendar expands rules into a Calendar.
func NewCalendar(rules []Rule) Calendar {
	expanded := ExpandDays(rules)
	c := Calendar{
		daily: ExpandDaily(rules),
		days:  make([]Date, len(expanded)),
	}
	for i, ds := range expanded {
		c.days[i] = ds.Date
	}
	return c
}

// Selectable reports whether d has at least one occurrence.
func (c Calendar) Selectable(d Date) bool {
	return len(c.daily[DateKey(d)]) > 0
}

// Descriptors returns the slot descriptors active on d.
func (c Calendar) Descriptors(d Date) []string {
	return c.daily[DateKey(d)]
}

// Days returns every active day in ascending order.
func (c Calendar) Days() []Date {
	return c.days
}

// Len returns the number of active days.
func (c Calendar) Len() int {
	return len(c.days)
}

// First returns the earliest active day.
func (c Calendar) First() (Date, bool) {
	if len(c.days) == 0 {
		return Date{}, false
	}
	return c.days[0], true
}

// NextSelectable returns the first active day strictly after d.
func (c Calendar) NextSelectable(d Date) (Date, bool) {
	for _, day := range c.days {
		if day.After(d) {
			return day, true
		}
	}
	return Date{}, false
}

// PrevSelectable returns the last active day strictly before d.
func (c Calendar) PrevSelectable(d Date) (Date, bool) {
	for i := len(c.days) - 1; i >= 0; i-- {
		if c.days[i].Before(d) {
			return c.days[i], true
		}
	}
	return Date{}, false
}

// InMonth returns the active days that fall in the given month.
func (c Calendar) InMonth(year int, month time.Month) []Date {
	var out []Date
	for _, d := range c.days {
		if d.Year == year && d.Month == month {
			out = append(out, d)
		}
	}
	return out
}

// MonthGrid lays out a month as weeks of seven cells. Cells outside the
// month are zero Dates. weekStart selects the first column.
func MonthGrid(year int, month time.Month, weekStart time.Weekday) [][7]Date {
	first := Date{Year: year, Month: month, Day: 1}
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7

	var weeks [][7]Date
	var week [7]Date
	col := offset
	for d := first; d.Month == month; d = d.AddDays(1) {
		week[col] = d
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]Date{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
