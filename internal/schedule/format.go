package schedule

import (
	"fmt"
	"strings"
	"time"
)

const dateKeyLayout = "02-01-2006"

// DateKey returns the "dd-mm-yyyy" key used by the daily occurrence map.
func DateKey(d Date) string {
	return d.Time().Format(dateKeyLayout)
}

// ParseDateKey parses a "dd-mm-yyyy" key.
func ParseDateKey(key string) (Date, error) {
	t, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return DateOf(t), nil
}

// FormatTimeSlot renders a slot as "<12-hour start> for <value> <unit>",
// e.g. "6:00 PM for 1 hour". Incomplete slots render as "(incomplete)".
func FormatTimeSlot(s TimeSlot) string {
	if !IsTimeSlotComplete(s) {
		return "(incomplete)"
	}
	return fmt.Sprintf("%s for %s", s.StartTime.Format12h(), s.Duration.String())
}

// FormatDate renders a date as "Mon 3 Jun 2024".
func FormatDate(d Date) string {
	return d.Time().Format("Mon 2 Jan 2006")
}

// FormatDaySlots formats a day as "Mon 3 Jun 2024:  6:00 PM for 2 hours".
// Multiple slots are comma-separated.
func FormatDaySlots(ds DaySlots) string {
	parts := make([]string, len(ds.Slots))
	for i, s := range ds.Slots {
		parts[i] = FormatTimeSlot(s)
	}
	return fmt.Sprintf("%s:  %s", FormatDate(ds.Date), strings.Join(parts, ", "))
}

// FormatRepeatDays describes a repeat set: "every day", "every weekday",
// "every weekend", "every Mon, Wed" or "no days".
func FormatRepeatDays(s WeekdaySet) string {
	days := s.Sorted()
	switch {
	case len(days) == 0:
		return "no days"
	case len(days) == len(AllWeekdays):
		return "every day"
	case matchExactSet(days, Mon, Tue, Wed, Thu, Fri):
		return "every weekday"
	case matchExactSet(days, Sat, Sun):
		return "every weekend"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Title()
	}
	return "every " + strings.Join(names, ", ")
}

// FormatRule returns a one-line summary of a rule. Slots are joined with
// " + ".
func FormatRule(r Rule) string {
	slots := make([]string, len(r.TimeSlots))
	for i, s := range r.TimeSlots {
		slots[i] = FormatTimeSlot(s)
	}
	slotText := strings.Join(slots, " + ")
	if slotText == "" {
		slotText = "(no time slots)"
	}

	if !r.Repeats() {
		return fmt.Sprintf("%s: %s", FormatDate(r.StartDate), slotText)
	}

	end := "?"
	if r.EndDate != nil {
		end = FormatDate(*r.EndDate)
	}
	return fmt.Sprintf("%s – %s, %s: %s", FormatDate(r.StartDate), end, FormatRepeatDays(r.RepeatDays), slotText)
}

// matchExactSet reports whether actual holds exactly the expected days.
func matchExactSet(actual []Weekday, expected ...Weekday) bool {
	if len(actual) != len(expected) {
		return false
	}
	want := NewWeekdaySet(expected...)
	for _, a := range actual {
		if !want.Has(a) {
			return false
		}
	}
	return true
}
