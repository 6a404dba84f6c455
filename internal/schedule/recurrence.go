package schedule

import (
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"
)

// rrule numbers weekdays from Monday.
var weekdaysByRRuleDay = []Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// parseRecurrence reads a raw RRULE (with a DTSTART line) into the pieces of
// a Rule. Only plain daily and weekly rules translate: a rule with COUNT=1
// becomes a one-off, DAILY becomes the full week, WEEKLY keeps its BYDAY.
func parseRecurrence(s string) (Date, *Date, WeekdaySet, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), `\n`, "\n")
	raw = strings.ReplaceAll(strings.ToUpper(raw), " RRULE:", "\nRRULE:")

	r, err := rrule.StrToRRule(raw)
	if err != nil {
		return Date{}, nil, nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
	}

	opts := r.OrigOptions
	if opts.Dtstart.IsZero() {
		return Date{}, nil, nil, fmt.Errorf("RRULE needs a DTSTART")
	}
	if opts.Interval > 1 {
		return Date{}, nil, nil, fmt.Errorf("intervals other than 1 are not supported")
	}
	start := DateOf(opts.Dtstart.UTC())

	if opts.Count == 1 {
		return start, nil, nil, nil
	}
	if opts.Until.IsZero() {
		return Date{}, nil, nil, fmt.Errorf("RRULE needs an UNTIL date")
	}
	end := DateOf(opts.Until.UTC())

	switch opts.Freq {
	case rrule.DAILY:
		return start, &end, FullWeek(), nil
	case rrule.WEEKLY:
		if len(opts.Byweekday) == 0 {
			return start, &end, NewWeekdaySet(WeekdayOf(start.Weekday())), nil
		}
		days := NewWeekdaySet()
		for _, wd := range opts.Byweekday {
			days[weekdaysByRRuleDay[wd.Day()]] = struct{}{}
		}
		return start, &end, days, nil
	}
	return Date{}, nil, nil, fmt.Errorf("unsupported frequency %v", opts.Freq)
}

// RRuleString renders the recurrence of r as an RFC 5545 block
// ("DTSTART:...\nRRULE:..."). One-off rules render as COUNT=1. An empty
// RepeatDays set has no RRULE form: without BYDAY, WEEKLY falls back to the
// weekday of DTSTART.
func RRuleString(r Rule) (string, error) {
	opts := rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: r.StartDate.Time(),
		Count:   1,
	}
	if r.Repeats() {
		if r.EndDate == nil {
			return "", fmt.Errorf("repeating rule has no end date")
		}
		if len(r.RepeatDays) == 0 {
			return "", fmt.Errorf("repeating rule has no repeat days")
		}
		opts = rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   r.StartDate.Time(),
			Until:     r.EndDate.Time(),
			Byweekday: r.RepeatDays.rrule(),
		}
	}
	rr, err := rrule.NewRRule(opts)
	if err != nil {
		return "", err
	}
	return rr.String(), nil
}
