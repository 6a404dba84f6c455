package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Weekday is a repeat-day tag as stored on the wire: "sun" through "sat".
type Weekday string

const (
	Sun Weekday = "sun"
	Mon Weekday = "mon"
	Tue Weekday = "tue"
	Wed Weekday = "wed"
	Thu Weekday = "thu"
	Fri Weekday = "fri"
	Sat Weekday = "sat"
)

// AllWeekdays lists the tags in calendar order, Sunday first.
var AllWeekdays = []Weekday{Sun, Mon, Tue, Wed, Thu, Fri, Sat}

var weekdayTags = map[time.Weekday]Weekday{
	time.Sunday:    Sun,
	time.Monday:    Mon,
	time.Tuesday:   Tue,
	time.Wednesday: Wed,
	time.Thursday:  Thu,
	time.Friday:    Fri,
	time.Saturday:  Sat,
}

var rruleWeekdays = map[Weekday]rrule.Weekday{
	Sun: rrule.SU,
	Mon: rrule.MO,
	Tue: rrule.TU,
	Wed: rrule.WE,
	Thu: rrule.TH,
	Fri: rrule.FR,
	Sat: rrule.SA,
}

// WeekdayOf returns the tag for a time.Weekday.
func WeekdayOf(wd time.Weekday) Weekday {
	return weekdayTags[wd]
}

// Valid reports whether w is one of the seven known tags.
func (w Weekday) Valid() bool {
	_, ok := rruleWeekdays[w]
	return ok
}

// Title returns the capitalized tag, e.g. "Mon".
func (w Weekday) Title() string {
	if w == "" {
		return ""
	}
	return strings.ToUpper(string(w[:1])) + string(w[1:])
}

func (w Weekday) index() int {
	for i, d := range AllWeekdays {
		if d == w {
			return i
		}
	}
	return len(AllWeekdays)
}

// WeekdaySet is the set of days a rule repeats on. A nil set means the rule
// does not repeat; a non-nil empty set repeats on no day at all.
type WeekdaySet map[Weekday]struct{}

// NewWeekdaySet returns a non-nil set holding days.
func NewWeekdaySet(days ...Weekday) WeekdaySet {
	s := make(WeekdaySet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

// FullWeek returns a set holding all seven days.
func FullWeek() WeekdaySet {
	return NewWeekdaySet(AllWeekdays...)
}

// IsFullWeek reports whether all seven days are in the set.
func (s WeekdaySet) IsFullWeek() bool {
	for _, d := range AllWeekdays {
		if !s.Has(d) {
			return false
		}
	}
	return true
}

// Has reports whether d is in the set.
func (s WeekdaySet) Has(d Weekday) bool {
	_, ok := s[d]
	return ok
}

// Sorted returns the members in calendar order, Sunday first.
func (s WeekdaySet) Sorted() []Weekday {
	out := make([]Weekday, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index() < out[j].index() })
	return out
}

// Clone copies the set, preserving the nil/empty distinction.
func (s WeekdaySet) Clone() WeekdaySet {
	if s == nil {
		return nil
	}
	out := make(WeekdaySet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

func (s WeekdaySet) rrule() []rrule.Weekday {
	var out []rrule.Weekday
	for _, d := range s.Sorted() {
		if wd, ok := rruleWeekdays[d]; ok {
			out = append(out, wd)
		}
	}
	return out
}

// ParseWeekdays parses a comma-separated list of day names or one of the
// shortcuts "all", "daily", "weekdays", "weekends".
func ParseWeekdays(s string) (WeekdaySet, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "all", "daily", "every day":
		return FullWeek(), nil
	case "weekdays":
		return NewWeekdaySet(Mon, Tue, Wed, Thu, Fri), nil
	case "weekends":
		return NewWeekdaySet(Sat, Sun), nil
	case "":
		return nil, fmt.Errorf("no days given")
	}

	set := NewWeekdaySet()
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if full, ok := weekdayNames[part]; ok {
			set[WeekdayOf(full)] = struct{}{}
			continue
		}
		d := Weekday(part)
		if !d.Valid() {
			return nil, fmt.Errorf("unknown day %q", part)
		}
		set[d] = struct{}{}
	}
	return set, nil
}
