package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

var (
	// 6:30pm, 6.30pm
	timeMinutesAMPM = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})\s*(am|pm)$`)
	// 6pm
	timeAMPM = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)
	// 18:00, 18.00
	time24h = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)
)

// TimeOfDay is the start of a time slot on the wall clock of TimeZone.
type TimeOfDay struct {
	Hour     int    // 0-23
	Minute   int    // 0-59, the editor grid only offers 0 and 30
	TimeZone string // IANA zone name, empty means UTC
}

// String returns TimeOfDay in "HH:MM" format.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Format12h returns the time as "H:MM AM/PM".
func (t TimeOfDay) Format12h() string {
	suffix := "AM"
	display := t.Hour
	switch {
	case t.Hour == 0:
		display = 12
	case t.Hour == 12:
		suffix = "PM"
	case t.Hour > 12:
		display = t.Hour - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, t.Minute, suffix)
}

// Before reports whether t is earlier in the day than other. Zones are ignored.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// Valid reports whether hour and minute are within range.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// Location resolves TimeZone. Unknown or empty zones resolve to UTC.
func (t TimeOfDay) Location() *time.Location {
	if t.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(t.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// On composes the instant at which this time of day occurs on d, in the
// time's own zone.
func (t TimeOfDay) On(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, t.Location())
}

// ParseTimeOfDay parses a clock time and attaches the given zone.
// Supported formats: "6:30pm", "6.30pm", "6pm", "18:00", "18.00".
func ParseTimeOfDay(s, zone string) (TimeOfDay, error) {
	t, err := parseTimeOfDay(s)
	if err != nil {
		return TimeOfDay{}, err
	}
	if zone != "" {
		if _, err := time.LoadLocation(zone); err != nil {
			return TimeOfDay{}, fmt.Errorf("unknown time zone %q: %w", zone, err)
		}
	}
	t.TimeZone = zone
	return t, nil
}

func parseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if m := timeMinutesAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], m[2], m[3])
	}

	if m := timeAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], "0", m[2])
	}

	if m := time24h.FindStringSubmatch(s); m != nil {
		return parseHourMinute24(m[1], m[2])
	}

	return TimeOfDay{}, fmt.Errorf("unrecognized time format %q", s)
}

func parseHourMinuteAMPM(hourStr, minStr, ampm string) (TimeOfDay, error) {
	hour, _ := strconv.Atoi(hourStr)
	minute, _ := strconv.Atoi(minStr)

	if hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("hour %d out of range for 12-hour format", hour)
	}
	if minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
	}

	if ampm == "am" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func parseHourMinute24(hourStr, minStr string) (TimeOfDay, error) {
	hour, _ := strconv.Atoi(hourStr)
	minute, _ := strconv.Atoi(minStr)

	if hour > 23 {
		return TimeOfDay{}, fmt.Errorf("hour %d out of range", hour)
	}
	if minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}
