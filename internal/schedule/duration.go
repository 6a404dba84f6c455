package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Unit is the unit a Duration value is expressed in.
type Unit string

const (
	UnitHours   Unit = "hours"
	UnitMinutes Unit = "minutes"
)

var durationRe = regexp.MustCompile(`^(\d+)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)$`)

// Duration is the length of a time slot.
type Duration struct {
	Value int
	Unit  Unit
}

// Valid reports whether the duration has a positive value and a known unit.
func (d Duration) Valid() bool {
	return d.Value > 0 && (d.Unit == UnitHours || d.Unit == UnitMinutes)
}

// Std converts the duration to a time.Duration. Invalid durations are zero.
func (d Duration) Std() time.Duration {
	if !d.Valid() {
		return 0
	}
	if d.Unit == UnitHours {
		return time.Duration(d.Value) * time.Hour
	}
	return time.Duration(d.Value) * time.Minute
}

// String renders the duration with the unit singularized for a value of 1,
// e.g. "1 hour", "2 hours", "30 minutes".
func (d Duration) String() string {
	unit := string(d.Unit)
	if d.Value == 1 {
		unit = strings.TrimSuffix(unit, "s")
	}
	return fmt.Sprintf("%d %s", d.Value, unit)
}

// ParseDuration parses a human-friendly duration.
// Supported formats: "2h", "90m", "1 hour", "30 minutes".
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Duration{}, fmt.Errorf("empty duration")
	}

	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, fmt.Errorf("invalid duration format %q (expected e.g. 2h, 90m, 1 hour)", s)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Duration{}, err
	}
	if n <= 0 {
		return Duration{}, fmt.Errorf("duration must be positive")
	}

	unit := UnitMinutes
	if strings.HasPrefix(m[2], "h") {
		unit = UnitHours
	}
	return Duration{Value: n, Unit: unit}, nil
}
