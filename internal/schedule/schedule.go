package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	slotSeparator = regexp.MustCompile(`\s*(?:\+|\band\b)\s*`)
	rangeClause   = regexp.MustCompile(`^every (.+?) from (.+?) (?:to|until) (.+)$`)
)

// ParseRule parses a one-line rule description into a Rule. The expected
// format is "<time> for <duration> [+ <time> for <duration>...] <when>" where
// <when> is one of:
//
//	on <date>
//	every <days> from <date> to <date>
//	<raw RRULE with DTSTART>
//
// Start times are tagged with zone. Relative dates resolve against now.
func ParseRule(input, zone string, now time.Time) (Rule, error) {
	normalized := strings.TrimSpace(input)
	lower := asciiLower(normalized)

	var slotPart, when string
	switch {
	case strings.Contains(lower, " every "):
		idx := strings.Index(lower, " every ")
		slotPart, when = lower[:idx], lower[idx+1:]
	case strings.Contains(lower, " on "):
		idx := strings.Index(lower, " on ")
		slotPart, when = lower[:idx], lower[idx+1:]
	default:
		idx := rawRRuleIndex(lower)
		if idx == -1 {
			return Rule{}, fmt.Errorf("expected 'on <date>', 'every <days> from <date> to <date>' or an RRULE in %q", input)
		}
		slotPart, when = lower[:idx], normalized[idx:]
	}

	slots, err := parseSlots(slotPart, zone)
	if err != nil {
		return Rule{}, err
	}

	rule := Rule{TimeSlots: slots}
	when = strings.TrimSpace(when)

	switch {
	case isRawRRule(when):
		start, end, days, err := parseRecurrence(when)
		if err != nil {
			return Rule{}, fmt.Errorf("invalid recurrence: %w", err)
		}
		rule.StartDate, rule.EndDate, rule.RepeatDays = start, end, days

	case strings.HasPrefix(when, "on "):
		d, err := ParseDate(when, now)
		if err != nil {
			return Rule{}, err
		}
		rule.StartDate = d

	default:
		m := rangeClause.FindStringSubmatch(when)
		if m == nil {
			return Rule{}, fmt.Errorf("expected 'every <days> from <date> to <date>', got %q", when)
		}
		days, err := ParseWeekdays(m[1])
		if err != nil {
			return Rule{}, err
		}
		start, err := ParseDate(m[2], now)
		if err != nil {
			return Rule{}, fmt.Errorf("invalid start date: %w", err)
		}
		end, err := ParseDate(m[3], now)
		if err != nil {
			return Rule{}, fmt.Errorf("invalid end date: %w", err)
		}
		if !end.After(start) {
			return Rule{}, fmt.Errorf("end date %s must be at least one day after start date %s", end, start)
		}
		rule.StartDate, rule.EndDate, rule.RepeatDays = start, &end, days
	}

	return rule, nil
}

// parseSlots parses "6pm for 2h + 8pm for 30m".
func parseSlots(s, zone string) ([]TimeSlot, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("no time slots given")
	}

	var slots []TimeSlot
	for _, part := range slotSeparator.Split(s, -1) {
		startStr, durStr, ok := strings.Cut(part, " for ")
		if !ok {
			return nil, fmt.Errorf("expected '<time> for <duration>', got %q", part)
		}
		start, err := ParseTimeOfDay(startStr, zone)
		if err != nil {
			return nil, fmt.Errorf("invalid start time %q: %w", startStr, err)
		}
		d, err := ParseDuration(durStr)
		if err != nil {
			return nil, err
		}
		slots = append(slots, NewTimeSlot(start, d))
	}
	return slots, nil
}

// asciiLower lowercases A-Z only, so byte offsets in the result match s.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// rawRRuleIndex returns where an RRULE or DTSTART block begins in s, or -1.
func rawRRuleIndex(s string) int {
	best := -1
	for _, marker := range []string{"dtstart:", "rrule:", "freq="} {
		if i := strings.Index(s, marker); i != -1 && (best == -1 || i < best) {
			best = i
		}
	}
	return best
}

// isRawRRule returns true if the string looks like a raw RRULE.
func isRawRRule(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "freq=") ||
		strings.HasPrefix(lower, "rrule:") ||
		strings.HasPrefix(lower, "dtstart:")
}
