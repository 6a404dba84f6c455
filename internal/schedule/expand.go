package schedule

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// OccurrenceDates returns the calendar days r produces, in order. Invalid
// rules, empty repeat sets and inverted intervals produce no days.
func OccurrenceDates(r Rule) []Date {
	if !IsRuleValid(r) {
		return nil
	}
	if !r.Repeats() {
		return []Date{r.StartDate}
	}

	byday := r.RepeatDays.rrule()
	if len(byday) == 0 {
		// rrule falls back to DTSTART's weekday on an empty BYDAY.
		return nil
	}

	// Both ends sit at UTC midnight so the enumeration is pure calendar
	// arithmetic, independent of any slot's zone. UNTIL is inclusive.
	rr, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: byday,
		Dtstart:   r.StartDate.Time(),
		Until:     r.EndDate.Time(),
	})
	if err != nil {
		return nil
	}

	all := rr.All()
	dates := make([]Date, len(all))
	for i, t := range all {
		dates[i] = DateOf(t.UTC())
	}
	return dates
}

// CountOccurrences returns how many (day, slot) pairs r expands to: the
// number of slots for a one-off rule, matching days times slots for a
// repeating one, and zero for anything invalid.
func CountOccurrences(r Rule) int {
	if !IsRuleValid(r) {
		return 0
	}
	if !r.Repeats() {
		return len(r.TimeSlots)
	}
	return len(OccurrenceDates(r)) * len(r.TimeSlots)
}

// CountSet sums CountOccurrences over every rule.
func CountSet(rules []Rule) int {
	total := 0
	for _, r := range rules {
		total += CountOccurrences(r)
	}
	return total
}

// ExceedsCeiling reports whether rules expand to more than MaxOccurrences.
func ExceedsCeiling(rules []Rule) bool {
	return CountSet(rules) > MaxOccurrences
}

// Occurrence is one concrete pairing of a calendar day with a time slot.
type Occurrence struct {
	Date      Date
	RuleIndex int
	SlotIndex int
	Slot      TimeSlot
}

// Start is the instant the occurrence begins, composed in the slot's zone.
func (o Occurrence) Start() time.Time {
	return o.Slot.StartTime.On(o.Date)
}

// End is Start plus the slot duration.
func (o Occurrence) End() time.Time {
	return o.Start().Add(o.Slot.Duration.Std())
}

// Descriptor renders the slot, e.g. "6:00 PM for 2 hours".
func (o Occurrence) Descriptor() string {
	return FormatTimeSlot(o.Slot)
}

// Occurrences expands rules into concrete occurrences ordered by date, then
// by rule order, then by slot order within the rule.
func Occurrences(rules []Rule) []Occurrence {
	var out []Occurrence
	for ri, r := range rules {
		for _, d := range OccurrenceDates(r) {
			for si, s := range r.TimeSlots {
				out = append(out, Occurrence{Date: d, RuleIndex: ri, SlotIndex: si, Slot: s})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// DaySlots holds every slot active on one calendar day.
type DaySlots struct {
	Date  Date
	Slots []TimeSlot
}

// ExpandDays groups the occurrences of rules by day, sorted by date. Within a
// day slots keep rule order, then slot order.
func ExpandDays(rules []Rule) []DaySlots {
	var days []DaySlots
	for _, o := range Occurrences(rules) {
		if n := len(days); n > 0 && days[n-1].Date == o.Date {
			days[n-1].Slots = append(days[n-1].Slots, o.Slot)
			continue
		}
		days = append(days, DaySlots{Date: o.Date, Slots: []TimeSlot{o.Slot}})
	}
	return days
}

// ExpandDaily maps each active day, keyed "dd-mm-yyyy", to the descriptors of
// the slots on that day. Rules that share a day accumulate in rule order.
func ExpandDaily(rules []Rule) map[string][]string {
	daily := make(map[string][]string)
	for _, ds := range ExpandDays(rules) {
		key := DateKey(ds.Date)
		for _, s := range ds.Slots {
			daily[key] = append(daily[key], FormatTimeSlot(s))
		}
	}
	return daily
}
