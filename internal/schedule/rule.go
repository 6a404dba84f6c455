package schedule

// MaxOccurrences is the most occurrences one event may hold across all its
// rules.
const MaxOccurrences = 2000

// TimeSlot is one bookable window within a day. Either field may be nil
// while the slot is still being filled in.
type TimeSlot struct {
	StartTime *TimeOfDay
	Duration  *Duration
}

// NewTimeSlot returns a complete slot.
func NewTimeSlot(start TimeOfDay, d Duration) TimeSlot {
	return TimeSlot{StartTime: &start, Duration: &d}
}

// Clone returns a slot that shares no pointers with s.
func (s TimeSlot) Clone() TimeSlot {
	var out TimeSlot
	if s.StartTime != nil {
		st := *s.StartTime
		out.StartTime = &st
	}
	if s.Duration != nil {
		d := *s.Duration
		out.Duration = &d
	}
	return out
}

// Rule is one recurrence definition of an event: a start date, an optional
// last date, the daily slots and the days the rule repeats on.
//
// RepeatDays nil means the rule happens once, on StartDate.
type Rule struct {
	StartDate  Date
	EndDate    *Date
	TimeSlots  []TimeSlot
	RepeatDays WeekdaySet
}

// Repeats reports whether the rule repeats over a date range.
func (r Rule) Repeats() bool {
	return r.RepeatDays != nil
}

// Clone returns a deep copy of r.
func (r Rule) Clone() Rule {
	out := Rule{
		StartDate:  r.StartDate,
		RepeatDays: r.RepeatDays.Clone(),
	}
	if r.EndDate != nil {
		end := *r.EndDate
		out.EndDate = &end
	}
	if r.TimeSlots != nil {
		out.TimeSlots = make([]TimeSlot, len(r.TimeSlots))
		for i, s := range r.TimeSlots {
			out.TimeSlots[i] = s.Clone()
		}
	}
	return out
}

// Set is the ordered list of rules belonging to one event.
type Set []Rule

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for i, r := range s {
		out[i] = r.Clone()
	}
	return out
}

// IsTimeSlotComplete reports whether both the start time and a usable
// duration are set.
func IsTimeSlotComplete(slot TimeSlot) bool {
	return slot.StartTime != nil && slot.Duration != nil &&
		slot.StartTime.Valid() && slot.Duration.Valid()
}

// IsRuleValid reports whether r can be committed: it needs at least one slot
// and every slot complete. A repeating rule needs an end date at least one
// day after its start; a one-off rule must not carry an end date.
func IsRuleValid(r Rule) bool {
	if len(r.TimeSlots) == 0 || r.StartDate.IsZero() {
		return false
	}
	for _, s := range r.TimeSlots {
		if !IsTimeSlotComplete(s) {
			return false
		}
	}
	if r.Repeats() {
		return r.EndDate != nil && r.EndDate.After(r.StartDate)
	}
	return r.EndDate == nil
}
