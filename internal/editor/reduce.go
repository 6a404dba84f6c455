package editor

import (
	"fmt"

	"github.com/eventorbit/eventorbit/internal/schedule"
)

// Reduce applies action to the editor and returns the new rule list, the new
// state and the outcome. The inputs are never modified.
func Reduce(rules schedule.Set, state State, action Action) (schedule.Set, State, Result) {
	if state == nil {
		state = Idle{}
	}

	switch a := action.(type) {
	case OpenAdd:
		if _, ok := state.(Idle); !ok {
			return rules, state, reject("Save or cancel the open schedule first.")
		}
		return rules, Adding{Draft: NewDraft()}, accept(Change{})

	case OpenEdit:
		if _, ok := state.(Idle); !ok {
			return rules, state, reject("Save or cancel the open schedule first.")
		}
		if a.Index < 0 || a.Index >= len(rules) {
			return rules, state, reject("No schedule #%d.", a.Index+1)
		}
		return rules, Editing{Index: a.Index, Draft: DraftFrom(rules[a.Index])}, accept(Change{})

	case Commit:
		return commit(rules, state)

	case Delete:
		if _, ok := state.(Idle); !ok {
			return rules, state, reject("Save or cancel the open schedule first.")
		}
		if a.Index < 0 || a.Index >= len(rules) {
			return rules, state, reject("No schedule #%d.", a.Index+1)
		}
		out := make(schedule.Set, 0, len(rules)-1)
		out = append(out, rules[:a.Index]...)
		out = append(out, rules[a.Index+1:]...)
		return out, state, accept(Change{Op: ChangeDelete, Index: a.Index})

	case Cancel:
		if _, ok := state.(Idle); ok {
			return rules, state, reject("No schedule is open.")
		}
		return rules, Idle{}, accept(Change{})
	}

	draft, ok := DraftOf(state)
	if !ok {
		return rules, state, reject("No schedule is open.")
	}

	next, msg := updateDraft(draft.Clone(), action)
	if msg != "" {
		return rules, state, reject("%s", msg)
	}
	return rules, withDraft(state, next), accept(Change{})
}

// updateDraft applies a draft field action to d, which the caller owns. A
// non-empty message means the action was refused.
func updateDraft(d Draft, action Action) (Draft, string) {
	switch a := action.(type) {
	case SetStartDate:
		if a.Date.IsZero() {
			return d, "Pick a start date."
		}
		d.Rule.StartDate = a.Date
		// The last occurrence must stay at least a day after the first.
		if d.Rule.EndDate != nil && d.Rule.EndDate.Before(schedule.MinimumEndDate(a.Date)) {
			d.Rule.EndDate = nil
		}

	case SetEndDate:
		if a.Date == nil {
			d.Rule.EndDate = nil
			return d, ""
		}
		if d.Mode == RepeatNone {
			return d, "Only repeating schedules have a last occurrence."
		}
		if d.Rule.StartDate.IsZero() {
			return d, "Pick a start date first."
		}
		if a.Date.Before(schedule.MinimumEndDate(d.Rule.StartDate)) {
			return d, fmt.Sprintf("The last occurrence must be on or after %s.", schedule.FormatDate(schedule.MinimumEndDate(d.Rule.StartDate)))
		}
		end := *a.Date
		d.Rule.EndDate = &end

	case SetTimeSlot:
		if a.Index < 0 || a.Index >= len(d.Rule.TimeSlots) {
			return d, fmt.Sprintf("No time slot #%d.", a.Index+1)
		}
		d.Rule.TimeSlots[a.Index] = a.Slot.Clone()

	case SetRepeatMode:
		if !a.Mode.Valid() {
			return d, fmt.Sprintf("Unknown repeat mode %q.", a.Mode)
		}
		switch {
		case a.Mode == RepeatNone:
			d.Rule.RepeatDays = nil
			d.Rule.EndDate = nil
		case d.Mode == RepeatNone || a.Mode == RepeatEveryDay:
			d.Rule.RepeatDays = schedule.FullWeek()
		}
		d.Mode = a.Mode

	case SetRepeatDays:
		if d.Mode != RepeatSelectedDays {
			return d, "Switch to selected days before picking days."
		}
		for day := range a.Days {
			if !day.Valid() {
				return d, fmt.Sprintf("Unknown day %q.", day)
			}
		}
		days := a.Days.Clone()
		if days == nil {
			days = schedule.NewWeekdaySet()
		}
		d.Rule.RepeatDays = days

	case AddEmptyTimeSlot:
		d.Rule.TimeSlots = append(d.Rule.TimeSlots, schedule.TimeSlot{})

	case RemoveTimeSlot:
		if a.Index < 0 || a.Index >= len(d.Rule.TimeSlots) {
			return d, fmt.Sprintf("No time slot #%d.", a.Index+1)
		}
		slots := make([]schedule.TimeSlot, 0, len(d.Rule.TimeSlots)-1)
		slots = append(slots, d.Rule.TimeSlots[:a.Index]...)
		d.Rule.TimeSlots = append(slots, d.Rule.TimeSlots[a.Index+1:]...)

	default:
		return d, fmt.Sprintf("Unsupported action %T.", action)
	}
	return d, ""
}

func commit(rules schedule.Set, state State) (schedule.Set, State, Result) {
	draft, ok := DraftOf(state)
	if !ok {
		return rules, state, reject("No schedule is open.")
	}
	if msg := DraftProblem(draft); msg != "" {
		return rules, state, reject("%s", msg)
	}

	out := rules.Clone()
	switch st := state.(type) {
	case Adding:
		out = append(out, draft.Rule.Clone())
		return out, Idle{}, accept(Change{Op: ChangeInsert, Index: len(out) - 1})
	case Editing:
		if st.Index < 0 || st.Index >= len(out) {
			return rules, state, reject("No schedule #%d.", st.Index+1)
		}
		out[st.Index] = draft.Rule.Clone()
		return out, Idle{}, accept(Change{Op: ChangeReplace, Index: st.Index})
	}
	return rules, state, reject("No schedule is open.")
}

// DraftProblem returns why d cannot be saved, or "" when it can.
func DraftProblem(d Draft) string {
	r := d.Rule
	switch {
	case r.StartDate.IsZero():
		return "Pick a start date."
	case len(r.TimeSlots) == 0:
		return "Add at least one time slot."
	}
	for i, s := range r.TimeSlots {
		if !schedule.IsTimeSlotComplete(s) {
			return fmt.Sprintf("Time slot #%d needs a start time and a duration.", i+1)
		}
	}
	if r.Repeats() {
		if r.EndDate == nil || !r.EndDate.After(r.StartDate) {
			return "Pick a last occurrence at least one day after the start date."
		}
		if len(r.RepeatDays) == 0 {
			return "Pick at least one day to repeat on."
		}
	}
	if !schedule.IsRuleValid(r) || schedule.CountOccurrences(r) == 0 {
		return "This schedule has no occurrences."
	}
	return ""
}

func accept(c Change) Result {
	return Result{Accepted: true, Change: c}
}

func reject(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}
