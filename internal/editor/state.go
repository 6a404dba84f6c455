package editor

import "github.com/eventorbit/eventorbit/internal/schedule"

// RepeatMode is how a draft repeats.
type RepeatMode string

const (
	RepeatNone         RepeatMode = "none"
	RepeatEveryDay     RepeatMode = "every-day"
	RepeatSelectedDays RepeatMode = "selected-days"
)

// RepeatModes lists the modes in the order the editor offers them.
var RepeatModes = []RepeatMode{RepeatNone, RepeatEveryDay, RepeatSelectedDays}

// Valid reports whether m is a known mode.
func (m RepeatMode) Valid() bool {
	switch m {
	case RepeatNone, RepeatEveryDay, RepeatSelectedDays:
		return true
	}
	return false
}

// Label returns the human-readable name of the mode.
func (m RepeatMode) Label() string {
	switch m {
	case RepeatEveryDay:
		return "Repeat every day"
	case RepeatSelectedDays:
		return "Repeat on selected days"
	default:
		return "Does not repeat"
	}
}

// ModeOf infers the repeat mode of a stored rule.
func ModeOf(r schedule.Rule) RepeatMode {
	switch {
	case !r.Repeats():
		return RepeatNone
	case r.RepeatDays.IsFullWeek():
		return RepeatEveryDay
	default:
		return RepeatSelectedDays
	}
}

// Draft is the rule being composed plus the repeat mode the user picked.
// The mode is kept apart from the rule because "selected days" with all
// seven days ticked is still "selected days".
type Draft struct {
	Rule schedule.Rule
	Mode RepeatMode
}

// NewDraft returns a blank draft: one empty time slot, no repeat.
func NewDraft() Draft {
	return Draft{
		Rule: schedule.Rule{TimeSlots: []schedule.TimeSlot{{}}},
		Mode: RepeatNone,
	}
}

// DraftFrom returns a draft initialized from an existing rule.
func DraftFrom(r schedule.Rule) Draft {
	return Draft{Rule: r.Clone(), Mode: ModeOf(r)}
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	return Draft{Rule: d.Rule.Clone(), Mode: d.Mode}
}

// Count returns the live occurrence count of the draft, 0 until it is
// complete.
func (d Draft) Count() int {
	return schedule.CountOccurrences(d.Rule)
}

// State is the editor state: Idle, Adding or Editing.
type State interface {
	isState()
}

// Idle is the list view with no rule open.
type Idle struct{}

// Adding holds a new rule being composed.
type Adding struct {
	Draft Draft
}

// Editing holds a copy of rules[Index] being changed. Index is always in
// range of the rule list it was opened against; Commit rejects a state
// built by hand whose Index is not.
type Editing struct {
	Index int
	Draft Draft
}

func (Idle) isState()    {}
func (Adding) isState()  {}
func (Editing) isState() {}

// DraftOf returns the draft held by s, if any.
func DraftOf(s State) (Draft, bool) {
	switch st := s.(type) {
	case Adding:
		return st.Draft, true
	case Editing:
		return st.Draft, true
	}
	return Draft{}, false
}

// withDraft returns s with its draft replaced by d. Idle is returned as is.
func withDraft(s State, d Draft) State {
	switch st := s.(type) {
	case Adding:
		return Adding{Draft: d}
	case Editing:
		return Editing{Index: st.Index, Draft: d}
	}
	return s
}
