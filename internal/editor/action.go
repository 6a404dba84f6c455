package editor

import "github.com/eventorbit/eventorbit/internal/schedule"

// Action is one user intent fed to Reduce.
type Action interface {
	isAction()
}

// OpenAdd starts composing a new rule.
type OpenAdd struct{}

// OpenEdit starts changing the rule at Index.
type OpenEdit struct {
	Index int
}

// SetStartDate sets the draft's first day.
type SetStartDate struct {
	Date schedule.Date
}

// SetEndDate sets the draft's last day. A nil Date clears it.
type SetEndDate struct {
	Date *schedule.Date
}

// SetTimeSlot replaces the draft slot at Index.
type SetTimeSlot struct {
	Index int
	Slot  schedule.TimeSlot
}

// SetRepeatMode switches how the draft repeats.
type SetRepeatMode struct {
	Mode RepeatMode
}

// SetRepeatDays picks the days of a selected-days draft.
type SetRepeatDays struct {
	Days schedule.WeekdaySet
}

// AddEmptyTimeSlot appends a blank slot to the draft.
type AddEmptyTimeSlot struct{}

// RemoveTimeSlot drops the draft slot at Index.
type RemoveTimeSlot struct {
	Index int
}

// Commit saves the draft into the rule list.
type Commit struct{}

// Delete removes the rule at Index. It is only accepted while no draft is
// open, so an Editing index never shifts under the draft.
type Delete struct {
	Index int
}

// Cancel discards the draft.
type Cancel struct{}

func (OpenAdd) isAction()          {}
func (OpenEdit) isAction()         {}
func (SetStartDate) isAction()     {}
func (SetEndDate) isAction()       {}
func (SetTimeSlot) isAction()      {}
func (SetRepeatMode) isAction()    {}
func (SetRepeatDays) isAction()    {}
func (AddEmptyTimeSlot) isAction() {}
func (RemoveTimeSlot) isAction()   {}
func (Commit) isAction()           {}
func (Delete) isAction()           {}
func (Cancel) isAction()           {}

// ChangeOp says how an accepted action changed the rule list.
type ChangeOp int

const (
	ChangeNone ChangeOp = iota
	ChangeInsert
	ChangeReplace
	ChangeDelete
)

// Change describes the effect of an action on the rule list, so that data
// kept alongside the list (such as persisted ids) can follow it.
type Change struct {
	Op    ChangeOp
	Index int
}

// Result reports whether Reduce accepted an action. A rejected action
// carries a message for the user and leaves rules and state untouched.
type Result struct {
	Accepted bool
	Message  string
	Change   Change
}
