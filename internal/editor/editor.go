// Package editor holds the schedule editor workflow: a rule list plus an
// optional rule being composed, driven through Reduce.
package editor

import (
	"errors"
	"fmt"

	"github.com/eventorbit/eventorbit/internal/schedule"
)

var (
	// ErrNoSchedules blocks advancing with an empty rule list.
	ErrNoSchedules = errors.New("Please add schedule time slots.")
	// ErrTooManyOccurrences blocks advancing past the occurrence ceiling.
	ErrTooManyOccurrences = fmt.Errorf("Maximum of %d time slots.", schedule.MaxOccurrences)
)

// ValidateForAdvance reports whether rules may leave the scheduling step.
func ValidateForAdvance(rules schedule.Set) error {
	if len(rules) == 0 {
		return ErrNoSchedules
	}
	if schedule.ExceedsCeiling(rules) {
		return ErrTooManyOccurrences
	}
	return nil
}

// Editor keeps a rule list and editor state and feeds actions through Reduce.
type Editor struct {
	rules schedule.Set
	state State
}

// New returns an idle editor over a copy of rules.
func New(rules schedule.Set) *Editor {
	return &Editor{rules: rules.Clone(), state: Idle{}}
}

// Dispatch applies action and returns its outcome.
func (e *Editor) Dispatch(action Action) Result {
	rules, state, res := Reduce(e.rules, e.state, action)
	e.rules, e.state = rules, state
	return res
}

// Rules returns a copy of the committed rules.
func (e *Editor) Rules() schedule.Set {
	return e.rules.Clone()
}

// Len returns the number of committed rules.
func (e *Editor) Len() int {
	return len(e.rules)
}

// State returns the current state.
func (e *Editor) State() State {
	return e.state
}

// Draft returns the rule being composed, if any.
func (e *Editor) Draft() (Draft, bool) {
	d, ok := DraftOf(e.state)
	if !ok {
		return Draft{}, false
	}
	return d.Clone(), true
}

// DraftCount returns the live occurrence count of the draft, 0 when nothing
// is open or the draft is incomplete.
func (e *Editor) DraftCount() int {
	d, ok := DraftOf(e.state)
	if !ok {
		return 0
	}
	return d.Count()
}

// Total returns the occurrence count of the committed rules.
func (e *Editor) Total() int {
	return schedule.CountSet(e.rules)
}

// ValidateForAdvance checks the committed rules.
func (e *Editor) ValidateForAdvance() error {
	return ValidateForAdvance(e.rules)
}
