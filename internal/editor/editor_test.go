package editor

import (
	"testing"
	"time"

	"github.com/eventorbit/eventorbit/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func june(day int) schedule.Date {
	return schedule.Date{Year: 2024, Month: time.June, Day: day}
}

func datePtr(d schedule.Date) *schedule.Date {
	return &d
}

func slotAt(hour int) schedule.TimeSlot {
	return schedule.NewTimeSlot(
		schedule.TimeOfDay{Hour: hour, TimeZone: "UTC"},
		schedule.Duration{Value: 1, Unit: schedule.UnitHours},
	)
}

func oneOff(day, slots int) schedule.Rule {
	ts := make([]schedule.TimeSlot, slots)
	for i := range ts {
		ts[i] = slotAt(i % 24)
	}
	return schedule.Rule{StartDate: june(day), TimeSlots: ts}
}

func monWed() schedule.Rule {
	return schedule.Rule{
		StartDate:  june(3),
		EndDate:    datePtr(june(16)),
		TimeSlots:  []schedule.TimeSlot{slotAt(18)},
		RepeatDays: schedule.NewWeekdaySet(schedule.Mon, schedule.Wed),
	}
}

func TestValidateForAdvanceEmpty(t *testing.T) {
	err := ValidateForAdvance(nil)

	require.ErrorIs(t, err, ErrNoSchedules)
	assert.Equal(t, "Please add schedule time slots.", err.Error())
}

func TestValidateForAdvanceCeiling(t *testing.T) {
	// 366 days of 2024 with 5 slots each, plus a one-off.
	year := schedule.Rule{
		StartDate:  schedule.Date{Year: 2024, Month: time.January, Day: 1},
		EndDate:    datePtr(schedule.Date{Year: 2024, Month: time.December, Day: 31}),
		TimeSlots:  []schedule.TimeSlot{slotAt(8), slotAt(10), slotAt(12), slotAt(14), slotAt(16)},
		RepeatDays: schedule.FullWeek(),
	}

	atLimit := schedule.Set{year, oneOff(3, 170)}
	require.Equal(t, 2000, schedule.CountSet(atLimit))
	assert.NoError(t, ValidateForAdvance(atLimit))

	overLimit := schedule.Set{year, oneOff(3, 171)}
	require.Equal(t, 2001, schedule.CountSet(overLimit))
	err := ValidateForAdvance(overLimit)
	require.ErrorIs(t, err, ErrTooManyOccurrences)
	assert.Equal(t, "Maximum of 2000 time slots.", err.Error())
}

func TestOpenAddStartsBlankDraft(t *testing.T) {
	e := New(nil)

	res := e.Dispatch(OpenAdd{})

	require.True(t, res.Accepted)
	st, ok := e.State().(Adding)
	require.True(t, ok)
	assert.Len(t, st.Draft.Rule.TimeSlots, 1)
	assert.False(t, schedule.IsTimeSlotComplete(st.Draft.Rule.TimeSlots[0]))
	assert.Nil(t, st.Draft.Rule.RepeatDays)
	assert.Equal(t, RepeatNone, st.Draft.Mode)
	assert.Equal(t, 0, e.DraftCount())
}

func TestAddOneOffRule(t *testing.T) {
	e := New(nil)

	e.Dispatch(OpenAdd{})
	e.Dispatch(SetStartDate{Date: june(3)})
	e.Dispatch(SetTimeSlot{Index: 0, Slot: slotAt(10)})
	e.Dispatch(AddEmptyTimeSlot{})
	assert.Equal(t, 0, e.DraftCount(), "incomplete slot keeps the count at 0")

	e.Dispatch(SetTimeSlot{Index: 1, Slot: slotAt(14)})
	assert.Equal(t, 2, e.DraftCount())

	res := e.Dispatch(Commit{})

	require.True(t, res.Accepted, res.Message)
	assert.Equal(t, Change{Op: ChangeInsert, Index: 0}, res.Change)
	assert.IsType(t, Idle{}, e.State())
	require.Equal(t, 1, e.Len())
	assert.Equal(t, 2, e.Total())
	assert.NoError(t, e.ValidateForAdvance())
}

func TestCommitIncompleteDraftIsRefused(t *testing.T) {
	start := schedule.TimeOfDay{Hour: 18, TimeZone: "UTC"}
	dur := schedule.Duration{Value: 1, Unit: schedule.UnitHours}

	tests := []struct {
		name  string
		slots []schedule.TimeSlot
	}{
		{"no slots", nil},
		{"missing start time", []schedule.TimeSlot{{Duration: &dur}}},
		{"missing duration", []schedule.TimeSlot{{StartTime: &start}}},
		{"one complete one blank", []schedule.TimeSlot{slotAt(9), {}}},
	}

	existing := schedule.Set{monWed()}

	for _, tt := range tests {
		t.Run(tt.name+" while adding", func(t *testing.T) {
			draft := Draft{Rule: schedule.Rule{StartDate: june(3), TimeSlots: tt.slots}, Mode: RepeatNone}
			state := Adding{Draft: draft}

			rules, next, res := Reduce(existing, state, Commit{})

			assert.False(t, res.Accepted)
			assert.NotEmpty(t, res.Message)
			assert.Equal(t, existing, rules)
			assert.Equal(t, state, next)
		})

		t.Run(tt.name+" while editing", func(t *testing.T) {
			draft := DraftFrom(existing[0])
			draft.Rule.TimeSlots = tt.slots
			state := Editing{Index: 0, Draft: draft}

			rules, next, res := Reduce(existing, state, Commit{})

			assert.False(t, res.Accepted)
			assert.Equal(t, existing, rules)
			assert.Equal(t, state, next)
		})
	}
}

func TestCommitRefusesZeroOccurrenceRange(t *testing.T) {
	// Tue Jun 4 to Sat Jun 8 holds no Sunday or Monday.
	draft := Draft{
		Rule: schedule.Rule{
			StartDate:  june(4),
			EndDate:    datePtr(june(8)),
			TimeSlots:  []schedule.TimeSlot{slotAt(9)},
			RepeatDays: schedule.NewWeekdaySet(schedule.Sun, schedule.Mon),
		},
		Mode: RepeatSelectedDays,
	}

	rules, state, res := Reduce(nil, Adding{Draft: draft}, Commit{})

	assert.False(t, res.Accepted)
	assert.Nil(t, rules)
	assert.IsType(t, Adding{}, state)
}

func TestRepeatModeToggle(t *testing.T) {
	e := New(nil)
	e.Dispatch(OpenAdd{})
	e.Dispatch(SetStartDate{Date: june(3)})

	require.True(t, e.Dispatch(SetRepeatMode{Mode: RepeatSelectedDays}).Accepted)
	d, _ := e.Draft()
	assert.True(t, d.Rule.RepeatDays.IsFullWeek(), "entering a repeat mode selects the full week")

	require.True(t, e.Dispatch(SetRepeatDays{Days: schedule.NewWeekdaySet(schedule.Mon, schedule.Wed)}).Accepted)
	require.True(t, e.Dispatch(SetEndDate{Date: datePtr(june(16))}).Accepted)

	require.True(t, e.Dispatch(SetRepeatMode{Mode: RepeatNone}).Accepted)
	d, _ = e.Draft()
	assert.Nil(t, d.Rule.RepeatDays, "returning to no repeat clears the days")
	assert.Nil(t, d.Rule.EndDate)
	assert.Equal(t, RepeatNone, d.Mode)

	require.True(t, e.Dispatch(SetRepeatMode{Mode: RepeatEveryDay}).Accepted)
	d, _ = e.Draft()
	assert.True(t, d.Rule.RepeatDays.IsFullWeek())
}

func TestRepeatModeSelectedDaysKeepsChoice(t *testing.T) {
	e := New(nil)
	e.Dispatch(OpenAdd{})
	e.Dispatch(SetRepeatMode{Mode: RepeatSelectedDays})
	e.Dispatch(SetRepeatDays{Days: schedule.NewWeekdaySet(schedule.Fri)})

	e.Dispatch(SetRepeatMode{Mode: RepeatSelectedDays})

	d, _ := e.Draft()
	assert.Equal(t, []schedule.Weekday{schedule.Fri}, d.Rule.RepeatDays.Sorted())
}

func TestSetRepeatDaysRequiresSelectedMode(t *testing.T) {
	e := New(nil)
	e.Dispatch(OpenAdd{})

	res := e.Dispatch(SetRepeatDays{Days: schedule.NewWeekdaySet(schedule.Mon)})

	assert.False(t, res.Accepted)
	d, _ := e.Draft()
	assert.Nil(t, d.Rule.RepeatDays)
}

func TestAddRepeatingRule(t *testing.T) {
	e := New(nil)
	e.Dispatch(OpenAdd{})
	e.Dispatch(SetStartDate{Date: june(3)})
	e.Dispatch(SetTimeSlot{Index: 0, Slot: slotAt(18)})
	e.Dispatch(SetRepeatMode{Mode: RepeatSelectedDays})
	e.Dispatch(SetRepeatDays{Days: schedule.NewWeekdaySet(schedule.Mon, schedule.Wed)})

	assert.Equal(t, 0, e.DraftCount(), "no last occurrence yet")

	res := e.Dispatch(SetEndDate{Date: datePtr(june(3))})
	assert.False(t, res.Accepted, "last occurrence must be a day after the start")

	require.True(t, e.Dispatch(SetEndDate{Date: datePtr(june(16))}).Accepted)
	assert.Equal(t, 4, e.DraftCount())

	require.True(t, e.Dispatch(Commit{}).Accepted)
	assert.Equal(t, schedule.Set{monWed()}, e.Rules())
}

func TestSetEndDateRejectedWithoutRepeat(t *testing.T) {
	e := New(nil)
	e.Dispatch(OpenAdd{})
	e.Dispatch(SetStartDate{Date: june(3)})

	res := e.Dispatch(SetEndDate{Date: datePtr(june(10))})

	assert.False(t, res.Accepted)
}

func TestSetStartDateDropsStaleEndDate(t *testing.T) {
	e := New(schedule.Set{monWed()})
	e.Dispatch(OpenEdit{Index: 0})

	e.Dispatch(SetStartDate{Date: june(10)})
	d, _ := e.Draft()
	require.NotNil(t, d.Rule.EndDate)

	e.Dispatch(SetStartDate{Date: june(16)})
	d, _ = e.Draft()
	assert.Nil(t, d.Rule.EndDate)
}

func TestEditReplacesRule(t *testing.T) {
	e := New(schedule.Set{oneOff(1, 1), monWed()})

	require.True(t, e.Dispatch(OpenEdit{Index: 1}).Accepted)
	st, ok := e.State().(Editing)
	require.True(t, ok)
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, RepeatSelectedDays, st.Draft.Mode)

	e.Dispatch(AddEmptyTimeSlot{})
	e.Dispatch(SetTimeSlot{Index: 1, Slot: slotAt(20)})
	res := e.Dispatch(Commit{})

	require.True(t, res.Accepted)
	assert.Equal(t, Change{Op: ChangeReplace, Index: 1}, res.Change)
	assert.Equal(t, 8, schedule.CountOccurrences(e.Rules()[1]))
	assert.Equal(t, 2, e.Len())
}

func TestEditDraftDoesNotAliasRules(t *testing.T) {
	rules := schedule.Set{monWed()}
	_, state, _ := Reduce(rules, Idle{}, OpenEdit{Index: 0})

	_, state, _ = Reduce(rules, state, SetTimeSlot{Index: 0, Slot: slotAt(7)})
	_, _, _ = Reduce(rules, state, SetRepeatDays{Days: schedule.NewWeekdaySet(schedule.Fri)})

	assert.Equal(t, 18, rules[0].TimeSlots[0].StartTime.Hour)
	assert.True(t, rules[0].RepeatDays.Has(schedule.Mon))
}

func TestOpenEditOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 1, 5} {
		rules, state, res := Reduce(schedule.Set{monWed()}, Idle{}, OpenEdit{Index: idx})

		assert.False(t, res.Accepted)
		assert.IsType(t, Idle{}, state)
		assert.Len(t, rules, 1)
	}
}

func TestCommitRejectsEditingIndexOutOfRange(t *testing.T) {
	draft := DraftFrom(monWed())
	for _, idx := range []int{-1, 1, 5} {
		rules, state, res := Reduce(schedule.Set{oneOff(1, 1)}, Editing{Index: idx, Draft: draft}, Commit{})

		assert.False(t, res.Accepted)
		assert.Equal(t, Editing{Index: idx, Draft: draft}, state)
		require.Len(t, rules, 1)
		assert.Equal(t, 1, schedule.CountOccurrences(rules[0]))
	}
}

func TestCancelDiscardsDraft(t *testing.T) {
	e := New(schedule.Set{monWed()})
	e.Dispatch(OpenEdit{Index: 0})
	e.Dispatch(RemoveTimeSlot{Index: 0})

	res := e.Dispatch(Cancel{})

	require.True(t, res.Accepted)
	assert.IsType(t, Idle{}, e.State())
	assert.Equal(t, schedule.Set{monWed()}, e.Rules())
	assert.Equal(t, 0, e.DraftCount())
}

func TestDeleteRule(t *testing.T) {
	e := New(schedule.Set{oneOff(1, 1), monWed(), oneOff(20, 2)})

	res := e.Dispatch(Delete{Index: 1})

	require.True(t, res.Accepted)
	assert.Equal(t, Change{Op: ChangeDelete, Index: 1}, res.Change)
	assert.Equal(t, schedule.Set{oneOff(1, 1), oneOff(20, 2)}, e.Rules())

	assert.False(t, e.Dispatch(Delete{Index: 2}).Accepted)
}

func TestDeleteWhileDraftOpenIsRefused(t *testing.T) {
	e := New(schedule.Set{monWed()})
	e.Dispatch(OpenAdd{})

	res := e.Dispatch(Delete{Index: 0})

	assert.False(t, res.Accepted)
	assert.Equal(t, 1, e.Len())
}

func TestDraftActionsNeedOpenDraft(t *testing.T) {
	actions := []Action{
		SetStartDate{Date: june(3)},
		SetTimeSlot{Index: 0, Slot: slotAt(9)},
		AddEmptyTimeSlot{},
		RemoveTimeSlot{Index: 0},
		SetRepeatMode{Mode: RepeatEveryDay},
		Commit{},
		Cancel{},
	}
	for _, a := range actions {
		_, state, res := Reduce(nil, Idle{}, a)
		assert.False(t, res.Accepted, "%T", a)
		assert.IsType(t, Idle{}, state)
	}
}

func TestOpenWhileDraftOpenIsRefused(t *testing.T) {
	e := New(schedule.Set{monWed()})
	e.Dispatch(OpenAdd{})

	assert.False(t, e.Dispatch(OpenAdd{}).Accepted)
	assert.False(t, e.Dispatch(OpenEdit{Index: 0}).Accepted)
	assert.IsType(t, Adding{}, e.State())
}

func TestRemoveTimeSlot(t *testing.T) {
	e := New(nil)
	e.Dispatch(OpenAdd{})
	e.Dispatch(SetStartDate{Date: june(3)})
	e.Dispatch(SetTimeSlot{Index: 0, Slot: slotAt(9)})
	e.Dispatch(AddEmptyTimeSlot{})

	assert.False(t, e.Dispatch(RemoveTimeSlot{Index: 2}).Accepted)
	require.True(t, e.Dispatch(RemoveTimeSlot{Index: 1}).Accepted)

	assert.Equal(t, 1, e.DraftCount())
}

func TestModeOf(t *testing.T) {
	assert.Equal(t, RepeatNone, ModeOf(oneOff(3, 1)))
	assert.Equal(t, RepeatSelectedDays, ModeOf(monWed()))

	daily := monWed()
	daily.RepeatDays = schedule.FullWeek()
	assert.Equal(t, RepeatEveryDay, ModeOf(daily))
}
