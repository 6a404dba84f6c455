package cli

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventorbit/eventorbit/internal/api"
	"github.com/eventorbit/eventorbit/internal/draft"
	"github.com/eventorbit/eventorbit/internal/schedule"
)

// Saturday, June 1, 2024.
var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// mockPrompt returns a PromptFunc that feeds pre-determined responses.
func mockPrompt(responses ...string) PromptFunc {
	i := 0
	return func(_ string) (string, error) {
		if i >= len(responses) {
			return "", fmt.Errorf("no more mock responses")
		}
		resp := responses[i]
		i++
		return resp, nil
	}
}

// mockConfirm returns a ConfirmFunc that returns a pre-determined answer.
func mockConfirm(answer bool) ConfirmFunc {
	return func(_ string) (bool, error) {
		return answer, nil
	}
}

func mockSelect(idx int) SelectFunc {
	return func(_ string, _ []string) (int, error) {
		return idx, nil
	}
}

func mockMultiSelect(idx ...int) MultiSelectFunc {
	return func(_ string, _ []string) ([]int, error) {
		return idx, nil
	}
}

func testKit(responses ...string) PromptKit {
	return PromptKit{
		Prompt:      mockPrompt(responses...),
		Confirm:     mockConfirm(true),
		Select:      mockSelect(0),
		MultiSelect: mockMultiSelect(),
	}
}

func june(day int) schedule.Date {
	return schedule.Date{Year: 2024, Month: time.June, Day: day}
}

func slotAt(hour, hours int) schedule.TimeSlot {
	return schedule.NewTimeSlot(
		schedule.TimeOfDay{Hour: hour, TimeZone: "UTC"},
		schedule.Duration{Value: hours, Unit: schedule.UnitHours},
	)
}

func monWed() schedule.Rule {
	end := june(16)
	return schedule.Rule{
		StartDate:  june(3),
		EndDate:    &end,
		TimeSlots:  []schedule.TimeSlot{slotAt(18, 2)},
		RepeatDays: schedule.NewWeekdaySet(schedule.Mon, schedule.Wed),
	}
}

func oneOff(day, hour int) schedule.Rule {
	return schedule.Rule{StartDate: june(day), TimeSlots: []schedule.TimeSlot{slotAt(hour, 1)}}
}

// setupDraft writes a "Jazz Night" draft holding rules with the given
// backend ids and returns the home directory.
func setupDraft(t *testing.T, rules schedule.Set, ids ...string) string {
	t.Helper()
	home := t.TempDir()
	reg := &draft.Registry{}
	d, err := reg.Add("Jazz Night", testNow)
	require.NoError(t, err)
	d.SetRules(rules, api.NewBinding(ids...))
	require.NoError(t, draft.WriteRegistry(home, reg))
	return home
}

func savedDraft(t *testing.T, home string) *draft.Draft {
	t.Helper()
	_, d, err := draft.Load(home, "jazz-night")
	require.NoError(t, err)
	return d
}

func execScheduleEdit(home string, kit PromptKit) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	err := runScheduleEdit(cmd, home, "jazz-night", "UTC", testNow, kit)
	return stdout.String(), err
}

func TestScheduleEditQuitImmediately(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit("q"))

	require.NoError(t, err)
	assert.Contains(t, stdout, "Editing schedules for")
	assert.Contains(t, stdout, "(no schedules)")
	assert.Contains(t, stdout, "saved")
	assert.Empty(t, savedDraft(t, home).Schedules)
}

func TestScheduleEditContinueNeedsSchedules(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit("c", "q"))

	require.NoError(t, err)
	assert.Contains(t, stdout, "Please add schedule time slots.")
	assert.NotContains(t, stdout, "ready to publish")
}

func TestScheduleEditAddOneLineAndContinue(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit(
		"a 6pm for 2h every mon,wed from 2024-06-03 to 2024-06-16",
		"c",
	))

	require.NoError(t, err)
	assert.Contains(t, stdout, "→ Mon 3 Jun 2024 – Sun 16 Jun 2024, every Mon, Wed: 6:00 PM for 2 hours")
	assert.Contains(t, stdout, "4 time slots ready to publish")

	rules, _ := savedDraft(t, home).Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, 4, schedule.CountSet(rules))
}

func TestScheduleEditAddOneLineInvalid(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit("a sometime soon", "q"))

	require.NoError(t, err)
	assert.Contains(t, stdout, "error:")
	assert.Empty(t, savedDraft(t, home).Schedules)
}

func TestScheduleEditGuidedOneOffWithTwoSlots(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit(
		"a",
		"s 2024-06-03",
		"t 1 6pm 2h",
		"n",
		"t 2 8pm",
		"30m",
		"w",
		"q",
	))

	require.NoError(t, err)
	assert.Contains(t, stdout, "New schedule")
	assert.Contains(t, stdout, "2. (incomplete)")
	assert.Contains(t, stdout, "→ Mon 3 Jun 2024: 6:00 PM for 2 hours + 8:00 PM for 30 minutes")

	rules, _ := savedDraft(t, home).Rules()
	require.Len(t, rules, 1)
	assert.False(t, rules[0].Repeats())
	assert.Len(t, rules[0].TimeSlots, 2)
	assert.Equal(t, 2, schedule.CountSet(rules))
}

func TestScheduleEditIncompleteDraftIsRefused(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit(
		"a",
		"w",
		"s 2024-06-03",
		"w",
		"x",
		"q",
	))

	require.NoError(t, err)
	assert.Contains(t, stdout, "Pick a start date.")
	assert.Contains(t, stdout, "Time slot #1 needs a start time and a duration.")
	assert.Empty(t, savedDraft(t, home).Schedules)
}

func TestScheduleEditSwitchingBackToNoRepeatClearsDays(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit(
		"a",
		"s 2024-06-03",
		"t 1 6pm 2h",
		"m selected",
		"y mon,wed",
		"l 2024-06-16",
		"m none",
		"w",
		"q",
	))

	require.NoError(t, err)
	assert.Contains(t, stdout, "Repeat on selected days (every Mon, Wed)")
	assert.Contains(t, stdout, "4 time slots in this schedule")

	d := savedDraft(t, home)
	require.Len(t, d.Schedules, 1)
	assert.Nil(t, d.Schedules[0].RepeatDays)
	assert.Nil(t, d.Schedules[0].EndDate)

	rules, _ := d.Rules()
	assert.Equal(t, 1, schedule.CountSet(rules))
}

func TestScheduleEditModeAndDaysFromSelectors(t *testing.T) {
	home := setupDraft(t, nil)
	kit := testKit(
		"a",
		"s 2024-06-03",
		"t 1 6pm 2h",
		"m",
		"y",
		"l 2024-06-16",
		"w",
		"q",
	)
	// "Repeat on selected days", then Mon and Wed.
	kit.Select = mockSelect(2)
	kit.MultiSelect = mockMultiSelect(1, 3)

	_, err := execScheduleEdit(home, kit)

	require.NoError(t, err)
	rules, _ := savedDraft(t, home).Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, schedule.NewWeekdaySet(schedule.Mon, schedule.Wed), rules[0].RepeatDays)
	assert.Equal(t, 4, schedule.CountSet(rules))
}

func TestScheduleEditEveryDayFromSelector(t *testing.T) {
	home := setupDraft(t, nil)
	kit := testKit("a", "s 2024-06-03", "t 1 6pm 2h", "m", "l 2024-06-09", "w", "q")
	kit.Select = mockSelect(1)

	_, err := execScheduleEdit(home, kit)

	require.NoError(t, err)
	rules, _ := savedDraft(t, home).Rules()
	require.Len(t, rules, 1)
	assert.True(t, rules[0].RepeatDays.IsFullWeek())
	assert.Equal(t, 7, schedule.CountSet(rules))
}

func TestScheduleEditKeepsBackendID(t *testing.T) {
	home := setupDraft(t, schedule.Set{oneOff(3, 18)}, "s1")

	stdout, err := execScheduleEdit(home, testKit(
		"e 1",
		"t 1 7pm 1h",
		"w",
		"q",
	))

	require.NoError(t, err)
	assert.Contains(t, stdout, "Editing schedule #1")

	d := savedDraft(t, home)
	require.Len(t, d.Schedules, 1)
	assert.Equal(t, "s1", d.Schedules[0].ID)
	require.NotNil(t, d.Schedules[0].TimeSlots[0].StartTime)
	assert.Equal(t, 19, d.Schedules[0].TimeSlots[0].StartTime.Hours)
}

func TestScheduleEditCancelKeepsRule(t *testing.T) {
	home := setupDraft(t, schedule.Set{oneOff(3, 18)}, "s1")

	_, err := execScheduleEdit(home, testKit("e 1", "t 1 7pm 1h", "x", "q"))

	require.NoError(t, err)
	d := savedDraft(t, home)
	assert.Equal(t, 18, d.Schedules[0].TimeSlots[0].StartTime.Hours)
}

func TestScheduleEditDelete(t *testing.T) {
	home := setupDraft(t, schedule.Set{oneOff(3, 18), oneOff(4, 18)}, "s1", "s2")

	_, err := execScheduleEdit(home, testKit("d 1", "q"))

	require.NoError(t, err)
	d := savedDraft(t, home)
	require.Len(t, d.Schedules, 1)
	assert.Equal(t, "s2", d.Schedules[0].ID)
	assert.Equal(t, "2024-06-04", d.Schedules[0].StartDate)
}

func TestScheduleEditDeleteDeclined(t *testing.T) {
	home := setupDraft(t, schedule.Set{oneOff(3, 18), oneOff(4, 18)}, "s1", "s2")
	kit := testKit("d 1", "q")
	kit.Confirm = mockConfirm(false)

	_, err := execScheduleEdit(home, kit)

	require.NoError(t, err)
	assert.Len(t, savedDraft(t, home).Schedules, 2)
}

func TestScheduleEditOutOfRange(t *testing.T) {
	home := setupDraft(t, schedule.Set{oneOff(3, 18)})

	stdout, err := execScheduleEdit(home, testKit("e 5", "d 0", "q"))

	require.NoError(t, err)
	assert.Contains(t, stdout, "number out of range (1-1)")
	assert.Len(t, savedDraft(t, home).Schedules, 1)
}

func TestScheduleEditCeiling(t *testing.T) {
	end := schedule.Date{Year: 2024, Month: time.December, Day: 31}
	year := schedule.Rule{
		StartDate:  schedule.Date{Year: 2024, Month: time.January, Day: 1},
		EndDate:    &end,
		TimeSlots:  []schedule.TimeSlot{slotAt(9, 1), slotAt(11, 1), slotAt(13, 1), slotAt(15, 1), slotAt(17, 1)},
		RepeatDays: schedule.FullWeek(),
	}
	home := setupDraft(t, schedule.Set{year})

	stdout, err := execScheduleEdit(home, testKit(
		"a 7pm for 1h every all from 2024-01-01 to 2024-12-31",
		"c",
		"d 2",
		"c",
	))

	require.NoError(t, err)
	assert.Contains(t, stdout, "2196 of 2000 time slots")
	assert.Contains(t, stdout, "This would exceed the maximum of 2000 time slots.")
	assert.Contains(t, stdout, "Maximum of 2000 time slots.")
	assert.Contains(t, stdout, "1830 time slots ready to publish")
}

func TestScheduleEditStartTimeGrid(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit(
		"a",
		"s 2024-06-03",
		"t 1 6:15pm 2h",
		"6:30pm",
		"w",
		"q",
	))

	require.NoError(t, err)
	assert.Contains(t, stdout, "start times go in 30-minute steps")
	d := savedDraft(t, home)
	require.Len(t, d.Schedules, 1)
	assert.Equal(t, 30, d.Schedules[0].TimeSlots[0].StartTime.Minutes)
}

func TestScheduleEditStartTimeInThePast(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit(
		"a",
		"s today",
		"t 1 9am 1h",
		"11am",
		"w",
		"q",
	))

	require.NoError(t, err)
	assert.Contains(t, stdout, "that time has already passed today")
	d := savedDraft(t, home)
	require.Len(t, d.Schedules, 1)
	assert.Equal(t, "2024-06-01", d.Schedules[0].StartDate)
	assert.Equal(t, 11, d.Schedules[0].TimeSlots[0].StartTime.Hours)
}

func TestScheduleEditUnknownAction(t *testing.T) {
	home := setupDraft(t, nil)

	stdout, err := execScheduleEdit(home, testKit("z", "q"))

	require.NoError(t, err)
	assert.Contains(t, stdout, "unknown action")
}

func TestScheduleEditMissingDraft(t *testing.T) {
	_, err := execScheduleEdit(t.TempDir(), testKit("q"))

	assert.ErrorIs(t, err, draft.ErrNotFound)
}

func TestSplitAction(t *testing.T) {
	verb, rest := splitAction("  A 6pm for 2h on Monday ")
	assert.Equal(t, "a", verb)
	assert.Equal(t, "6pm for 2h on Monday", rest)

	verb, rest = splitAction("q")
	assert.Equal(t, "q", verb)
	assert.Equal(t, "", rest)
}

func TestParseActionIndex(t *testing.T) {
	tests := []struct {
		action  string
		count   int
		want    int
		wantErr string
	}{
		{"e 2", 3, 1, ""},
		{"delete 1", 1, 0, ""},
		{"e", 3, 0, "expected a number"},
		{"e x", 3, 0, "invalid number"},
		{"e 4", 3, 0, "out of range"},
		{"d 1", 0, 0, "nothing to pick"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			got, err := parseActionIndex(tt.action, tt.count)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
