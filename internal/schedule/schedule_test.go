package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	// Fixed reference time: Saturday, June 1, 2024
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     string
		wantStart Date
		wantEnd   *Date
		wantDays  []Weekday
		wantSlots []string
		wantErr   bool
	}{
		{
			name:      "one-off",
			input:     "6pm for 2h on 2024-06-03",
			wantStart: june(3),
			wantSlots: []string{"6:00 PM for 2 hours"},
		},
		{
			name:      "one-off relative",
			input:     "10am for 1 hour + 2pm for 30m on monday",
			wantStart: june(3),
			wantSlots: []string{"10:00 AM for 1 hour", "2:00 PM for 30 minutes"},
		},
		{
			name:      "repeating",
			input:     "6pm for 2h every mon,wed from 2024-06-03 to 2024-06-16",
			wantStart: june(3),
			wantEnd:   datePtr(june(16)),
			wantDays:  []Weekday{Mon, Wed},
			wantSlots: []string{"6:00 PM for 2 hours"},
		},
		{
			name:      "repeating weekdays with and",
			input:     "9am for 1h and 1pm for 1h every weekdays from jun 3 until jun 28",
			wantStart: Date{2024, time.June, 3},
			wantEnd:   datePtr(Date{2024, time.June, 28}),
			wantDays:  []Weekday{Mon, Tue, Wed, Thu, Fri},
			wantSlots: []string{"9:00 AM for 1 hour", "1:00 PM for 1 hour"},
		},
		{
			name:      "raw rrule",
			input:     `18:00 for 2h DTSTART:20240603T000000Z\nRRULE:FREQ=WEEKLY;BYDAY=MO,WE;UNTIL=20240616T000000Z`,
			wantStart: june(3),
			wantEnd:   datePtr(june(16)),
			wantDays:  []Weekday{Mon, Wed},
			wantSlots: []string{"6:00 PM for 2 hours"},
		},
		{
			name:      "raw rrule single date",
			input:     "18:00 for 1h DTSTART:20240603T000000Z RRULE:FREQ=DAILY;COUNT=1",
			wantStart: june(3),
			wantSlots: []string{"6:00 PM for 1 hour"},
		},

		// Errors
		{name: "no when", input: "6pm for 2h", wantErr: true},
		{name: "bad slot", input: "6pm on 2024-06-03", wantErr: true},
		{name: "bad duration", input: "6pm for ever on 2024-06-03", wantErr: true},
		{name: "end not after start", input: "6pm for 2h every mon from 2024-06-03 to 2024-06-03", wantErr: true},
		{name: "bad days", input: "6pm for 2h every blursday from 2024-06-03 to 2024-06-10", wantErr: true},
		{name: "missing range", input: "6pm for 2h every mon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRule(tt.input, "UTC", now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, IsRuleValid(got), "parsed rule should be valid")
			assert.Equal(t, tt.wantStart, got.StartDate)
			assert.Equal(t, tt.wantEnd, got.EndDate)
			if tt.wantDays == nil {
				assert.Nil(t, got.RepeatDays)
			} else {
				assert.Equal(t, tt.wantDays, got.RepeatDays.Sorted())
			}
			descs := make([]string, len(got.TimeSlots))
			for i, s := range got.TimeSlots {
				descs[i] = FormatTimeSlot(s)
				assert.Equal(t, "UTC", s.StartTime.TimeZone)
			}
			assert.Equal(t, tt.wantSlots, descs)
		})
	}
}

func TestRRuleStringRoundTrip(t *testing.T) {
	rule := Rule{
		StartDate:  june(3),
		EndDate:    datePtr(june(16)),
		TimeSlots:  []TimeSlot{slotAt(18, 0, 2, UnitHours)},
		RepeatDays: NewWeekdaySet(Mon, Wed),
	}

	s, err := RRuleString(rule)
	require.NoError(t, err)
	assert.Contains(t, s, "FREQ=WEEKLY")
	assert.Contains(t, s, "BYDAY=MO,WE")

	start, end, days, err := parseRecurrence(s)
	require.NoError(t, err)
	assert.Equal(t, june(3), start)
	require.NotNil(t, end)
	assert.Equal(t, june(16), *end)
	assert.Equal(t, []Weekday{Mon, Wed}, days.Sorted())
}

func TestRRuleStringOneOff(t *testing.T) {
	s, err := RRuleString(Rule{StartDate: june(3)})
	require.NoError(t, err)
	assert.Contains(t, s, "COUNT=1")

	_, err = RRuleString(Rule{StartDate: june(3), RepeatDays: FullWeek()})
	assert.Error(t, err)
}

func TestRRuleStringEmptyRepeatDays(t *testing.T) {
	rule := Rule{StartDate: june(3), EndDate: datePtr(june(16)), RepeatDays: NewWeekdaySet()}

	_, err := RRuleString(rule)

	assert.ErrorContains(t, err, "no repeat days")
}

func TestParseRuleNonASCIIInput(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	// 'Ⱥ' lowercases to a longer UTF-8 sequence.
	input := strings.Repeat("Ⱥ", 20) + " rrule:FREQ=DAILY"

	assert.NotPanics(t, func() {
		_, err := ParseRule(input, "UTC", now)
		assert.Error(t, err)
	})

	rule, err := ParseRule("6PM for 2h DTSTART:20240603T000000Z RRULE:FREQ=DAILY;UNTIL=20240609T000000Z", "UTC", now)
	require.NoError(t, err)
	assert.Equal(t, june(3), rule.StartDate)
	assert.True(t, rule.RepeatDays.IsFullWeek())
}

func TestParseRecurrenceRejectsUnsupported(t *testing.T) {
	tests := []string{
		"FREQ=WEEKLY;BYDAY=MO",
		"DTSTART:20240603T000000Z\nRRULE:FREQ=WEEKLY;BYDAY=MO",
		"DTSTART:20240603T000000Z\nRRULE:FREQ=WEEKLY;INTERVAL=2;UNTIL=20240630T000000Z",
		"DTSTART:20240603T000000Z\nRRULE:FREQ=MONTHLY;UNTIL=20241231T000000Z",
	}
	for _, in := range tests {
		_, _, _, err := parseRecurrence(in)
		assert.Error(t, err, in)
	}
}
