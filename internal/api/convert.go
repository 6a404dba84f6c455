package api

import (
	"strings"
	"time"

	"github.com/eventorbit/eventorbit/internal/schedule"
	"github.com/rs/zerolog/log"
)

// FromRecords strips the backend fields off records and returns the bare
// rules plus a Binding holding their ids. Malformed records are kept: a bad
// date or slot leaves the rule invalid, so it counts as zero occurrences.
func FromRecords(records []ScheduleRecord) (schedule.Set, *Binding) {
	rules := make(schedule.Set, 0, len(records))
	ids := make([]string, 0, len(records))

	for _, rec := range records {
		loc := recordLocation(rec)
		rule := schedule.Rule{StartDate: parseWireDate(rec.ID, "startDate", rec.StartDate, loc)}
		if rec.EndDate != nil {
			end := parseWireDate(rec.ID, "endDate", *rec.EndDate, loc)
			rule.EndDate = &end
		}
		if rec.RepeatDays != nil {
			days := schedule.NewWeekdaySet()
			for _, d := range *rec.RepeatDays {
				days[schedule.Weekday(strings.ToLower(d))] = struct{}{}
			}
			rule.RepeatDays = days
		}
		for _, s := range rec.TimeSlots {
			rule.TimeSlots = append(rule.TimeSlots, slotFromRecord(s))
		}
		if !schedule.IsRuleValid(rule) {
			log.Warn().Str("id", rec.ID).Msg("schedule record is incomplete")
		}

		rules = append(rules, rule)
		ids = append(ids, rec.ID)
	}

	return rules, NewBinding(ids...)
}

// ToPayload serializes rules for the backend, re-attaching the id of every
// rule the binding knows. It never invents an id.
func ToPayload(rules schedule.Set, b *Binding) []ScheduleRecord {
	out := make([]ScheduleRecord, 0, len(rules))
	for i, r := range rules {
		rec := ScheduleRecord{
			ID:        b.ID(i),
			StartDate: r.StartDate.String(),
			TimeSlots: make([]TimeSlotRecord, 0, len(r.TimeSlots)),
		}
		if r.EndDate != nil {
			end := r.EndDate.String()
			rec.EndDate = &end
		}
		if r.RepeatDays != nil {
			days := make([]string, 0, len(r.RepeatDays))
			for _, d := range r.RepeatDays.Sorted() {
				days = append(days, string(d))
			}
			rec.RepeatDays = &days
		}
		for _, s := range r.TimeSlots {
			rec.TimeSlots = append(rec.TimeSlots, slotToRecord(s))
		}
		out = append(out, rec)
	}
	return out
}

func slotFromRecord(rec TimeSlotRecord) schedule.TimeSlot {
	var s schedule.TimeSlot
	if rec.StartTime != nil {
		s.StartTime = &schedule.TimeOfDay{
			Hour:     rec.StartTime.Hours,
			Minute:   rec.StartTime.Minutes,
			TimeZone: rec.StartTime.TimeZone,
		}
	}
	if rec.Duration != nil {
		s.Duration = &schedule.Duration{
			Value: rec.Duration.Value,
			Unit:  schedule.Unit(rec.Duration.Unit),
		}
	}
	return s
}

func slotToRecord(s schedule.TimeSlot) TimeSlotRecord {
	var rec TimeSlotRecord
	if s.StartTime != nil {
		rec.StartTime = &TimeOfDayRecord{
			Hours:    s.StartTime.Hour,
			Minutes:  s.StartTime.Minute,
			TimeZone: s.StartTime.TimeZone,
		}
	}
	if s.Duration != nil {
		rec.Duration = &DurationRecord{
			Value: s.Duration.Value,
			Unit:  string(s.Duration.Unit),
		}
	}
	return rec
}

// recordLocation is the zone the record's days were picked in: that of its
// first timed slot, or UTC.
func recordLocation(rec ScheduleRecord) *time.Location {
	for _, s := range rec.TimeSlots {
		if s.StartTime != nil {
			return schedule.TimeOfDay{TimeZone: s.StartTime.TimeZone}.Location()
		}
	}
	return time.UTC
}

// parseWireDate reads an ISO date. A full timestamp is the local midnight
// the day was picked at, so it is read in loc before taking the date. An
// unreadable value becomes the zero Date.
func parseWireDate(id, field, s string, loc *time.Location) schedule.Date {
	if len(s) > 10 && s[10] == 'T' {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return schedule.DateOf(t.In(loc))
		}
		s = s[:10]
	}
	d, err := schedule.ParseISODate(s)
	if err != nil {
		log.Warn().Str("id", id).Str("field", field).Str("value", s).Msg("unreadable schedule date")
		return schedule.Date{}
	}
	return d
}
