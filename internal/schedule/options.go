package schedule

import "time"

// SlotStepMinutes is the spacing of the start-time grid offered by editors.
const SlotStepMinutes = 30

// SlotStartOptions returns the start times an editor offers for day: every
// half hour from 00:00 to 23:30 in zone. When day is today in zone, only
// times at or after the current time there are offered.
func SlotStartOptions(day Date, now time.Time, zone string) []TimeOfDay {
	now = now.In(TimeOfDay{TimeZone: zone}.Location())
	today := DateOf(now)
	var out []TimeOfDay
	for m := 0; m < 24*60; m += SlotStepMinutes {
		t := TimeOfDay{Hour: m / 60, Minute: m % 60, TimeZone: zone}
		if day == today && t.Before(TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MinimumEndDate is the earliest last-occurrence date an editor lets a user
// pick for a repeating rule starting on start.
func MinimumEndDate(start Date) Date {
	return start.AddDays(1)
}
