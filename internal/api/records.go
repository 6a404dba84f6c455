// Package api holds the wire format of schedules and a small HTTP client for
// the events backend.
package api

// TimeOfDayRecord is the JSON form of a slot start time.
type TimeOfDayRecord struct {
	Hours    int    `json:"hours"`
	Minutes  int    `json:"minutes"`
	TimeZone string `json:"timeZone"`
}

// DurationRecord is the JSON form of a slot length.
type DurationRecord struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// TimeSlotRecord is the JSON form of one time slot.
type TimeSlotRecord struct {
	StartTime *TimeOfDayRecord `json:"startTime,omitempty"`
	Duration  *DurationRecord  `json:"duration,omitempty"`
}

// ScheduleRecord is a schedule rule as the backend stores it. ID and Sold are
// assigned by the backend; a record built for a new rule carries neither.
// RepeatDays is a pointer so that an absent list and an empty one stay apart.
type ScheduleRecord struct {
	ID         string           `json:"_id,omitempty"`
	StartDate  string           `json:"startDate"`
	EndDate    *string          `json:"endDate,omitempty"`
	TimeSlots  []TimeSlotRecord `json:"timeSlots"`
	RepeatDays *[]string        `json:"repeatDays,omitempty"`
	Sold       int              `json:"sold,omitempty"`
}

// EventPayload is the body of the event-creation request. Only the fields
// this tool fills in are modeled.
type EventPayload struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Schedules   []ScheduleRecord `json:"schedules"`
}

// CreatedEvent is the backend's answer to an event-creation request.
type CreatedEvent struct {
	ID string `json:"_id"`
}
