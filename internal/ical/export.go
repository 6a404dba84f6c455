// Package ical renders the concrete occurrences of a schedule set as an
// iCalendar feed.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/eventorbit/eventorbit/internal/schedule"
)

const productID = "-//EventOrbit//Schedule Export//EN"

// uidNamespace scopes the name-based UIDs of exported occurrences.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://eventorbit.app/occurrence"))

// Options describes the event the occurrences belong to.
type Options struct {
	// EventKey identifies the event; it seeds occurrence UIDs, so the same
	// key and rules always export the same UIDs.
	EventKey    string
	Title       string
	Description string
	Location    string
	// Stamp is written as DTSTAMP. Zero means now.
	Stamp time.Time
}

// Export returns an iCalendar document holding one VEVENT per occurrence of
// rules, in date order.
func Export(rules []schedule.Rule, opts Options) string {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if opts.Title != "" {
		cal.SetXWRCalName(opts.Title)
	}

	for _, occ := range schedule.Occurrences(rules) {
		ev := cal.AddEvent(OccurrenceUID(opts.EventKey, occ))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(occ.Start().UTC())
		ev.SetEndAt(occ.End().UTC())
		ev.SetSummary(summary(opts.Title, occ))
		if opts.Description != "" {
			ev.SetDescription(opts.Description)
		}
		if opts.Location != "" {
			ev.SetLocation(opts.Location)
		}
	}

	return cal.Serialize()
}

// OccurrenceUID returns the stable UID of one occurrence of an event.
func OccurrenceUID(eventKey string, occ schedule.Occurrence) string {
	name := fmt.Sprintf("%s/%s/%d/%d", eventKey, occ.Date, occ.RuleIndex, occ.SlotIndex)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@eventorbit"
}

func summary(title string, occ schedule.Occurrence) string {
	if title == "" {
		return occ.Descriptor()
	}
	return title + " (" + occ.Descriptor() + ")"
}
