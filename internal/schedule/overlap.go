package schedule

import (
	"fmt"
	"sort"
	"time"
)

// SlotOverlap names two slots of the same rule whose windows intersect.
type SlotOverlap struct {
	First, Second int
}

// FindOverlaps returns every pair of complete slots in r whose windows
// overlap on the same day. Overlaps are allowed; editors surface them as a
// warning only.
func FindOverlaps(r Rule) []SlotOverlap {
	type window struct {
		idx        int
		start, end time.Duration
	}

	var windows []window
	for i, s := range r.TimeSlots {
		if !IsTimeSlotComplete(s) {
			continue
		}
		start := time.Duration(s.StartTime.Hour)*time.Hour + time.Duration(s.StartTime.Minute)*time.Minute
		windows = append(windows, window{idx: i, start: start, end: start + s.Duration.Std()})
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].start < windows[j].start })

	var out []SlotOverlap
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows) && windows[j].start < windows[i].end; j++ {
			a, b := windows[i].idx, windows[j].idx
			if a > b {
				a, b = b, a
			}
			out = append(out, SlotOverlap{First: a, Second: b})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].First != out[j].First {
			return out[i].First < out[j].First
		}
		return out[i].Second < out[j].Second
	})
	return out
}

// String renders the overlap with 1-based slot numbers.
func (o SlotOverlap) String() string {
	return fmt.Sprintf("time slots %d and %d overlap", o.First+1, o.Second+1)
}
