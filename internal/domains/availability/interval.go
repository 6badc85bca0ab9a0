package availability

import (
	"time"

	"bookly/shared/timezone"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	ID    string
	Start time.Time
	End   time.Time
}

// DayWindow spans the calendar day from local midnight to the next local midnight in loc.
func DayWindow(day time.Time, loc *time.Location) Interval {
	return Interval{Start: timezone.At(day, 0, loc), End: timezone.At(day.AddDate(0, 0, 1), 0, loc)}
}

// Overlaps reports whether a and b share any instant. Intervals that only touch
// (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// HasConflict reports whether candidate overlaps any of the busy intervals. The busy
// interval whose ID equals ignoreID is skipped, so a rescheduled appointment does not
// conflict with itself.
func HasConflict(candidate Interval, busy []Interval, ignoreID string) bool {
	for _, b := range busy {
		if ignoreID != "" && b.ID == ignoreID {
			continue
		}

		if Overlaps(candidate, b) {
			return true
		}
	}

	return false
}
