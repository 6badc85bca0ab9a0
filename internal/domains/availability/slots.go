package availability

import (
	"iter"
	"time"

	"bookly/shared/timezone"
)

// Slot is a candidate start time on the requested day.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Params describes one slot query. Day carries only calendar fields; Location is the
// business zone in which working hours are interpreted.
type Params struct {
	Day             time.Time
	Location        *time.Location
	Hours           WorkingHours
	TickMinutes     int
	DurationMinutes int
	// Busy are the non-cancelled appointments of the professional on Day.
	Busy []Interval
	// EarliestStart is now plus the business minimum advance; earlier ticks are unavailable.
	EarliestStart time.Time
}

// Generate yields the candidate slots of a day in ascending order. Each candidate
// [tick, tick+duration) must fit inside an open range. Ranging over the result again
// recomputes it from Params.
func Generate(params Params) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if params.TickMinutes <= 0 || params.DurationMinutes <= 0 {
			return
		}

		loc := params.Location
		if loc == nil {
			loc = time.UTC
		}

		for _, r := range params.Hours.RangesFor(params.Day) {
			open, closing, err := r.minutes()
			if err != nil {
				continue
			}

			for tick := open; tick+params.DurationMinutes <= closing; tick += params.TickMinutes {
				start := timezone.At(params.Day, tick, loc)
				candidate := Interval{Start: start, End: timezone.EndAt(start, params.DurationMinutes)}

				slot := Slot{
					Time:      timezone.FormatClock(tick),
					Available: !start.Before(params.EarliestStart) && !HasConflict(candidate, params.Busy, ""),
				}

				if !yield(slot) {
					return
				}
			}
		}
	}
}

// Fits reports whether [startMinute, startMinute+duration) lies inside one open range of
// day. Public bookings must fit; the dashboard may book outside hours.
func Fits(hours WorkingHours, day time.Time, startMinute, durationMinutes int) bool {
	for _, r := range hours.RangesFor(day) {
		open, closing, err := r.minutes()
		if err != nil {
			continue
		}

		if startMinute >= open && startMinute+durationMinutes <= closing {
			return true
		}
	}

	return false
}
