package availability

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"bookly/shared/timezone"
)

var (
	ErrInvalidRange   = errors.New("working hours range must open before it closes")
	ErrOverlapRange   = errors.New("working hours ranges must not overlap")
	ErrUnknownWeekday = errors.New("unknown weekday")
	ErrDuplicateDay   = errors.New("weekday listed more than once")
)

// Range is an open window of a working day, e.g. 09:00-12:00.
type Range struct {
	Open  string `json:"open"  validate:"required"`
	Close string `json:"close" validate:"required"`
}

func (r Range) minutes() (open, closing int, err error) {
	if open, err = timezone.ParseClock(r.Open); err != nil {
		return 0, 0, err
	}

	if closing, err = timezone.ParseClock(r.Close); err != nil {
		return 0, 0, err
	}

	if open >= closing {
		return 0, 0, ErrInvalidRange
	}

	return open, closing, nil
}

// Exception replaces the weekday schedule on a single date. Closed wins over Ranges.
type Exception struct {
	Date   string  `json:"date"             validate:"required"`
	Closed bool    `json:"closed"`
	Ranges []Range `json:"ranges,omitempty"`
}

// WorkingHours holds per-weekday open ranges plus dated exceptions. Weekdays are
// keyed by English name, case-insensitively, and stored lower-case. A weekday
// without ranges is closed.
type WorkingHours struct {
	Days       map[string][]Range `json:"days"`
	Exceptions []Exception        `json:"exceptions,omitempty"`
}

// DefaultWorkingHours is used when neither the business nor the professional has
// configured a schedule: Monday to Saturday, 09:00 to 18:00.
func DefaultWorkingHours() WorkingHours {
	day := []Range{{Open: "09:00", Close: "18:00"}}

	return WorkingHours{
		Days: map[string][]Range{
			"monday":    day,
			"tuesday":   day,
			"wednesday": day,
			"thursday":  day,
			"friday":    day,
			"saturday":  day,
		},
	}
}

func (w WorkingHours) IsZero() bool {
	return len(w.Days) == 0 && len(w.Exceptions) == 0
}

// Validate checks weekday names, range bounds and that ranges of a day do not overlap.
func (w WorkingHours) Validate() error {
	seen := make(map[time.Weekday]string, len(w.Days))

	for name, ranges := range w.Days {
		weekday, ok := weekdayByName(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownWeekday, name)
		}

		if other, dup := seen[weekday]; dup {
			return fmt.Errorf("%w: %s and %s", ErrDuplicateDay, other, name)
		}

		seen[weekday] = name

		if err := validateRanges(ranges); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	for _, exception := range w.Exceptions {
		if _, err := timezone.ParseDay(exception.Date); err != nil {
			return fmt.Errorf("exception %q: %w", exception.Date, err)
		}

		if err := validateRanges(exception.Ranges); err != nil {
			return fmt.Errorf("exception %s: %w", exception.Date, err)
		}
	}

	return nil
}

// RangesFor returns the open ranges for a calendar day, sorted by opening time.
func (w WorkingHours) RangesFor(day time.Time) []Range {
	date := timezone.FormatDay(day)

	for _, exception := range w.Exceptions {
		if exception.Date != date {
			continue
		}

		if exception.Closed {
			return nil
		}

		return sortRanges(exception.Ranges)
	}

	return sortRanges(w.rangesOn(day.Weekday()))
}

func (w WorkingHours) rangesOn(weekday time.Weekday) []Range {
	name := weekday.String()

	if ranges, ok := w.Days[strings.ToLower(name)]; ok {
		return ranges
	}

	for key, ranges := range w.Days {
		if strings.EqualFold(key, name) {
			return ranges
		}
	}

	return nil
}

// UnmarshalJSON lower-cases weekday keys so lookups match whatever casing the client sent.
func (w *WorkingHours) UnmarshalJSON(data []byte) error {
	type plain WorkingHours

	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err //nolint:wrapcheck
	}

	if decoded.Days != nil {
		days := make(map[string][]Range, len(decoded.Days))

		for name, ranges := range decoded.Days {
			key := strings.ToLower(name)
			if _, dup := days[key]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateDay, key)
			}

			days[key] = ranges
		}

		decoded.Days = days
	}

	*w = WorkingHours(decoded)

	return nil
}

// Value implements driver.Valuer so the schedule can live in a JSONB column.
func (w WorkingHours) Value() (driver.Value, error) {
	if w.IsZero() {
		return []byte("{}"), nil
	}

	return json.Marshal(w) //nolint:wrapcheck
}

// Scan implements sql.Scanner.
func (w *WorkingHours) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*w = WorkingHours{}

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported working hours type %T", src)
	}

	if len(raw) == 0 {
		*w = WorkingHours{}

		return nil
	}

	if err := json.Unmarshal(raw, w); err != nil {
		return fmt.Errorf("failed to decode working hours: %w", err)
	}

	return nil
}

func validateRanges(ranges []Range) error {
	sorted := sortRanges(ranges)
	previousClose := -1

	for _, r := range sorted {
		open, closing, err := r.minutes()
		if err != nil {
			return err
		}

		if open < previousClose {
			return ErrOverlapRange
		}

		previousClose = closing
	}

	return nil
}

func sortRanges(ranges []Range) []Range {
	sorted := slices.Clone(ranges)

	slices.SortFunc(sorted, func(a, b Range) int {
		return strings.Compare(a.Open, b.Open)
	})

	return sorted
}

func weekdayByName(name string) (time.Weekday, bool) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), name) {
			return day, true
		}
	}

	return 0, false
}
