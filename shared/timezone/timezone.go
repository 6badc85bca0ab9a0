package timezone

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
	_ "time/tzdata"

	"bookly/config"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location

	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

	ErrInvalidClock = errors.New("time must be in HH:mm 24-hour format")
	ErrInvalidDay   = errors.New("date must be in YYYY-MM-DD format")
)

const (
	dayLayout      = "2006-01-02"
	clockLayout    = "15:04"
	minutesPerHour = 60
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")
		appLocation = time.UTC
		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current instant in UTC. All persisted timestamps are UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, returning UTC")
		return time.UTC
	}
	return appLocation
}

// LoadLocation resolves an IANA zone name, falling back to the application timezone.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return GetLocation()
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("unknown business timezone, using application timezone")

		return GetLocation()
	}

	return loc
}

// ParseDay parses a "YYYY-MM-DD" calendar day. The result is midnight UTC and only
// its calendar fields are meaningful.
func ParseDay(value string) (time.Time, error) {
	day, err := time.Parse(dayLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}

	return day, nil
}

// FormatDay renders the calendar fields of day as "YYYY-MM-DD".
func FormatDay(day time.Time) string {
	return day.Format(dayLayout)
}

// ParseClock validates a 24-hour "HH:mm" string and returns minutes since midnight.
func ParseClock(clock string) (int, error) {
	parts := clockPattern.FindStringSubmatch(clock)
	if parts == nil {
		return 0, ErrInvalidClock
	}

	hours, _ := strconv.Atoi(parts[1])
	minutes, _ := strconv.Atoi(parts[2])

	return hours*minutesPerHour + minutes, nil
}

// FormatClock renders minutes since midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}

// At returns the instant, in UTC, of the wall-clock minute on the calendar day in loc.
func At(day time.Time, minuteOfDay int, loc *time.Location) time.Time {
	year, month, date := day.Date()

	return time.Date(year, month, date, 0, minuteOfDay, 0, 0, loc).UTC()
}

// Combine joins a calendar day and an "HH:mm" wall-clock time in loc into a UTC instant.
func Combine(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	return At(day, minutes, loc), nil
}

// EndAt returns start shifted by a duration in minutes.
func EndAt(start time.Time, minutes int) time.Time {
	return start.Add(time.Duration(minutes) * time.Minute)
}

// Today returns the calendar day of the instant now as observed in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	year, month, date := now.In(loc).Date()

	return time.Date(year, month, date, 0, 0, 0, 0, time.UTC)
}

// ClockOf renders the wall-clock time of t in loc as "HH:mm".
func ClockOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(clockLayout)
}

// MonthRange returns the first and last calendar day of the month containing day.
func MonthRange(day time.Time) (first, last time.Time) {
	year, month, _ := day.Date()

	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)

	return first, last
}
