package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	if now.Location() != time.UTC {
		t.Errorf("Now() should be UTC, got %s", now.Location())
	}

	if timezone.GetLocation() == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestLoadLocation(t *testing.T) {
	lisbon := timezone.LoadLocation("Europe/Lisbon")
	assert.Equal(t, "Europe/Lisbon", lisbon.String())

	assert.Equal(t, timezone.GetLocation(), timezone.LoadLocation(""))
	assert.Equal(t, timezone.GetLocation(), timezone.LoadLocation("Mars/Olympus"))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "afternoon", input: "14:30", want: 870},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "seconds are rejected", input: "09:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseClock(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, timezone.ErrInvalidClock)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, timezone.FormatClock(got))
		})
	}
}

func TestCombineAndEndAt(t *testing.T) {
	day, err := timezone.ParseDay("2025-06-10")
	require.NoError(t, err)

	start, err := timezone.Combine(day, "14:30", time.UTC)
	require.NoError(t, err)

	end := timezone.EndAt(start, 45)

	assert.Equal(t, time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 10, 15, 15, 0, 0, time.UTC), end)
}

func TestCombineInBusinessZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	day, err := timezone.ParseDay("2025-06-10")
	require.NoError(t, err)

	start, err := timezone.Combine(day, "09:00", loc)
	require.NoError(t, err)

	// EDT is UTC-4 in June.
	assert.Equal(t, time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC), start)
	assert.Equal(t, "09:00", timezone.ClockOf(start, loc))
}

func TestToday(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-06-11", timezone.FormatDay(timezone.Today(now, loc)))
	assert.Equal(t, "2025-06-10", timezone.FormatDay(timezone.Today(now, time.UTC)))
}

func TestMonthRange(t *testing.T) {
	day, err := timezone.ParseDay("2024-02-15")
	require.NoError(t, err)

	first, last := timezone.MonthRange(day)

	assert.Equal(t, "2024-02-01", timezone.FormatDay(first))
	assert.Equal(t, "2024-02-29", timezone.FormatDay(last))
}

func TestParseDayInvalid(t *testing.T) {
	_, err := timezone.ParseDay("10/06/2025")

	assert.ErrorIs(t, err, timezone.ErrInvalidDay)
}
