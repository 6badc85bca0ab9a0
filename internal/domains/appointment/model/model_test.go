package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookly/internal/domains/appointment/model"
	"bookly/internal/domains/availability"
)

func TestBusyFilter(t *testing.T) {
	window := availability.Interval{
		Start: time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2030, 6, 11, 0, 0, 0, 0, time.UTC),
	}

	filter := model.BusyFilter("pro-1", window)
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "appointments.start_time < :busy_to")
	assert.Contains(t, where, "appointments.end_time > :busy_from")
	assert.NotContains(t, where, "appointments.date")
	assert.Equal(t, window.End, args["busy_to"])
	assert.Equal(t, window.Start, args["busy_from"])
	assert.Equal(t, "pro-1", args["professional_id"])
}
