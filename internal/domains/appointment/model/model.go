package model

import (
	"time"

	"bookly/internal/domains/availability"
	"bookly/shared"
	gDto "bookly/shared/dto"
	"bookly/shared/model"
	"bookly/shared/timezone"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID             = "id"
	FieldBusinessID     = "business_id"
	FieldCustomerID     = "customer_id"
	FieldServiceID      = "service_id"
	FieldProfessionalID = "professional_id"
	FieldDate           = "date"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldStatus         = "status"
	FieldNotes          = "notes"

	// ConstraintNoOverlap is the exclusion constraint that backs the conflict check.
	ConstraintNoOverlap = "appointments_no_overlap"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}

	return false
}

func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type Appointment struct {
	ID             string    `db:"id"`
	BusinessID     string    `db:"business_id"`
	CustomerID     string    `db:"customer_id"`
	ServiceID      string    `db:"service_id"`
	ProfessionalID string    `db:"professional_id"`
	Date           time.Time `db:"date"`
	StartTime      time.Time `db:"start_time"`
	EndTime        time.Time `db:"end_time"`
	Status         Status    `db:"status"`
	Notes          string    `db:"notes"`
	model.Metadata
}

func (a Appointment) Interval() availability.Interval {
	return availability.Interval{ID: a.ID, Start: a.StartTime, End: a.EndTime}
}

// AppointmentDetail is an appointment with the names a response or an email needs.
type AppointmentDetail struct {
	Appointment
	CustomerName              string  `db:"customer_name"                  table:"customers"     column:"name"`
	CustomerPhone             string  `db:"customer_phone"                 table:"customers"     column:"phone"`
	CustomerEmail             string  `db:"customer_email"                 table:"customers"     column:"email"`
	ServiceName               string  `db:"service_name"                   table:"services"      column:"name"`
	ServiceDurationMinutes    int     `db:"service_duration_minutes"       table:"services"      column:"duration_minutes"`
	ServicePrice              float64 `db:"service_price"                  table:"services"      column:"price"`
	ProfessionalName          string  `db:"professional_name"              table:"professionals" column:"name"`
	BusinessName              string  `db:"business_name"                  table:"businesses"    column:"name"`
	BusinessSlug              string  `db:"business_slug"                  table:"businesses"    column:"slug"`
	BusinessTimezone          string  `db:"business_timezone"              table:"businesses"    column:"timezone"`
	BusinessCancellationHours int     `db:"business_cancellation_hours"    table:"businesses"    column:"cancellation_notice_hours"`
}

func (AppointmentDetail) GetJoinQuery() string {
	return "JOIN customers ON customers.id = appointments.customer_id " +
		"JOIN services ON services.id = appointments.service_id " +
		"JOIN professionals ON professionals.id = appointments.professional_id " +
		"JOIN businesses ON businesses.id = appointments.business_id"
}

func (d AppointmentDetail) Location() *time.Location {
	return timezone.LoadLocation(d.BusinessTimezone)
}

func statusFilter(operator string, status Status) gDto.Filter {
	return gDto.Filter{
		ArgName:  "status_" + operator,
		Field:    FieldStatus,
		Value:    status,
		Operator: operator,
		Table:    TableName,
	}
}

// ActiveFilter excludes cancelled appointments.
func ActiveFilter() gDto.Filter {
	return statusFilter(gDto.FilterOperatorNotEq, StatusCancelled)
}

// MonthlyUsageFilter selects the non-cancelled appointments of a business whose date
// falls in the calendar month of day.
func MonthlyUsageFilter(businessID string, day time.Time) gDto.FilterGroup {
	first, last := timezone.MonthRange(day)

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			shared.FilterByBusiness(businessID, TableName),
			gDto.Filter{
				ArgName:  "date_from",
				Field:    FieldDate,
				Value:    timezone.FormatDay(first),
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "date_to",
				Field:    FieldDate,
				Value:    timezone.FormatDay(last),
				Operator: gDto.FilterOperatorLessEq,
				Table:    TableName,
			},
			ActiveFilter(),
		},
	}
}

// BusyFilter selects the bookings of a professional that overlap window. Matching on
// time rather than on the date column catches bookings that cross midnight.
func BusyFilter(professionalID string, window availability.Interval) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    FieldProfessionalID,
				Value:    professionalID,
				Operator: gDto.FilterOperatorEq,
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "busy_to",
				Field:    FieldStartTime,
				Value:    window.End,
				Operator: gDto.FilterOperatorLess,
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "busy_from",
				Field:    FieldEndTime,
				Value:    window.Start,
				Operator: gDto.FilterOperatorGreater,
				Table:    TableName,
			},
			ActiveFilter(),
		},
	}
}

// UpcomingFilter selects PENDING or CONFIRMED appointments starting in (from, to].
func UpcomingFilter(from, to time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "window_from",
				Field:    FieldStartTime,
				Value:    from,
				Operator: gDto.FilterOperatorGreater,
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "window_to",
				Field:    FieldStartTime,
				Value:    to,
				Operator: gDto.FilterOperatorLessEq,
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "upcoming_status",
				Field:    FieldStatus,
				Value:    []Status{StatusPending, StatusConfirmed},
				Operator: gDto.FilterOperatorIn,
				Table:    TableName,
			},
		},
	}
}
