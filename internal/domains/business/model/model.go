package model

import (
	"time"

	"bookly/internal/domains/availability"
	"bookly/internal/domains/plan"
	"bookly/shared/model"
	"bookly/shared/timezone"
)

const (
	TableName  = "businesses"
	EntityName = "business"

	FieldID                      = "id"
	FieldName                    = "name"
	FieldSlug                    = "slug"
	FieldEmail                   = "email"
	FieldPhone                   = "phone"
	FieldAddress                 = "address"
	FieldPrimaryColor            = "primary_color"
	FieldLogoURL                 = "logo_url"
	FieldTimezone                = "timezone"
	FieldPlan                    = "plan"
	FieldPlanStatus              = "plan_status"
	FieldTrialEndsAt             = "trial_ends_at"
	FieldMinAdvanceHours         = "min_advance_hours"
	FieldCancellationPolicy      = "cancellation_policy"
	FieldCancellationNoticeHours = "cancellation_notice_hours"
	FieldSlotIntervalMinutes     = "slot_interval_minutes"
	FieldWorkingHours            = "working_hours"
)

type Business struct {
	ID                      string                    `db:"id"`
	Name                    string                    `db:"name"`
	Slug                    string                    `db:"slug"`
	Email                   string                    `db:"email"`
	Phone                   string                    `db:"phone"`
	Address                 string                    `db:"address"`
	PrimaryColor            string                    `db:"primary_color"`
	LogoURL                 string                    `db:"logo_url"`
	Timezone                string                    `db:"timezone"`
	Plan                    plan.Tier                 `db:"plan"`
	PlanStatus              plan.Status               `db:"plan_status"`
	TrialEndsAt             *time.Time                `db:"trial_ends_at"`
	MinAdvanceHours         int                       `db:"min_advance_hours"`
	CancellationPolicy      string                    `db:"cancellation_policy"`
	CancellationNoticeHours int                       `db:"cancellation_notice_hours"`
	SlotIntervalMinutes     int                       `db:"slot_interval_minutes"`
	WorkingHours            availability.WorkingHours `db:"working_hours"`
	model.Metadata
}

func (b Business) Subscription() plan.Subscription {
	return plan.Subscription{
		Tier:        b.Plan,
		Status:      b.PlanStatus,
		TrialEndsAt: b.TrialEndsAt,
	}
}

// Location resolves the business timezone, falling back to the application zone.
func (b Business) Location() *time.Location {
	return timezone.LoadLocation(b.Timezone)
}

// Hours returns the configured schedule or the default profile when none is set.
func (b Business) Hours() availability.WorkingHours {
	if b.WorkingHours.IsZero() {
		return availability.DefaultWorkingHours()
	}

	return b.WorkingHours
}

// TickMinutes returns the slot grid size, or fallback when the business has none.
func (b Business) TickMinutes(fallback int) int {
	if b.SlotIntervalMinutes > 0 {
		return b.SlotIntervalMinutes
	}

	return fallback
}
