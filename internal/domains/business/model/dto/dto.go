package dto

import (
	"time"

	"bookly/internal/domains/availability"
	"bookly/internal/domains/business/model"
	"bookly/internal/domains/plan"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
)

type UpdateBusinessRequest struct {
	Name                    *string `db:"name"                      json:"name"                      validate:"omitempty,min=2,max=100"`
	Email                   *string `db:"email"                     json:"email"                     validate:"omitempty,email"`
	Phone                   *string `db:"phone"                     json:"phone"                     validate:"omitempty,max=30"`
	Address                 *string `db:"address"                   json:"address"                   validate:"omitempty,max=255"`
	PrimaryColor            *string `db:"primary_color"             json:"primary_color"             validate:"omitempty,hexcolor"`
	Timezone                *string `db:"timezone"                  json:"timezone"                  validate:"omitempty,timezone"`
	MinAdvanceHours         *int    `db:"min_advance_hours"         json:"min_advance_hours"         validate:"omitempty,min=0,max=720"`
	CancellationPolicy      *string `db:"cancellation_policy"       json:"cancellation_policy"       validate:"omitempty,max=2000"`
	CancellationNoticeHours *int    `db:"cancellation_notice_hours" json:"cancellation_notice_hours" validate:"omitempty,min=0,max=720"`
	SlotIntervalMinutes     *int    `db:"slot_interval_minutes"     json:"slot_interval_minutes"     validate:"omitempty,oneof=5 10 15 20 30 45 60"`
}

type UpdateWorkingHoursRequest struct {
	WorkingHours availability.WorkingHours `json:"working_hours"`
}

type UploadLogoRequest struct {
	// Logo is a base64 data URL, e.g. "data:image/png;base64,....".
	Logo string `json:"logo" validate:"required,mimetypes=image/png image/jpeg image/webp,maxfilesize=2"`
}

type LogoResponse struct {
	LogoURL string `json:"logo_url"`
}

type SetPlanRequest struct {
	Plan        plan.Tier   `db:"plan"        json:"plan"          validate:"required,oneof=FREEMIUM STARTER PROFESSIONAL ENTERPRISE"`
	Status      plan.Status `db:"plan_status" json:"status"        validate:"required,oneof=trial active cancelled"`
	TrialEndsAt *time.Time  `db:"trial_ends_at" json:"trial_ends_at"`
}

type BusinessResponse struct {
	ID                      string                    `json:"id"`
	Name                    string                    `json:"name"`
	Slug                    string                    `json:"slug"`
	Email                   string                    `json:"email"`
	Phone                   string                    `json:"phone"`
	Address                 string                    `json:"address"`
	PrimaryColor            string                    `json:"primary_color"`
	LogoURL                 string                    `json:"logo_url"`
	Timezone                string                    `json:"timezone"`
	Plan                    plan.Tier                 `json:"plan"`
	PlanStatus              plan.Status               `json:"plan_status"`
	TrialEndsAt             *string                   `json:"trial_ends_at,omitempty"`
	MinAdvanceHours         int                       `json:"min_advance_hours"`
	CancellationPolicy      string                    `json:"cancellation_policy"`
	CancellationNoticeHours int                       `json:"cancellation_notice_hours"`
	SlotIntervalMinutes     int                       `json:"slot_interval_minutes"`
	WorkingHours            availability.WorkingHours `json:"working_hours"`
	gDto.Metadata
}

func (r *BusinessResponse) FromModel(m model.Business) {
	r.ID = m.ID
	r.Name = m.Name
	r.Slug = m.Slug
	r.Email = m.Email
	r.Phone = m.Phone
	r.Address = m.Address
	r.PrimaryColor = m.PrimaryColor
	r.LogoURL = m.LogoURL
	r.Timezone = m.Location().String()
	r.Plan = m.Plan
	r.PlanStatus = m.PlanStatus
	r.MinAdvanceHours = m.MinAdvanceHours
	r.CancellationPolicy = m.CancellationPolicy
	r.CancellationNoticeHours = m.CancellationNoticeHours
	r.SlotIntervalMinutes = m.SlotIntervalMinutes
	r.WorkingHours = m.Hours()

	if m.TrialEndsAt != nil {
		trialEndsAt := m.TrialEndsAt.In(m.Location()).Format(constant.DateFormat)
		r.TrialEndsAt = &trialEndsAt
	}

	r.Metadata.FromModel(m.Metadata)
}

// PublicBusinessResponse is the profile shown on the booking page.
type PublicBusinessResponse struct {
	ID                      string                    `json:"id"`
	Name                    string                    `json:"name"`
	Slug                    string                    `json:"slug"`
	Phone                   string                    `json:"phone"`
	Address                 string                    `json:"address"`
	PrimaryColor            string                    `json:"primary_color"`
	LogoURL                 string                    `json:"logo_url"`
	Timezone                string                    `json:"timezone"`
	MinAdvanceHours         int                       `json:"min_advance_hours"`
	CancellationPolicy      string                    `json:"cancellation_policy"`
	CancellationNoticeHours int                       `json:"cancellation_notice_hours"`
	WorkingHours            availability.WorkingHours `json:"working_hours"`
}

func (r *PublicBusinessResponse) FromModel(m model.Business) {
	r.ID = m.ID
	r.Name = m.Name
	r.Slug = m.Slug
	r.Phone = m.Phone
	r.Address = m.Address
	r.PrimaryColor = m.PrimaryColor
	r.LogoURL = m.LogoURL
	r.Timezone = m.Location().String()
	r.MinAdvanceHours = m.MinAdvanceHours
	r.CancellationPolicy = m.CancellationPolicy
	r.CancellationNoticeHours = m.CancellationNoticeHours
	r.WorkingHours = m.Hours()
}

type ResourceUsage struct {
	Current   int  `json:"current"`
	Limit     int  `json:"limit"`
	Unlimited bool `json:"unlimited"`
}

type UsageResponse struct {
	Plan          plan.Tier     `json:"plan"`
	PlanStatus    plan.Status   `json:"plan_status"`
	Month         string        `json:"month"`
	Professionals ResourceUsage `json:"professionals"`
	Appointments  ResourceUsage `json:"appointments"`
}

func NewResourceUsage(decision plan.Decision) ResourceUsage {
	return ResourceUsage{
		Current:   decision.Current,
		Limit:     decision.Limit,
		Unlimited: decision.Limit == plan.Unlimited,
	}
}
