// Package plan holds subscription tiers, their resource ceilings and the gate that
// decides whether a business may create one more of a resource.
package plan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Tier string

const (
	TierFreemium     Tier = "FREEMIUM"
	TierStarter      Tier = "STARTER"
	TierProfessional Tier = "PROFESSIONAL"
	TierEnterprise   Tier = "ENTERPRISE"
)

type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

type Resource string

const (
	ResourceProfessionals Resource = "professionals"
	ResourceAppointments  Resource = "appointments"
)

// Unlimited marks a ceiling that never blocks.
const Unlimited = -1

var ErrInvalidTable = errors.New("invalid plan limits")

func (t Tier) Valid() bool {
	switch t {
	case TierFreemium, TierStarter, TierProfessional, TierEnterprise:
		return true
	}

	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusTrial, StatusActive, StatusCancelled:
		return true
	}

	return false
}

type Limits struct {
	MaxProfessionals        int `json:"max_professionals"`
	MaxAppointmentsPerMonth int `json:"max_appointments_per_month"`
}

func (l Limits) For(resource Resource) int {
	switch resource {
	case ResourceProfessionals:
		return l.MaxProfessionals
	case ResourceAppointments:
		return l.MaxAppointmentsPerMonth
	}

	return 0
}

// Table maps a tier to its ceilings.
type Table map[Tier]Limits

func DefaultTable() Table {
	return Table{
		TierFreemium:     {MaxProfessionals: 1, MaxAppointmentsPerMonth: 20},
		TierStarter:      {MaxProfessionals: 3, MaxAppointmentsPerMonth: 200},
		TierProfessional: {MaxProfessionals: 10, MaxAppointmentsPerMonth: 1000},
		TierEnterprise:   {MaxProfessionals: Unlimited, MaxAppointmentsPerMonth: Unlimited},
	}
}

// ParseTable overlays "TIER:professionals:appointments" entries, comma separated, on the
// default table. An empty string yields the default table.
func ParseTable(raw string) (Table, error) {
	table := DefaultTable()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return table, nil
	}

	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTable, entry)
		}

		tier := Tier(strings.ToUpper(parts[0]))
		if !tier.Valid() {
			return nil, fmt.Errorf("%w: unknown tier %q", ErrInvalidTable, parts[0])
		}

		professionals, err := parseCeiling(parts[1])
		if err != nil {
			return nil, err
		}

		appointments, err := parseCeiling(parts[2])
		if err != nil {
			return nil, err
		}

		table[tier] = Limits{MaxProfessionals: professionals, MaxAppointmentsPerMonth: appointments}
	}

	return table, nil
}

func parseCeiling(value string) (int, error) {
	ceiling, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || ceiling < Unlimited {
		return 0, fmt.Errorf("%w: ceiling %q", ErrInvalidTable, value)
	}

	return ceiling, nil
}

// Subscription is the plan state of a business.
type Subscription struct {
	Tier        Tier
	Status      Status
	TrialEndsAt *time.Time
}

// Decision is the outcome of a gate check. Limit is the ceiling of the effective plan.
type Decision struct {
	Allowed bool `json:"allowed"`
	Limit   int  `json:"limit"`
	Current int  `json:"current"`
	Plan    Tier `json:"plan"`
}
