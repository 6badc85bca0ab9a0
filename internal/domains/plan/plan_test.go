package plan_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/config"
	"bookly/internal/domains/plan"
	"bookly/shared/failure"
)

func TestGate_Check(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Hour)

	gate := plan.NewGate(plan.DefaultTable())

	tests := []struct {
		name     string
		sub      plan.Subscription
		resource plan.Resource
		current  int
		want     plan.Decision
	}{
		{
			name:     "freemium under appointment ceiling",
			sub:      plan.Subscription{Tier: plan.TierFreemium, Status: plan.StatusActive},
			resource: plan.ResourceAppointments,
			current:  19,
			want:     plan.Decision{Allowed: true, Limit: 20, Current: 19, Plan: plan.TierFreemium},
		},
		{
			name:     "freemium at appointment ceiling",
			sub:      plan.Subscription{Tier: plan.TierFreemium, Status: plan.StatusActive},
			resource: plan.ResourceAppointments,
			current:  20,
			want:     plan.Decision{Allowed: false, Limit: 20, Current: 20, Plan: plan.TierFreemium},
		},
		{
			name:     "starter trial still running",
			sub:      plan.Subscription{Tier: plan.TierStarter, Status: plan.StatusTrial, TrialEndsAt: &future},
			resource: plan.ResourceProfessionals,
			current:  2,
			want:     plan.Decision{Allowed: true, Limit: 3, Current: 2, Plan: plan.TierStarter},
		},
		{
			name:     "expired trial falls back to freemium",
			sub:      plan.Subscription{Tier: plan.TierStarter, Status: plan.StatusTrial, TrialEndsAt: &past},
			resource: plan.ResourceProfessionals,
			current:  1,
			want:     plan.Decision{Allowed: false, Limit: 1, Current: 1, Plan: plan.TierFreemium},
		},
		{
			name:     "cancelled falls back to freemium",
			sub:      plan.Subscription{Tier: plan.TierProfessional, Status: plan.StatusCancelled},
			resource: plan.ResourceAppointments,
			current:  5,
			want:     plan.Decision{Allowed: true, Limit: 20, Current: 5, Plan: plan.TierFreemium},
		},
		{
			name:     "enterprise is unlimited",
			sub:      plan.Subscription{Tier: plan.TierEnterprise, Status: plan.StatusActive},
			resource: plan.ResourceAppointments,
			current:  100000,
			want:     plan.Decision{Allowed: true, Limit: plan.Unlimited, Current: 100000, Plan: plan.TierEnterprise},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Check(tt.sub, tt.resource, tt.current, now))
		})
	}
}

func TestDecision_Err(t *testing.T) {
	denied := plan.Decision{Allowed: false, Limit: 20, Plan: plan.TierFreemium}

	err := denied.Err(plan.ResourceAppointments)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	assert.Equal(t, map[string]any{"resource": "appointments", "plan": "FREEMIUM", "limit": 20}, failure.GetDetails(err))

	assert.NoError(t, plan.Decision{Allowed: true}.Err(plan.ResourceAppointments))
}

func TestParseTable(t *testing.T) {
	table, err := plan.ParseTable("freemium:2:50, ENTERPRISE:-1:-1")
	require.NoError(t, err)

	assert.Equal(t, plan.Limits{MaxProfessionals: 2, MaxAppointmentsPerMonth: 50}, table[plan.TierFreemium])
	assert.Equal(t, plan.DefaultTable()[plan.TierStarter], table[plan.TierStarter])

	for _, raw := range []string{"GOLD:1:1", "FREEMIUM:1", "FREEMIUM:x:1", "FREEMIUM:1:-5"} {
		_, err := plan.ParseTable(raw)
		assert.ErrorIs(t, err, plan.ErrInvalidTable, raw)
	}
}

func TestNewGateFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Plan.Limits = "not-a-table"

	gate := plan.NewGateFromConfig(cfg)
	decision := gate.Check(plan.Subscription{Tier: plan.TierFreemium, Status: plan.StatusActive}, plan.ResourceProfessionals, 0, time.Now())

	assert.Equal(t, 1, decision.Limit)
}
