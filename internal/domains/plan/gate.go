package plan

import (
	"time"

	"bookly/config"
	"bookly/shared/failure"

	"github.com/rs/zerolog/log"
)

type Gate struct {
	table Table
}

func NewGate(table Table) *Gate {
	if table == nil {
		table = DefaultTable()
	}

	return &Gate{table: table}
}

// NewGateFromConfig reads PLAN_LIMITS. A malformed value is logged and the default
// table is used.
func NewGateFromConfig(cfg *config.Config) *Gate {
	table, err := ParseTable(cfg.Plan.Limits)
	if err != nil {
		log.Error().Err(err).Str("limits", cfg.Plan.Limits).Msg("failed to parse plan limits, using defaults")

		table = DefaultTable()
	}

	return NewGate(table)
}

// EffectiveTier drops an expired trial or a cancelled subscription to FREEMIUM.
func (g *Gate) EffectiveTier(sub Subscription, now time.Time) Tier {
	switch sub.Status {
	case StatusCancelled:
		return TierFreemium
	case StatusTrial:
		if sub.TrialEndsAt != nil && !now.Before(*sub.TrialEndsAt) {
			return TierFreemium
		}
	}

	if !sub.Tier.Valid() {
		return TierFreemium
	}

	return sub.Tier
}

func (g *Gate) Limits(sub Subscription, now time.Time) Limits {
	limits, ok := g.table[g.EffectiveTier(sub, now)]
	if !ok {
		return g.table[TierFreemium]
	}

	return limits
}

// Check reports whether one more resource fits under the ceiling, given the current count.
func (g *Gate) Check(sub Subscription, resource Resource, current int, now time.Time) Decision {
	tier := g.EffectiveTier(sub, now)
	limit := g.Limits(sub, now).For(resource)

	return Decision{
		Allowed: limit == Unlimited || current < limit,
		Limit:   limit,
		Current: current,
		Plan:    tier,
	}
}

// Err converts a denied decision into the upgrade-required failure.
func (d Decision) Err(resource Resource) error {
	if d.Allowed {
		return nil
	}

	return failure.PlanLimitExceeded(string(resource), string(d.Plan), d.Limit)
}
