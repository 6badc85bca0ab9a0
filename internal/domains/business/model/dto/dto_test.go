package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/internal/domains/business/model"
	"bookly/internal/domains/business/model/dto"
)

func TestBusinessResponse_TrialEndsAt(t *testing.T) {
	trialEndsAt := time.Date(2030, 6, 10, 2, 0, 0, 0, time.UTC)

	var res dto.BusinessResponse
	res.FromModel(model.Business{ID: "biz-1", Timezone: "America/Sao_Paulo", TrialEndsAt: &trialEndsAt})

	require.NotNil(t, res.TrialEndsAt)
	assert.Equal(t, "2030-06-09T23:00:00-03:00", *res.TrialEndsAt)

	var none dto.BusinessResponse
	none.FromModel(model.Business{ID: "biz-1", Timezone: "UTC"})
	assert.Nil(t, none.TrialEndsAt)
}
