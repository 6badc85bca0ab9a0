package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/shared/failure"
	"bookly/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
		wantDetails bool
	}{
		{
			name:        "plan limit carries details",
			err:         failure.PlanLimitExceeded("appointments", "FREEMIUM", 20),
			wantCode:    http.StatusForbidden,
			wantMessage: "plan limit reached for appointments, upgrade your plan to continue",
			wantDetails: true,
		},
		{
			name:        "slot unavailable",
			err:         failure.SlotUnavailableError,
			wantCode:    http.StatusBadRequest,
			wantMessage: "selected time slot is not available",
		},
		{
			name:        "unclassified error is masked",
			err:         errors.New("pq: connection refused"),
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)

			var body struct {
				Error   string         `json:"error"`
				Details map[string]any `json:"details"`
			}

			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Error)

			if tt.wantDetails {
				assert.Equal(t, "FREEMIUM", body.Details["plan"])
				assert.InDelta(t, 20, body.Details["limit"], 0)
			} else {
				assert.Nil(t, body.Details)
			}
		})
	}
}

func TestWithRequestLimitExceeded(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithRequestLimitExceeded(recorder, 60)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "60", recorder.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"REQUEST LIMIT EXCEEDED"}`, recorder.Body.String())
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]string{"slug": "barber-joe"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"slug":"barber-joe"}}`, recorder.Body.String())
}
