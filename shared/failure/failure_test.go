package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"bookly/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("date is required")), wantCode: http.StatusBadRequest, wantMessage: "date is required"},
		{name: "bad request from string", err: failure.BadRequestFromString("date is in the past"), wantCode: http.StatusBadRequest, wantMessage: "date is in the past"},
		{name: "unauthorized", err: failure.Unauthorized("Token has expired"), wantCode: http.StatusUnauthorized, wantMessage: "Token has expired"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), wantCode: http.StatusInternalServerError, wantMessage: "db down"},
		{name: "unimplemented", err: failure.Unimplemented("billing is not configured"), wantCode: http.StatusNotImplemented, wantMessage: "billing is not configured"},
		{name: "not found", err: failure.NotFound("appointment"), wantCode: http.StatusNotFound, wantMessage: "appointment"},
		{name: "conflict", err: failure.Conflict("customer has appointments"), wantCode: http.StatusConflict, wantMessage: "customer has appointments"},
		{name: "forbidden", err: failure.Forbidden("Access denied"), wantCode: http.StatusForbidden, wantMessage: "Access denied"},
		{name: "slot unavailable", err: failure.SlotUnavailableError, wantCode: http.StatusBadRequest, wantMessage: "selected time slot is not available"},
		{name: "forbidden sentinel", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMessage: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMessage, tt.err.Error())
			assert.Nil(t, failure.GetDetails(tt.err))
		})
	}
}

func TestNilErrorsStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_WrappedAndPlain(t *testing.T) {
	wrapped := fmt.Errorf("failed to create appointment: %w", failure.SlotUnavailableError)

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(wrapped))
	assert.ErrorIs(t, wrapped, failure.SlotUnavailableError)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestPlanLimitExceeded(t *testing.T) {
	err := fmt.Errorf("failed to create professional: %w", failure.PlanLimitExceeded("professionals", "FREEMIUM", 1))

	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	assert.Contains(t, err.Error(), "plan limit reached for professionals")
	assert.Equal(t, map[string]any{"resource": "professionals", "plan": "FREEMIUM", "limit": 1}, failure.GetDetails(err))
	assert.Nil(t, failure.GetDetails(errors.New("plain")))
}
