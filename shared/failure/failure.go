package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Details carries structured data for the client, e.g. the plan ceiling that was hit.
type Failure struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

var (
	ForbiddenError       = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	SlotUnavailableError = &Failure{Code: http.StatusBadRequest, Message: "selected time slot is not available"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return newFailure(code, err.Error())
}

// BadRequest converts err into a 400. A nil err stays nil.
func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

// InternalError converts err into a 500. A nil err stays nil.
func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, err)
}

func Unimplemented(msg string) error {
	return newFailure(http.StatusNotImplemented, msg)
}

// NotFound reports a missing entity. Cross-tenant lookups also land here.
func NotFound(entityName string) error {
	return newFailure(http.StatusNotFound, entityName)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// PlanLimitExceeded returns a 403 Failure describing the ceiling that blocked the write.
func PlanLimitExceeded(resource, plan string, limit int) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: "plan limit reached for " + resource + ", upgrade your plan to continue",
		Details: map[string]any{
			"resource": resource,
			"plan":     plan,
			"limit":    limit,
		},
	}
}

// GetCode returns the HTTP code carried by err, or 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func GetDetails(err error) map[string]any {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Details
	}

	return nil
}
