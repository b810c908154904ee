// Package failure carries HTTP aware errors from services to the transport.
package failure

import (
	"errors"
	"net/http"
)

// Failure is an error with an HTTP status. Reason is a stable machine readable
// discriminator such as SLOT_TAKEN; Details holds structured hints for the caller.
type Failure struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Reason  string         `json:"reason,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

// InternalError wraps err as a 500. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, err.Error())
}

func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

func Validation(reason, msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg, Reason: reason}
}

func ConflictWithReason(reason, msg string, details map[string]any) error {
	return &Failure{Code: http.StatusConflict, Message: msg, Reason: reason, Details: details}
}

// Unprocessable is for well formed requests that the current state rejects.
func Unprocessable(reason, msg string) error {
	return &Failure{Code: http.StatusUnprocessableEntity, Message: msg, Reason: reason}
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	ok := errors.As(err, &fail)

	return fail, ok
}

// GetCode returns the status of the first Failure in err's chain, 500 otherwise.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func GetReason(err error) string {
	if fail, ok := as(err); ok {
		return fail.Reason
	}

	return ""
}

func GetDetails(err error) map[string]any {
	if fail, ok := as(err); ok {
		return fail.Details
	}

	return nil
}
