package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure independently of its HTTP code so callers can branch on
// what went wrong rather than on how it is rendered.
type Kind string

const (
	KindGeneric            Kind = ""
	KindFetchFailed        Kind = "FETCH_FAILED"
	KindTransitionRejected Kind = "TRANSITION_REJECTED"
	KindCheckInFailed      Kind = "CHECK_IN_FAILED"
	KindCheckOutFailed     Kind = "CHECK_OUT_FAILED"
	KindCancelFailed       Kind = "CANCEL_FAILED"
	KindValidationFailed   Kind = "VALIDATION_FAILED"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
	cause   error
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidationFailed, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidationFailed, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}

// Sentinels for errors.Is matching by kind.
var (
	ErrFetchFailed        = &Failure{Kind: KindFetchFailed}
	ErrTransitionRejected = &Failure{Kind: KindTransitionRejected}
	ErrCheckInFailed      = &Failure{Kind: KindCheckInFailed}
	ErrCheckOutFailed     = &Failure{Kind: KindCheckOutFailed}
	ErrCancelFailed       = &Failure{Kind: KindCancelFailed}
	ErrValidationFailed   = &Failure{Kind: KindValidationFailed}
)

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// Is reports a match when the target is a Failure of the same non-empty kind.
func (e *Failure) Is(target error) bool {
	var t *Failure
	if !errors.As(target, &t) {
		return false
	}

	if t.Kind == KindGeneric {
		return e == t
	}

	return e.Kind == t.Kind
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindValidationFailed,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidationFailed,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
			cause:   err,
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// FetchFailed reports a failed read against the upstream API.
func FetchFailed(msg string, cause error) error {
	return &Failure{
		Code:    http.StatusBadGateway,
		Kind:    KindFetchFailed,
		Message: msg,
		cause:   cause,
	}
}

// TransitionRejected reports a status write the upstream refused.
func TransitionRejected(msg string, cause error) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindTransitionRejected,
		Message: msg,
		cause:   cause,
	}
}

// CheckInFailed uses 409 when a precondition failed locally and 502 when the upstream call failed.
func CheckInFailed(code int, msg string, cause error) error {
	return &Failure{
		Code:    code,
		Kind:    KindCheckInFailed,
		Message: msg,
		cause:   cause,
	}
}

func CheckOutFailed(code int, msg string, cause error) error {
	return &Failure{
		Code:    code,
		Kind:    KindCheckOutFailed,
		Message: msg,
		cause:   cause,
	}
}

func CancelFailed(code int, msg string, cause error) error {
	return &Failure{
		Code:    code,
		Kind:    KindCancelFailed,
		Message: msg,
		cause:   cause,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) && fail.Code != 0 {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind of an error, or KindGeneric if it is not a Failure.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindGeneric
}
