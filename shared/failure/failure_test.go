package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"lodge/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	assert.Equal(t, "test error message", f.Error())
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "ResourceRestrictedError",
			failure: failure.ResourceRestrictedError,
			code:    http.StatusForbidden,
			message: "You don't have permission to access this resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.failure.Code)
			assert.Equal(t, tt.message, tt.failure.Message)
		})
	}
}

func TestBadRequest(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))

	err := failure.BadRequest(errors.New("validation failed"))

	var f *failure.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, http.StatusBadRequest, f.Code)
	assert.Equal(t, "validation failed", f.Message)
	assert.ErrorIs(t, err, failure.ErrValidationFailed)
}

func TestConstructors(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		code int
		kind failure.Kind
	}{
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized},
		{name: "not found", err: failure.NotFound("room not found"), code: http.StatusNotFound},
		{name: "conflict", err: failure.Conflict("room already booked"), code: http.StatusConflict},
		{name: "forbidden", err: failure.Forbidden("access denied"), code: http.StatusForbidden},
		{name: "internal", err: failure.InternalError(cause), code: http.StatusInternalServerError},
		{name: "fetch failed", err: failure.FetchFailed("failed to fetch rooms", cause), code: http.StatusBadGateway, kind: failure.KindFetchFailed},
		{name: "transition rejected", err: failure.TransitionRejected("status rejected", cause), code: http.StatusConflict, kind: failure.KindTransitionRejected},
		{name: "check-in failed", err: failure.CheckInFailed(http.StatusBadGateway, "check-in failed", cause), code: http.StatusBadGateway, kind: failure.KindCheckInFailed},
		{name: "check-out failed", err: failure.CheckOutFailed(http.StatusConflict, "not checked in", nil), code: http.StatusConflict, kind: failure.KindCheckOutFailed},
		{name: "cancel failed", err: failure.CancelFailed(http.StatusConflict, "not reserved", nil), code: http.StatusConflict, kind: failure.KindCancelFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.kind, failure.GetKind(tt.err))
		})
	}
}

func TestFailure_IsMatchesKind(t *testing.T) {
	cause := errors.New("502 bad gateway")
	err := fmt.Errorf("refresh rooms: %w", failure.FetchFailed("failed to fetch rooms", cause))

	assert.ErrorIs(t, err, failure.ErrFetchFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, failure.ErrTransitionRejected)
	assert.NotErrorIs(t, failure.NotFound("x"), failure.ErrFetchFailed)
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("wrapped: %w", failure.BadRequestFromString("test")),
			expected: http.StatusBadRequest,
		},
		{
			name:     "failure without code",
			input:    failure.ErrFetchFailed,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}
