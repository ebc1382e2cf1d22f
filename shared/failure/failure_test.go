package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"roombook/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestBookingFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		reason  string
	}{
		{name: "room not found", failure: failure.ErrRoomNotFound, code: http.StatusNotFound, reason: "room_not_found"},
		{name: "slot not found", failure: failure.ErrSlotNotFound, code: http.StatusNotFound, reason: "slot_not_found"},
		{name: "booking not found", failure: failure.ErrBookingNotFound, code: http.StatusNotFound, reason: "booking_not_found"},
		{name: "slot disabled", failure: failure.ErrSlotDisabled, code: http.StatusConflict, reason: "slot_disabled"},
		{name: "room closed", failure: failure.ErrRoomClosedOnDate, code: http.StatusConflict, reason: "room_closed_on_date"},
		{name: "already booked", failure: failure.ErrSlotAlreadyBooked, code: http.StatusConflict, reason: "slot_already_booked"},
		{name: "slot in past", failure: failure.ErrSlotInPast, code: http.StatusUnprocessableEntity, reason: "slot_in_past"},
		{name: "booking in past", failure: failure.ErrBookingInPast, code: http.StatusUnprocessableEntity, reason: "booking_in_past"},
		{name: "invalid open days", failure: failure.ErrInvalidOpenDays, code: http.StatusBadRequest, reason: "invalid_open_days"},
		{name: "not owner", failure: failure.ErrNotOwner, code: http.StatusForbidden, reason: "not_owner"},
		{name: "admin required", failure: failure.ErrAdminRequired, code: http.StatusForbidden, reason: "admin_required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.failure.Code)
			assert.Equal(t, tt.reason, tt.failure.Reason)
			assert.NotEmpty(t, tt.failure.Message)
		})
	}
}

func TestFailure_Is(t *testing.T) {
	wrapped := fmt.Errorf("failed to create booking: %w", failure.ErrSlotAlreadyBooked)

	assert.ErrorIs(t, wrapped, failure.ErrSlotAlreadyBooked)
	assert.NotErrorIs(t, wrapped, failure.ErrSlotDisabled)
	assert.ErrorIs(t, &failure.Failure{Code: http.StatusConflict, Reason: failure.ReasonSlotAlreadyBooked}, failure.ErrSlotAlreadyBooked)
	assert.NotErrorIs(t, failure.Conflict("other"), failure.ErrSlotAlreadyBooked)
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
				}
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		result  error
		code    int
		message string
	}{
		{name: "bad request from string", result: failure.BadRequestFromString("bad date"), code: http.StatusBadRequest, message: "bad date"},
		{name: "unauthorized", result: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "internal", result: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "not found", result: failure.NotFound("User not found"), code: http.StatusNotFound, message: "User not found"},
		{name: "conflict", result: failure.Conflict("Email already exists"), code: http.StatusConflict, message: "Email already exists"},
		{name: "forbidden", result: failure.Forbidden("Access denied"), code: http.StatusForbidden, message: "Access denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.result)
			}

			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
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
			input:    fmt.Errorf("failed to cancel: %w", failure.ErrBookingInPast),
			expected: http.StatusUnprocessableEntity,
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
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetReason(t *testing.T) {
	assert.Equal(t, failure.ReasonSlotInPast, failure.GetReason(fmt.Errorf("x: %w", failure.ErrSlotInPast)))
	assert.Empty(t, failure.GetReason(errors.New("plain")))
	assert.True(t, failure.IsFailure(failure.ErrRoomNotFound))
	assert.False(t, failure.IsFailure(errors.New("plain")))
}
