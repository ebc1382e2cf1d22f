package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Reason is a stable machine readable tag the presentation layer can switch on.
type Failure struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

const (
	ReasonRoomNotFound      = "room_not_found"
	ReasonSlotNotFound      = "slot_not_found"
	ReasonBookingNotFound   = "booking_not_found"
	ReasonUserNotFound      = "user_not_found"
	ReasonSlotDisabled      = "slot_disabled"
	ReasonRoomClosedOnDate  = "room_closed_on_date"
	ReasonSlotInPast        = "slot_in_past"
	ReasonSlotAlreadyBooked = "slot_already_booked"
	ReasonBookingInPast     = "booking_in_past"
	ReasonInvalidOpenDays   = "invalid_open_days"
	ReasonInvalidArgument   = "invalid_argument"
	ReasonNotOwner          = "not_owner"
	ReasonAdminRequired     = "admin_required"
)

// StatusTemporalViolation marks requests that are well formed but refer to time that already passed.
const StatusTemporalViolation = http.StatusUnprocessableEntity

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}

var (
	ErrRoomNotFound      = &Failure{Code: http.StatusNotFound, Reason: ReasonRoomNotFound, Message: "room not found"}
	ErrSlotNotFound      = &Failure{Code: http.StatusNotFound, Reason: ReasonSlotNotFound, Message: "time slot not found"}
	ErrBookingNotFound   = &Failure{Code: http.StatusNotFound, Reason: ReasonBookingNotFound, Message: "booking not found"}
	ErrUserNotFound      = &Failure{Code: http.StatusNotFound, Reason: ReasonUserNotFound, Message: "user not found"}
	ErrSlotDisabled      = &Failure{Code: http.StatusConflict, Reason: ReasonSlotDisabled, Message: "time slot is disabled"}
	ErrRoomClosedOnDate  = &Failure{Code: http.StatusConflict, Reason: ReasonRoomClosedOnDate, Message: "room is closed on the selected date"}
	ErrSlotAlreadyBooked = &Failure{Code: http.StatusConflict, Reason: ReasonSlotAlreadyBooked, Message: "time slot is already booked for the selected date"}
	ErrSlotInPast        = &Failure{Code: StatusTemporalViolation, Reason: ReasonSlotInPast, Message: "time slot has already started"}
	ErrBookingInPast     = &Failure{Code: StatusTemporalViolation, Reason: ReasonBookingInPast, Message: "booking date has already passed"}
	ErrInvalidOpenDays   = &Failure{Code: http.StatusBadRequest, Reason: ReasonInvalidOpenDays, Message: "open days must be codes between 1 and 7"}
	ErrNotOwner          = &Failure{Code: http.StatusForbidden, Reason: ReasonNotOwner, Message: "booking belongs to another user"}
	ErrAdminRequired     = &Failure{Code: http.StatusForbidden, Reason: ReasonAdminRequired, Message: "administrator role required"}
)

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Is matches failures by reason so wrapped sentinels compare equal.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	if e.Reason == "" || other.Reason == "" {
		return e == other
	}

	return e.Reason == other.Reason
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Reason:  ReasonInvalidArgument,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Reason:  ReasonInvalidArgument,
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

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason tag of a Failure, empty for any other error.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}

// IsFailure reports whether err carries a Failure anywhere in its chain.
func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}
