package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	CodeInvalidInterval = "INVALID_INTERVAL"
	CodeInvalidDuration = "INVALID_DURATION"
	CodePastStart       = "PAST_START"
	CodeRoomNotFound    = "ROOM_NOT_FOUND"
	CodeBookingNotFound = "BOOKING_NOT_FOUND"
	CodeForbidden       = "FORBIDDEN"
	CodeInvalidState    = "INVALID_STATE"
	CodeLockedForChange = "LOCKED_FOR_CHANGE"
	CodeRoomConflict    = "ROOM_CONFLICT"
	CodeDuplicateID     = "DUPLICATE_ID"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInternal        = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	response := ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
	data, _ := json.Marshal(response)
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func InvalidInterval(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInterval,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func InvalidDuration(got, min, max time.Duration) *AppError {
	return &AppError{
		Code:       CodeInvalidDuration,
		Message:    fmt.Sprintf("booking duration must be between %s and %s, got %s", min, max, got),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"min_duration": min.String(),
			"max_duration": max.String(),
			"duration":     got.String(),
		},
	}
}

func PastStart() *AppError {
	return &AppError{
		Code:       CodePastStart,
		Message:    "booking start time must be in the future",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func RoomNotFound(id string) *AppError {
	return &AppError{
		Code:       CodeRoomNotFound,
		Message:    "room not found",
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"room_id": id,
		},
	}
}

func BookingNotFound(id string) *AppError {
	return &AppError{
		Code:       CodeBookingNotFound,
		Message:    "booking not found",
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"booking_id": id,
		},
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func InvalidState(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidState,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func LockedForChange(cutoff time.Duration) *AppError {
	return &AppError{
		Code:       CodeLockedForChange,
		Message:    fmt.Sprintf("booking cannot be changed less than %s before its start time", cutoff),
		HTTPStatus: http.StatusForbidden,
		Details: map[string]any{
			"cutoff": cutoff.String(),
		},
	}
}

// RoomConflict reports the booking that blocked the candidate interval so
// callers can show the user what they collided with.
func RoomConflict(bookingID string, start, end time.Time) *AppError {
	return &AppError{
		Code: CodeRoomConflict,
		Message: fmt.Sprintf("room is already booked from %s to %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339)),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"conflicting_booking_id": bookingID,
			"conflicting_start":      start.Format(time.RFC3339),
			"conflicting_end":        end.Format(time.RFC3339),
		},
	}
}

func DuplicateID(id string) *AppError {
	return &AppError{
		Code:       CodeDuplicateID,
		Message:    "booking id already exists",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"booking_id": id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
