package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode định danh loại lỗi trả về cho client
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Reservation / inventory errors
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeNoRoomAvailable  ErrorCode = "NO_ROOM_AVAILABLE"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeAlreadyBilled    ErrorCode = "ALREADY_BILLED"
	ErrCodeInvalidState     ErrorCode = "INVALID_STATE"

	// Block booking errors
	ErrCodeInvalidBlockSize ErrorCode = "INVALID_BLOCK_SIZE"
	ErrCodeInvalidDiscount  ErrorCode = "INVALID_DISCOUNT"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Infrastructure
	ErrCodeLockTimeout ErrorCode = "LOCK_TIMEOUT"
)

// AppError là lỗi nghiệp vụ của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code so errors.Is(err, ErrNotFoundKind) style checks work.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == ""
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetail attaches a context value for the client.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// Kind sentinels, usable with errors.Is.
var (
	ErrInvalidDateRange = &AppError{Code: ErrCodeInvalidDateRange}
	ErrCapacityExceeded = &AppError{Code: ErrCodeCapacityExceeded}
	ErrNoRoomAvailable  = &AppError{Code: ErrCodeNoRoomAvailable}
	ErrForbidden        = &AppError{Code: ErrCodeForbidden}
	ErrNotFound         = &AppError{Code: ErrCodeNotFound}
	ErrConflict         = &AppError{Code: ErrCodeConflict}
	ErrAlreadyBilled    = &AppError{Code: ErrCodeAlreadyBilled}
	ErrInvalidState     = &AppError{Code: ErrCodeInvalidState}
	ErrInvalidBlockSize = &AppError{Code: ErrCodeInvalidBlockSize}
	ErrInvalidDiscount  = &AppError{Code: ErrCodeInvalidDiscount}
	ErrValidation       = &AppError{Code: ErrCodeValidation}
)

func InvalidDateRange(message string) *AppError {
	return NewAppError(ErrCodeInvalidDateRange, message, nil)
}

// CapacityExceeded names the room type that ran out.
func CapacityExceeded(roomType string, requested, available int) *AppError {
	return NewAppError(ErrCodeCapacityExceeded,
		fmt.Sprintf("not enough %q rooms: requested %d, available %d", roomType, requested, available), nil).
		WithDetail("roomType", roomType).
		WithDetail("requested", requested).
		WithDetail("available", available)
}

func NoRoomAvailable(roomType string) *AppError {
	return NewAppError(ErrCodeNoRoomAvailable, fmt.Sprintf("no %q room can be assigned", roomType), nil).
		WithDetail("roomType", roomType)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func NotFound(entity string, id any) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s %v not found", entity, id), nil).
		WithDetail("entity", entity)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, nil)
}

func AlreadyBilled(reservationID uint) *AppError {
	return NewAppError(ErrCodeAlreadyBilled, fmt.Sprintf("reservation %d already has a billing record", reservationID), nil).
		WithDetail("reservationId", reservationID)
}

func InvalidState(from, action string) *AppError {
	return NewAppError(ErrCodeInvalidState, fmt.Sprintf("cannot %s a reservation in status %s", action, from), nil).
		WithDetail("status", from)
}

func InvalidBlockSize(total, min int) *AppError {
	return NewAppError(ErrCodeInvalidBlockSize, fmt.Sprintf("block booking needs at least %d rooms, got %d", min, total), nil)
}

func InvalidDiscount(rate float64) *AppError {
	return NewAppError(ErrCodeInvalidDiscount, fmt.Sprintf("discount rate %.2f must be between 0 and 50", rate), nil)
}

func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, nil)
}

// DB wraps an infrastructure failure.
func DB(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}

// HTTPStatus maps an error code to the HTTP status returned by controllers.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeUnauthorized, ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeCapacityExceeded, ErrCodeNoRoomAvailable, ErrCodeConflict,
		ErrCodeAlreadyBilled, ErrCodeInvalidState:
		return http.StatusConflict
	case ErrCodeInvalidDateRange, ErrCodeInvalidBlockSize, ErrCodeInvalidDiscount,
		ErrCodeValidation, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case ErrCodeLockTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
