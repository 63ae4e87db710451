package response

import (
	"errors"
	"net/http"

	"github.com/abc-staff/staff-backend-go/internal/domain/attendance"
	"github.com/abc-staff/staff-backend-go/internal/domain/auth"
	"github.com/abc-staff/staff-backend-go/internal/domain/employee"
	"github.com/abc-staff/staff-backend-go/internal/domain/payrate"
	"github.com/abc-staff/staff-backend-go/internal/domain/schedule"
	"github.com/abc-staff/staff-backend-go/internal/domain/store"
	"github.com/abc-staff/staff-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is inactive")
	case errors.Is(err, employee.ErrManagerAccessRequired),
		errors.Is(err, employee.ErrOwnerAccessRequired):
		Forbidden(w, err.Error())

	// Store domain errors
	case errors.Is(err, store.ErrStoreNotFound):
		NotFound(w, "Store not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance record is already closed")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open check-in for this record")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Checkout time must be after check-in time", nil)
	case errors.Is(err, attendance.ErrInvalidHourlyRate):
		BadRequest(w, "Hourly rate must be a positive amount", nil)
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// Pay-rate domain errors
	case errors.Is(err, payrate.ErrPayRateNotFound):
		NotFound(w, "Pay rate not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrScheduleExists):
		Conflict(w, "A schedule already exists for this employee and date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
