package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")
	ErrNotCheckedIn     = errors.New("you have not checked in yet")

	// Checkout errors
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("checkout time precedes check-in time")
	ErrInvalidHourlyRate     = errors.New("hourly rate must be positive")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
