package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abc-staff/staff-backend-go/internal/domain/attendance"
	"github.com/abc-staff/staff-backend-go/internal/domain/auth"
	"github.com/abc-staff/staff-backend-go/internal/domain/employee"
	"github.com/abc-staff/staff-backend-go/internal/domain/schedule"
	"github.com/abc-staff/staff-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"attendance not found", attendance.ErrAttendanceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already checked out", attendance.ErrAlreadyCheckedOut, http.StatusConflict, "CONFLICT"},
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"checkout before check-in", attendance.ErrCheckOutBeforeCheckIn, http.StatusBadRequest, "BAD_REQUEST"},
		{"invalid hourly rate", attendance.ErrInvalidHourlyRate, http.StatusBadRequest, "BAD_REQUEST"},
		{"foreign attendance", attendance.ErrUnauthorized, http.StatusForbidden, "FORBIDDEN"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"manager required", employee.ErrManagerAccessRequired, http.StatusForbidden, "FORBIDDEN"},
		{"schedule conflict", schedule.ErrScheduleExists, http.StatusConflict, "CONFLICT"},
		{"unknown error", assert.AnError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "latitude", Message: "latitude must be between -90 and 90"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "latitude must be between -90 and 90", body.Error.Details["latitude"])
}
