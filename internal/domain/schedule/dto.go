package schedule

import (
	"github.com/abc-staff/staff-backend-go/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	EmployeeID   string `json:"employee_id"`
	WorkDate     string `json:"work_date"`      // YYYY-MM-DD
	StartTime    string `json:"start_time"`     // RFC3339
	EndTime      string `json:"end_time"`       // RFC3339
	GraceMinutes int    `json:"grace_minutes"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.WorkDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	}

	start, startValid := validator.IsValidDateTime(r.StartTime)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be an RFC3339 timestamp",
		})
	}

	end, endValid := validator.IsValidDateTime(r.EndTime)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be an RFC3339 timestamp",
		})
	}

	if startValid && endValid && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if r.GraceMinutes < 0 || r.GraceMinutes > 120 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must be between 0 and 120",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	WorkDate     string  `json:"work_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	GraceMinutes int     `json:"grace_minutes"`
}

type ScheduleFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ScheduleFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListScheduleResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Schedules  []ScheduleResponse `json:"schedules"`
}
