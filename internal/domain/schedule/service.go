package schedule

import "context"

// ScheduleService defines business logic for shift schedules
type ScheduleService interface {
	// CreateSchedule registers a shift for an employee (manager only)
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)

	// ListSchedules retrieves schedules of the caller's store with filters
	ListSchedules(ctx context.Context, filter ScheduleFilter) (ListScheduleResponse, error)

	// DeleteSchedule removes a shift entry (manager only)
	DeleteSchedule(ctx context.Context, id string) error
}
