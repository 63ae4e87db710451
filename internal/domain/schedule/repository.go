package schedule

import "context"

type ScheduleRepository interface {
	// Create creates a new schedule entry
	Create(ctx context.Context, sched StoreSchedule) (StoreSchedule, error)

	// GetByEmployeeAndDate retrieves the schedule for an employee on a
	// store-local calendar date (YYYY-MM-DD). Returns nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string, storeID string) (*StoreSchedule, error)

	// List retrieves schedules with filters and pagination
	List(ctx context.Context, filter ScheduleFilter, storeID string) ([]StoreSchedule, int64, error)

	// Delete removes a schedule entry
	Delete(ctx context.Context, id string, storeID string) error
}
