package schedule

import "time"

// StoreSchedule is one employee's planned shift on a work date. Times are
// stored in UTC; the work date is the store-local calendar day.
type StoreSchedule struct {
	ID                    string
	EmployeeID            string
	StoreID               string
	WorkDate              time.Time
	ScheduledCheckInTime  time.Time
	ScheduledCheckOutTime time.Time
	GraceMinutes          int
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// DTO
	EmployeeName *string
}
