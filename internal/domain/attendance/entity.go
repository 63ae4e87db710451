package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCompleted  Status = "COMPLETED"
	StatusEarlyLeave Status = "EARLY_LEAVE"
	StatusLate       Status = "LATE"
)

// Attendance is one employee work session. The derived hour and pay fields
// are written exactly once, at checkout; a record with a non-nil
// CheckOutTime is closed and never recomputed.
type Attendance struct {
	ID                    string
	EmployeeID            string
	StoreID               string
	WorkDate              time.Time
	CheckInTime           *time.Time
	CheckOutTime          *time.Time
	ScheduledCheckOutTime *time.Time
	Status                Status

	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	// Derived at checkout
	WorkHours     *float64
	BreakHours    *float64
	OvertimeHours *float64
	NightHours    *float64
	BasePay       *decimal.Decimal
	OvertimePay   *decimal.Decimal
	NightPay      *decimal.Decimal
	DailyTotal    *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// ClosingStatus resolves the status written at checkout: an early leave
// wins, an ordinary CHECKED_IN session completes, and any other prior
// status (LATE) is retained.
func ClosingStatus(prior Status, earlyLeave bool) Status {
	if earlyLeave {
		return StatusEarlyLeave
	}
	if prior == StatusCheckedIn {
		return StatusCompleted
	}
	return prior
}
