package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CloseParams carries the full pay breakdown persisted when a record is
// closed. All fields are written in a single conditional update.
type CloseParams struct {
	ID           string
	StoreID      string
	CheckOutTime time.Time
	Status       Status

	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	WorkHours     float64
	BreakHours    float64
	OvertimeHours float64
	NightHours    float64
	BasePay       decimal.Decimal
	OvertimePay   decimal.Decimal
	NightPay      decimal.Decimal
	DailyTotal    decimal.Decimal
}

// AttendanceRepository defines data access methods for attendance records.
// All methods include storeID to prevent cross-store data access.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID with store isolation
	GetByID(ctx context.Context, id string, storeID string) (Attendance, error)

	// HasCheckedInOn reports whether the employee already has a record for
	// the store-local calendar date. Used to prevent double check-in.
	HasCheckedInOn(ctx context.Context, employeeID string, dateLocal string, storeID string) (bool, error)

	// Close writes the checkout time and the derived pay fields in one
	// atomic update guarded by check_out_time IS NULL. Returns
	// ErrAlreadyCheckedOut when the record is already closed and
	// ErrAttendanceNotFound when it does not exist.
	Close(ctx context.Context, params CloseParams) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, storeID string) ([]Attendance, int64, error)

	// GetMyAttendance retrieves attendance records for a specific employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter, storeID string) ([]Attendance, int64, error)

	// GetStaleOpenSessions retrieves open records whose scheduled checkout
	// passed more than grace hours ago. Used by the auto-close job.
	GetStaleOpenSessions(ctx context.Context, graceHours int) ([]Attendance, error)
}
