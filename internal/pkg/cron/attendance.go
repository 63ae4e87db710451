package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/attendance"
	"github.com/abc-staff/staff-backend-go/internal/domain/payrate"
	"github.com/abc-staff/staff-backend-go/internal/domain/store"
	svcattendance "github.com/abc-staff/staff-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
)

// staleGraceHours is how long after the scheduled checkout an open session
// may linger before the auto-close job claims it.
const staleGraceHours = 2

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	payRateRepo    payrate.PayRateRepository
	storeRepo      store.StoreRepository
	calc           *svcattendance.PayCalculator

	defaultHourlyRate decimal.Decimal
	defaultTimezone   string

	// Sessions whose recorded times can never produce a valid pay run,
	// remembered so the hourly sweep does not retry them forever.
	unclosable map[string]struct{}
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	payRateRepo payrate.PayRateRepository,
	storeRepo store.StoreRepository,
	calc *svcattendance.PayCalculator,
	defaultHourlyRate decimal.Decimal,
	defaultTimezone string,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo:    attendanceRepo,
		payRateRepo:       payRateRepo,
		storeRepo:         storeRepo,
		calc:              calc,
		defaultHourlyRate: defaultHourlyRate,
		defaultTimezone:   defaultTimezone,
		unclosable:        make(map[string]struct{}),
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_attendances", 1*time.Hour, j.AutoCloseStaleAttendances)
}

// AutoCloseStaleAttendances closes open sessions whose scheduled checkout
// passed long ago, as if the employee had checked out exactly on schedule.
func (j *AttendanceJobs) AutoCloseStaleAttendances(ctx context.Context) error {
	staleSessions, err := j.attendanceRepo.GetStaleOpenSessions(ctx, staleGraceHours)
	if err != nil {
		return fmt.Errorf("failed to get stale sessions: %w", err)
	}

	if len(staleSessions) == 0 {
		return nil
	}

	slog.Info("Cron: Auto-closing stale attendances", "count", len(staleSessions))

	closedCount := 0
	for _, session := range staleSessions {
		if _, skip := j.unclosable[session.ID]; skip {
			continue
		}
		if session.CheckInTime == nil || session.ScheduledCheckOutTime == nil {
			j.flagUnclosable(session, "missing check-in or scheduled checkout time")
			continue
		}
		if !session.ScheduledCheckOutTime.After(*session.CheckInTime) {
			j.flagUnclosable(session, "scheduled checkout is not after check-in")
			continue
		}

		rate := j.defaultHourlyRate
		if storeRate, err := j.payRateRepo.GetActiveByStore(ctx, session.StoreID); err == nil {
			rate = storeRate.HourlyRate
		}

		tz, err := j.storeRepo.GetTimezoneByID(ctx, session.StoreID)
		if err != nil || tz == "" {
			tz = j.defaultTimezone
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			loc = time.UTC
		}

		breakdown, err := j.calc.Calculate(svcattendance.CheckoutInput{
			CheckInTime:           *session.CheckInTime,
			CheckOutTime:          *session.ScheduledCheckOutTime,
			ScheduledCheckOutTime: session.ScheduledCheckOutTime,
			HourlyRate:            rate,
			Location:              loc,
		})
		if err != nil {
			j.flagUnclosable(session, err.Error())
			continue
		}

		rounded := breakdown.Rounded()
		err = j.attendanceRepo.Close(ctx, attendance.CloseParams{
			ID:            session.ID,
			StoreID:       session.StoreID,
			CheckOutTime:  *session.ScheduledCheckOutTime,
			Status:        attendance.ClosingStatus(session.Status, breakdown.EarlyLeave),
			WorkHours:     rounded.WorkHours,
			BreakHours:    rounded.BreakHours,
			OvertimeHours: rounded.OvertimeHours,
			NightHours:    rounded.NightHours,
			BasePay:       rounded.BasePay,
			OvertimePay:   rounded.OvertimePay,
			NightPay:      rounded.NightPay,
			DailyTotal:    rounded.DailyTotal,
		})
		if err != nil {
			slog.Error("Cron: Failed to auto-close attendance",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}

		closedCount++
	}

	slog.Info("Cron: Auto-closed stale attendances", "count", closedCount)
	return nil
}

// flagUnclosable logs a session that needs manual correction and excludes
// it from future sweeps.
func (j *AttendanceJobs) flagUnclosable(session attendance.Attendance, reason string) {
	j.unclosable[session.ID] = struct{}{}
	slog.Error("Cron: Stale attendance needs manual correction",
		"attendance_id", session.ID,
		"employee_id", session.EmployeeID,
		"reason", reason)
}
