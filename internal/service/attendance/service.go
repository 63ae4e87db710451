package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/attendance"
	"github.com/abc-staff/staff-backend-go/internal/domain/employee"
	"github.com/abc-staff/staff-backend-go/internal/domain/payrate"
	"github.com/abc-staff/staff-backend-go/internal/domain/schedule"
	"github.com/abc-staff/staff-backend-go/internal/domain/store"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	schedule.ScheduleRepository
	payrate.PayRateRepository
	store.StoreRepository

	calc *PayCalculator

	// Statutory fallbacks applied when a store has no configuration.
	defaultHourlyRate decimal.Decimal
	defaultTimezone   string

	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	payRateRepo payrate.PayRateRepository,
	storeRepo store.StoreRepository,
	calc *PayCalculator,
	defaultHourlyRate decimal.Decimal,
	defaultTimezone string,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		ScheduleRepository:   scheduleRepo,
		PayRateRepository:    payRateRepo,
		StoreRepository:      storeRepo,
		calc:                 calc,
		defaultHourlyRate:    defaultHourlyRate,
		defaultTimezone:      defaultTimezone,
		now:                  time.Now,
	}
}

func claimsFromContext(ctx context.Context) (storeID, employeeID string, role employee.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	storeID, ok := claims["store_id"].(string)
	if !ok || storeID == "" {
		return "", "", "", fmt.Errorf("store_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return storeID, employeeID, employee.Role(roleStr), nil
}

func (a *AttendanceServiceImpl) storeLocation(ctx context.Context, storeID string) *time.Location {
	tz, err := a.StoreRepository.GetTimezoneByID(ctx, storeID)
	if err != nil || tz == "" {
		tz = a.defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return loc
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	storeID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC := a.now().UTC()
	loc := a.storeLocation(ctx, storeID)
	nowLocal := nowUTC.In(loc)
	dateLocal := nowLocal.Format("2006-01-02")

	hasCheckedIn, err := a.AttendanceRepository.HasCheckedInOn(ctx, employeeID, dateLocal, storeID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check for existing attendance: %w", err)
	}
	if hasCheckedIn {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status := attendance.StatusCheckedIn
	var scheduledOut *time.Time

	sched, err := a.ScheduleRepository.GetByEmployeeAndDate(ctx, employeeID, dateLocal, storeID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	if sched != nil {
		out := sched.ScheduledCheckOutTime
		scheduledOut = &out

		graceLimit := sched.ScheduledCheckInTime.Add(time.Duration(sched.GraceMinutes) * time.Minute)
		if nowUTC.After(graceLimit) {
			status = attendance.StatusLate
		}
	}

	workDate, _ := time.Parse("2006-01-02", dateLocal)

	data := attendance.Attendance{
		EmployeeID:            employeeID,
		StoreID:               storeID,
		WorkDate:              workDate,
		CheckInTime:           &nowUTC,
		ScheduledCheckOutTime: scheduledOut,
		Status:                status,
		CheckInLatitude:       req.Latitude,
		CheckInLongitude:      req.Longitude,
	}

	created, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. It resolves the store's
// hourly rate and timezone, runs the pay calculator and closes the record
// with a single conditional update; a record that is already closed is never
// recomputed.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	storeID, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID, storeID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	// Staff may only close their own session.
	if att.EmployeeID != employeeID && !role.CanManage() {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	if att.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if att.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	rate := a.defaultHourlyRate
	storeRate, err := a.PayRateRepository.GetActiveByStore(ctx, storeID)
	if err != nil && !errors.Is(err, payrate.ErrPayRateNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get pay rate: %w", err)
	}
	if err == nil {
		rate = storeRate.HourlyRate
	}

	nowUTC := a.now().UTC()
	loc := a.storeLocation(ctx, storeID)

	breakdown, err := a.calc.Calculate(CheckoutInput{
		CheckInTime:           *att.CheckInTime,
		CheckOutTime:          nowUTC,
		ScheduledCheckOutTime: att.ScheduledCheckOutTime,
		HourlyRate:            rate,
		Location:              loc,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rounded := breakdown.Rounded()
	err = a.AttendanceRepository.Close(ctx, attendance.CloseParams{
		ID:                att.ID,
		StoreID:           storeID,
		CheckOutTime:      nowUTC,
		Status:            attendance.ClosingStatus(att.Status, breakdown.EarlyLeave),
		CheckOutLatitude:  req.Latitude,
		CheckOutLongitude: req.Longitude,
		WorkHours:         rounded.WorkHours,
		BreakHours:        rounded.BreakHours,
		OvertimeHours:     rounded.OvertimeHours,
		NightHours:        rounded.NightHours,
		BasePay:           rounded.BasePay,
		OvertimePay:       rounded.OvertimePay,
		NightPay:          rounded.NightPay,
		DailyTotal:        rounded.DailyTotal,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	closed, err := a.AttendanceRepository.GetByID(ctx, att.ID, storeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get closed attendance: %w", err)
	}

	return mapAttendanceToResponse(closed), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	storeID, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, id, storeID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if att.EmployeeID != employeeID && !role.CanManage() {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	return mapAttendanceToResponse(att), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	storeID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, filter, storeID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return buildListResponse(attendances, total, filter.Page, filter.Limit), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	storeID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter, storeID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return buildListResponse(attendances, total, filter.Page, filter.Limit), nil
}

func buildListResponse(attendances []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var employeeName string
	if att.EmployeeName != nil {
		employeeName = *att.EmployeeName
	}

	return attendance.AttendanceResponse{
		ID:                    att.ID,
		EmployeeID:            att.EmployeeID,
		EmployeeName:          employeeName,
		WorkDate:              att.WorkDate.Format("2006-01-02"),
		CheckInTime:           timePtrToString(att.CheckInTime),
		CheckOutTime:          timePtrToString(att.CheckOutTime),
		ScheduledCheckOutTime: timePtrToString(att.ScheduledCheckOutTime),
		Status:                att.Status,
		CheckInLatitude:       att.CheckInLatitude,
		CheckInLongitude:      att.CheckInLongitude,
		CheckOutLatitude:      att.CheckOutLatitude,
		CheckOutLongitude:     att.CheckOutLongitude,
		WorkHours:             att.WorkHours,
		BreakHours:            att.BreakHours,
		OvertimeHours:         att.OvertimeHours,
		NightHours:            att.NightHours,
		BasePay:               att.BasePay,
		OvertimePay:           att.OvertimePay,
		NightPay:              att.NightPay,
		DailyTotal:            att.DailyTotal,
		CreatedAt:             att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:             att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
