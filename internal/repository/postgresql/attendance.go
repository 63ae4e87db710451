package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/abc-staff/staff-backend-go/internal/domain/attendance"
	"github.com/abc-staff/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.store_id, a.work_date,
	a.check_in_time, a.check_out_time, a.scheduled_check_out_time, a.status,
	a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
	a.work_hours, a.break_hours, a.overtime_hours, a.night_hours,
	a.base_pay, a.overtime_pay, a.night_pay, a.daily_total,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, att *attendance.Attendance, withEmployeeName bool) error {
	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.StoreID, &att.WorkDate,
		&att.CheckInTime, &att.CheckOutTime, &att.ScheduledCheckOutTime, &att.Status,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.WorkHours, &att.BreakHours, &att.OvertimeHours, &att.NightHours,
		&att.BasePay, &att.OvertimePay, &att.NightPay, &att.DailyTotal,
		&att.CreatedAt, &att.UpdatedAt,
	}
	if withEmployeeName {
		dest = append(dest, &att.EmployeeName)
	}
	return row.Scan(dest...)
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, store_id, work_date,
			check_in_time, scheduled_check_out_time, status,
			check_in_latitude, check_in_longitude
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.StoreID,
		newAttendance.WorkDate,
		newAttendance.CheckInTime,
		newAttendance.ScheduledCheckOutTime,
		newAttendance.Status,
		newAttendance.CheckInLatitude,
		newAttendance.CheckInLongitude,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, storeID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `,
			e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.store_id = $2
	`

	var att attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query, id, storeID), &att, true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// HasCheckedInOn implements attendance.AttendanceRepository.
func (a *attendanceRepository) HasCheckedInOn(ctx context.Context, employeeID string, dateLocal string, storeID string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendances
			WHERE employee_id = $1
			  AND work_date = $2
			  AND store_id = $3
		)
	`

	var hasCheckedIn bool
	err := q.QueryRow(ctx, query, employeeID, dateLocal, storeID).Scan(&hasCheckedIn)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing attendance: %w", err)
	}

	return hasCheckedIn, nil
}

// Close implements attendance.AttendanceRepository. The update is guarded by
// check_out_time IS NULL so two concurrent checkouts cannot both succeed;
// the loser sees zero affected rows and a follow-up lookup tells whether the
// record was already closed or never existed.
func (a *attendanceRepository) Close(ctx context.Context, params attendance.CloseParams) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out_time = $1,
			status = $2,
			check_out_latitude = $3,
			check_out_longitude = $4,
			work_hours = $5,
			break_hours = $6,
			overtime_hours = $7,
			night_hours = $8,
			base_pay = $9,
			overtime_pay = $10,
			night_pay = $11,
			daily_total = $12,
			updated_at = NOW()
		WHERE id = $13
		  AND store_id = $14
		  AND check_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query,
		params.CheckOutTime,
		params.Status,
		params.CheckOutLatitude,
		params.CheckOutLongitude,
		params.WorkHours,
		params.BreakHours,
		params.OvertimeHours,
		params.NightHours,
		params.BasePay,
		params.OvertimePay,
		params.NightPay,
		params.DailyTotal,
		params.ID,
		params.StoreID,
	)
	if err != nil {
		return fmt.Errorf("failed to close attendance: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS (SELECT 1 FROM attendances WHERE id = $1 AND store_id = $2)`
		if err := q.QueryRow(ctx, checkQuery, params.ID, params.StoreID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check attendance existence: %w", err)
		}
		if exists {
			return attendance.ErrAlreadyCheckedOut
		}
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, storeID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.store_id = $1"
	args := []interface{}{storeID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		baseWhere += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.work_date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "check_in_time":
		orderByField = "a.check_in_time"
	case "check_out_time":
		orderByField = "a.check_out_time"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`,
			e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, true); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, nil
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, storeID string) ([]attendance.Attendance, int64, error) {
	full := attendance.AttendanceFilter{
		EmployeeID: &employeeID,
		Date:       filter.Date,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Status:     filter.Status,
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}
	return a.List(ctx, full, storeID)
}

// GetStaleOpenSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetStaleOpenSessions(ctx context.Context, graceHours int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.check_out_time IS NULL
		  AND a.scheduled_check_out_time IS NOT NULL
		  AND a.scheduled_check_out_time < NOW() - make_interval(hours => $1)
	`

	rows, err := q.Query(ctx, query, graceHours)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale open sessions: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, false); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, nil
}
