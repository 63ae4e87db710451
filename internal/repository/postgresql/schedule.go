package postgresql

import (
	"context"
	"fmt"

	"github.com/abc-staff/staff-backend-go/internal/domain/schedule"
	"github.com/abc-staff/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Create implements schedule.ScheduleRepository.
func (s *scheduleRepository) Create(ctx context.Context, sched schedule.StoreSchedule) (schedule.StoreSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO store_schedules (
			employee_id, store_id, work_date,
			scheduled_check_in_time, scheduled_check_out_time, grace_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sched.EmployeeID,
		sched.StoreID,
		sched.WorkDate,
		sched.ScheduledCheckInTime,
		sched.ScheduledCheckOutTime,
		sched.GraceMinutes,
	).Scan(&sched.ID, &sched.CreatedAt, &sched.UpdatedAt)

	if err != nil {
		return schedule.StoreSchedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	return sched, nil
}

// GetByEmployeeAndDate implements schedule.ScheduleRepository.
func (s *scheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string, storeID string) (*schedule.StoreSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, employee_id, store_id, work_date,
			   scheduled_check_in_time, scheduled_check_out_time, grace_minutes,
			   created_at, updated_at
		FROM store_schedules
		WHERE employee_id = $1
		  AND work_date = $2
		  AND store_id = $3
		LIMIT 1
	`

	var sched schedule.StoreSchedule
	err := q.QueryRow(ctx, query, employeeID, dateLocal, storeID).Scan(
		&sched.ID, &sched.EmployeeID, &sched.StoreID, &sched.WorkDate,
		&sched.ScheduledCheckInTime, &sched.ScheduledCheckOutTime, &sched.GraceMinutes,
		&sched.CreatedAt, &sched.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No schedule for this date
		}
		return nil, fmt.Errorf("failed to get schedule by employee and date: %w", err)
	}

	return &sched, nil
}

// List implements schedule.ScheduleRepository.
func (s *scheduleRepository) List(ctx context.Context, filter schedule.ScheduleFilter, storeID string) ([]schedule.StoreSchedule, int64, error) {
	q := GetQuerier(ctx, s.db)

	baseWhere := "s.store_id = $1"
	args := []interface{}{storeID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND s.work_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND s.work_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM store_schedules s WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count schedules: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT s.id, s.employee_id, s.store_id, s.work_date,
			   s.scheduled_check_in_time, s.scheduled_check_out_time, s.grace_minutes,
			   s.created_at, s.updated_at,
			   e.full_name AS employee_name
		FROM store_schedules s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.work_date DESC, s.scheduled_check_in_time ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.StoreSchedule
	for rows.Next() {
		var sched schedule.StoreSchedule
		err := rows.Scan(
			&sched.ID, &sched.EmployeeID, &sched.StoreID, &sched.WorkDate,
			&sched.ScheduledCheckInTime, &sched.ScheduledCheckOutTime, &sched.GraceMinutes,
			&sched.CreatedAt, &sched.UpdatedAt,
			&sched.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, sched)
	}

	return schedules, total, nil
}

// Delete implements schedule.ScheduleRepository.
func (s *scheduleRepository) Delete(ctx context.Context, id string, storeID string) error {
	q := GetQuerier(ctx, s.db)

	query := `DELETE FROM store_schedules WHERE id = $1 AND store_id = $2`

	tag, err := q.Exec(ctx, query, id, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}
