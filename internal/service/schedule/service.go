package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/employee"
	"github.com/abc-staff/staff-backend-go/internal/domain/schedule"
	"github.com/go-chi/jwtauth/v5"
)

type ScheduleServiceImpl struct {
	schedule.ScheduleRepository
	employee.EmployeeRepository
}

func NewScheduleService(
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ScheduleRepository: scheduleRepo,
		EmployeeRepository: employeeRepo,
	}
}

func storeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	storeID, ok := claims["store_id"].(string)
	if !ok || storeID == "" {
		return "", fmt.Errorf("store_id claim is missing or invalid")
	}
	return storeID, nil
}

// CreateSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	storeID, err := storeIDFromContext(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	// The target employee must belong to the caller's store.
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, storeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return schedule.ScheduleResponse{}, employee.ErrEmployeeNotFound
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	existing, err := s.ScheduleRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, req.WorkDate, storeID)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to check existing schedule: %w", err)
	}
	if existing != nil {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleExists
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	created, err := s.ScheduleRepository.Create(ctx, schedule.StoreSchedule{
		EmployeeID:            req.EmployeeID,
		StoreID:               storeID,
		WorkDate:              workDate,
		ScheduledCheckInTime:  startTime.UTC(),
		ScheduledCheckOutTime: endTime.UTC(),
		GraceMinutes:          req.GraceMinutes,
	})
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	return mapScheduleToResponse(created), nil
}

// ListSchedules implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context, filter schedule.ScheduleFilter) (schedule.ListScheduleResponse, error) {
	if err := filter.Validate(); err != nil {
		return schedule.ListScheduleResponse{}, err
	}

	storeID, err := storeIDFromContext(ctx)
	if err != nil {
		return schedule.ListScheduleResponse{}, err
	}

	schedules, total, err := s.ScheduleRepository.List(ctx, filter, storeID)
	if err != nil {
		return schedule.ListScheduleResponse{}, fmt.Errorf("failed to list schedules: %w", err)
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		responses = append(responses, mapScheduleToResponse(sched))
	}

	return schedule.ListScheduleResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Schedules:  responses,
	}, nil
}

// DeleteSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	storeID, err := storeIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.ScheduleRepository.Delete(ctx, id, storeID); err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}

func mapScheduleToResponse(sched schedule.StoreSchedule) schedule.ScheduleResponse {
	return schedule.ScheduleResponse{
		ID:           sched.ID,
		EmployeeID:   sched.EmployeeID,
		EmployeeName: sched.EmployeeName,
		WorkDate:     sched.WorkDate.Format("2006-01-02"),
		StartTime:    sched.ScheduledCheckInTime.Format(time.RFC3339),
		EndTime:      sched.ScheduledCheckOutTime.Format(time.RFC3339),
		GraceMinutes: sched.GraceMinutes,
	}
}
