package postgresql

import (
	"context"
	"fmt"

	"github.com/abc-staff/staff-backend-go/internal/domain/employee"
	"github.com/abc-staff/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository. An empty storeID skips
// the store filter; the refresh flow looks employees up by ID alone.
func (e *employeeRepository) GetByID(ctx context.Context, id string, storeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, store_id, employee_code, full_name, role, password_hash, is_active,
			   created_at, updated_at
		FROM employees
		WHERE id = $1
		  AND ($2 = '' OR store_id = $2)
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, storeID).Scan(
		&emp.ID, &emp.StoreID, &emp.EmployeeCode, &emp.FullName, &emp.Role,
		&emp.PasswordHash, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepository) GetByCode(ctx context.Context, storeID string, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, store_id, employee_code, full_name, role, password_hash, is_active,
			   created_at, updated_at
		FROM employees
		WHERE store_id = $1 AND employee_code = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, storeID, code).Scan(
		&emp.ID, &emp.StoreID, &emp.EmployeeCode, &emp.FullName, &emp.Role,
		&emp.PasswordHash, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// ListActiveByStore implements employee.EmployeeRepository.
func (e *employeeRepository) ListActiveByStore(ctx context.Context, storeID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, store_id, employee_code, full_name, role, password_hash, is_active,
			   created_at, updated_at
		FROM employees
		WHERE store_id = $1 AND is_active = TRUE
		ORDER BY employee_code ASC
	`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.StoreID, &emp.EmployeeCode, &emp.FullName, &emp.Role,
			&emp.PasswordHash, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}
