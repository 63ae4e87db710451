package employee

import "context"

type EmployeeRepository interface {
	// GetByID retrieves an employee by ID with store isolation
	GetByID(ctx context.Context, id string, storeID string) (Employee, error)

	// GetByCode retrieves an employee by employee code within a store.
	// Used by the login flow.
	GetByCode(ctx context.Context, storeID string, code string) (Employee, error)

	// ListActiveByStore retrieves all active employees of a store
	ListActiveByStore(ctx context.Context, storeID string) ([]Employee, error)
}
