package payrate

import "context"

// PayRateService defines business logic for pay-rate configuration
type PayRateService interface {
	// GetCurrent resolves the effective hourly rate for the caller's store,
	// substituting the statutory default when none is configured
	GetCurrent(ctx context.Context) (PayRateResponse, error)

	// Create registers a new rate version for the caller's store
	Create(ctx context.Context, req CreatePayRateRequest) (PayRateResponse, error)

	// List retrieves all rate versions of the caller's store
	List(ctx context.Context) (ListPayRateResponse, error)
}
