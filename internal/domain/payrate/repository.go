package payrate

import (
	"context"
	"time"
)

type PayRateRepository interface {
	// Create creates a new pay-rate version for a store
	Create(ctx context.Context, rate PayRate) (PayRate, error)

	// GetActiveByStore retrieves the currently active rate for a store.
	// Returns ErrPayRateNotFound when the store has no active rate; callers
	// fall back to the statutory default instead of failing.
	GetActiveByStore(ctx context.Context, storeID string) (PayRate, error)

	// ListByStore retrieves all rate versions of a store, newest first
	ListByStore(ctx context.Context, storeID string) ([]PayRate, error)

	// ActivateDue flips PENDING versions whose effective date has arrived to
	// ACTIVE and expires the versions they supersede. Returns the number of
	// activated versions.
	ActivateDue(ctx context.Context, now time.Time) (int64, error)
}
