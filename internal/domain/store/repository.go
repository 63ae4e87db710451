package store

import "context"

type StoreRepository interface {
	// GetByID retrieves a store by ID
	GetByID(ctx context.Context, id string) (Store, error)

	// GetByCode retrieves a store by its login code
	GetByCode(ctx context.Context, code string) (Store, error)

	// GetTimezoneByID retrieves the IANA timezone configured for a store
	GetTimezoneByID(ctx context.Context, id string) (string, error)
}
