package postgresql

import (
	"context"
	"fmt"

	"github.com/abc-staff/staff-backend-go/internal/domain/store"
	"github.com/abc-staff/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type storeRepository struct {
	db *database.DB
}

func NewStoreRepository(db *database.DB) store.StoreRepository {
	return &storeRepository{db: db}
}

// GetByID implements store.StoreRepository.
func (s *storeRepository) GetByID(ctx context.Context, id string) (store.Store, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, code, name, timezone, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var st store.Store
	err := q.QueryRow(ctx, query, id).Scan(
		&st.ID, &st.Code, &st.Name, &st.Timezone, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, fmt.Errorf("failed to get store by ID: %w", err)
	}

	return st, nil
}

// GetByCode implements store.StoreRepository.
func (s *storeRepository) GetByCode(ctx context.Context, code string) (store.Store, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, code, name, timezone, created_at, updated_at
		FROM stores
		WHERE code = $1
	`

	var st store.Store
	err := q.QueryRow(ctx, query, code).Scan(
		&st.ID, &st.Code, &st.Name, &st.Timezone, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, fmt.Errorf("failed to get store by code: %w", err)
	}

	return st, nil
}

// GetTimezoneByID implements store.StoreRepository.
func (s *storeRepository) GetTimezoneByID(ctx context.Context, id string) (string, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT timezone FROM stores WHERE id = $1`

	var timezone string
	if err := q.QueryRow(ctx, query, id).Scan(&timezone); err != nil {
		if err == pgx.ErrNoRows {
			return "", store.ErrStoreNotFound
		}
		return "", fmt.Errorf("failed to get store timezone: %w", err)
	}

	return timezone, nil
}
