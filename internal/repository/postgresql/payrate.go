package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/payrate"
	"github.com/abc-staff/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payRateRepository struct {
	db *database.DB
}

func NewPayRateRepository(db *database.DB) payrate.PayRateRepository {
	return &payRateRepository{db: db}
}

// Create implements payrate.PayRateRepository.
func (p *payRateRepository) Create(ctx context.Context, rate payrate.PayRate) (payrate.PayRate, error) {
	err := WithTransaction(ctx, p.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, p.db)

		// A new ACTIVE version supersedes the previous one immediately.
		if rate.Status == payrate.StatusActive {
			expireQuery := `
				UPDATE pay_rates
				SET status = $1, updated_at = NOW()
				WHERE store_id = $2 AND status = $3
			`
			if _, err := q.Exec(txCtx, expireQuery, payrate.StatusExpired, rate.StoreID, payrate.StatusActive); err != nil {
				return fmt.Errorf("failed to expire previous pay rate: %w", err)
			}
		}

		insertQuery := `
			INSERT INTO pay_rates (store_id, hourly_rate, status, effective_from)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(txCtx, insertQuery,
			rate.StoreID,
			rate.HourlyRate,
			rate.Status,
			rate.EffectiveFrom,
		).Scan(&rate.ID, &rate.CreatedAt, &rate.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create pay rate: %w", err)
		}
		return nil
	})
	if err != nil {
		return payrate.PayRate{}, err
	}

	return rate, nil
}

// GetActiveByStore implements payrate.PayRateRepository.
func (p *payRateRepository) GetActiveByStore(ctx context.Context, storeID string) (payrate.PayRate, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, store_id, hourly_rate, status, effective_from, created_at, updated_at
		FROM pay_rates
		WHERE store_id = $1 AND status = $2
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var rate payrate.PayRate
	err := q.QueryRow(ctx, query, storeID, payrate.StatusActive).Scan(
		&rate.ID, &rate.StoreID, &rate.HourlyRate, &rate.Status,
		&rate.EffectiveFrom, &rate.CreatedAt, &rate.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrate.PayRate{}, payrate.ErrPayRateNotFound
		}
		return payrate.PayRate{}, fmt.Errorf("failed to get active pay rate: %w", err)
	}

	return rate, nil
}

// ListByStore implements payrate.PayRateRepository.
func (p *payRateRepository) ListByStore(ctx context.Context, storeID string) ([]payrate.PayRate, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, store_id, hourly_rate, status, effective_from, created_at, updated_at
		FROM pay_rates
		WHERE store_id = $1
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pay rates: %w", err)
	}
	defer rows.Close()

	var rates []payrate.PayRate
	for rows.Next() {
		var rate payrate.PayRate
		err := rows.Scan(
			&rate.ID, &rate.StoreID, &rate.HourlyRate, &rate.Status,
			&rate.EffectiveFrom, &rate.CreatedAt, &rate.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay rate: %w", err)
		}
		rates = append(rates, rate)
	}

	return rates, nil
}

// ActivateDue implements payrate.PayRateRepository. Runs as one transaction
// so a store never ends up with two ACTIVE versions. Per store, only the
// newest due PENDING version becomes ACTIVE; the previous ACTIVE version
// and any older due PENDING versions it leapfrogs are expired.
func (p *payRateRepository) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	var activated int64

	err := WithTransaction(ctx, p.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, p.db)

		expireQuery := `
			UPDATE pay_rates p
			SET status = $1, updated_at = NOW()
			FROM (
				SELECT DISTINCT ON (store_id) id, store_id
				FROM pay_rates
				WHERE status = $2 AND effective_from <= $3
				ORDER BY store_id, effective_from DESC
			) winner
			WHERE p.store_id = winner.store_id
			  AND p.id <> winner.id
			  AND (p.status = $4 OR (p.status = $2 AND p.effective_from <= $3))
		`
		_, err := q.Exec(txCtx, expireQuery,
			payrate.StatusExpired, payrate.StatusPending, now, payrate.StatusActive)
		if err != nil {
			return fmt.Errorf("failed to expire superseded pay rates: %w", err)
		}

		activateQuery := `
			UPDATE pay_rates p
			SET status = $1, updated_at = NOW()
			FROM (
				SELECT DISTINCT ON (store_id) id
				FROM pay_rates
				WHERE status = $2 AND effective_from <= $3
				ORDER BY store_id, effective_from DESC
			) winner
			WHERE p.id = winner.id
		`
		tag, err := q.Exec(txCtx, activateQuery,
			payrate.StatusActive, payrate.StatusPending, now)
		if err != nil {
			return fmt.Errorf("failed to activate pending pay rates: %w", err)
		}

		activated = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	return activated, nil
}
