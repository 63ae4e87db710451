package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/payrate"
	"github.com/abc-staff/staff-backend-go/internal/pkg/database"
	"github.com/abc-staff/staff-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func setupPayRateData(t *testing.T, db *database.DB) {
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, "TRUNCATE TABLE pay_rates CASCADE")
	require.NoError(t, err)

	_, err = db.Pool.Exec(ctx, "TRUNCATE TABLE stores CASCADE")
	require.NoError(t, err)
}

func createTestStore(t *testing.T, db *database.DB) string {
	ctx := context.Background()

	id := uuid.NewString()
	_, err := db.Pool.Exec(ctx,
		"INSERT INTO stores (id, code, name, timezone) VALUES ($1, $2, $3, $4)",
		id, "STORE-"+id[:8], "Test Store", "Asia/Seoul")
	require.NoError(t, err)
	return id
}

func createTestPayRate(t *testing.T, repo payrate.PayRateRepository, storeID, rate string, status payrate.Status, effectiveFrom time.Time) payrate.PayRate {
	created, err := repo.Create(context.Background(), payrate.PayRate{
		StoreID:       storeID,
		HourlyRate:    decimal.RequireFromString(rate),
		Status:        status,
		EffectiveFrom: effectiveFrom,
	})
	require.NoError(t, err)
	return created
}

func TestActivateDue_TwoDueVersionsOneStore(t *testing.T) {
	db := testDB(t)
	setupPayRateData(t, db)

	repo := postgresql.NewPayRateRepository(db)
	storeID := createTestStore(t, db)
	now := time.Now().UTC()

	older := createTestPayRate(t, repo, storeID, "9000", payrate.StatusPending, now.Add(-48*time.Hour))
	newer := createTestPayRate(t, repo, storeID, "9500", payrate.StatusPending, now.Add(-24*time.Hour))

	activated, err := repo.ActivateDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), activated)

	rates, err := repo.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	require.Len(t, rates, 2)

	activeCount := 0
	for _, r := range rates {
		switch r.ID {
		case newer.ID:
			assert.Equal(t, payrate.StatusActive, r.Status)
		case older.ID:
			assert.Equal(t, payrate.StatusExpired, r.Status)
		}
		if r.Status == payrate.StatusActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)

	active, err := repo.GetActiveByStore(context.Background(), storeID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, active.ID)
	assert.True(t, active.HourlyRate.Equal(decimal.RequireFromString("9500")))
}

func TestActivateDue_ExpiresPreviousActive(t *testing.T) {
	db := testDB(t)
	setupPayRateData(t, db)

	repo := postgresql.NewPayRateRepository(db)
	storeID := createTestStore(t, db)
	now := time.Now().UTC()

	current := createTestPayRate(t, repo, storeID, "10030", payrate.StatusActive, now.Add(-30*24*time.Hour))
	due := createTestPayRate(t, repo, storeID, "11000", payrate.StatusPending, now.Add(-time.Hour))

	activated, err := repo.ActivateDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), activated)

	active, err := repo.GetActiveByStore(context.Background(), storeID)
	require.NoError(t, err)
	assert.Equal(t, due.ID, active.ID)

	rates, err := repo.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	for _, r := range rates {
		if r.ID == current.ID {
			assert.Equal(t, payrate.StatusExpired, r.Status)
		}
	}
}

func TestActivateDue_FuturePendingUntouched(t *testing.T) {
	db := testDB(t)
	setupPayRateData(t, db)

	repo := postgresql.NewPayRateRepository(db)
	storeID := createTestStore(t, db)
	now := time.Now().UTC()

	future := createTestPayRate(t, repo, storeID, "12000", payrate.StatusPending, now.Add(24*time.Hour))

	activated, err := repo.ActivateDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), activated)

	rates, err := repo.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, future.ID, rates[0].ID)
	assert.Equal(t, payrate.StatusPending, rates[0].Status)
}
