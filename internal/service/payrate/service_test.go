package payrate

import (
	"context"
	"testing"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/payrate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStoreID = "store-1"

type fakePayRateRepo struct {
	rates []payrate.PayRate
}

func (r *fakePayRateRepo) Create(_ context.Context, rate payrate.PayRate) (payrate.PayRate, error) {
	rate.ID = uuid.NewString()
	r.rates = append(r.rates, rate)
	return rate, nil
}

func (r *fakePayRateRepo) GetActiveByStore(_ context.Context, storeID string) (payrate.PayRate, error) {
	for _, rate := range r.rates {
		if rate.StoreID == storeID && rate.Status == payrate.StatusActive {
			return rate, nil
		}
	}
	return payrate.PayRate{}, payrate.ErrPayRateNotFound
}

func (r *fakePayRateRepo) ListByStore(_ context.Context, storeID string) ([]payrate.PayRate, error) {
	var out []payrate.PayRate
	for _, rate := range r.rates {
		if rate.StoreID == storeID {
			out = append(out, rate)
		}
	}
	return out, nil
}

func (r *fakePayRateRepo) ActivateDue(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func authedContext(t *testing.T) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"store_id":    testStoreID,
		"employee_id": "emp-1",
		"role":        "manager",
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestGetCurrent_StoreRate(t *testing.T) {
	repo := &fakePayRateRepo{rates: []payrate.PayRate{{
		ID:         uuid.NewString(),
		StoreID:    testStoreID,
		HourlyRate: decimal.NewFromInt(12000),
		Status:     payrate.StatusActive,
	}}}
	svc := NewPayRateService(repo, decimal.NewFromInt(10030))

	resp, err := svc.GetCurrent(authedContext(t))
	require.NoError(t, err)

	assert.Equal(t, SourceStore, resp.Source)
	assert.True(t, decimal.NewFromInt(12000).Equal(resp.HourlyRate))
}

func TestGetCurrent_FallsBackToDefault(t *testing.T) {
	svc := NewPayRateService(&fakePayRateRepo{}, decimal.NewFromInt(10030))

	resp, err := svc.GetCurrent(authedContext(t))
	require.NoError(t, err)

	assert.Equal(t, SourceDefault, resp.Source)
	assert.True(t, decimal.NewFromInt(10030).Equal(resp.HourlyRate))
	assert.Equal(t, payrate.StatusActive, resp.Status)
}

func TestCreate_FutureVersionStartsPending(t *testing.T) {
	repo := &fakePayRateRepo{}
	svc := NewPayRateService(repo, decimal.NewFromInt(10030))

	future := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	resp, err := svc.Create(authedContext(t), payrate.CreatePayRateRequest{
		HourlyRate:    decimal.NewFromInt(11000),
		EffectiveFrom: future,
	})
	require.NoError(t, err)

	assert.Equal(t, payrate.StatusPending, resp.Status)
	assert.Equal(t, future, resp.EffectiveFrom)
}

func TestCreate_PastVersionActivatesImmediately(t *testing.T) {
	repo := &fakePayRateRepo{}
	svc := NewPayRateService(repo, decimal.NewFromInt(10030))

	resp, err := svc.Create(authedContext(t), payrate.CreatePayRateRequest{
		HourlyRate:    decimal.NewFromInt(11000),
		EffectiveFrom: time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02"),
	})
	require.NoError(t, err)

	assert.Equal(t, payrate.StatusActive, resp.Status)
}

func TestCreate_RejectsNonPositiveRate(t *testing.T) {
	svc := NewPayRateService(&fakePayRateRepo{}, decimal.NewFromInt(10030))

	_, err := svc.Create(authedContext(t), payrate.CreatePayRateRequest{
		HourlyRate:    decimal.Zero,
		EffectiveFrom: "2025-01-01",
	})
	assert.Error(t, err)
}
