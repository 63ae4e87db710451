package payrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/payrate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

const (
	SourceStore   = "store"
	SourceDefault = "default"
)

type PayRateServiceImpl struct {
	payrate.PayRateRepository

	defaultHourlyRate decimal.Decimal
}

func NewPayRateService(payRateRepo payrate.PayRateRepository, defaultHourlyRate decimal.Decimal) payrate.PayRateService {
	return &PayRateServiceImpl{
		PayRateRepository: payRateRepo,
		defaultHourlyRate: defaultHourlyRate,
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

// GetCurrent implements payrate.PayRateService. A store without an active
// rate gets the statutory default, never an error.
func (p *PayRateServiceImpl) GetCurrent(ctx context.Context) (payrate.PayRateResponse, error) {
	storeID, err := storeIDFromContext(ctx)
	if err != nil {
		return payrate.PayRateResponse{}, err
	}

	rate, err := p.PayRateRepository.GetActiveByStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, payrate.ErrPayRateNotFound) {
			return payrate.PayRateResponse{
				StoreID:    storeID,
				HourlyRate: p.defaultHourlyRate,
				Status:     payrate.StatusActive,
				Source:     SourceDefault,
			}, nil
		}
		return payrate.PayRateResponse{}, fmt.Errorf("failed to get pay rate: %w", err)
	}

	return mapPayRateToResponse(rate, SourceStore), nil
}

// Create implements payrate.PayRateService.
func (p *PayRateServiceImpl) Create(ctx context.Context, req payrate.CreatePayRateRequest) (payrate.PayRateResponse, error) {
	if err := req.Validate(); err != nil {
		return payrate.PayRateResponse{}, err
	}

	storeID, err := storeIDFromContext(ctx)
	if err != nil {
		return payrate.PayRateResponse{}, err
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return payrate.PayRateResponse{}, fmt.Errorf("failed to parse effective_from: %w", err)
	}

	// Versions effective today or earlier go straight to ACTIVE; future
	// versions wait for the activation job.
	status := payrate.StatusPending
	if !effectiveFrom.After(time.Now().UTC().Truncate(24 * time.Hour)) {
		status = payrate.StatusActive
	}

	created, err := p.PayRateRepository.Create(ctx, payrate.PayRate{
		StoreID:       storeID,
		HourlyRate:    req.HourlyRate,
		Status:        status,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		return payrate.PayRateResponse{}, fmt.Errorf("failed to create pay rate: %w", err)
	}

	return mapPayRateToResponse(created, SourceStore), nil
}

// List implements payrate.PayRateService.
func (p *PayRateServiceImpl) List(ctx context.Context) (payrate.ListPayRateResponse, error) {
	storeID, err := storeIDFromContext(ctx)
	if err != nil {
		return payrate.ListPayRateResponse{}, err
	}

	rates, err := p.PayRateRepository.ListByStore(ctx, storeID)
	if err != nil {
		return payrate.ListPayRateResponse{}, fmt.Errorf("failed to list pay rates: %w", err)
	}

	responses := make([]payrate.PayRateResponse, 0, len(rates))
	for _, rate := range rates {
		responses = append(responses, mapPayRateToResponse(rate, SourceStore))
	}

	return payrate.ListPayRateResponse{Rates: responses}, nil
}

func mapPayRateToResponse(rate payrate.PayRate, source string) payrate.PayRateResponse {
	return payrate.PayRateResponse{
		ID:            rate.ID,
		StoreID:       rate.StoreID,
		HourlyRate:    rate.HourlyRate,
		Status:        rate.Status,
		EffectiveFrom: rate.EffectiveFrom.Format("2006-01-02"),
		Source:        source,
	}
}
