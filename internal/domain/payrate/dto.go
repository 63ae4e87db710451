package payrate

import (
	"github.com/abc-staff/staff-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePayRateRequest struct {
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	EffectiveFrom string          `json:"effective_from"` // YYYY-MM-DD
}

func (r *CreatePayRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a positive amount",
		})
	}

	if validator.IsEmpty(r.EffectiveFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from is required",
		})
	} else if _, valid := validator.IsValidDate(r.EffectiveFrom); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayRateResponse struct {
	ID            string          `json:"id,omitempty"`
	StoreID       string          `json:"store_id"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	Status        Status          `json:"status"`
	EffectiveFrom string          `json:"effective_from,omitempty"`
	// Source is "store" when a store-level rate applied, "default" when the
	// statutory fallback was substituted.
	Source string `json:"source"`
}

type ListPayRateResponse struct {
	Rates []PayRateResponse `json:"rates"`
}
