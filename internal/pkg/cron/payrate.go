package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/payrate"
)

type PayRateJobs struct {
	payRateRepo payrate.PayRateRepository
}

func NewPayRateJobs(payRateRepo payrate.PayRateRepository) *PayRateJobs {
	return &PayRateJobs{payRateRepo: payRateRepo}
}

func (j *PayRateJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("activate_pending_pay_rates", 1*time.Hour, j.ActivatePendingPayRates)
}

// ActivatePendingPayRates flips PENDING rate versions whose effective date
// has arrived to ACTIVE.
func (j *PayRateJobs) ActivatePendingPayRates(ctx context.Context) error {
	activated, err := j.payRateRepo.ActivateDue(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to activate pending pay rates: %w", err)
	}

	if activated > 0 {
		slog.Info("Cron: Activated pending pay rates", "count", activated)
	}
	return nil
}
