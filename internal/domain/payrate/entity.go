package payrate

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
)

// PayRate is one version of a store's hourly wage configuration. A store
// has at most one ACTIVE version at a time; PENDING versions take over once
// their effective date arrives.
type PayRate struct {
	ID            string
	StoreID       string
	HourlyRate    decimal.Decimal
	Status        Status
	EffectiveFrom time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
