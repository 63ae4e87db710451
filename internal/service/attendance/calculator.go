package attendance

import (
	"math"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

const (
	// standardShiftHours is the paid shift length; hours beyond it are overtime.
	standardShiftHours = 8.0

	// Unpaid break tiers.
	longShiftHours = 8.0
	longShiftBreak = 1.0
	halfShiftHours = 4.0
	halfShiftBreak = 0.5

	// Night premium window and cap.
	nightHoursCap    = 2.0
	nightWindowStart = 22
	nightWindowEnd   = 6
)

var (
	overtimeMultiplier = decimal.NewFromFloat(1.5)
	nightMultiplier    = decimal.NewFromFloat(0.5)
)

// NightHoursPolicy decides how many of the shift's hours earn the night
// premium, given the checkout instant in store-local time and the
// break-adjusted overtime hours.
type NightHoursPolicy func(checkOutLocal time.Time, overtimeHours float64) float64

// OvertimeGatedNightHours is the production policy: night pay applies only
// when the checkout instant falls in the [22:00, 06:00) window, is gated on
// overtime hours and capped at 2. It does not intersect the worked interval
// with the night window; see NightWindowIntersection for the exact variant.
func OvertimeGatedNightHours(checkOutLocal time.Time, overtimeHours float64) float64 {
	h := checkOutLocal.Hour()
	if h >= nightWindowStart || h < nightWindowEnd {
		return math.Min(overtimeHours, nightHoursCap)
	}
	return 0
}

// NightWindowIntersection measures how many worked hours actually fell in
// the [22:00, 06:00) window. Not wired as the default: payout numbers must
// stay compatible with the historical rule until the business confirms the
// change.
func NightWindowIntersection(checkInLocal, checkOutLocal time.Time) float64 {
	total := 0.0
	for t := checkInLocal; t.Before(checkOutLocal); {
		next := t.Truncate(time.Hour).Add(time.Hour)
		if next.After(checkOutLocal) {
			next = checkOutLocal
		}
		h := t.Hour()
		if h >= nightWindowStart || h < nightWindowEnd {
			total += next.Sub(t).Hours()
		}
		t = next
	}
	return total
}

// CheckoutInput is everything the pay computation reads. Location makes the
// night-window classification explicit instead of depending on the process
// timezone; nil falls back to UTC.
type CheckoutInput struct {
	CheckInTime           time.Time
	CheckOutTime          time.Time
	ScheduledCheckOutTime *time.Time
	HourlyRate            decimal.Decimal
	Location              *time.Location
}

// PayBreakdown is the full result of a checkout computation. Pay amounts
// are full-precision; Rounded trims them to whole currency units for
// persistence.
type PayBreakdown struct {
	WorkHours     float64 // break-adjusted worked hours
	BreakHours    float64
	OvertimeHours float64
	NightHours    float64

	BasePay     decimal.Decimal
	OvertimePay decimal.Decimal
	NightPay    decimal.Decimal
	DailyTotal  decimal.Decimal

	EarlyLeave bool
}

// Rounded returns the breakdown with each pay component rounded to whole
// currency units and the total recomputed from the rounded components, so
// the base+overtime+night identity survives rounding.
func (b PayBreakdown) Rounded() PayBreakdown {
	r := b
	r.BasePay = b.BasePay.Round(0)
	r.OvertimePay = b.OvertimePay.Round(0)
	r.NightPay = b.NightPay.Round(0)
	r.DailyTotal = r.BasePay.Add(r.OvertimePay).Add(r.NightPay)
	return r
}

// PayCalculator derives a daily pay breakdown at checkout time. It is a
// pure function of its input: no clock, no configuration lookup, no I/O.
type PayCalculator struct {
	nightHours NightHoursPolicy
}

func NewPayCalculator() *PayCalculator {
	return &PayCalculator{nightHours: OvertimeGatedNightHours}
}

// NewPayCalculatorWithNightPolicy allows swapping the night-hours rule
// without touching the rest of the computation.
func NewPayCalculatorWithNightPolicy(policy NightHoursPolicy) *PayCalculator {
	return &PayCalculator{nightHours: policy}
}

// Calculate turns a worked interval and an hourly rate into the daily pay
// breakdown. Checkout at or before check-in is rejected rather than
// producing negative hours.
func (c *PayCalculator) Calculate(in CheckoutInput) (PayBreakdown, error) {
	if !in.CheckOutTime.After(in.CheckInTime) {
		return PayBreakdown{}, attendance.ErrCheckOutBeforeCheckIn
	}
	if !in.HourlyRate.IsPositive() {
		return PayBreakdown{}, attendance.ErrInvalidHourlyRate
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	totalWorked := in.CheckOutTime.Sub(in.CheckInTime).Hours()

	var breakHours float64
	switch {
	case totalWorked >= longShiftHours:
		breakHours = longShiftBreak
	case totalWorked >= halfShiftHours:
		breakHours = halfShiftBreak
	}

	actualWorked := math.Max(0, totalWorked-breakHours)
	overtime := math.Max(0, actualWorked-standardShiftHours)
	night := c.nightHours(in.CheckOutTime.In(loc), overtime)

	basePay := decimal.NewFromFloat(math.Min(actualWorked, standardShiftHours)).Mul(in.HourlyRate)
	overtimePay := decimal.NewFromFloat(overtime).Mul(in.HourlyRate).Mul(overtimeMultiplier)
	nightPay := decimal.NewFromFloat(night).Mul(in.HourlyRate).Mul(nightMultiplier)

	earlyLeave := in.ScheduledCheckOutTime != nil && in.CheckOutTime.Before(*in.ScheduledCheckOutTime)

	return PayBreakdown{
		WorkHours:     actualWorked,
		BreakHours:    breakHours,
		OvertimeHours: overtime,
		NightHours:    night,
		BasePay:       basePay,
		OvertimePay:   overtimePay,
		NightPay:      nightPay,
		DailyTotal:    basePay.Add(overtimePay).Add(nightPay),
		EarlyLeave:    earlyLeave,
	}, nil
}
