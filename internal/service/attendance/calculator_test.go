package attendance

import (
	"testing"
	"time"

	"github.com/abc-staff/staff-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRate = decimal.NewFromInt(10000)

func day(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestPayCalculator_StandardShift(t *testing.T) {
	// 09:00 -> 18:00, 9h elapsed: 1h break, exactly the 8h standard shift.
	calc := NewPayCalculator()

	got, err := calc.Calculate(CheckoutInput{
		CheckInTime:  day(9, 0),
		CheckOutTime: day(18, 0),
		HourlyRate:   testRate,
		Location:     time.UTC,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.BreakHours)
	assert.Equal(t, 8.0, got.WorkHours)
	assert.Equal(t, 0.0, got.OvertimeHours)
	assert.Equal(t, 0.0, got.NightHours)
	assert.True(t, got.BasePay.Equal(decimal.NewFromInt(80000)), "base pay = %s", got.BasePay)
	assert.True(t, got.OvertimePay.IsZero())
	assert.True(t, got.DailyTotal.Equal(decimal.NewFromInt(80000)), "daily total = %s", got.DailyTotal)
	assert.False(t, got.EarlyLeave)
}

func TestPayCalculator_OvertimeOutsideNightWindow(t *testing.T) {
	// 09:00 -> 20:00, 11h elapsed: 1h break, 10h worked, 2h overtime.
	// Checkout hour 20 is outside [22, 6), so no night premium.
	calc := NewPayCalculator()

	got, err := calc.Calculate(CheckoutInput{
		CheckInTime:  day(9, 0),
		CheckOutTime: day(20, 0),
		HourlyRate:   testRate,
		Location:     time.UTC,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.BreakHours)
	assert.Equal(t, 10.0, got.WorkHours)
	assert.Equal(t, 2.0, got.OvertimeHours)
	assert.Equal(t, 0.0, got.NightHours)
	assert.True(t, got.BasePay.Equal(decimal.NewFromInt(80000)))
	assert.True(t, got.OvertimePay.Equal(decimal.NewFromInt(30000)), "overtime pay = %s", got.OvertimePay)
	assert.True(t, got.NightPay.IsZero())
	assert.True(t, got.DailyTotal.Equal(decimal.NewFromInt(110000)), "daily total = %s", got.DailyTotal)
}

func TestPayCalculator_NightCheckout(t *testing.T) {
	// 14:00 -> 23:30, 9.5h elapsed: 1h break, 8.5h worked, 0.5h overtime.
	// Checkout hour 23 is in the night window: night = min(0.5, 2) = 0.5.
	calc := NewPayCalculator()

	got, err := calc.Calculate(CheckoutInput{
		CheckInTime:  day(14, 0),
		CheckOutTime: day(23, 30),
		HourlyRate:   testRate,
		Location:     time.UTC,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.BreakHours)
	assert.Equal(t, 8.5, got.WorkHours)
	assert.Equal(t, 0.5, got.OvertimeHours)
	assert.Equal(t, 0.5, got.NightHours)
	assert.True(t, got.BasePay.Equal(decimal.NewFromInt(80000)))
	assert.True(t, got.OvertimePay.Equal(decimal.NewFromInt(7500)), "overtime pay = %s", got.OvertimePay)
	assert.True(t, got.NightPay.Equal(decimal.NewFromInt(2500)), "night pay = %s", got.NightPay)
	assert.True(t, got.DailyTotal.Equal(decimal.NewFromInt(90000)), "daily total = %s", got.DailyTotal)
}

func TestPayCalculator_BreakTiers(t *testing.T) {
	calc := NewPayCalculator()

	cases := []struct {
		name         string
		elapsed      time.Duration
		wantBreak    float64
		wantOvertime float64
	}{
		{"under 4h", 3*time.Hour + 59*time.Minute, 0, 0},
		{"exactly 4h", 4 * time.Hour, 0.5, 0},
		{"under 8h", 7*time.Hour + 30*time.Minute, 0.5, 0},
		{"exactly 8h", 8 * time.Hour, 1, 0},
		{"12h", 12 * time.Hour, 1, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := day(9, 0)
			got, err := calc.Calculate(CheckoutInput{
				CheckInTime:  in,
				CheckOutTime: in.Add(c.elapsed),
				HourlyRate:   testRate,
				Location:     time.UTC,
			})
			require.NoError(t, err)
			assert.Equal(t, c.wantBreak, got.BreakHours)
			assert.Equal(t, c.wantOvertime, got.OvertimeHours)
		})
	}
}

func TestPayCalculator_BasePayCapped(t *testing.T) {
	// Base pay never exceeds 8 x rate regardless of shift length.
	calc := NewPayCalculator()

	got, err := calc.Calculate(CheckoutInput{
		CheckInTime:  day(0, 0),
		CheckOutTime: day(0, 0).Add(20 * time.Hour),
		HourlyRate:   testRate,
		Location:     time.UTC,
	})
	require.NoError(t, err)
	assert.True(t, got.BasePay.Equal(decimal.NewFromInt(80000)), "base pay = %s", got.BasePay)
}

func TestPayCalculator_TotalIdentity(t *testing.T) {
	calc := NewPayCalculator()

	elapsed := []time.Duration{
		90 * time.Minute,
		5*time.Hour + 17*time.Minute,
		9*time.Hour + 41*time.Minute,
		13 * time.Hour,
	}
	for _, e := range elapsed {
		got, err := calc.Calculate(CheckoutInput{
			CheckInTime:  day(8, 0),
			CheckOutTime: day(8, 0).Add(e),
			HourlyRate:   decimal.NewFromFloat(10030),
			Location:     time.UTC,
		})
		require.NoError(t, err)

		sum := got.BasePay.Add(got.OvertimePay).Add(got.NightPay)
		assert.True(t, got.DailyTotal.Equal(sum), "elapsed %s: total %s != sum %s", e, got.DailyTotal, sum)

		rounded := got.Rounded()
		roundedSum := rounded.BasePay.Add(rounded.OvertimePay).Add(rounded.NightPay)
		assert.True(t, rounded.DailyTotal.Equal(roundedSum), "elapsed %s: rounded identity broken", e)
	}
}

func TestPayCalculator_EarlyLeave(t *testing.T) {
	calc := NewPayCalculator()
	scheduled := day(18, 0)

	got, err := calc.Calculate(CheckoutInput{
		CheckInTime:           day(9, 0),
		CheckOutTime:          day(17, 0),
		ScheduledCheckOutTime: &scheduled,
		HourlyRate:            testRate,
		Location:              time.UTC,
	})
	require.NoError(t, err)
	assert.True(t, got.EarlyLeave)

	got, err = calc.Calculate(CheckoutInput{
		CheckInTime:           day(9, 0),
		CheckOutTime:          day(18, 0),
		ScheduledCheckOutTime: &scheduled,
		HourlyRate:            testRate,
		Location:              time.UTC,
	})
	require.NoError(t, err)
	assert.False(t, got.EarlyLeave)
}

func TestPayCalculator_RejectsInvalidInput(t *testing.T) {
	calc := NewPayCalculator()

	_, err := calc.Calculate(CheckoutInput{
		CheckInTime:  day(18, 0),
		CheckOutTime: day(9, 0),
		HourlyRate:   testRate,
	})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)

	_, err = calc.Calculate(CheckoutInput{
		CheckInTime:  day(9, 0),
		CheckOutTime: day(9, 0),
		HourlyRate:   testRate,
	})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)

	_, err = calc.Calculate(CheckoutInput{
		CheckInTime:  day(9, 0),
		CheckOutTime: day(18, 0),
		HourlyRate:   decimal.Zero,
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidHourlyRate)
}

func TestPayCalculator_NightWindowUsesLocalHour(t *testing.T) {
	// 13:00 -> 22:30 UTC is 22:00 -> 07:30 in Seoul (+9): the checkout
	// instant's local hour decides the window.
	calc := NewPayCalculator()
	seoul := time.FixedZone("KST", 9*3600)

	got, err := calc.Calculate(CheckoutInput{
		CheckInTime:  day(13, 0),
		CheckOutTime: day(22, 30),
		HourlyRate:   testRate,
		Location:     seoul,
	})
	require.NoError(t, err)
	// Local checkout hour is 7, outside the window.
	assert.Equal(t, 0.0, got.NightHours)

	got, err = calc.Calculate(CheckoutInput{
		CheckInTime:  day(5, 0),
		CheckOutTime: day(14, 30),
		HourlyRate:   testRate,
		Location:     seoul,
	})
	require.NoError(t, err)
	// Local checkout hour is 23, inside the window; overtime 0.5h gates it.
	assert.Equal(t, 0.5, got.NightHours)
}

func TestPayCalculator_SwappableNightPolicy(t *testing.T) {
	noNight := func(time.Time, float64) float64 { return 0 }
	calc := NewPayCalculatorWithNightPolicy(noNight)

	got, err := calc.Calculate(CheckoutInput{
		CheckInTime:  day(14, 0),
		CheckOutTime: day(23, 30),
		HourlyRate:   testRate,
		Location:     time.UTC,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.NightHours)
	assert.True(t, got.NightPay.IsZero())
}

func TestNightWindowIntersection(t *testing.T) {
	// 20:00 -> 23:30 overlaps the window by 1.5h.
	assert.InDelta(t, 1.5, NightWindowIntersection(day(20, 0), day(23, 30)), 1e-9)

	// 21:00 -> 07:00 next day overlaps by the full 8h window.
	assert.InDelta(t, 8.0, NightWindowIntersection(day(21, 0), day(21, 0).Add(10*time.Hour)), 1e-9)

	// Fully outside the window.
	assert.InDelta(t, 0.0, NightWindowIntersection(day(9, 0), day(17, 0)), 1e-9)
}
