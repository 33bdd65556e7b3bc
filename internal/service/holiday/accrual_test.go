package holiday

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablerota/rota-backend-go/internal/domain/holiday"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// window2024 is a leap-year window, 366 days inclusive.
var window2024 = holiday.YearWindow{
	ID:        "w-2024",
	StartDate: date(2024, time.January, 1),
	EndDate:   date(2024, time.December, 31),
}

func TestAccruedDays(t *testing.T) {
	allowance := decimal.NewFromInt(28)

	t.Run("zero before the window", func(t *testing.T) {
		got := AccruedDays(allowance, window2024, date(2023, time.December, 31))
		assert.True(t, got.IsZero(), "got %s", got)
	})

	t.Run("full allowance after the window", func(t *testing.T) {
		got := AccruedDays(allowance, window2024, date(2025, time.January, 1))
		assert.True(t, got.Equal(allowance), "got %s", got)
	})

	t.Run("first day accrues one day's share", func(t *testing.T) {
		got := AccruedDays(allowance, window2024, window2024.StartDate)
		want := allowance.Div(decimal.NewFromInt(366))
		assert.True(t, got.Equal(want), "got %s, want %s", got, want)
	})

	t.Run("last day accrues the full allowance", func(t *testing.T) {
		got := AccruedDays(allowance, window2024, window2024.EndDate)
		assert.True(t, got.Equal(allowance), "got %s", got)
	})

	t.Run("183 elapsed days of 366 is about half", func(t *testing.T) {
		// 1 Jan through 1 Jul 2024 inclusive = 183 days
		got := AccruedDays(allowance, window2024, date(2024, time.July, 1))
		assert.Equal(t, "14", got.Round(1).String())
	})

	t.Run("monotonically non-decreasing across the window", func(t *testing.T) {
		prev := decimal.Zero
		for d := window2024.StartDate; !d.After(window2024.EndDate); d = d.AddDate(0, 0, 7) {
			got := AccruedDays(allowance, window2024, d)
			assert.True(t, got.GreaterThanOrEqual(prev), "accrual decreased at %s", d)
			assert.True(t, got.LessThanOrEqual(allowance), "accrual exceeded allowance at %s", d)
			prev = got
		}
	})
}

func TestBuildYearBuckets(t *testing.T) {
	allowance := decimal.NewFromInt(28)
	windows := []holiday.YearWindow{
		window2024,
		{
			ID:        "w-2025",
			StartDate: date(2025, time.January, 1),
			EndDate:   date(2025, time.December, 31),
		},
	}

	requests := []holiday.Request{
		{ID: "r1", StartDate: date(2024, time.March, 4), Days: 5, Status: holiday.StatusApproved, PaymentType: holiday.PaymentPaid},
		{ID: "r2", StartDate: date(2024, time.June, 10), Days: 3, Status: holiday.StatusApproved, PaymentType: holiday.PaymentUnpaid},
		{ID: "r3", StartDate: date(2024, time.August, 1), Days: 2, Status: holiday.StatusDeclined, PaymentType: holiday.PaymentPaid},
		{ID: "r4", StartDate: date(2025, time.February, 3), Days: 4, Status: holiday.StatusPending, PaymentType: holiday.PaymentPaid},
		// outside every window, silently discarded
		{ID: "r5", StartDate: date(2030, time.January, 1), Days: 9, Status: holiday.StatusApproved, PaymentType: holiday.PaymentPaid},
	}

	buckets := BuildYearBuckets(windows, requests, allowance, date(2025, time.March, 1))
	require.Len(t, buckets, 2)

	// newest window first
	assert.Equal(t, "w-2025", buckets[0].Window.ID)
	assert.Equal(t, "w-2024", buckets[1].Window.ID)

	b2025 := buckets[0]
	assert.True(t, b2025.PendingPaidDays.Equal(decimal.NewFromInt(4)))
	assert.Len(t, b2025.Pending, 1)
	assert.Empty(t, b2025.Approved)

	b2024 := buckets[1]
	assert.True(t, b2024.TakenPaidDays.Equal(decimal.NewFromInt(5)))
	assert.True(t, b2024.TakenUnpaidDays.Equal(decimal.NewFromInt(3)))
	assert.True(t, b2024.DeclinedDays.Equal(decimal.NewFromInt(2)))
	assert.Len(t, b2024.Approved, 2)
	assert.Len(t, b2024.Declined, 1)

	// unpaid and declined days never reduce the paid allowance
	assert.True(t, b2024.RemainingYearDays.Equal(decimal.NewFromInt(23)))
	// window fully elapsed: available now = allowance - taken paid
	assert.True(t, b2024.AvailableNowDays.Equal(decimal.NewFromInt(23)))
}

func TestBuildYearBucketsAvailableNowClamping(t *testing.T) {
	allowance := decimal.NewFromInt(28)
	windows := []holiday.YearWindow{window2024}

	// early in the window little has accrued, but 10 paid days are already
	// taken; available-now clamps at zero rather than going negative
	requests := []holiday.Request{
		{ID: "r1", StartDate: date(2024, time.January, 8), Days: 10, Status: holiday.StatusApproved, PaymentType: holiday.PaymentPaid},
	}

	buckets := BuildYearBuckets(windows, requests, allowance, date(2024, time.February, 1))
	require.Len(t, buckets, 1)

	b := buckets[0]
	assert.True(t, b.AvailableNowDays.IsZero(), "got %s", b.AvailableNowDays)
	assert.True(t, b.RemainingYearDays.Equal(decimal.NewFromInt(18)))
	assert.True(t, b.AccruedDays.LessThan(decimal.NewFromInt(10)))
}
