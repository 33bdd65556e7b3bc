package holiday

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablerota/rota-backend-go/internal/domain/holiday"
)

// dayOf collapses a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysInclusive counts calendar days from a through b, both ends included.
func daysInclusive(a, b time.Time) int64 {
	return int64(dayOf(b).Sub(dayOf(a)).Hours()/24) + 1
}

// AccruedDays returns the pro-rata share of the allowance earned by today
// within the window: allowance * elapsed/total, counting days inclusively
// on both ends. Before the window nothing has accrued; after it the full
// allowance has.
func AccruedDays(allowance decimal.Decimal, window holiday.YearWindow, today time.Time) decimal.Decimal {
	d := dayOf(today)
	start := dayOf(window.StartDate)
	end := dayOf(window.EndDate)

	if d.Before(start) {
		return decimal.Zero
	}
	if d.After(end) {
		return allowance
	}

	total := daysInclusive(start, end)
	elapsed := daysInclusive(start, d)
	accrued := allowance.Mul(decimal.NewFromInt(elapsed)).Div(decimal.NewFromInt(total))
	if accrued.GreaterThan(allowance) {
		return allowance
	}
	return accrued
}

// BuildYearBuckets sorts every request into the fiscal window containing
// its start date and derives the per-window aggregates. Requests falling
// outside every window are dropped. Buckets come back newest window first.
func BuildYearBuckets(
	windows []holiday.YearWindow,
	requests []holiday.Request,
	allowance decimal.Decimal,
	today time.Time,
) []holiday.YearBucket {
	buckets := make([]holiday.YearBucket, 0, len(windows))
	for _, w := range windows {
		buckets = append(buckets, holiday.YearBucket{Window: w, AllowanceDays: allowance})
	}

	for _, req := range requests {
		idx := -1
		for i, w := range windows {
			if w.Contains(req.StartDate) {
				idx = i
				break
			}
		}
		if idx < 0 {
			slog.Debug("holiday request outside every fiscal window, skipping",
				"request_id", req.ID, "start_date", req.StartDate)
			continue
		}

		b := &buckets[idx]
		days := decimal.NewFromInt(int64(req.Days))
		switch req.Status {
		case holiday.StatusApproved:
			if req.PaymentType == holiday.PaymentUnpaid {
				b.TakenUnpaidDays = b.TakenUnpaidDays.Add(days)
			} else {
				b.TakenPaidDays = b.TakenPaidDays.Add(days)
			}
			b.Approved = append(b.Approved, req)
		case holiday.StatusDeclined:
			b.DeclinedDays = b.DeclinedDays.Add(days)
			b.Declined = append(b.Declined, req)
		default:
			if req.PaymentType == holiday.PaymentUnpaid {
				b.PendingUnpaidDays = b.PendingUnpaidDays.Add(days)
			} else {
				b.PendingPaidDays = b.PendingPaidDays.Add(days)
			}
			b.Pending = append(b.Pending, req)
		}
	}

	for i := range buckets {
		b := &buckets[i]
		b.AccruedDays = AccruedDays(allowance, b.Window, today)
		b.RemainingYearDays = clampToZero(allowance.Sub(b.TakenPaidDays))
		b.AvailableNowDays = clampToZero(decimal.Min(b.AccruedDays, allowance).Sub(b.TakenPaidDays))
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Window.StartDate.After(buckets[j].Window.StartDate)
	})
	return buckets
}

func clampToZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
