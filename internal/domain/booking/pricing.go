package booking

import "time"

const (
	// Marketplace commission, in basis points of the booking total.
	PlatformFeeBasisPoints int64 = 1500

	// Late-cancellation fee, in basis points of the booking total.
	CancellationFeeBasisPoints int64 = 5000

	// Cancellations closer to the scheduled time than this incur the fee.
	CancellationWindow = 24 * time.Hour
)

type Totals struct {
	TotalPrice     Money
	PlatformFee    Money
	ProviderPayout Money
}

// ComputeTotals derives the money fields for a set of line items.
// Invariant: PlatformFee + ProviderPayout == TotalPrice, since the payout is
// the remainder after the single rounded fee, not a second rounding.
func ComputeTotals(items LineItems) Totals {
	total := items.TotalPrice()
	fee := Money{kroner: roundHalfUpBasisPoints(total.kroner, PlatformFeeBasisPoints)}
	return Totals{
		TotalPrice:     total,
		PlatformFee:    fee,
		ProviderPayout: total.Sub(fee),
	}
}

// CancellationFee returns the fee owed for cancelling a booking scheduled at
// scheduledAt, as of now: 50% of the total within 24 hours, zero otherwise.
func CancellationFee(scheduledAt time.Time, totalPrice Money, now time.Time) Money {
	if !WithinCancellationWindow(scheduledAt, now) {
		return Money{}
	}
	return Money{kroner: roundHalfUpBasisPoints(totalPrice.kroner, CancellationFeeBasisPoints)}
}

func WithinCancellationWindow(scheduledAt, now time.Time) bool {
	return scheduledAt.Sub(now) < CancellationWindow
}

// Round-half-up, applied exactly once per derived amount.
func roundHalfUpBasisPoints(kroner, basisPoints int64) int64 {
	return (kroner*basisPoints + 5000) / 10000
}
