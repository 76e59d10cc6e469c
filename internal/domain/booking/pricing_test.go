//go:build unit

package booking_test

import (
	"testing"
	"time"

	"fiksit-api/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItems(t *testing.T, prices ...int64) booking.LineItems {
	t.Helper()
	items := make(booking.LineItems, 0, len(prices))
	for _, p := range prices {
		li, err := booking.NewLineItem("service", booking.MustMoney(p), 60)
		require.NoError(t, err)
		items = append(items, li)
	}
	return items
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name       string
		prices     []int64
		wantTotal  int64
		wantFee    int64
		wantPayout int64
	}{
		{
			name:       "even split",
			prices:     []int64{1000},
			wantTotal:  1000,
			wantFee:    150,
			wantPayout: 850,
		},
		{
			name:       "multiple items",
			prices:     []int64{500, 750, 250},
			wantTotal:  1500,
			wantFee:    225,
			wantPayout: 1275,
		},
		{
			name:       "fee rounds half up",
			prices:     []int64{990},
			wantTotal:  990,
			wantFee:    149, // 148.5 rounds up
			wantPayout: 841,
		},
		{
			name:       "fee rounds down below half",
			prices:     []int64{994},
			wantTotal:  994,
			wantFee:    149, // 149.1 rounds down
			wantPayout: 845,
		},
		{
			name:       "zero price",
			prices:     []int64{0},
			wantTotal:  0,
			wantFee:    0,
			wantPayout: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := booking.ComputeTotals(mustItems(t, tt.prices...))

			assert.Equal(t, tt.wantTotal, totals.TotalPrice.Kroner())
			assert.Equal(t, tt.wantFee, totals.PlatformFee.Kroner())
			assert.Equal(t, tt.wantPayout, totals.ProviderPayout.Kroner())
			assert.Equal(t, totals.TotalPrice,
				totals.PlatformFee.Add(totals.ProviderPayout),
				"fee plus payout must equal the total")
		})
	}
}

func TestCancellationFee(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		scheduledAt time.Time
		total       int64
		want        int64
	}{
		{
			name:        "outside window is free",
			scheduledAt: now.Add(30 * time.Hour),
			total:       1000,
			want:        0,
		},
		{
			name:        "inside window charges half",
			scheduledAt: now.Add(10 * time.Hour),
			total:       1000,
			want:        500,
		},
		{
			name:        "exactly at the boundary is free",
			scheduledAt: now.Add(24 * time.Hour),
			total:       1000,
			want:        0,
		},
		{
			name:        "just inside the boundary charges",
			scheduledAt: now.Add(24*time.Hour - time.Second),
			total:       1000,
			want:        500,
		},
		{
			name:        "odd total rounds half up",
			scheduledAt: now.Add(time.Hour),
			total:       999,
			want:        500, // 499.5 rounds up
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := booking.CancellationFee(tt.scheduledAt, booking.MustMoney(tt.total), now)
			assert.Equal(t, tt.want, fee.Kroner())
		})
	}
}
