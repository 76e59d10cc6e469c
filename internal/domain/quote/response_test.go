//go:build unit

package quote_test

import (
	"testing"
	"time"

	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/quote"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResponse(t *testing.T, now time.Time, validForDays int) *quote.Response {
	t.Helper()
	r, err := quote.NewResponse(
		uuid.New(), uuid.New(),
		booking.MustMoney(2500), 120, true, "includes materials",
		validForDays, now,
	)
	require.NoError(t, err)
	return r
}

func TestNewResponse(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("defaults to five day validity", func(t *testing.T) {
		r := newTestResponse(t, now, 0)

		assert.Equal(t, quote.ResponsePending, r.Status())
		assert.Equal(t, now.AddDate(0, 0, 5), r.ValidUntil())
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := quote.NewResponse(
			uuid.New(), uuid.New(),
			booking.MustMoney(2500), 0, false, "", 0, now,
		)
		assert.ErrorIs(t, err, quote.ErrInvalidBidDuration)
	})

	t.Run("rejects negative validity", func(t *testing.T) {
		_, err := quote.NewResponse(
			uuid.New(), uuid.New(),
			booking.MustMoney(2500), 60, false, "", -2, now,
		)
		assert.ErrorIs(t, err, quote.ErrInvalidValidity)
	})
}

func TestResponseLifecycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pending past validity reads expired", func(t *testing.T) {
		r := newTestResponse(t, now, 5)

		assert.Equal(t, quote.ResponsePending, r.EffectiveStatus(now.AddDate(0, 0, 4)))
		assert.Equal(t, quote.ResponseExpired, r.EffectiveStatus(now.AddDate(0, 0, 6)))
	})

	t.Run("accept while valid", func(t *testing.T) {
		r := newTestResponse(t, now, 5)

		require.NoError(t, r.Accept(now.AddDate(0, 0, 2)))
		assert.Equal(t, quote.ResponseAccepted, r.Status())
	})

	t.Run("accept after validity lapses fails", func(t *testing.T) {
		r := newTestResponse(t, now, 5)
		assert.ErrorIs(t, r.Accept(now.AddDate(0, 0, 6)), quote.ErrResponseLapsed)
	})

	t.Run("accept twice fails", func(t *testing.T) {
		r := newTestResponse(t, now, 5)
		require.NoError(t, r.Accept(now))

		assert.ErrorIs(t, r.Accept(now), quote.ErrResponseNotPending)
	})

	t.Run("reject requires pending", func(t *testing.T) {
		r := newTestResponse(t, now, 5)
		require.NoError(t, r.Reject(now))

		assert.Equal(t, quote.ResponseRejected, r.Status())
		assert.ErrorIs(t, r.Reject(now), quote.ErrResponseNotPending)
	})
}
