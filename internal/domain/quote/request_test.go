//go:build unit

package quote_test

import (
	"testing"
	"time"

	"fiksit-api/internal/domain/quote"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T, now time.Time, expiresInDays int) *quote.Request {
	t.Helper()
	r, err := quote.NewRequest(
		uuid.New(), uuid.New(), uuid.New(),
		"paint the hallway", "two coats, white",
		nil, nil, expiresInDays, now,
	)
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("defaults to seven day expiry", func(t *testing.T) {
		r := newTestRequest(t, now, 0)

		assert.Equal(t, quote.RequestOpen, r.Status())
		assert.Equal(t, now.AddDate(0, 0, 7), r.ExpiresAt())
	})

	t.Run("honours explicit expiry", func(t *testing.T) {
		r := newTestRequest(t, now, 3)
		assert.Equal(t, now.AddDate(0, 0, 3), r.ExpiresAt())
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := quote.NewRequest(
			uuid.New(), uuid.New(), uuid.New(),
			"   ", "", nil, nil, 0, now,
		)
		assert.ErrorIs(t, err, quote.ErrEmptyTitle)
	})

	t.Run("rejects negative expiry", func(t *testing.T) {
		_, err := quote.NewRequest(
			uuid.New(), uuid.New(), uuid.New(),
			"title", "", nil, nil, -1, now,
		)
		assert.ErrorIs(t, err, quote.ErrInvalidExpiry)
	})
}

func TestRequestEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("open past expiry reads expired", func(t *testing.T) {
		r := newTestRequest(t, now, 7)

		assert.Equal(t, quote.RequestOpen, r.EffectiveStatus(now.AddDate(0, 0, 6)))
		assert.Equal(t, quote.RequestExpired, r.EffectiveStatus(now.AddDate(0, 0, 8)))
	})

	t.Run("quoted past expiry reads expired", func(t *testing.T) {
		r := newTestRequest(t, now, 7)
		r.MarkQuoted(now)

		assert.Equal(t, quote.RequestQuoted, r.EffectiveStatus(now))
		assert.Equal(t, quote.RequestExpired, r.EffectiveStatus(now.AddDate(0, 0, 8)))
	})

	t.Run("terminal statuses are untouched by time", func(t *testing.T) {
		r := newTestRequest(t, now, 7)
		require.NoError(t, r.Accept(now))

		assert.Equal(t, quote.RequestAccepted, r.EffectiveStatus(now.AddDate(0, 0, 30)))
	})
}

func TestRequestTransitions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("mark quoted only fires once", func(t *testing.T) {
		r := newTestRequest(t, now, 7)

		r.MarkQuoted(now)
		assert.Equal(t, quote.RequestQuoted, r.Status())

		later := now.Add(time.Hour)
		r.MarkQuoted(later)
		assert.Equal(t, now, r.UpdatedAt(), "second bid must not touch the request")
	})

	t.Run("accept from open and quoted", func(t *testing.T) {
		open := newTestRequest(t, now, 7)
		require.NoError(t, open.Accept(now))

		quoted := newTestRequest(t, now, 7)
		quoted.MarkQuoted(now)
		require.NoError(t, quoted.Accept(now))
	})

	t.Run("accept after expiry fails", func(t *testing.T) {
		r := newTestRequest(t, now, 7)
		assert.ErrorIs(t, r.Accept(now.AddDate(0, 0, 8)), quote.ErrRequestExpired)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		r := newTestRequest(t, now, 7)
		require.NoError(t, r.Cancel(now))

		assert.Equal(t, quote.RequestCancelled, r.Status())
		assert.ErrorIs(t, r.Cancel(now), quote.ErrRequestTerminal)
		assert.ErrorIs(t, r.Accept(now), quote.ErrRequestTerminal)
	})

	t.Run("bids allowed while open or quoted only", func(t *testing.T) {
		r := newTestRequest(t, now, 7)
		assert.NoError(t, r.AcceptsBids(now))

		r.MarkQuoted(now)
		assert.NoError(t, r.AcceptsBids(now))

		assert.ErrorIs(t, r.AcceptsBids(now.AddDate(0, 0, 8)), quote.ErrRequestExpired)

		require.NoError(t, r.Accept(now))
		assert.ErrorIs(t, r.AcceptsBids(now), quote.ErrRequestTerminal)
	})
}
