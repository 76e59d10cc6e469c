//go:build unit

package review_test

import (
	"strings"
	"testing"
	"time"

	"fiksit-api/internal/domain/review"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid review", func(t *testing.T) {
		r, err := review.NewReview(uuid.Nil, uuid.New(), uuid.New(), uuid.New(), 5, "  great work  ", now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, 5, r.Rating().Value())
		assert.Equal(t, "great work", r.Comment().String())
	})

	t.Run("rating bounds", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := review.NewReview(uuid.Nil, uuid.New(), uuid.New(), uuid.New(), rating, "ok", now)
			assert.ErrorIs(t, err, review.ErrInvalidRating, "rating %d", rating)
		}
		for rating := review.MinRating; rating <= review.MaxRating; rating++ {
			_, err := review.NewReview(uuid.Nil, uuid.New(), uuid.New(), uuid.New(), rating, "ok", now)
			assert.NoError(t, err, "rating %d", rating)
		}
	})

	t.Run("comment must not be blank", func(t *testing.T) {
		_, err := review.NewReview(uuid.Nil, uuid.New(), uuid.New(), uuid.New(), 4, "   ", now)
		assert.ErrorIs(t, err, review.ErrEmptyComment)
	})

	t.Run("comment length cap", func(t *testing.T) {
		_, err := review.NewReview(uuid.Nil, uuid.New(), uuid.New(), uuid.New(), 4,
			strings.Repeat("a", review.MaxCommentLength+1), now)
		assert.ErrorIs(t, err, review.ErrCommentTooLong)
	})
}
