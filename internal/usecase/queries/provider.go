package queries

import (
	"context"
	"time"

	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type ProviderQueries interface {
	ProfileByID(ctx context.Context, id uuid.UUID) (*ProviderProfileView, error)
	ListReviews(ctx context.Context, providerID uuid.UUID, after *Cursor, limit int) ([]*ReviewView, *Cursor, error)
}

type ProviderViewRepo interface {
	// FindProfileByID joins the review aggregate into the public profile view.
	FindProfileByID(ctx context.Context, id uuid.UUID) (*ProviderProfileView, error)
	ListReviewsByProvider(ctx context.Context, providerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*ReviewView, error)
}

type providerQueriesImpl struct {
	repo ProviderViewRepo
}

func NewProviderQueries(repo ProviderViewRepo) ProviderQueries {
	return &providerQueriesImpl{repo: repo}
}

func (q *providerQueriesImpl) ProfileByID(ctx context.Context, id uuid.UUID) (*ProviderProfileView, error) {
	view, err := q.repo.FindProfileByID(ctx, id)
	if err != nil {
		return nil, readErr(err)
	}
	return view, nil
}

func (q *providerQueriesImpl) ListReviews(ctx context.Context, providerID uuid.UUID, after *Cursor, limit int) ([]*ReviewView, *Cursor, error) {
	limit = ValidateLimit(limit)

	afterTime, afterID, err := decodeOptionalCursor(after)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrValidation)
	}

	views, err := q.repo.ListReviewsByProvider(ctx, providerID, afterTime, afterID, limit)
	if err != nil {
		return nil, nil, readErr(err)
	}

	var next *Cursor
	if len(views) == limit {
		last := views[len(views)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return views, next, nil
}
