package queries

import (
	"context"
	"time"

	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type ChangeRequestQueries interface {
	// ListPending is the admin moderation queue, oldest first.
	ListPending(ctx context.Context, actor user.Actor, after *Cursor, limit int) ([]*ChangeRequestView, *Cursor, error)
	ListByProvider(ctx context.Context, actor user.Actor, providerID uuid.UUID, after *Cursor, limit int) ([]*ChangeRequestView, *Cursor, error)
}

type ChangeRequestViewRepo interface {
	ListPending(ctx context.Context, afterTime time.Time, afterID uuid.UUID, limit int) ([]*ChangeRequestView, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*ChangeRequestView, error)
}

type changeRequestQueriesImpl struct {
	repo ChangeRequestViewRepo
}

func NewChangeRequestQueries(repo ChangeRequestViewRepo) ChangeRequestQueries {
	return &changeRequestQueriesImpl{repo: repo}
}

func (q *changeRequestQueriesImpl) ListPending(ctx context.Context, actor user.Actor, after *Cursor, limit int) ([]*ChangeRequestView, *Cursor, error) {
	if !actor.IsAdmin() {
		return nil, nil, errs.Mark(errs.New("only admins see the moderation queue"), errs.ErrForbidden)
	}
	return q.list(ctx, after, limit, func(ctx context.Context, t time.Time, id uuid.UUID, n int) ([]*ChangeRequestView, error) {
		return q.repo.ListPending(ctx, t, id, n)
	})
}

func (q *changeRequestQueriesImpl) ListByProvider(ctx context.Context, actor user.Actor, providerID uuid.UUID, after *Cursor, limit int) ([]*ChangeRequestView, *Cursor, error) {
	if !actor.IsAdmin() && actor.ID != providerID {
		return nil, nil, errs.Mark(errs.New("actor may not list another provider's change requests"), errs.ErrForbidden)
	}
	return q.list(ctx, after, limit, func(ctx context.Context, t time.Time, id uuid.UUID, n int) ([]*ChangeRequestView, error) {
		return q.repo.ListByProvider(ctx, providerID, t, id, n)
	})
}

func (q *changeRequestQueriesImpl) list(
	ctx context.Context,
	after *Cursor,
	limit int,
	fetch func(ctx context.Context, afterTime time.Time, afterID uuid.UUID, limit int) ([]*ChangeRequestView, error),
) ([]*ChangeRequestView, *Cursor, error) {
	limit = ValidateLimit(limit)

	afterTime, afterID, err := decodeOptionalCursor(after)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrValidation)
	}

	views, err := fetch(ctx, afterTime, afterID, limit)
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
