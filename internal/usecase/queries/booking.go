package queries

import (
	"context"
	"time"

	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	ListByCustomer(ctx context.Context, actor user.Actor, customerID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
	ListByProvider(ctx context.Context, actor user.Actor, providerID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*BookingListItem, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readErr(err)
	}
	if !actor.IsAdmin() && actor.ID != view.CustomerID && actor.ID != view.ProviderID {
		return nil, errs.Mark(errs.New("actor is not a party to this booking"), errs.ErrForbidden)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByCustomer(ctx context.Context, actor user.Actor, customerID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	if !actor.IsAdmin() && actor.ID != customerID {
		return nil, nil, errs.Mark(errs.New("actor may not list another customer's bookings"), errs.ErrForbidden)
	}
	return q.list(ctx, after, limit, func(ctx context.Context, t time.Time, id uuid.UUID, n int) ([]*BookingListItem, error) {
		return q.repo.ListByCustomer(ctx, customerID, t, id, n)
	})
}

func (q *bookingQueriesImpl) ListByProvider(ctx context.Context, actor user.Actor, providerID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	if !actor.IsAdmin() && actor.ID != providerID {
		return nil, nil, errs.Mark(errs.New("actor may not list another provider's bookings"), errs.ErrForbidden)
	}
	return q.list(ctx, after, limit, func(ctx context.Context, t time.Time, id uuid.UUID, n int) ([]*BookingListItem, error) {
		return q.repo.ListByProvider(ctx, providerID, t, id, n)
	})
}

func (q *bookingQueriesImpl) list(
	ctx context.Context,
	after *Cursor,
	limit int,
	fetch func(ctx context.Context, afterTime time.Time, afterID uuid.UUID, limit int) ([]*BookingListItem, error),
) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	afterTime, afterID, err := decodeOptionalCursor(after)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrValidation)
	}

	items, err := fetch(ctx, afterTime, afterID, limit)
	if err != nil {
		return nil, nil, readErr(err)
	}

	var next *Cursor
	if len(items) == limit {
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return items, next, nil
}

func decodeOptionalCursor(after *Cursor) (time.Time, uuid.UUID, error) {
	if after == nil || after.After == "" {
		return time.Time{}, uuid.Nil, nil
	}
	return DecodeAfterCursor(after.After)
}

func readErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
