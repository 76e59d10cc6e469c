package queries

import (
	"context"
	"time"

	"fiksit-api/internal/domain/quote"
	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type QuoteQueries interface {
	RequestByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*QuoteRequestView, error)
	ListRequestsByCustomer(ctx context.Context, actor user.Actor, customerID uuid.UUID, after *Cursor, limit int) ([]*QuoteRequestView, *Cursor, error)
	// ListOpenRequests is the provider-facing feed of requests still taking
	// bids, optionally narrowed to one category.
	ListOpenRequests(ctx context.Context, actor user.Actor, categoryID *uuid.UUID, after *Cursor, limit int) ([]*QuoteRequestView, *Cursor, error)
	ListResponsesForRequest(ctx context.Context, actor user.Actor, requestID uuid.UUID) ([]*QuoteResponseView, error)
}

type QuoteViewRepo interface {
	FindRequestByID(ctx context.Context, id uuid.UUID) (*QuoteRequestView, error)
	ListRequestsByCustomer(ctx context.Context, customerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*QuoteRequestView, error)
	// ListOpenRequests filters on persisted status and deadline in SQL; the
	// effective-status overlay still runs on the result.
	ListOpenRequests(ctx context.Context, now time.Time, categoryID *uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*QuoteRequestView, error)
	ListResponsesForRequest(ctx context.Context, requestID uuid.UUID) ([]*QuoteResponseView, error)
}

type quoteQueriesImpl struct {
	repo  QuoteViewRepo
	clock clock.Clock
}

func NewQuoteQueries(repo QuoteViewRepo, clk clock.Clock) QuoteQueries {
	return &quoteQueriesImpl{repo: repo, clock: clk}
}

func (q *quoteQueriesImpl) RequestByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*QuoteRequestView, error) {
	view, err := q.repo.FindRequestByID(ctx, id)
	if err != nil {
		return nil, readErr(err)
	}
	// Providers may inspect any request; the full view backs the bid screen.
	if actor.IsCustomer() && actor.ID != view.CustomerID {
		return nil, errs.Mark(errs.New("request belongs to another customer"), errs.ErrForbidden)
	}
	q.overlayRequestStatus(view)
	return view, nil
}

func (q *quoteQueriesImpl) ListRequestsByCustomer(ctx context.Context, actor user.Actor, customerID uuid.UUID, after *Cursor, limit int) ([]*QuoteRequestView, *Cursor, error) {
	if !actor.IsAdmin() && actor.ID != customerID {
		return nil, nil, errs.Mark(errs.New("actor may not list another customer's requests"), errs.ErrForbidden)
	}

	limit = ValidateLimit(limit)
	afterTime, afterID, err := decodeOptionalCursor(after)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrValidation)
	}

	views, err := q.repo.ListRequestsByCustomer(ctx, customerID, afterTime, afterID, limit)
	if err != nil {
		return nil, nil, readErr(err)
	}
	for _, v := range views {
		q.overlayRequestStatus(v)
	}
	return views, nextRequestCursor(views, limit), nil
}

func (q *quoteQueriesImpl) ListOpenRequests(ctx context.Context, actor user.Actor, categoryID *uuid.UUID, after *Cursor, limit int) ([]*QuoteRequestView, *Cursor, error) {
	if !actor.IsProvider() && !actor.IsAdmin() {
		return nil, nil, errs.Mark(errs.New("only providers browse open requests"), errs.ErrForbidden)
	}

	limit = ValidateLimit(limit)
	afterTime, afterID, err := decodeOptionalCursor(after)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrValidation)
	}

	views, err := q.repo.ListOpenRequests(ctx, q.clock.Now(), categoryID, afterTime, afterID, limit)
	if err != nil {
		return nil, nil, readErr(err)
	}
	for _, v := range views {
		q.overlayRequestStatus(v)
	}
	return views, nextRequestCursor(views, limit), nil
}

func (q *quoteQueriesImpl) ListResponsesForRequest(ctx context.Context, actor user.Actor, requestID uuid.UUID) ([]*QuoteResponseView, error) {
	req, err := q.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, readErr(err)
	}
	if !actor.IsAdmin() && actor.ID != req.CustomerID {
		return nil, errs.Mark(errs.New("only the requesting customer sees all bids"), errs.ErrForbidden)
	}

	views, err := q.repo.ListResponsesForRequest(ctx, requestID)
	if err != nil {
		return nil, readErr(err)
	}
	now := q.clock.Now()
	for _, v := range views {
		if v.Status == quote.ResponsePending.String() && now.After(v.ValidUntil) {
			v.Status = quote.ResponseExpired.String()
		}
	}
	return views, nil
}

// overlayRequestStatus applies lazy expiry at read time, matching the rule the
// domain entity uses: the persisted enum is never trusted alone.
func (q *quoteQueriesImpl) overlayRequestStatus(v *QuoteRequestView) {
	now := q.clock.Now()
	open := v.Status == quote.RequestOpen.String() || v.Status == quote.RequestQuoted.String()
	if open && now.After(v.ExpiresAt) {
		v.Status = quote.RequestExpired.String()
	}
}

func nextRequestCursor(views []*QuoteRequestView, limit int) *Cursor {
	if len(views) != limit {
		return nil
	}
	last := views[len(views)-1]
	return &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
}
