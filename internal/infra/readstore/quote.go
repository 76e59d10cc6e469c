package readstore

import (
	"context"
	"encoding/json"
	"time"

	"fiksit-api/internal/domain/quote"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"
	"fiksit-api/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type QuoteReadStore struct {
	db db.DBTX
}

func NewQuoteReadStore(dbtx db.DBTX) *QuoteReadStore {
	return &QuoteReadStore{db: dbtx}
}

var quoteRequestColumns = []string{
	"id", "customer_id", "category_id", "address_id",
	"title", "description", "answers", "photo_urls",
	"status", "expires_at", "created_at", "updated_at",
}

func (s *QuoteReadStore) FindRequestByID(ctx context.Context, id uuid.UUID) (*queries.QuoteRequestView, error) {
	query, args, err := psql.Select(quoteRequestColumns...).
		From("quote_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build quote request view select", err, infra.KindDBFailure)
	}

	view, err := s.scanRequest(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.WrapRepoErr("select quote request view", err)
	}
	return view, nil
}

func (s *QuoteReadStore) ListRequestsByCustomer(ctx context.Context, customerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*queries.QuoteRequestView, error) {
	builder := psql.Select(quoteRequestColumns...).
		From("quote_requests").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if !afterTime.IsZero() {
		builder = builder.Where(squirrel.Expr("(created_at, id) < (?, ?)", afterTime, afterID))
	}
	return s.listRequests(ctx, builder)
}

func (s *QuoteReadStore) ListOpenRequests(ctx context.Context, now time.Time, categoryID *uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*queries.QuoteRequestView, error) {
	builder := psql.Select(quoteRequestColumns...).
		From("quote_requests").
		Where(squirrel.Eq{"status": []string{quote.RequestOpen.String(), quote.RequestQuoted.String()}}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if categoryID != nil {
		builder = builder.Where(squirrel.Eq{"category_id": *categoryID})
	}
	if !afterTime.IsZero() {
		builder = builder.Where(squirrel.Expr("(created_at, id) < (?, ?)", afterTime, afterID))
	}
	return s.listRequests(ctx, builder)
}

func (s *QuoteReadStore) listRequests(ctx context.Context, builder squirrel.SelectBuilder) ([]*queries.QuoteRequestView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build quote request list select", err, infra.KindDBFailure)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("select quote request list", err)
	}
	defer rows.Close()

	views := make([]*queries.QuoteRequestView, 0)
	for rows.Next() {
		view, err := s.scanRequest(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("scan quote request view", err, infra.KindDBFailure)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate quote request list", err, infra.KindDBFailure)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *QuoteReadStore) scanRequest(row rowScanner) (*queries.QuoteRequestView, error) {
	var (
		view       queries.QuoteRequestView
		rawAnswers []byte
	)
	err := row.Scan(
		&view.ID, &view.CustomerID, &view.CategoryID, &view.AddressID,
		&view.Title, &view.Description, &rawAnswers, &view.PhotoURLs,
		&view.Status, &view.ExpiresAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawAnswers, &view.Answers); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *QuoteReadStore) ListResponsesForRequest(ctx context.Context, requestID uuid.UUID) ([]*queries.QuoteResponseView, error) {
	query, args, err := psql.Select(
		"id", "request_id", "provider_id",
		"price", "estimated_duration_minutes", "materials_included", "message",
		"status", "valid_until", "created_at", "updated_at",
	).
		From("quote_responses").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build quote response list select", err, infra.KindDBFailure)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("select quote response list", err)
	}
	defer rows.Close()

	views := make([]*queries.QuoteResponseView, 0)
	for rows.Next() {
		var view queries.QuoteResponseView
		if err := rows.Scan(
			&view.ID, &view.RequestID, &view.ProviderID,
			&view.PriceKroner, &view.EstimatedDurationMinutes, &view.MaterialsIncluded, &view.Message,
			&view.Status, &view.ValidUntil, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("scan quote response view", err, infra.KindDBFailure)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate quote response list", err, infra.KindDBFailure)
	}
	return views, nil
}
