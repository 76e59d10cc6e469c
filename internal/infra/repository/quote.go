package repository

import (
	"context"
	"encoding/json"
	"time"

	"fiksit-api/internal/domain/quote"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type QuoteRepository struct {
	db db.DBTX
}

func NewQuoteRepository(dbtx db.DBTX) *QuoteRepository {
	return &QuoteRepository{db: dbtx}
}

type answerRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func encodeAnswers(answers []quote.Answer) ([]byte, error) {
	records := make([]answerRecord, 0, len(answers))
	for _, a := range answers {
		records = append(records, answerRecord{Question: a.Question, Answer: a.Answer})
	}
	return json.Marshal(records)
}

func decodeAnswers(raw []byte) ([]quote.Answer, error) {
	var records []answerRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	answers := make([]quote.Answer, 0, len(records))
	for _, rec := range records {
		answers = append(answers, quote.Answer{Question: rec.Question, Answer: rec.Answer})
	}
	return answers, nil
}

func (r *QuoteRepository) CreateRequest(ctx context.Context, req *quote.Request) error {
	answers, err := encodeAnswers(req.Answers())
	if err != nil {
		return infra.WrapRepoErr("encode quote answers", err, infra.KindDBFailure)
	}

	query, args, err := psql.Insert("quote_requests").
		Columns(
			"id", "customer_id", "category_id", "address_id",
			"title", "description", "answers", "photo_urls",
			"status", "expires_at", "created_at", "updated_at",
		).
		Values(
			req.ID(), req.CustomerID(), req.CategoryID(), req.AddressID(),
			req.Title(), req.Description(), answers, req.PhotoURLs(),
			req.Status().String(), req.ExpiresAt(), req.CreatedAt(), req.UpdatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build quote request insert", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert quote request", err)
	}
	return nil
}

func (r *QuoteRepository) CreateResponse(ctx context.Context, resp *quote.Response) error {
	query, args, err := psql.Insert("quote_responses").
		Columns(
			"id", "request_id", "provider_id",
			"price", "estimated_duration_minutes", "materials_included", "message",
			"status", "valid_until", "created_at", "updated_at",
		).
		Values(
			resp.ID(), resp.RequestID(), resp.ProviderID(),
			resp.Price().Kroner(), resp.EstimatedDuration(), resp.MaterialsIncluded(), resp.Message(),
			resp.Status().String(), resp.ValidUntil(), resp.CreatedAt(), resp.UpdatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build quote response insert", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert quote response", err)
	}
	return nil
}

func (r *QuoteRepository) MarkRequestQuoted(ctx context.Context, requestID uuid.UUID, now time.Time) error {
	query, args, err := psql.Update("quote_requests").
		Set("status", quote.RequestQuoted.String()).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": requestID, "status": quote.RequestOpen.String()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build mark quoted update", err, infra.KindDBFailure)
	}

	// Zero rows is fine: a sibling bid already flipped the status.
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("mark request quoted", err)
	}
	return nil
}

func (r *QuoteRepository) AcceptResponse(ctx context.Context, responseID uuid.UUID, now time.Time) (bool, error) {
	query, args, err := psql.Update("quote_responses").
		Set("status", quote.ResponseAccepted.String()).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": responseID, "status": quote.ResponsePending.String()}).
		Where(squirrel.Gt{"valid_until": now}).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("build accept response update", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, infra.WrapRepoErr("accept quote response", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *QuoteRepository) RejectPendingSiblings(ctx context.Context, requestID, acceptedID uuid.UUID, now time.Time) error {
	query, args, err := psql.Update("quote_responses").
		Set("status", quote.ResponseRejected.String()).
		Set("updated_at", now).
		Where(squirrel.Eq{"request_id": requestID, "status": quote.ResponsePending.String()}).
		Where(squirrel.NotEq{"id": acceptedID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build reject siblings update", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("reject pending siblings", err)
	}
	return nil
}

func (r *QuoteRepository) AcceptRequest(ctx context.Context, requestID uuid.UUID, now time.Time) (bool, error) {
	query, args, err := psql.Update("quote_requests").
		Set("status", quote.RequestAccepted.String()).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": requestID, "status": []string{quote.RequestOpen.String(), quote.RequestQuoted.String()}}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("build accept request update", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, infra.WrapRepoErr("accept quote request", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *QuoteRepository) CancelRequest(ctx context.Context, requestID uuid.UUID, now time.Time) (bool, error) {
	query, args, err := psql.Update("quote_requests").
		Set("status", quote.RequestCancelled.String()).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": requestID, "status": []string{quote.RequestOpen.String(), quote.RequestQuoted.String()}}).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("build cancel request update", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, infra.WrapRepoErr("cancel quote request", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *QuoteRepository) ExpirePendingResponses(ctx context.Context, requestID uuid.UUID, now time.Time) error {
	query, args, err := psql.Update("quote_responses").
		Set("status", quote.ResponseExpired.String()).
		Set("updated_at", now).
		Where(squirrel.Eq{"request_id": requestID, "status": quote.ResponsePending.String()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build expire responses update", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("expire pending responses", err)
	}
	return nil
}
