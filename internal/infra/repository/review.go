package repository

import (
	"context"

	"fiksit-api/internal/domain/review"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"
)

type ReviewRepository struct {
	db db.DBTX
}

func NewReviewRepository(dbtx db.DBTX) *ReviewRepository {
	return &ReviewRepository{db: dbtx}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	query, args, err := psql.Insert("reviews").
		Columns(
			"id", "customer_id", "provider_id", "booking_id",
			"rating", "comment", "created_at", "updated_at",
		).
		Values(
			rev.ID(), rev.CustomerID(), rev.ProviderID(), rev.BookingID(),
			rev.Rating().Value(), rev.Comment().String(), rev.CreatedAt(), rev.UpdatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build review insert", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert review", err)
	}
	return nil
}
