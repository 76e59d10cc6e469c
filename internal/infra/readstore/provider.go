package readstore

import (
	"context"
	"time"

	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"
	"fiksit-api/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ProviderReadStore struct {
	db db.DBTX
}

func NewProviderReadStore(dbtx db.DBTX) *ProviderReadStore {
	return &ProviderReadStore{db: dbtx}
}

func (s *ProviderReadStore) FindProfileByID(ctx context.Context, id uuid.UUID) (*queries.ProviderProfileView, error) {
	query, args, err := psql.Select(
		"p.id", "p.display_name", "p.bio", "p.education",
		"p.certificates", "p.languages",
		"p.police_check_verified", "p.insurance_verified",
		"COALESCE(AVG(r.rating), 0)", "COUNT(r.id)",
		"p.created_at",
	).
		From("provider_profiles p").
		LeftJoin("reviews r ON r.provider_id = p.id").
		Where(squirrel.Eq{"p.id": id}).
		GroupBy("p.id").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build profile view select", err, infra.KindDBFailure)
	}

	var view queries.ProviderProfileView
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&view.ID, &view.DisplayName, &view.Bio, &view.Education,
		&view.Certificates, &view.Languages,
		&view.PoliceCheckVerified, &view.InsuranceVerified,
		&view.AverageRating, &view.ReviewCount,
		&view.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("select profile view", err)
	}
	return &view, nil
}

func (s *ProviderReadStore) ListReviewsByProvider(ctx context.Context, providerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*queries.ReviewView, error) {
	builder := psql.Select(
		"id", "customer_id", "provider_id", "booking_id", "rating", "comment", "created_at",
	).
		From("reviews").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if !afterTime.IsZero() {
		builder = builder.Where(squirrel.Expr("(created_at, id) < (?, ?)", afterTime, afterID))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build review list select", err, infra.KindDBFailure)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("select review list", err)
	}
	defer rows.Close()

	views := make([]*queries.ReviewView, 0)
	for rows.Next() {
		var view queries.ReviewView
		if err := rows.Scan(
			&view.ID, &view.CustomerID, &view.ProviderID, &view.BookingID,
			&view.Rating, &view.Comment, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("scan review view", err, infra.KindDBFailure)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate review list", err, infra.KindDBFailure)
	}
	return views, nil
}
