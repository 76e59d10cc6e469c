package readstore

import (
	"context"
	"time"

	"fiksit-api/internal/domain/provider"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"
	"fiksit-api/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ChangeRequestReadStore struct {
	db db.DBTX
}

func NewChangeRequestReadStore(dbtx db.DBTX) *ChangeRequestReadStore {
	return &ChangeRequestReadStore{db: dbtx}
}

var changeRequestColumns = []string{
	"id", "provider_id", "kind", "value", "message",
	"status", "admin_note", "resolved_by", "resolved_at",
	"created_at", "updated_at",
}

// ListPending is the moderation queue: oldest first so nothing starves.
func (s *ChangeRequestReadStore) ListPending(ctx context.Context, afterTime time.Time, afterID uuid.UUID, limit int) ([]*queries.ChangeRequestView, error) {
	builder := psql.Select(changeRequestColumns...).
		From("change_requests").
		Where(squirrel.Eq{"status": provider.ChangePending.String()}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit))
	if !afterTime.IsZero() {
		builder = builder.Where(squirrel.Expr("(created_at, id) > (?, ?)", afterTime, afterID))
	}
	return s.list(ctx, builder)
}

func (s *ChangeRequestReadStore) ListByProvider(ctx context.Context, providerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*queries.ChangeRequestView, error) {
	builder := psql.Select(changeRequestColumns...).
		From("change_requests").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if !afterTime.IsZero() {
		builder = builder.Where(squirrel.Expr("(created_at, id) < (?, ?)", afterTime, afterID))
	}
	return s.list(ctx, builder)
}

func (s *ChangeRequestReadStore) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*queries.ChangeRequestView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build change request list select", err, infra.KindDBFailure)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("select change request list", err)
	}
	defer rows.Close()

	views := make([]*queries.ChangeRequestView, 0)
	for rows.Next() {
		var view queries.ChangeRequestView
		if err := rows.Scan(
			&view.ID, &view.ProviderID, &view.Kind, &view.Value, &view.Message,
			&view.Status, &view.AdminNote, &view.ResolvedBy, &view.ResolvedAt,
			&view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("scan change request view", err, infra.KindDBFailure)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate change request list", err, infra.KindDBFailure)
	}
	return views, nil
}
