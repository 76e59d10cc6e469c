package repository

import (
	"context"

	"fiksit-api/internal/domain/provider"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"

	"github.com/Masterminds/squirrel"
)

type ChangeRequestRepository struct {
	db db.DBTX
}

func NewChangeRequestRepository(dbtx db.DBTX) *ChangeRequestRepository {
	return &ChangeRequestRepository{db: dbtx}
}

func (r *ChangeRequestRepository) Create(ctx context.Context, cr *provider.ChangeRequest) error {
	query, args, err := psql.Insert("change_requests").
		Columns(
			"id", "provider_id", "kind", "value", "message",
			"status", "admin_note", "created_at", "updated_at",
		).
		Values(
			cr.ID(), cr.ProviderID(), cr.Kind().String(), cr.Value(), cr.Message(),
			cr.Status().String(), cr.AdminNote(), cr.CreatedAt(), cr.UpdatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build change request insert", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert change request", err)
	}
	return nil
}

func (r *ChangeRequestRepository) UpdateResolution(ctx context.Context, cr *provider.ChangeRequest) error {
	query, args, err := psql.Update("change_requests").
		Set("status", cr.Status().String()).
		Set("admin_note", cr.AdminNote()).
		Set("resolved_by", cr.ResolvedBy()).
		Set("resolved_at", cr.ResolvedAt()).
		Set("updated_at", cr.UpdatedAt()).
		Where(squirrel.Eq{"id": cr.ID(), "status": provider.ChangePending.String()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build resolution update", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("update change request resolution", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("change request already resolved", nil, infra.KindConflict)
	}
	return nil
}
