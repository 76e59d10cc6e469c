package repository

import (
	"context"

	"fiksit-api/internal/domain/provider"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"

	"github.com/Masterminds/squirrel"
)

type ProviderRepository struct {
	db db.DBTX
}

func NewProviderRepository(dbtx db.DBTX) *ProviderRepository {
	return &ProviderRepository{db: dbtx}
}

func (r *ProviderRepository) UpdateProfile(ctx context.Context, p *provider.Profile) error {
	query, args, err := psql.Update("provider_profiles").
		Set("bio", p.Bio()).
		Set("education", p.Education()).
		Set("certificates", p.Certificates()).
		Set("languages", p.Languages()).
		Set("police_check_verified", p.PoliceCheckVerified()).
		Set("insurance_verified", p.InsuranceVerified()).
		Set("updated_at", p.UpdatedAt()).
		Where(squirrel.Eq{"id": p.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build profile update", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("update provider profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("provider profile not found", nil, infra.KindNotFound)
	}
	return nil
}
