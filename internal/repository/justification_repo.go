package repository

import (
	"context"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JustificationRepository interface {
	Create(ctx context.Context, j *model.Justification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Justification, error)
	// ListGlobal returns active justifications with no tenant.
	ListGlobal(ctx context.Context) ([]model.Justification, error)
	// ListByTenant returns active justifications scoped to tenantID only.
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Justification, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type justificationRepo struct{ db *gorm.DB }

func NewJustificationRepository(db *gorm.DB) JustificationRepository {
	return &justificationRepo{db: db}
}

func (r *justificationRepo) Create(ctx context.Context, j *model.Justification) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *justificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Justification, error) {
	var j model.Justification
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *justificationRepo) ListGlobal(ctx context.Context) ([]model.Justification, error) {
	var list []model.Justification
	err := activeOnly(r.db.WithContext(ctx).Where("tenant_id IS NULL")).
		Order("text ASC").Find(&list).Error
	return list, err
}

func (r *justificationRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Justification, error) {
	var list []model.Justification
	err := activeOnly(r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)).
		Order("text ASC").Find(&list).Error
	return list, err
}

func (r *justificationRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.Justification{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
