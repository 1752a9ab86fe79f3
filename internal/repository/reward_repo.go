package repository

import (
	"context"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardRepository interface {
	Create(ctx context.Context, r *model.Reward) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reward, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]model.Reward, error)
	Update(ctx context.Context, r *model.Reward) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type rewardRepo struct{ db *gorm.DB }

func NewRewardRepository(db *gorm.DB) RewardRepository { return &rewardRepo{db: db} }

func (r *rewardRepo) Create(ctx context.Context, rw *model.Reward) error {
	return r.db.WithContext(ctx).Create(rw).Error
}

func (r *rewardRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reward, error) {
	var rw model.Reward
	if err := r.db.WithContext(ctx).First(&rw, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &rw, nil
}

func (r *rewardRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]model.Reward, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if !includeInactive {
		q = activeOnly(q)
	}
	var rewards []model.Reward
	err := q.Order("points_required ASC").Order("name ASC").Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepo) Update(ctx context.Context, rw *model.Reward) error {
	return r.db.WithContext(ctx).Save(rw).Error
}

func (r *rewardRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.Reward{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
