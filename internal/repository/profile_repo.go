package repository

import (
	"context"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	CreateTx(tx *gorm.DB, p *model.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	// ListByTenant returns the tenant's profiles with the given role, ordered by name.
	ListByTenant(ctx context.Context, tenantID uuid.UUID, role string, includeInactive bool) ([]model.Profile, error)
	// ListBalances returns every profile of the tenant regardless of status.
	ListBalances(ctx context.Context, tenantID uuid.UUID) ([]model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// TopByPoints returns active employees by points DESC, then name, then id.
	TopByPoints(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.Profile, error)

	// Used inside ledger transactions; callers must pass the tx instance.
	AddPointsTx(tx *gorm.DB, id uuid.UUID, delta int64) error
	// DeductPointsTx decrements only when points >= cost; otherwise ErrInsufficientPoints.
	DeductPointsTx(tx *gorm.DB, id uuid.UUID, cost int64) error

	DB() *gorm.DB
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepo{db: db} }

func (r *profileRepo) CreateTx(tx *gorm.DB, p *model.Profile) error {
	return tx.Create(p).Error
}

func (r *profileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *profileRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, role string, includeInactive bool) ([]model.Profile, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ? AND role = ?", tenantID, role)
	if !includeInactive {
		q = activeOnly(q)
	}
	var profiles []model.Profile
	err := q.Order("name ASC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) ListBalances(ctx context.Context, tenantID uuid.UUID) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("id ASC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) Update(ctx context.Context, p *model.Profile) error {
	// points is owned by the ledger and never written through Update
	return r.db.WithContext(ctx).Model(p).Select("name", "updated_at").Updates(p).Error
}

func (r *profileRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *profileRepo) TopByPoints(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.Profile, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ? AND role = ?", tenantID, model.RoleEmployee)
	var profiles []model.Profile
	err := activeOnly(q).
		Order("points DESC").Order("name ASC").Order("id ASC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) AddPointsTx(tx *gorm.DB, id uuid.UUID, delta int64) error {
	res := tx.Model(&model.Profile{}).Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *profileRepo) DeductPointsTx(tx *gorm.DB, id uuid.UUID, cost int64) error {
	res := tx.Model(&model.Profile{}).Where("id = ? AND points >= ?", id, cost).
		Update("points", gorm.Expr("points - ?", cost))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

func (r *profileRepo) DB() *gorm.DB { return r.db }
