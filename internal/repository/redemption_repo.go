package repository

import (
	"context"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RedemptionRepository is the append-only log of reward redemptions.
type RedemptionRepository interface {
	Create(ctx context.Context, rd *model.RedemptionRecord) error
	MarkAppliedTx(tx *gorm.DB, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.RedemptionRecord, error)
	ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.RedemptionRecord, error)
	SumAppliedByEmployee(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error)
}

type redemptionRepo struct{ db *gorm.DB }

func NewRedemptionRepository(db *gorm.DB) RedemptionRepository { return &redemptionRepo{db: db} }

func (r *redemptionRepo) Create(ctx context.Context, rd *model.RedemptionRecord) error {
	rd.Status = model.LedgerPending
	return r.db.WithContext(ctx).Create(rd).Error
}

func (r *redemptionRepo) MarkAppliedTx(tx *gorm.DB, id uuid.UUID) error {
	return transition(tx.Model(&model.RedemptionRecord{}), id, model.LedgerApplied, nil)
}

func (r *redemptionRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return transition(r.db.WithContext(ctx).Model(&model.RedemptionRecord{}), id, model.LedgerFailed, &reason)
}

func (r *redemptionRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.RedemptionRecord, error) {
	var rows []model.RedemptionRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, model.LedgerApplied).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *redemptionRepo) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.RedemptionRecord, error) {
	var rows []model.RedemptionRecord
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.LedgerPending, before).
		Order("created_at ASC").Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *redemptionRepo) SumAppliedByEmployee(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []employeeTotal
	err := r.db.WithContext(ctx).Model(&model.RedemptionRecord{}).
		Select("employee_id, COALESCE(SUM(points_cost), 0) AS total").
		Where("tenant_id = ? AND status = ?", tenantID, model.LedgerApplied).
		Group("employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return totalsByEmployee(rows), nil
}
