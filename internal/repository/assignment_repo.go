package repository

import (
	"context"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentRepository is the append-only log of points assignments. Records
// are inserted as pending and only ever move to applied or failed.
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.AssignmentRecord) error
	MarkAppliedTx(tx *gorm.DB, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	// ListByEmployee returns applied records, newest first.
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.AssignmentRecord, error)
	// ListByTenant returns one page of applied records, newest first, plus the total count.
	ListByTenant(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.AssignmentRecord, int64, error)
	ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.AssignmentRecord, error)
	SumAppliedByEmployee(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error)
}

type assignmentRepo struct{ db *gorm.DB }

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository { return &assignmentRepo{db: db} }

func (r *assignmentRepo) Create(ctx context.Context, a *model.AssignmentRecord) error {
	a.Status = model.LedgerPending
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assignmentRepo) MarkAppliedTx(tx *gorm.DB, id uuid.UUID) error {
	return transition(tx.Model(&model.AssignmentRecord{}), id, model.LedgerApplied, nil)
}

func (r *assignmentRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return transition(r.db.WithContext(ctx).Model(&model.AssignmentRecord{}), id, model.LedgerFailed, &reason)
}

func (r *assignmentRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.AssignmentRecord, error) {
	var rows []model.AssignmentRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, model.LedgerApplied).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *assignmentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.AssignmentRecord, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AssignmentRecord{}).
		Where("tenant_id = ? AND status = ?", tenantID, model.LedgerApplied)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = normalizePage(page, limit, 100, 500)
	var rows []model.AssignmentRecord
	err := q.Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *assignmentRepo) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.AssignmentRecord, error) {
	var rows []model.AssignmentRecord
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.LedgerPending, before).
		Order("created_at ASC").Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *assignmentRepo) SumAppliedByEmployee(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []employeeTotal
	err := r.db.WithContext(ctx).Model(&model.AssignmentRecord{}).
		Select("employee_id, COALESCE(SUM(amount), 0) AS total").
		Where("tenant_id = ? AND status = ?", tenantID, model.LedgerApplied).
		Group("employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return totalsByEmployee(rows), nil
}

type employeeTotal struct {
	EmployeeID uuid.UUID
	Total      int64
}

func totalsByEmployee(rows []employeeTotal) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		out[row.EmployeeID] = row.Total
	}
	return out
}

// transition moves a pending ledger record to status. The status guard makes
// the transition happen at most once.
func transition(q *gorm.DB, id uuid.UUID, status string, reason *string) error {
	updates := map[string]interface{}{"status": status}
	if reason != nil {
		updates["failure_reason"] = *reason
	}
	res := q.Where("id = ? AND status = ?", id, model.LedgerPending).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}
