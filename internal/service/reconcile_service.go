package service

import (
	"context"
	"errors"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AbandonedReason is stored on pending records voided by the reconciler.
const AbandonedReason = "abandoned"

type ReconcileService interface {
	// VoidStalePending marks pending records older than olderThan as failed.
	VoidStalePending(ctx context.Context, olderThan time.Duration, batch int) (int, error)
	// AuditBalances compares stored balances with the sum of applied records.
	AuditBalances(ctx context.Context, sess session.Session, tenantID *uuid.UUID) (*dto.AuditResponse, error)
}

type reconcileService struct {
	profiles    repository.ProfileRepository
	assignments repository.AssignmentRepository
	redemptions repository.RedemptionRepository
	now         func() time.Time
}

func NewReconcileService(
	profiles repository.ProfileRepository,
	assignments repository.AssignmentRepository,
	redemptions repository.RedemptionRepository,
) ReconcileService {
	return &reconcileService{profiles: profiles, assignments: assignments, redemptions: redemptions, now: time.Now}
}

func (s *reconcileService) VoidStalePending(ctx context.Context, olderThan time.Duration, batch int) (int, error) {
	cutoff := s.now().Add(-olderThan)
	voided := 0

	assignments, err := s.assignments.ListPendingBefore(ctx, cutoff, batch)
	if err != nil {
		return 0, &ReadError{Op: "reconcile: pending assignments", Err: err}
	}
	for i := range assignments {
		if ok, err := countVoid(s.assignments.MarkFailed(ctx, assignments[i].ID, AbandonedReason)); err != nil {
			return voided, &WriteError{Op: "reconcile: void assignment", Err: err}
		} else if ok {
			voided++
		}
	}

	redemptions, err := s.redemptions.ListPendingBefore(ctx, cutoff, batch)
	if err != nil {
		return voided, &ReadError{Op: "reconcile: pending redemptions", Err: err}
	}
	for i := range redemptions {
		if ok, err := countVoid(s.redemptions.MarkFailed(ctx, redemptions[i].ID, AbandonedReason)); err != nil {
			return voided, &WriteError{Op: "reconcile: void redemption", Err: err}
		} else if ok {
			voided++
		}
	}
	return voided, nil
}

// countVoid treats ErrNotPending as "a concurrent transaction applied it first".
func countVoid(err error) (bool, error) {
	if errors.Is(err, repository.ErrNotPending) {
		return false, nil
	}
	return err == nil, err
}

func (s *reconcileService) AuditBalances(ctx context.Context, sess session.Session, tenantID *uuid.UUID) (*dto.AuditResponse, error) {
	if !sess.HasRole(model.RoleAdmin, model.RoleManager) {
		return nil, ErrForbidden
	}
	tid, err := resolveTenant(sess, tenantID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profiles.ListBalances(ctx, tid)
	if err != nil {
		return nil, &ReadError{Op: "audit: list balances", Err: err}
	}
	assigned, err := s.assignments.SumAppliedByEmployee(ctx, tid)
	if err != nil {
		return nil, &ReadError{Op: "audit: sum assignments", Err: err}
	}
	redeemed, err := s.redemptions.SumAppliedByEmployee(ctx, tid)
	if err != nil {
		return nil, &ReadError{Op: "audit: sum redemptions", Err: err}
	}

	resp := &dto.AuditResponse{TenantID: tid.String(), Checked: len(profiles), Drifts: []dto.BalanceDrift{}}
	for i := range profiles {
		p := &profiles[i]
		expected := assigned[p.ID] - redeemed[p.ID]
		if p.Points == expected {
			continue
		}
		resp.Drifts = append(resp.Drifts, dto.BalanceDrift{
			EmployeeID: p.ID.String(),
			Email:      p.Email,
			Stored:     p.Points,
			Expected:   expected,
			Difference: p.Points - expected,
		})
	}
	if len(resp.Drifts) > 0 {
		log.Warn().Str("tenant_id", tid.String()).Int("drifts", len(resp.Drifts)).Msg("balance drift detected")
	}
	return resp, nil
}
