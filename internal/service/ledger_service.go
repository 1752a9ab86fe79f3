package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LedgerService is the only writer of profile balances.
type LedgerService interface {
	AssignPoints(ctx context.Context, sess session.Session, req dto.AssignPointsRequest) (*dto.AssignPointsResponse, error)
	RedeemReward(ctx context.Context, sess session.Session, req dto.RedeemRequest) (*dto.RedeemResponse, error)
}

type ledgerService struct {
	profiles       repository.ProfileRepository
	assignments    repository.AssignmentRepository
	redemptions    repository.RedemptionRepository
	rewards        repository.RewardRepository
	justifications repository.JustificationRepository
	effects        *SideEffects
}

func NewLedgerService(
	profiles repository.ProfileRepository,
	assignments repository.AssignmentRepository,
	redemptions repository.RedemptionRepository,
	rewards repository.RewardRepository,
	justifications repository.JustificationRepository,
	effects *SideEffects,
) LedgerService {
	return &ledgerService{
		profiles:       profiles,
		assignments:    assignments,
		redemptions:    redemptions,
		rewards:        rewards,
		justifications: justifications,
		effects:        effects,
	}
}

// ── AssignPoints ──────────────────────────────────────────────────────────────
//   1. Validate everything before writing (amount, employee, justification)
//   2. Append the assignment record as pending
//   3. BEGIN TX: points += amount, record pending → applied. COMMIT
//   4. On TX failure mark the record failed (the reconciler catches misses)
//   5. Post-commit: invalidate ranking, publish event, enqueue e-mail

func (s *ledgerService) AssignPoints(ctx context.Context, sess session.Session, req dto.AssignPointsRequest) (*dto.AssignPointsResponse, error) {
	if sess.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	tenantID, ok := sess.Tenant()
	if !ok {
		return nil, invalid("tenant_id", "session has no tenant")
	}
	if req.Amount == 0 {
		return nil, invalid("amount", "must not be zero")
	}
	employeeID, err := parseID("employee_id", req.EmployeeID)
	if err != nil {
		return nil, err
	}
	justificationID, err := parseID("justification_id", req.JustificationID)
	if err != nil {
		return nil, err
	}

	employee, err := s.profiles.FindByID(ctx, employeeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("employee_id", "employee not found")
	}
	if err != nil {
		return nil, &ReadError{Op: "assign points: load employee", Err: err}
	}
	if employee.Role != model.RoleEmployee || !employee.BelongsTo(tenantID) {
		return nil, invalid("employee_id", "not an employee of this company")
	}
	if !employee.Active() {
		return nil, invalid("employee_id", "employee is inactive")
	}

	justification, err := s.justifications.FindByID(ctx, justificationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("justification_id", "justification not found")
	}
	if err != nil {
		return nil, &ReadError{Op: "assign points: load justification", Err: err}
	}
	if !justification.Active() || !justification.VisibleTo(tenantID) {
		return nil, invalid("justification_id", "justification not available")
	}

	rec := &model.AssignmentRecord{
		AdminID:           sess.UserID,
		AdminEmail:        sess.Email,
		EmployeeID:        employee.ID,
		EmployeeEmail:     employee.Email,
		EmployeeName:      employee.Name,
		TenantID:          tenantID,
		Amount:            req.Amount,
		JustificationID:   justification.ID,
		JustificationText: justification.Text,
	}
	if err := s.assignments.Create(ctx, rec); err != nil {
		return nil, &WriteError{Op: "assign points: append record", Err: err}
	}

	err = runTx(ctx, s.profiles.DB(), func(tx *gorm.DB) error {
		if err := s.profiles.AddPointsTx(tx, employee.ID, req.Amount); err != nil {
			return err
		}
		return s.assignments.MarkAppliedTx(tx, rec.ID)
	})
	if err != nil {
		s.markAssignmentFailed(ctx, rec, err)
		return nil, &WriteError{Op: "assign points: apply balance", Err: err}
	}

	// nominal: read balance + delta, not re-read after commit
	newBalance := employee.Points + req.Amount

	s.effects.afterWrite(ctx, tenantID, LedgerEvent{
		Type:       EventPointsAssigned,
		RecordID:   rec.ID.String(),
		TenantID:   tenantID.String(),
		EmployeeID: employee.ID.String(),
		ActorID:    sess.UserID.String(),
		Amount:     req.Amount,
		NewBalance: newBalance,
		At:         formatTime(rec.CreatedAt),
	}, &worker.EmailJobPayload{
		ToEmail: employee.Email,
		Subject: assignmentSubject(req.Amount),
		Body: fmt.Sprintf("Hi %s,\n\n%s\nYour balance is now %d points.\n",
			employee.Name, model.AssignmentEntry(rec).Description(), newBalance),
	})

	log.Info().
		Str("assignment_id", rec.ID.String()).
		Str("employee_id", employee.ID.String()).
		Int64("amount", req.Amount).
		Msg("points assigned")

	return &dto.AssignPointsResponse{
		AssignmentID: rec.ID.String(),
		EmployeeID:   employee.ID.String(),
		Amount:       req.Amount,
		NewBalance:   newBalance,
	}, nil
}

func assignmentSubject(amount int64) string {
	if amount < 0 {
		return fmt.Sprintf("%d points were deducted from your balance", -amount)
	}
	return fmt.Sprintf("You received %d points", amount)
}

func (s *ledgerService) markAssignmentFailed(ctx context.Context, rec *model.AssignmentRecord, cause error) {
	if err := s.assignments.MarkFailed(ctx, rec.ID, cause.Error()); err != nil {
		log.Error().Err(err).Str("assignment_id", rec.ID.String()).Msg("could not mark assignment failed; reconciler will void it")
	}
}

// ── RedeemReward ──────────────────────────────────────────────────────────────
// Same outbox shape as AssignPoints; the decrement is conditional on
// points >= cost so concurrent spends cannot overdraw.

func (s *ledgerService) RedeemReward(ctx context.Context, sess session.Session, req dto.RedeemRequest) (*dto.RedeemResponse, error) {
	if sess.Role != model.RoleEmployee {
		return nil, ErrForbidden
	}
	tenantID, ok := sess.Tenant()
	if !ok {
		return nil, invalid("tenant_id", "session has no tenant")
	}
	rewardID, err := parseID("reward_id", req.RewardID)
	if err != nil {
		return nil, err
	}

	reward, err := s.rewards.FindByID(ctx, rewardID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("reward_id", "reward not found")
	}
	if err != nil {
		return nil, &ReadError{Op: "redeem: load reward", Err: err}
	}
	if reward.TenantID != tenantID {
		return nil, invalid("reward_id", "reward not found")
	}
	if !reward.Active() {
		return nil, invalid("reward_id", "reward is no longer available")
	}

	employee, err := s.profiles.FindByID(ctx, sess.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("employee_id", "profile not found")
	}
	if err != nil {
		return nil, &ReadError{Op: "redeem: load profile", Err: err}
	}
	if !employee.Active() {
		return nil, invalid("employee_id", "employee is inactive")
	}
	if employee.Points < reward.PointsRequired {
		return nil, &InsufficientBalanceError{Balance: employee.Points, Required: reward.PointsRequired}
	}

	rec := &model.RedemptionRecord{
		EmployeeID:    employee.ID,
		EmployeeEmail: employee.Email,
		TenantID:      tenantID,
		RewardID:      reward.ID,
		RewardName:    reward.Name,
		PointsCost:    reward.PointsRequired,
	}
	if err := s.redemptions.Create(ctx, rec); err != nil {
		return nil, &WriteError{Op: "redeem: append record", Err: err}
	}

	err = runTx(ctx, s.profiles.DB(), func(tx *gorm.DB) error {
		if err := s.profiles.DeductPointsTx(tx, employee.ID, reward.PointsRequired); err != nil {
			return err
		}
		return s.redemptions.MarkAppliedTx(tx, rec.ID)
	})
	if errors.Is(err, repository.ErrInsufficientPoints) {
		// balance was spent concurrently between the check and the decrement
		s.markRedemptionFailed(ctx, rec, err)
		return nil, &InsufficientBalanceError{Balance: employee.Points, Required: reward.PointsRequired}
	}
	if err != nil {
		s.markRedemptionFailed(ctx, rec, err)
		return nil, &WriteError{Op: "redeem: apply balance", Err: err}
	}

	newBalance := employee.Points - reward.PointsRequired

	s.effects.afterWrite(ctx, tenantID, LedgerEvent{
		Type:       EventRewardRedeemed,
		RecordID:   rec.ID.String(),
		TenantID:   tenantID.String(),
		EmployeeID: employee.ID.String(),
		ActorID:    sess.UserID.String(),
		Amount:     -reward.PointsRequired,
		NewBalance: newBalance,
		At:         formatTime(rec.CreatedAt),
	}, &worker.EmailJobPayload{
		ToEmail: employee.Email,
		Subject: "Reward redeemed: " + reward.Name,
		Body: fmt.Sprintf("Hi %s,\n\nYou redeemed %q for %d points.\nYour balance is now %d points.\n",
			employee.Name, reward.Name, reward.PointsRequired, newBalance),
	})

	log.Info().
		Str("redemption_id", rec.ID.String()).
		Str("employee_id", employee.ID.String()).
		Str("reward_id", reward.ID.String()).
		Int64("cost", reward.PointsRequired).
		Msg("reward redeemed")

	return &dto.RedeemResponse{
		RedemptionID: rec.ID.String(),
		RewardName:   reward.Name,
		PointsCost:   reward.PointsRequired,
		NewBalance:   newBalance,
	}, nil
}

func (s *ledgerService) markRedemptionFailed(ctx context.Context, rec *model.RedemptionRecord, cause error) {
	if err := s.redemptions.MarkFailed(ctx, rec.ID, cause.Error()); err != nil {
		log.Error().Err(err).Str("redemption_id", rec.ID.String()).Msg("could not mark redemption failed; reconciler will void it")
	}
}
