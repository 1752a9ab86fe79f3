package service

import (
	"context"
	"strings"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/google/uuid"
)

type RewardService interface {
	Create(ctx context.Context, sess session.Session, req dto.CreateRewardRequest) (*dto.RewardResponse, error)
	// List returns the tenant's catalog. Only admins may include inactive rewards.
	List(ctx context.Context, sess session.Session, tenantID *uuid.UUID, includeInactive bool) ([]dto.RewardResponse, error)
	Update(ctx context.Context, sess session.Session, id uuid.UUID, req dto.UpdateRewardRequest) (*dto.RewardResponse, error)
	Deactivate(ctx context.Context, sess session.Session, id uuid.UUID) error
}

type rewardService struct {
	repo repository.RewardRepository
}

func NewRewardService(repo repository.RewardRepository) RewardService {
	return &rewardService{repo: repo}
}

func (s *rewardService) Create(ctx context.Context, sess session.Session, req dto.CreateRewardRequest) (*dto.RewardResponse, error) {
	tenantID, ok := sess.Tenant()
	if sess.Role != model.RoleAdmin || !ok {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if req.PointsRequired <= 0 {
		return nil, invalid("points_required", "must be greater than zero")
	}
	rw := &model.Reward{TenantID: tenantID, Name: name, PointsRequired: req.PointsRequired, IsActive: model.ActiveFlag(true)}
	if err := s.repo.Create(ctx, rw); err != nil {
		return nil, &WriteError{Op: "create reward", Err: err}
	}
	resp := rewardToResponse(rw)
	return &resp, nil
}

func (s *rewardService) List(ctx context.Context, sess session.Session, tenantID *uuid.UUID, includeInactive bool) ([]dto.RewardResponse, error) {
	tid, err := resolveTenant(sess, tenantID)
	if err != nil {
		return nil, err
	}
	if sess.Role == model.RoleEmployee {
		includeInactive = false
	}
	rewards, err := s.repo.ListByTenant(ctx, tid, includeInactive)
	if err != nil {
		return nil, &ReadError{Op: "list rewards", Err: err}
	}
	resp := make([]dto.RewardResponse, len(rewards))
	for i := range rewards {
		resp[i] = rewardToResponse(&rewards[i])
	}
	return resp, nil
}

func (s *rewardService) ownReward(ctx context.Context, sess session.Session, id uuid.UUID) (*model.Reward, error) {
	tenantID, ok := sess.Tenant()
	if sess.Role != model.RoleAdmin || !ok {
		return nil, ErrForbidden
	}
	rw, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readErr("load reward", err)
	}
	if rw.TenantID != tenantID {
		return nil, ErrNotFound
	}
	return rw, nil
}

func (s *rewardService) Update(ctx context.Context, sess session.Session, id uuid.UUID, req dto.UpdateRewardRequest) (*dto.RewardResponse, error) {
	rw, err := s.ownReward(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		rw.Name = name
	}
	if req.PointsRequired != nil {
		if *req.PointsRequired <= 0 {
			return nil, invalid("points_required", "must be greater than zero")
		}
		rw.PointsRequired = *req.PointsRequired
	}
	if err := s.repo.Update(ctx, rw); err != nil {
		return nil, &WriteError{Op: "update reward", Err: err}
	}
	resp := rewardToResponse(rw)
	return &resp, nil
}

func (s *rewardService) Deactivate(ctx context.Context, sess session.Session, id uuid.UUID) error {
	if _, err := s.ownReward(ctx, sess, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return writeErr("deactivate reward", err)
	}
	return nil
}
