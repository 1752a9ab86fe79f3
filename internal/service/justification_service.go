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

// JustificationService manages reason codes. Managers own the global ones,
// admins the ones scoped to their tenant.
type JustificationService interface {
	Create(ctx context.Context, sess session.Session, req dto.CreateJustificationRequest) (*dto.JustificationResponse, error)
	// List returns active global justifications followed by the tenant's own.
	List(ctx context.Context, sess session.Session) ([]dto.JustificationResponse, error)
	Deactivate(ctx context.Context, sess session.Session, id uuid.UUID) error
}

type justificationService struct {
	repo repository.JustificationRepository
}

func NewJustificationService(repo repository.JustificationRepository) JustificationService {
	return &justificationService{repo: repo}
}

func (s *justificationService) Create(ctx context.Context, sess session.Session, req dto.CreateJustificationRequest) (*dto.JustificationResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, invalid("text", "must not be empty")
	}
	j := &model.Justification{Text: text, IsActive: model.ActiveFlag(true)}
	switch sess.Role {
	case model.RoleManager:
	case model.RoleAdmin:
		tenantID, ok := sess.Tenant()
		if !ok {
			return nil, invalid("tenant_id", "session has no tenant")
		}
		j.TenantID = &tenantID
	default:
		return nil, ErrForbidden
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return nil, &WriteError{Op: "create justification", Err: err}
	}
	resp := justificationToResponse(j)
	return &resp, nil
}

func (s *justificationService) List(ctx context.Context, sess session.Session) ([]dto.JustificationResponse, error) {
	if !sess.HasRole(model.RoleAdmin, model.RoleManager) {
		return nil, ErrForbidden
	}
	global, err := s.repo.ListGlobal(ctx)
	if err != nil {
		return nil, &ReadError{Op: "list global justifications", Err: err}
	}
	all := global
	if tenantID, ok := sess.Tenant(); ok {
		scoped, err := s.repo.ListByTenant(ctx, tenantID)
		if err != nil {
			return nil, &ReadError{Op: "list tenant justifications", Err: err}
		}
		all = append(all, scoped...)
	}
	resp := make([]dto.JustificationResponse, len(all))
	for i := range all {
		resp[i] = justificationToResponse(&all[i])
	}
	return resp, nil
}

func (s *justificationService) Deactivate(ctx context.Context, sess session.Session, id uuid.UUID) error {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return readErr("load justification", err)
	}
	switch sess.Role {
	case model.RoleManager:
		if j.TenantID != nil {
			return ErrForbidden
		}
	case model.RoleAdmin:
		tenantID, ok := sess.Tenant()
		if !ok || j.TenantID == nil || *j.TenantID != tenantID {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return writeErr("deactivate justification", err)
	}
	return nil
}
