package service

import (
	"context"
	"strings"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"

	"github.com/google/uuid"
)

// TenantService manages companies. Callers are Managers (enforced by the router).
type TenantService interface {
	Create(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantResponse, error)
	List(ctx context.Context) ([]dto.TenantResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateTenantRequest) (*dto.TenantResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type tenantService struct {
	repo repository.TenantRepository
}

func NewTenantService(repo repository.TenantRepository) TenantService {
	return &tenantService{repo: repo}
}

func (s *tenantService) Create(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	t := &model.Tenant{Name: name, Status: model.TenantActive}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, &WriteError{Op: "create tenant", Err: err}
	}
	resp := tenantToResponse(t)
	return &resp, nil
}

func (s *tenantService) List(ctx context.Context) ([]dto.TenantResponse, error) {
	tenants, err := s.repo.List(ctx)
	if err != nil {
		return nil, &ReadError{Op: "list tenants", Err: err}
	}
	resp := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		resp[i] = tenantToResponse(&tenants[i])
	}
	return resp, nil
}

func (s *tenantService) Get(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readErr("get tenant", err)
	}
	resp := tenantToResponse(t)
	return &resp, nil
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readErr("update tenant", err)
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		t.Name = name
	}
	if req.Status != "" {
		switch req.Status {
		case model.TenantActive, model.TenantInactive, model.TenantPendingPayment:
			t.Status = req.Status
		default:
			return nil, invalid("status", "unknown status")
		}
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, &WriteError{Op: "update tenant", Err: err}
	}
	resp := tenantToResponse(t)
	return &resp, nil
}

// Deactivate flips the status; tenants are never deleted.
func (s *tenantService) Deactivate(ctx context.Context, id uuid.UUID) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return readErr("deactivate tenant", err)
	}
	t.Status = model.TenantInactive
	if err := s.repo.Update(ctx, t); err != nil {
		return &WriteError{Op: "deactivate tenant", Err: err}
	}
	return nil
}
