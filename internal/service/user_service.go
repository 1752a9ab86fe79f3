package service

import (
	"context"
	"errors"
	"strings"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// UserService provisions identities and manages employee profiles.
type UserService interface {
	// CreateManager bootstraps a Manager account (used by cmd/seeduser).
	CreateManager(ctx context.Context, req dto.CreateUserRequest) (*dto.ProfileResponse, error)
	CreateAdmin(ctx context.Context, sess session.Session, tenantID uuid.UUID, req dto.CreateUserRequest) (*dto.ProfileResponse, error)
	CreateEmployee(ctx context.Context, sess session.Session, req dto.CreateUserRequest) (*dto.ProfileResponse, error)
	ListEmployees(ctx context.Context, sess session.Session, includeInactive bool) ([]dto.ProfileResponse, error)
	UpdateEmployee(ctx context.Context, sess session.Session, id uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	DeactivateEmployee(ctx context.Context, sess session.Session, id uuid.UUID) error
	ReactivateEmployee(ctx context.Context, sess session.Session, id uuid.UUID) error
}

type userService struct {
	credentials repository.CredentialRepository
	profiles    repository.ProfileRepository
	tenants     repository.TenantRepository
	ranking     RankingCache
}

// NewUserService: ranking may be nil; when set, cached leaderboards are
// dropped whenever an employee's name or active flag changes.
func NewUserService(
	credentials repository.CredentialRepository,
	profiles repository.ProfileRepository,
	tenants repository.TenantRepository,
	ranking RankingCache,
) UserService {
	return &userService{credentials: credentials, profiles: profiles, tenants: tenants, ranking: ranking}
}

func (s *userService) CreateManager(ctx context.Context, req dto.CreateUserRequest) (*dto.ProfileResponse, error) {
	return s.provision(ctx, model.RoleManager, nil, req)
}

func (s *userService) CreateAdmin(ctx context.Context, sess session.Session, tenantID uuid.UUID, req dto.CreateUserRequest) (*dto.ProfileResponse, error) {
	if sess.Role != model.RoleManager {
		return nil, ErrForbidden
	}
	if _, err := s.tenants.FindByID(ctx, tenantID); err != nil {
		return nil, readErr("create admin: load tenant", err)
	}
	return s.provision(ctx, model.RoleAdmin, &tenantID, req)
}

func (s *userService) CreateEmployee(ctx context.Context, sess session.Session, req dto.CreateUserRequest) (*dto.ProfileResponse, error) {
	if sess.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	tenantID, ok := sess.Tenant()
	if !ok {
		return nil, invalid("tenant_id", "session has no tenant")
	}
	return s.provision(ctx, model.RoleEmployee, &tenantID, req)
}

// provision writes credential and profile in one transaction; they share an id.
func (s *userService) provision(ctx context.Context, role string, tenantID *uuid.UUID, req dto.CreateUserRequest) (*dto.ProfileResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}

	// bcrypt limits input to 72 bytes; the DTO tag counts runes
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, invalid("password", "must be at most 72 bytes")
	}
	if err != nil {
		return nil, &WriteError{Op: "hash password", Err: err}
	}

	userID := uuid.New()
	profile := &model.Profile{
		ID:       userID,
		Role:     role,
		TenantID: tenantID,
		Name:     name,
		Email:    email,
		Points:   0,
		IsActive: model.ActiveFlag(true),
	}
	err = runTx(ctx, s.profiles.DB(), func(tx *gorm.DB) error {
		if err := s.credentials.CreateTx(tx, &model.Credential{UserID: userID, Email: email, PasswordHash: string(hash)}); err != nil {
			return err
		}
		return s.profiles.CreateTx(tx, profile)
	})
	if repository.IsUniqueViolation(err) {
		return nil, invalid("email", "already registered")
	}
	if err != nil {
		return nil, &WriteError{Op: "provision " + strings.ToLower(role), Err: err}
	}

	log.Info().Str("user_id", userID.String()).Str("role", role).Msg("user provisioned")
	resp := profileToResponse(profile)
	return &resp, nil
}

func (s *userService) ListEmployees(ctx context.Context, sess session.Session, includeInactive bool) ([]dto.ProfileResponse, error) {
	tenantID, ok := sess.Tenant()
	if sess.Role != model.RoleAdmin || !ok {
		return nil, ErrForbidden
	}
	profiles, err := s.profiles.ListByTenant(ctx, tenantID, model.RoleEmployee, includeInactive)
	if err != nil {
		return nil, &ReadError{Op: "list employees", Err: err}
	}
	resp := make([]dto.ProfileResponse, len(profiles))
	for i := range profiles {
		resp[i] = profileToResponse(&profiles[i])
	}
	return resp, nil
}

// ownEmployee loads id and checks it is an employee of the admin's tenant.
// Employees of other tenants are reported as not found.
func (s *userService) ownEmployee(ctx context.Context, sess session.Session, id uuid.UUID) (*model.Profile, error) {
	tenantID, ok := sess.Tenant()
	if sess.Role != model.RoleAdmin || !ok {
		return nil, ErrForbidden
	}
	p, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, readErr("load employee", err)
	}
	if p.Role != model.RoleEmployee || !p.BelongsTo(tenantID) {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *userService) UpdateEmployee(ctx context.Context, sess session.Session, id uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := s.ownEmployee(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	p.Name = name
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, &WriteError{Op: "update employee", Err: err}
	}
	s.invalidateRanking(ctx, p)
	resp := profileToResponse(p)
	return &resp, nil
}

func (s *userService) DeactivateEmployee(ctx context.Context, sess session.Session, id uuid.UUID) error {
	return s.setActive(ctx, sess, id, false)
}

func (s *userService) ReactivateEmployee(ctx context.Context, sess session.Session, id uuid.UUID) error {
	return s.setActive(ctx, sess, id, true)
}

func (s *userService) setActive(ctx context.Context, sess session.Session, id uuid.UUID, active bool) error {
	p, err := s.ownEmployee(ctx, sess, id)
	if err != nil {
		return err
	}
	if err := s.profiles.SetActive(ctx, id, active); err != nil {
		return writeErr("set employee active", err)
	}
	s.invalidateRanking(ctx, p)
	return nil
}

func (s *userService) invalidateRanking(ctx context.Context, p *model.Profile) {
	if s.ranking != nil && p.TenantID != nil {
		s.ranking.Invalidate(ctx, *p.TenantID)
	}
}
