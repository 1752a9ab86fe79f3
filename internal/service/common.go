package service

import (
	"errors"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/google/uuid"
)

// resolveTenant picks the tenant an operation applies to. Managers have no
// tenant of their own and must name one; everybody else is pinned to theirs.
func resolveTenant(sess session.Session, requested *uuid.UUID) (uuid.UUID, error) {
	if sess.Role == model.RoleManager {
		if requested == nil || *requested == uuid.Nil {
			return uuid.Nil, invalid("tenant_id", "required for managers")
		}
		return *requested, nil
	}
	own, ok := sess.Tenant()
	if !ok {
		return uuid.Nil, invalid("tenant_id", "session has no tenant")
	}
	if requested != nil && *requested != uuid.Nil && *requested != own {
		return uuid.Nil, ErrForbidden
	}
	return own, nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid(field, "must be a valid UUID")
	}
	return id, nil
}

// readErr maps repository not-found to ErrNotFound and wraps everything else.
func readErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return &ReadError{Op: op, Err: err}
}

// writeErr maps repository not-found to ErrNotFound and wraps everything else.
func writeErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return &WriteError{Op: op, Err: err}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// ── Mappers ──────────────────────────────────────────────────────────────────

func profileToResponse(p *model.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:       p.ID.String(),
		Role:     p.Role,
		TenantID: uuidString(p.TenantID),
		Name:     p.Name,
		Email:    p.Email,
		Points:   p.Points,
		Active:   p.Active(),
	}
}

func tenantToResponse(t *model.Tenant) dto.TenantResponse {
	return dto.TenantResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Status:    t.Status,
		CreatedAt: formatTime(t.CreatedAt),
	}
}

func rewardToResponse(r *model.Reward) dto.RewardResponse {
	return dto.RewardResponse{
		ID:             r.ID.String(),
		TenantID:       r.TenantID.String(),
		Name:           r.Name,
		PointsRequired: r.PointsRequired,
		Active:         r.Active(),
	}
}

func justificationToResponse(j *model.Justification) dto.JustificationResponse {
	return dto.JustificationResponse{
		ID:       j.ID.String(),
		TenantID: uuidString(j.TenantID),
		Text:     j.Text,
		Global:   j.TenantID == nil,
	}
}

func entryToResponse(e model.Entry) dto.HistoryEntry {
	return dto.HistoryEntry{
		Kind:        string(e.Kind),
		ID:          e.ID().String(),
		Date:        formatTime(e.Date()),
		Amount:      e.Amount(),
		Description: e.Description(),
	}
}

func assignmentToItem(a *model.AssignmentRecord) dto.AssignmentItem {
	return dto.AssignmentItem{
		ID:                a.ID.String(),
		AdminEmail:        a.AdminEmail,
		EmployeeID:        a.EmployeeID.String(),
		EmployeeEmail:     a.EmployeeEmail,
		EmployeeName:      a.EmployeeName,
		Amount:            a.Amount,
		JustificationText: a.JustificationText,
		CreatedAt:         formatTime(a.CreatedAt),
	}
}
