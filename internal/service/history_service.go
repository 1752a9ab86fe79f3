package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/infra"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/google/uuid"
)

type HistoryService interface {
	GetEmployeeHistory(ctx context.Context, sess session.Session, employeeID uuid.UUID) (*dto.EmployeeHistoryResponse, error)
	GetTenantAssignmentHistory(ctx context.Context, sess session.Session, tenantID *uuid.UUID, page, limit int) (*dto.AssignmentListResponse, error)
	// ExportStatementPDF returns the rendered statement and a file name.
	ExportStatementPDF(ctx context.Context, sess session.Session, employeeID uuid.UUID) ([]byte, string, error)
}

type historyService struct {
	profiles    repository.ProfileRepository
	assignments repository.AssignmentRepository
	redemptions repository.RedemptionRepository
}

func NewHistoryService(
	profiles repository.ProfileRepository,
	assignments repository.AssignmentRepository,
	redemptions repository.RedemptionRepository,
) HistoryService {
	return &historyService{profiles: profiles, assignments: assignments, redemptions: redemptions}
}

func (s *historyService) GetEmployeeHistory(ctx context.Context, sess session.Session, employeeID uuid.UUID) (*dto.EmployeeHistoryResponse, error) {
	employee, entries, err := s.employeeFeed(ctx, sess, employeeID)
	if err != nil {
		return nil, err
	}
	resp := &dto.EmployeeHistoryResponse{
		EmployeeID: employee.ID.String(),
		Balance:    employee.Points,
		Entries:    make([]dto.HistoryEntry, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = entryToResponse(e)
	}
	return resp, nil
}

func (s *historyService) ExportStatementPDF(ctx context.Context, sess session.Session, employeeID uuid.UUID) ([]byte, string, error) {
	employee, entries, err := s.employeeFeed(ctx, sess, employeeID)
	if err != nil {
		return nil, "", err
	}
	st := infra.Statement{
		EmployeeName:  employee.Name,
		EmployeeEmail: employee.Email,
		Balance:       employee.Points,
		GeneratedAt:   time.Now(),
		Lines:         make([]infra.StatementLine, len(entries)),
	}
	for i, e := range entries {
		st.Lines[i] = infra.StatementLine{Date: e.Date(), Description: e.Description(), Amount: e.Amount()}
	}
	out, err := infra.GenerateStatementPDF(st)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("statement_%s.pdf", employee.ID), nil
}

func (s *historyService) employeeFeed(ctx context.Context, sess session.Session, employeeID uuid.UUID) (*model.Profile, []model.Entry, error) {
	employee, err := s.profiles.FindByID(ctx, employeeID)
	if err != nil {
		return nil, nil, readErr("history: load employee", err)
	}
	if !canReadHistory(sess, employee) {
		return nil, nil, ErrForbidden
	}

	assignments, err := s.assignments.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, nil, &ReadError{Op: "history: list assignments", Err: err}
	}
	redemptions, err := s.redemptions.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, nil, &ReadError{Op: "history: list redemptions", Err: err}
	}
	return employee, mergeHistory(assignments, redemptions), nil
}

// canReadHistory: employees read their own feed, admins any employee of their
// tenant, managers everybody.
func canReadHistory(sess session.Session, employee *model.Profile) bool {
	switch sess.Role {
	case model.RoleManager:
		return true
	case model.RoleAdmin:
		tenantID, ok := sess.Tenant()
		return ok && employee.BelongsTo(tenantID)
	case model.RoleEmployee:
		return sess.UserID == employee.ID
	}
	return false
}

// mergeHistory combines both logs newest first. Ties on date put redemptions
// before assignments, then higher id first, so the order is total.
func mergeHistory(assignments []model.AssignmentRecord, redemptions []model.RedemptionRecord) []model.Entry {
	entries := make([]model.Entry, 0, len(assignments)+len(redemptions))
	for i := range assignments {
		entries = append(entries, model.AssignmentEntry(&assignments[i]))
	}
	for i := range redemptions {
		entries = append(entries, model.RedemptionEntry(&redemptions[i]))
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date().Equal(b.Date()) {
			return a.Date().After(b.Date())
		}
		if a.Kind != b.Kind {
			return a.Kind == model.EntryRedemption
		}
		ai, bi := a.ID(), b.ID()
		return bytes.Compare(ai[:], bi[:]) > 0
	})
	return entries
}

func (s *historyService) GetTenantAssignmentHistory(ctx context.Context, sess session.Session, tenantID *uuid.UUID, page, limit int) (*dto.AssignmentListResponse, error) {
	if !sess.HasRole(model.RoleAdmin, model.RoleManager) {
		return nil, ErrForbidden
	}
	tid, err := resolveTenant(sess, tenantID)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.assignments.ListByTenant(ctx, tid, page, limit)
	if err != nil {
		return nil, &ReadError{Op: "history: list tenant assignments", Err: err}
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	resp := &dto.AssignmentListResponse{
		Data:  make([]dto.AssignmentItem, len(rows)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	resp.HasMore = int64(page)*int64(limit) < total
	for i := range rows {
		resp.Data[i] = assignmentToItem(&rows[i])
	}
	return resp, nil
}
