package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ── In-memory store shared by the stub repositories ──────────────────────────

type memStore struct {
	mu          sync.Mutex
	clock       time.Time
	tenants     map[uuid.UUID]*model.Tenant
	credentials map[string]*model.Credential // by e-mail
	profiles    map[uuid.UUID]*model.Profile
	rewards     map[uuid.UUID]*model.Reward
	justifs     map[uuid.UUID]*model.Justification
	assignments []*model.AssignmentRecord
	redemptions []*model.RedemptionRecord
	writes      int

	// failure injection
	failCreate     error
	failApply      error
	failMarkFailed error
	failRead       error
	stealOnRedeem  bool // simulate a concurrent spend between check and decrement
}

func newMemStore() *memStore {
	return &memStore{
		clock:       time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		tenants:     map[uuid.UUID]*model.Tenant{},
		credentials: map[string]*model.Credential{},
		profiles:    map[uuid.UUID]*model.Profile{},
		rewards:     map[uuid.UUID]*model.Reward{},
		justifs:     map[uuid.UUID]*model.Justification{},
	}
}

// tick returns a strictly increasing timestamp for created_at.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) addTenant(name string) *model.Tenant {
	t := &model.Tenant{ID: uuid.New(), Name: name, Status: model.TenantActive, CreatedAt: m.tick()}
	m.tenants[t.ID] = t
	return t
}

func (m *memStore) addProfile(role string, tenantID *uuid.UUID, name string, points int64) *model.Profile {
	p := &model.Profile{
		ID:       uuid.New(),
		Role:     role,
		TenantID: tenantID,
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@acme.test",
		Points:   points,
	}
	m.profiles[p.ID] = p
	return p
}

func (m *memStore) addReward(tenantID uuid.UUID, name string, cost int64) *model.Reward {
	r := &model.Reward{ID: uuid.New(), TenantID: tenantID, Name: name, PointsRequired: cost}
	m.rewards[r.ID] = r
	return r
}

func (m *memStore) addJustification(tenantID *uuid.UUID, text string) *model.Justification {
	j := &model.Justification{ID: uuid.New(), TenantID: tenantID, Text: text}
	m.justifs[j.ID] = j
	return j
}

func (m *memStore) countStatus(status string) (assignments, redemptions int) {
	for _, a := range m.assignments {
		if a.Status == status {
			assignments++
		}
	}
	for _, r := range m.redemptions {
		if r.Status == status {
			redemptions++
		}
	}
	return
}

// ── ProfileRepository ────────────────────────────────────────────────────────

type stubProfileRepo struct{ m *memStore }

func (r stubProfileRepo) CreateTx(_ *gorm.DB, p *model.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *p
	r.m.profiles[p.ID] = &cp
	r.m.writes++
	return nil
}

func (r stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failRead != nil {
		return nil, r.m.failRead
	}
	p, ok := r.m.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r stubProfileRepo) ListByTenant(_ context.Context, tenantID uuid.UUID, role string, includeInactive bool) ([]model.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Profile
	for _, p := range r.m.profiles {
		if p.BelongsTo(tenantID) && p.Role == role && (includeInactive || p.Active()) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r stubProfileRepo) ListBalances(_ context.Context, tenantID uuid.UUID) ([]model.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Profile
	for _, p := range r.m.profiles {
		if p.BelongsTo(tenantID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r stubProfileRepo) Update(_ context.Context, p *model.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, ok := r.m.profiles[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = p.Name
	r.m.writes++
	return nil
}

func (r stubProfileRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsActive = model.ActiveFlag(active)
	r.m.writes++
	return nil
}

func (r stubProfileRepo) TopByPoints(_ context.Context, tenantID uuid.UUID, limit int) ([]model.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failRead != nil {
		return nil, r.m.failRead
	}
	var out []model.Profile
	for _, p := range r.m.profiles {
		if p.BelongsTo(tenantID) && p.Role == model.RoleEmployee && p.Active() {
			out = append(out, *p)
		}
	}
	// map iteration is random; rankProfiles must impose the order itself
	if len(out) > limit {
		sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })
		out = out[:limit]
	}
	return out, nil
}

func (r stubProfileRepo) AddPointsTx(_ *gorm.DB, id uuid.UUID, delta int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failApply != nil {
		return r.m.failApply
	}
	p, ok := r.m.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Points += delta
	r.m.writes++
	return nil
}

func (r stubProfileRepo) DeductPointsTx(_ *gorm.DB, id uuid.UUID, cost int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failApply != nil {
		return r.m.failApply
	}
	p, ok := r.m.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.m.stealOnRedeem {
		p.Points = 0
	}
	if p.Points < cost {
		return repository.ErrInsufficientPoints
	}
	p.Points -= cost
	r.m.writes++
	return nil
}

func (r stubProfileRepo) DB() *gorm.DB { return nil }

// ── CredentialRepository ─────────────────────────────────────────────────────

type stubCredentialRepo struct{ m *memStore }

func dupKeyErr() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

func (r stubCredentialRepo) CreateTx(_ *gorm.DB, c *model.Credential) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c.Email = strings.ToLower(c.Email)
	if _, exists := r.m.credentials[c.Email]; exists {
		return dupKeyErr()
	}
	cp := *c
	r.m.credentials[c.Email] = &cp
	r.m.writes++
	return nil
}

func (r stubCredentialRepo) FindByEmail(_ context.Context, email string) (*model.Credential, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failRead != nil {
		return nil, r.m.failRead
	}
	c, ok := r.m.credentials[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// ── TenantRepository ─────────────────────────────────────────────────────────

type stubTenantRepo struct{ m *memStore }

func (r stubTenantRepo) Create(_ context.Context, t *model.Tenant) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failCreate != nil {
		return r.m.failCreate
	}
	t.ID = uuid.New()
	t.CreatedAt = r.m.tick()
	cp := *t
	r.m.tenants[t.ID] = &cp
	r.m.writes++
	return nil
}

func (r stubTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tenant, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tenants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r stubTenantRepo) List(_ context.Context) ([]model.Tenant, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Tenant
	for _, t := range r.m.tenants {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r stubTenantRepo) Update(_ context.Context, t *model.Tenant) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *t
	r.m.tenants[t.ID] = &cp
	r.m.writes++
	return nil
}

// ── RewardRepository ─────────────────────────────────────────────────────────

type stubRewardRepo struct{ m *memStore }

func (r stubRewardRepo) Create(_ context.Context, rw *model.Reward) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rw.ID = uuid.New()
	cp := *rw
	r.m.rewards[rw.ID] = &cp
	r.m.writes++
	return nil
}

func (r stubRewardRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reward, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rw, ok := r.m.rewards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rw
	return &cp, nil
}

func (r stubRewardRepo) ListByTenant(_ context.Context, tenantID uuid.UUID, includeInactive bool) ([]model.Reward, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Reward
	for _, rw := range r.m.rewards {
		if rw.TenantID == tenantID && (includeInactive || rw.Active()) {
			out = append(out, *rw)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PointsRequired < out[j].PointsRequired })
	return out, nil
}

func (r stubRewardRepo) Update(_ context.Context, rw *model.Reward) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *rw
	r.m.rewards[rw.ID] = &cp
	r.m.writes++
	return nil
}

func (r stubRewardRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rw, ok := r.m.rewards[id]
	if !ok {
		return repository.ErrNotFound
	}
	rw.IsActive = model.ActiveFlag(active)
	r.m.writes++
	return nil
}

// ── JustificationRepository ──────────────────────────────────────────────────

type stubJustificationRepo struct{ m *memStore }

func (r stubJustificationRepo) Create(_ context.Context, j *model.Justification) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	j.ID = uuid.New()
	cp := *j
	r.m.justifs[j.ID] = &cp
	r.m.writes++
	return nil
}

func (r stubJustificationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Justification, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	j, ok := r.m.justifs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r stubJustificationRepo) list(match func(*model.Justification) bool) []model.Justification {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Justification
	for _, j := range r.m.justifs {
		if j.Active() && match(j) {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Text < out[k].Text })
	return out
}

func (r stubJustificationRepo) ListGlobal(_ context.Context) ([]model.Justification, error) {
	return r.list(func(j *model.Justification) bool { return j.TenantID == nil }), nil
}

func (r stubJustificationRepo) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]model.Justification, error) {
	return r.list(func(j *model.Justification) bool { return j.TenantID != nil && *j.TenantID == tenantID }), nil
}

func (r stubJustificationRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	j, ok := r.m.justifs[id]
	if !ok {
		return repository.ErrNotFound
	}
	j.IsActive = model.ActiveFlag(active)
	r.m.writes++
	return nil
}

// ── AssignmentRepository ─────────────────────────────────────────────────────

type stubAssignmentRepo struct{ m *memStore }

func (r stubAssignmentRepo) Create(_ context.Context, a *model.AssignmentRecord) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failCreate != nil {
		return r.m.failCreate
	}
	a.ID = uuid.New()
	a.Status = model.LedgerPending
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.m.tick()
	}
	cp := *a
	r.m.assignments = append(r.m.assignments, &cp)
	r.m.writes++
	return nil
}

func (r stubAssignmentRepo) find(id uuid.UUID) *model.AssignmentRecord {
	for _, a := range r.m.assignments {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (r stubAssignmentRepo) MarkAppliedTx(_ *gorm.DB, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a := r.find(id)
	if a == nil || a.Status != model.LedgerPending {
		return repository.ErrNotPending
	}
	a.Status = model.LedgerApplied
	return nil
}

func (r stubAssignmentRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failMarkFailed != nil {
		return r.m.failMarkFailed
	}
	a := r.find(id)
	if a == nil || a.Status != model.LedgerPending {
		return repository.ErrNotPending
	}
	a.Status = model.LedgerFailed
	a.FailureReason = &reason
	return nil
}

func (r stubAssignmentRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]model.AssignmentRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failRead != nil {
		return nil, r.m.failRead
	}
	var out []model.AssignmentRecord
	for _, a := range r.m.assignments {
		if a.EmployeeID == employeeID && a.Status == model.LedgerApplied {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r stubAssignmentRepo) ListByTenant(_ context.Context, tenantID uuid.UUID, page, limit int) ([]model.AssignmentRecord, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []model.AssignmentRecord
	for _, a := range r.m.assignments {
		if a.TenantID == tenantID && a.Status == model.LedgerApplied {
			all = append(all, *a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r stubAssignmentRepo) ListPendingBefore(_ context.Context, before time.Time, limit int) ([]model.AssignmentRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.AssignmentRecord
	for _, a := range r.m.assignments {
		if a.Status == model.LedgerPending && a.CreatedAt.Before(before) && len(out) < limit {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r stubAssignmentRepo) SumAppliedByEmployee(_ context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := map[uuid.UUID]int64{}
	for _, a := range r.m.assignments {
		if a.TenantID == tenantID && a.Status == model.LedgerApplied {
			out[a.EmployeeID] += a.Amount
		}
	}
	return out, nil
}

// ── RedemptionRepository ─────────────────────────────────────────────────────

type stubRedemptionRepo struct{ m *memStore }

func (r stubRedemptionRepo) Create(_ context.Context, rd *model.RedemptionRecord) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failCreate != nil {
		return r.m.failCreate
	}
	rd.ID = uuid.New()
	rd.Status = model.LedgerPending
	if rd.CreatedAt.IsZero() {
		rd.CreatedAt = r.m.tick()
	}
	cp := *rd
	r.m.redemptions = append(r.m.redemptions, &cp)
	r.m.writes++
	return nil
}

func (r stubRedemptionRepo) find(id uuid.UUID) *model.RedemptionRecord {
	for _, rd := range r.m.redemptions {
		if rd.ID == id {
			return rd
		}
	}
	return nil
}

func (r stubRedemptionRepo) MarkAppliedTx(_ *gorm.DB, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rd := r.find(id)
	if rd == nil || rd.Status != model.LedgerPending {
		return repository.ErrNotPending
	}
	rd.Status = model.LedgerApplied
	return nil
}

func (r stubRedemptionRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failMarkFailed != nil {
		return r.m.failMarkFailed
	}
	rd := r.find(id)
	if rd == nil || rd.Status != model.LedgerPending {
		return repository.ErrNotPending
	}
	rd.Status = model.LedgerFailed
	rd.FailureReason = &reason
	return nil
}

func (r stubRedemptionRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]model.RedemptionRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.RedemptionRecord
	for _, rd := range r.m.redemptions {
		if rd.EmployeeID == employeeID && rd.Status == model.LedgerApplied {
			out = append(out, *rd)
		}
	}
	return out, nil
}

func (r stubRedemptionRepo) ListPendingBefore(_ context.Context, before time.Time, limit int) ([]model.RedemptionRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.RedemptionRecord
	for _, rd := range r.m.redemptions {
		if rd.Status == model.LedgerPending && rd.CreatedAt.Before(before) && len(out) < limit {
			out = append(out, *rd)
		}
	}
	return out, nil
}

func (r stubRedemptionRepo) SumAppliedByEmployee(_ context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := map[uuid.UUID]int64{}
	for _, rd := range r.m.redemptions {
		if rd.TenantID == tenantID && rd.Status == model.LedgerApplied {
			out[rd.EmployeeID] += rd.PointsCost
		}
	}
	return out, nil
}

// ── Side-effect stubs ────────────────────────────────────────────────────────

type recordingEffects struct {
	mu          sync.Mutex
	events      []LedgerEvent
	emails      []worker.EmailJobPayload
	invalidated []uuid.UUID
	publishErr  error
	cached      map[string]*dto.RankingResponse
	versions    map[uuid.UUID]int64
	cacheHits   int
}

func (e *recordingEffects) Publish(_ context.Context, _ string, payload interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ev, ok := payload.(LedgerEvent); ok {
		e.events = append(e.events, ev)
	}
	return e.publishErr
}

func (e *recordingEffects) EnqueueEmail(_ context.Context, p worker.EmailJobPayload) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.emails = append(e.emails, p)
	return nil
}

func cacheKey(tenantID uuid.UUID, limit int) string {
	return tenantID.String() + "/" + strconv.Itoa(limit)
}

func (e *recordingEffects) Get(_ context.Context, tenantID uuid.UUID, limit int) (*dto.RankingResponse, int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	resp, ok := e.cached[cacheKey(tenantID, limit)]
	if ok {
		e.cacheHits++
	}
	return resp, e.versions[tenantID], ok
}

func (e *recordingEffects) Set(_ context.Context, tenantID uuid.UUID, limit int, version int64, resp *dto.RankingResponse) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.versions[tenantID] != version {
		return
	}
	if e.cached == nil {
		e.cached = map[string]*dto.RankingResponse{}
	}
	e.cached[cacheKey(tenantID, limit)] = resp
}

func (e *recordingEffects) Invalidate(_ context.Context, tenantID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.invalidated = append(e.invalidated, tenantID)
	if e.versions == nil {
		e.versions = map[uuid.UUID]int64{}
	}
	e.versions[tenantID]++
	for k := range e.cached {
		if strings.HasPrefix(k, tenantID.String()) {
			delete(e.cached, k)
		}
	}
}

type memSessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (s *memSessionStore) Revoke(_ context.Context, sid string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revoked == nil {
		s.revoked = map[string]time.Duration{}
	}
	s.revoked[sid] = ttl
	return nil
}

func (s *memSessionStore) IsRevoked(_ context.Context, sid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[sid]
	return ok, nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	m         *memStore
	fx        *recordingEffects
	tenant    *model.Tenant
	admin     *model.Profile
	global    *model.Justification
	ledger    LedgerService
	history   HistoryService
	ranking   RankingService
	reconcile *reconcileService
}

func newFixture() *fixture {
	m := newMemStore()
	fx := &recordingEffects{}
	t := m.addTenant("Acme")
	admin := m.addProfile(model.RoleAdmin, &t.ID, "Alice Admin", 0)
	global := m.addJustification(nil, "Sale")

	profiles := stubProfileRepo{m}
	assignments := stubAssignmentRepo{m}
	redemptions := stubRedemptionRepo{m}

	rs := NewReconcileService(profiles, assignments, redemptions).(*reconcileService)

	return &fixture{
		m:         m,
		fx:        fx,
		tenant:    t,
		admin:     admin,
		global:    global,
		ledger:    NewLedgerService(profiles, assignments, redemptions, stubRewardRepo{m}, stubJustificationRepo{m}, &SideEffects{Events: fx, Emails: fx, Ranking: fx}),
		history:   NewHistoryService(profiles, assignments, redemptions),
		ranking:   NewRankingService(profiles, fx),
		reconcile: rs,
	}
}

func sessionOf(p *model.Profile) session.Session {
	return session.Session{
		UserID:    p.ID,
		SessionID: uuid.NewString(),
		Role:      p.Role,
		TenantID:  p.TenantID,
		Email:     p.Email,
		Name:      p.Name,
	}
}

func managerSession() session.Session {
	return session.Session{UserID: uuid.New(), SessionID: uuid.NewString(), Role: model.RoleManager, Email: "boss@fideliz.test"}
}

func (f *fixture) employee(name string, points int64) *model.Profile {
	return f.m.addProfile(model.RoleEmployee, &f.tenant.ID, name, points)
}

func (f *fixture) balance(id uuid.UUID) int64 {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return f.m.profiles[id].Points
}
