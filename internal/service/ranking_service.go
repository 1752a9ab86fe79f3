package service

import (
	"bytes"
	"context"
	"sort"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/google/uuid"
)

const (
	DefaultRankingLimit = 20
	MaxRankingLimit     = 100
)

type RankingService interface {
	GetTopEmployees(ctx context.Context, sess session.Session, tenantID *uuid.UUID, limit int) (*dto.RankingResponse, error)
}

type rankingService struct {
	profiles repository.ProfileRepository
	cache    RankingCache
}

func NewRankingService(profiles repository.ProfileRepository, cache RankingCache) RankingService {
	return &rankingService{profiles: profiles, cache: cache}
}

func (s *rankingService) GetTopEmployees(ctx context.Context, sess session.Session, tenantID *uuid.UUID, limit int) (*dto.RankingResponse, error) {
	tid, err := resolveTenant(sess, tenantID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	if limit > MaxRankingLimit {
		limit = MaxRankingLimit
	}

	var version int64
	if s.cache != nil {
		cached, v, ok := s.cache.Get(ctx, tid, limit)
		if ok {
			return cached, nil
		}
		version = v
	}

	profiles, err := s.profiles.TopByPoints(ctx, tid, limit)
	if err != nil {
		return nil, &ReadError{Op: "ranking: top employees", Err: err}
	}

	resp := &dto.RankingResponse{TenantID: tid.String(), Limit: limit, Entries: rankProfiles(profiles, limit)}
	if s.cache != nil {
		s.cache.Set(ctx, tid, limit, version, resp)
	}
	return resp, nil
}

// rankProfiles orders by points desc, name asc, id asc and numbers the result
// 1..n. Tied balances get consecutive, distinct ranks. Inactive profiles and
// non-employees are skipped.
func rankProfiles(profiles []model.Profile, limit int) []dto.RankingEntry {
	eligible := make([]model.Profile, 0, len(profiles))
	for i := range profiles {
		if profiles[i].Role == model.RoleEmployee && profiles[i].Active() {
			eligible = append(eligible, profiles[i])
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
	if len(eligible) > limit {
		eligible = eligible[:limit]
	}

	entries := make([]dto.RankingEntry, len(eligible))
	for i, p := range eligible {
		entries[i] = dto.RankingEntry{Rank: i + 1, EmployeeID: p.ID.String(), Name: p.Name, Points: p.Points}
	}
	return entries
}
