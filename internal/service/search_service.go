package service

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"sort"
	"strings"
)

// SearchQuery filters stored sessions. Zero fields match everything.
// MinPerformance only filters competitions.
type SearchQuery struct {
	Text           string
	Kind           domain.Kind
	MinPerformance float64
}

type SearchService interface {
	Search(ctx context.Context, q SearchQuery) []domain.Session
	TopCompetitions(ctx context.Context, threshold float64) []domain.Session
}

type searchService struct {
	store repository.SessionStore
}

func NewSearchService(store repository.SessionStore) SearchService {
	return &searchService{store: store}
}

// Search matches Text case-insensitively against the joined sections and
// returns the newest sessions first.
func (s *searchService) Search(ctx context.Context, q SearchQuery) []domain.Session {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	var results []domain.Session
	for _, session := range s.store.Load(ctx) {
		if q.Kind != "" && session.Kind != q.Kind {
			continue
		}
		if session.Kind == domain.KindCompetition && session.Intensity < q.MinPerformance {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(searchText(session)), needle) {
			continue
		}
		results = append(results, session)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date.After(results[j].Date)
	})
	return results
}

// TopCompetitions lists competitions rated at least threshold, best first.
func (s *searchService) TopCompetitions(ctx context.Context, threshold float64) []domain.Session {
	var results []domain.Session
	for _, session := range s.store.Load(ctx) {
		if session.Kind == domain.KindCompetition && session.Intensity >= threshold {
			results = append(results, session)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Intensity > results[j].Intensity
	})
	return results
}

func searchText(s domain.Session) string {
	text := strings.Join(s.Sections, " ")
	if s.Competition != nil {
		text += " " + s.Competition.Name + " " + s.Competition.Results
	}
	return text
}
