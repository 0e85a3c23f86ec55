package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

// ResultStore is an in-memory result sink and archive.
// It is NOT persistent and is only suitable for development / local mode.
type ResultStore struct {
	mu      sync.RWMutex
	results []*domain.SessionResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) Name() string { return "memory" }

// SaveResult appends a completed session.
func (s *ResultStore) SaveResult(_ context.Context, result *domain.SessionResult) error {
	if result == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *result
	cp.QuestionIDs = append([]domain.QuestionID(nil), result.QuestionIDs...)
	cp.Questions = append([]string(nil), result.Questions...)
	cp.Answers = append([]string(nil), result.Answers...)
	s.results = append(s.results, &cp)
	return nil
}

// ListResults returns the last `limit` results, newest first.
// If limit <= 0, returns all.
func (s *ResultStore) ListResults(_ context.Context, limit int) ([]*domain.SessionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.results) {
		limit = len(s.results)
	}

	out := make([]*domain.SessionResult, 0, limit)
	for i := len(s.results) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.results[i])
	}
	return out, nil
}
