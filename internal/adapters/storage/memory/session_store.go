package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

// SessionStore keeps sessions in a map. It hands out copies so callers can
// only change a session through UpdateSession.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.SessionState
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.SessionState),
	}
}

func (s *SessionStore) CreateSession(_ context.Context, session *domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("create %s: %w", session.ID, domain.ErrSessionExists)
	}

	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *SessionStore) UpdateSession(_ context.Context, session *domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; !exists {
		return fmt.Errorf("update %s: %w", session.ID, domain.ErrSessionNotFound)
	}

	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *SessionStore) GetSession(_ context.Context, id domain.SessionID) (*domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, domain.ErrSessionNotFound)
	}

	return sess.Clone(), nil
}

// ListSessions returns the most recently updated sessions first.
// If limit <= 0, returns all.
func (s *SessionStore) ListSessions(_ context.Context, limit int) ([]*domain.SessionState, error) {
	s.mu.RLock()
	result := make([]*domain.SessionState, 0, len(s.sessions))
	for _, sess := range s.sessions {
		result = append(result, sess.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
