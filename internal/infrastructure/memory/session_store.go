package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

type sessionRecord struct {
	userID    int
	expiresAt time.Time
}

// SessionStore keeps session records in process memory. Expired records are
// dropped lazily on lookup.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionRecord
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]sessionRecord), now: time.Now}
}

func (s *SessionStore) Create(_ context.Context, sessionID string, userID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = sessionRecord{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) Get(_ context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return 0, domain.ErrSessionNotFound
	}
	if s.now().After(rec.expiresAt) {
		delete(s.sessions, sessionID)
		return 0, domain.ErrSessionNotFound
	}
	return rec.userID, nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}
