package cart

import (
	"sync"

	"go.uber.org/zap"

	"github.com/vantis/storefront-state/internal/model"
)

// Store is an in-memory registry of cart sessions, one per cart owner.
// Sessions are ephemeral UI state; nothing here survives a restart.
type Store struct {
	mu       sync.RWMutex
	logger   *zap.Logger
	sessions map[string]*Session
}

func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for a cart ID, if one exists.
func (s *Store) Get(cartID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[cartID]
	return sess, ok
}

// Replace installs a server snapshot for a cart, creating the session on
// first sight or replacing the existing session's state wholesale.
func (s *Store) Replace(cartID string, snapshot model.Cart) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[cartID]; ok {
		sess.Replace(snapshot)
		return sess
	}
	sess := NewSession(snapshot, s.logger)
	s.sessions[cartID] = sess
	return sess
}

// Delete drops a session, e.g. when the owner signs out.
func (s *Store) Delete(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, cartID)
}
