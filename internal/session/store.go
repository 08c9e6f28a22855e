package session

import (
	"errors"
	"sync"

	"github.com/ytget/tg-video-bot/internal/model"
)

// ErrNotFound means no session exists for the user
var ErrNotFound = errors.New("session not found")

// Store holds at most one session per user. It is safe for concurrent use
// across different users; calls for the same user are serialized by the
// Manager, not here.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*model.Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*model.Session),
	}
}

// Put inserts or replaces the session for its user
func (s *Store) Put(sess *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
}

// Get returns the session for userID or ErrNotFound
func (s *Store) Get(userID int64) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Remove deletes the session for userID; missing sessions are a no-op
func (s *Store) Remove(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of stored sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
