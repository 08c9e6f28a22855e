package session

import (
	"errors"
	"sync"
	"time"

	"github.com/ytget/tg-video-bot/internal/model"
)

var (
	// ErrExpired means the session outlived its TTL and was evicted
	ErrExpired = errors.New("session expired")

	// ErrTaskInProgress means a task is already running for the user
	ErrTaskInProgress = errors.New("a download is already in progress for this user")
)

// Manager wraps a Store with lifecycle rules: lazy TTL eviction on access
// and an in-flight guard allowing at most one active task per user.
type Manager struct {
	store *Store
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	inFlight map[int64]bool
}

// NewManager creates a manager over store with the given session TTL.
// A zero ttl disables expiry.
func NewManager(store *Store, ttl time.Duration) *Manager {
	return &Manager{
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		inFlight: make(map[int64]bool),
	}
}

// Open creates a session for the user, overwriting any previous one. It is
// rejected with ErrTaskInProgress while a task for the user is running, so
// an active download is never invalidated under its own feet.
func (m *Manager) Open(userID int64, sourceURL, title string, formats []model.FormatOption) (*model.Session, error) {
	m.mu.Lock()
	busy := m.inFlight[userID]
	m.mu.Unlock()
	if busy {
		return nil, ErrTaskInProgress
	}

	sess := &model.Session{
		UserID:    userID,
		SourceURL: sourceURL,
		Title:     title,
		Formats:   formats,
		CreatedAt: m.now(),
	}
	m.store.Put(sess)
	return sess, nil
}

// Acquire returns the user's session, lazily evicting it with ErrExpired
// when it outlived the TTL.
func (m *Manager) Acquire(userID int64) (*model.Session, error) {
	sess, err := m.store.Get(userID)
	if err != nil {
		return nil, err
	}

	if sess.ExpiredAt(m.now(), m.ttl) {
		m.store.Remove(userID)
		return nil, ErrExpired
	}
	return sess, nil
}

// Begin marks a task as in flight for the user, or fails with
// ErrTaskInProgress when one already is.
func (m *Manager) Begin(userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inFlight[userID] {
		return ErrTaskInProgress
	}
	m.inFlight[userID] = true
	return nil
}

// End clears the in-flight mark for the user
func (m *Manager) End(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, userID)
}

// Invalidate removes the user's session from the store
func (m *Manager) Invalidate(userID int64) {
	m.store.Remove(userID)
}
