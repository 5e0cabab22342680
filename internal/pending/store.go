// Package pending implements the in-memory registry of pending
// email-verification sessions. A session links an opaque identifier handed to
// the browser with the user awaiting confirmation; entries live for ten
// minutes and vanish on process restart. The durable email_verifications
// table remains the source of truth. This registry is only the fast path
// that keeps a browser flow attached to its user.
package pending

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

const (
	// sessionTTL is the fixed lifetime of a session; not configurable per call.
	sessionTTL = 10 * time.Minute
	// sweepInterval is how often the background sweep reclaims expired
	// entries that nobody reads again.
	sweepInterval = 5 * time.Minute
)

// PendingSession is one pending email-verification record. Sessions are
// replaced, never edited.
type PendingSession struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is a mutex-guarded expiring map of pending sessions. Construct one
// per process with New and share it across request handlers; tests construct
// isolated instances with a fake clock.
type Store struct {
	mu       sync.Mutex
	sessions map[string]PendingSession

	now func() time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithClock replaces the wall clock, letting tests simulate elapsed time
// instead of sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutSweep disables the background sweep goroutine. Expiry still happens
// lazily on every read.
func WithoutSweep() Option {
	return func(s *Store) { s.done = nil }
}

// New creates a Store and starts its background sweep. Call Close to stop
// the sweep when the store is discarded.
func New(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]PendingSession),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.done != nil {
		go s.sweep()
	}
	return s
}

// CreateSession registers a new pending session and returns its identifier.
// It always succeeds; the identifier is unpredictable and unique among live
// sessions.
func (s *Store) CreateSession(userID, email, name, code string) string {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID := newSessionID()
	for _, exists := s.sessions[sessionID]; exists; _, exists = s.sessions[sessionID] {
		sessionID = newSessionID()
	}
	s.sessions[sessionID] = PendingSession{
		SessionID: sessionID,
		UserID:    userID,
		Email:     email,
		Name:      name,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	return sessionID
}

// GetSession returns the session for id if it is present and unexpired.
// Expired entries are purged on read and reported as not found.
func (s *Store) GetSession(sessionID string) (PendingSession, bool) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return PendingSession{}, false
	}
	if !now.Before(sess.ExpiresAt) {
		delete(s.sessions, sessionID)
		return PendingSession{}, false
	}
	return sess, true
}

// VerifyAndDeleteSessions removes every live session whose email and code
// both match and returns the removed records. The scan and the deletes run
// in one critical section, so a concurrent CreateSession for the same email
// is never observed half-applied.
func (s *Store) VerifyAndDeleteSessions(email, code string) []PendingSession {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []PendingSession
	for id, sess := range s.sessions {
		if sess.Email != email || sess.Code != code {
			continue
		}
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			continue
		}
		matched = append(matched, sess)
		delete(s.sessions, id)
	}
	return matched
}

// DeleteSession removes the session for id and reports whether it existed.
func (s *Store) DeleteSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return ok
}

// CleanupExpiredSessions removes every expired entry and returns how many
// were removed. The background sweep calls this on a timer; it is also safe
// to call on demand.
func (s *Store) CleanupExpiredSessions() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// ActiveSessionCount reports how many unexpired sessions are currently held.
func (s *Store) ActiveSessionCount() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	for _, sess := range s.sessions {
		if now.Before(sess.ExpiresAt) {
			active++
		}
	}
	return active
}

// Close stops the background sweep. Idempotent.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		if s.done != nil {
			close(s.done)
		}
	})
}

func (s *Store) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.CleanupExpiredSessions()
		case <-s.done:
			return
		}
	}
}

// newSessionID returns 32 hex characters from crypto/rand, suitable for use
// in a URL query parameter.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("pending: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
