// Package webserver provides session management for the web frontend
package webserver

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/dishcart/assistant/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Session identifies one browser. The workflow state itself lives in the
// session service, keyed by this ID; the cookie only carries the ID.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore manages browser sessions
type SessionStore struct {
	sessions   map[string]*Session
	mu         sync.RWMutex
	cookieName string
	ttl        time.Duration
	logger     *zap.Logger

	// OnExpire is invoked for every session removed by cleanup, letting
	// the application layer drop its per-session state too.
	OnExpire func(sessionID string)
}

// NewSessionStore creates a new session store
func NewSessionStore(cfg *config.Config, logger *zap.Logger) *SessionStore {
	store := &SessionStore{
		sessions:   make(map[string]*Session),
		cookieName: cfg.Session.CookieName,
		ttl:        cfg.Session.TTL,
		logger:     logger.Named("session-store"),
	}

	go store.cleanupExpired()

	return store
}

// Get retrieves the session for the request, if one exists and is live.
func (s *SessionStore) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	session, exists := s.sessions[cookie.Value]
	s.mu.RUnlock()

	if !exists {
		return nil, http.ErrNoCookie
	}

	if time.Now().After(session.ExpiresAt) {
		s.Delete(cookie.Value)
		return nil, http.ErrNoCookie
	}

	return session, nil
}

// New creates a new session
func (s *SessionStore) New() *Session {
	session := &Session{
		ID:        generateSessionID(),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Save sets the session cookie on the response
func (s *SessionStore) Save(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
	})
}

// Delete removes a session
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if s.OnExpire != nil {
		s.OnExpire(sessionID)
	}
}

// cleanupExpired removes expired sessions periodically
func (s *SessionStore) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		var expired []string

		s.mu.Lock()
		for id, session := range s.sessions {
			if now.After(session.ExpiresAt) {
				delete(s.sessions, id)
				expired = append(expired, id)
			}
		}
		s.mu.Unlock()

		for _, id := range expired {
			if s.OnExpire != nil {
				s.OnExpire(id)
			}
			s.logger.Debug("Cleaned up expired session", zap.String("session_id", id))
		}
	}
}

// generateSessionID generates a random session ID
func generateSessionID() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
