package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/inboxd/inboxd/internal/instrumentation"
	"github.com/inboxd/inboxd/internal/logging"
	"github.com/inboxd/inboxd/internal/mail"
)

// ErrNoAuthorizationHeader is returned when no Authorization header is provided
var ErrNoAuthorizationHeader = errors.New("no authorization header provided")

// sessionInfo tracks a cached inbox and its last access time for cleanup.
type sessionInfo struct {
	inbox      *mail.Inbox
	lastAccess time.Time
}

// SessionStore caches one Inbox per bearer token, so repeated requests
// from the same mailbox reuse the already-normalized records and the
// per-message sync states survive between requests.
type SessionStore struct {
	sessions       map[string]*sessionInfo
	mu             sync.RWMutex
	cleanupTicker  *time.Ticker
	cleanupDone    chan bool
	sessionTimeout time.Duration
	logger         *slog.Logger
	metrics        *instrumentation.Metrics
}

// NewSessionStore creates a session store with a 24 hour session timeout.
func NewSessionStore() *SessionStore {
	return NewSessionStoreWithOptions(24*time.Hour, slog.Default(), instrumentation.NewNopMetrics())
}

// NewSessionStoreWithOptions creates a session store with a custom timeout,
// logger and metrics recorder.
func NewSessionStoreWithOptions(timeout time.Duration, logger *slog.Logger, metrics *instrumentation.Metrics) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = instrumentation.NewNopMetrics()
	}

	s := &SessionStore{
		sessions:       make(map[string]*sessionInfo),
		cleanupTicker:  time.NewTicker(10 * time.Minute),
		cleanupDone:    make(chan bool),
		sessionTimeout: timeout,
		logger:         logger,
		metrics:        metrics,
	}

	go s.cleanupExpiredSessions()

	return s
}

// ResolveSession extracts the bearer token from an HTTP request and
// returns the token together with its stable session ID. The session ID
// is an anonymized token hash, safe both as the cache key and in logs.
func (s *SessionStore) ResolveSession(r *http.Request) (token, sessionID string, err error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "", ErrNoAuthorizationHeader
	}

	token = strings.TrimPrefix(authHeader, "Bearer ")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "", ErrNoAuthorizationHeader
	}

	return token, sessionKey(token), nil
}

// sessionKey creates a stable session ID from the bearer token.
func sessionKey(token string) string {
	return logging.AnonymizeToken(token)
}

// Inbox returns the cached inbox for a session, or nil if none exists.
func (s *SessionStore) Inbox(sessionID string) *mail.Inbox {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, ok := s.sessions[sessionID]; ok {
		info.lastAccess = time.Now()
		return info.inbox
	}
	return nil
}

// Put caches an inbox for a session, replacing any previous one.
func (s *SessionStore) Put(sessionID string, inbox *mail.Inbox) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		s.metrics.IncrementActiveSessions(context.Background())
	}
	s.sessions[sessionID] = &sessionInfo{
		inbox:      inbox,
		lastAccess: time.Now(),
	}
}

// Remove drops a session from the store.
func (s *SessionStore) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; ok {
		delete(s.sessions, sessionID)
		s.metrics.DecrementActiveSessions(context.Background())
	}
}

// Len returns the number of cached sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cleanupExpiredSessions periodically removes expired sessions
func (s *SessionStore) cleanupExpiredSessions() {
	for {
		select {
		case <-s.cleanupTicker.C:
			s.mu.Lock()
			now := time.Now()
			expiredCount := 0
			for sessionID, info := range s.sessions {
				if now.Sub(info.lastAccess) > s.sessionTimeout {
					delete(s.sessions, sessionID)
					s.metrics.DecrementActiveSessions(context.Background())
					expiredCount++
				}
			}
			s.mu.Unlock()
			if expiredCount > 0 {
				s.logger.Info("cleaned up expired sessions", "count", expiredCount)
			}
		case <-s.cleanupDone:
			return
		}
	}
}

// Stop stops the session cleanup goroutine
func (s *SessionStore) Stop() {
	if s.cleanupTicker != nil {
		s.cleanupTicker.Stop()
	}
	if s.cleanupDone != nil {
		close(s.cleanupDone)
	}
}
