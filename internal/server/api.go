package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/inboxd/inboxd/internal/filter"
	"github.com/inboxd/inboxd/internal/gmail"
	"github.com/inboxd/inboxd/internal/google"
	"github.com/inboxd/inboxd/internal/instrumentation"
	"github.com/inboxd/inboxd/internal/logging"
	"github.com/inboxd/inboxd/internal/mail"
)

const (
	// DefaultAddr is the default address for the API server.
	DefaultAddr = ":8080"

	// DefaultReadHeaderTimeout is the read header timeout for the API server.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout is the write timeout for the API server. List
	// requests fan out to the mail provider, so this is generous.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the idle timeout for the API server.
	DefaultIdleTimeout = 120 * time.Second
)

// MailService is the subset of the mail provider client the API server
// uses. It is satisfied by *gmail.Client.
type MailService interface {
	ListInbox(ctx context.Context, maxResults int64) ([]mail.Record, error)
	SendEmail(ctx context.Context, to, subject, body string) error
	Trash(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string) error
	ToggleStar(ctx context.Context, id string, currentlyStarred bool) error
}

// ClientFactory builds a MailService for a bearer token. The default
// factory creates a Gmail client; tests substitute a fake.
type ClientFactory func(ctx context.Context, token string) (MailService, error)

// Config holds configuration for the API server.
type Config struct {
	// Addr is the address to bind the API server to (e.g., ":8080").
	Addr string

	// MaxResults caps how many messages a list request loads.
	MaxResults int64

	// SessionTimeout is how long cached inboxes are kept without access.
	SessionTimeout time.Duration

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics records request and session metrics. Defaults to a no-op.
	Metrics *instrumentation.Metrics

	// Factory builds mail clients from bearer tokens. Defaults to Gmail.
	Factory ClientFactory
}

// Server is the inboxd HTTP JSON API server.
type Server struct {
	serverContext *ServerContext
	sessions      *SessionStore
	health        *HealthChecker
	httpServer    *http.Server
	logger        *slog.Logger
	metrics       *instrumentation.Metrics
	factory       ClientFactory
	maxResults    int64
	addr          string
}

// New creates a new API server.
func New(ctx context.Context, config Config) *Server {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.MaxResults <= 0 {
		config.MaxResults = gmail.DefaultMaxResults
	}
	if config.SessionTimeout <= 0 {
		config.SessionTimeout = 24 * time.Hour
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Metrics == nil {
		config.Metrics = instrumentation.NewNopMetrics()
	}
	if config.Factory == nil {
		config.Factory = func(ctx context.Context, token string) (MailService, error) {
			access, err := google.StaticTokenProvider(token).AccessToken(ctx)
			if err != nil {
				return nil, err
			}
			return gmail.NewClient(ctx, access,
				gmail.WithLogger(config.Logger),
				gmail.WithMetrics(config.Metrics),
			)
		}
	}

	sc := NewServerContext(ctx)

	s := &Server{
		serverContext: sc,
		sessions:      NewSessionStoreWithOptions(config.SessionTimeout, config.Logger, config.Metrics),
		health:        NewHealthChecker(sc),
		logger:        config.Logger,
		metrics:       config.Metrics,
		factory:       config.Factory,
		maxResults:    config.MaxResults,
		addr:          config.Addr,
	}

	return s
}

// Handler returns the HTTP handler with all API routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/v1/messages", s.authenticated(s.handleListMessages))
	mux.Handle("POST /api/v1/search", s.authenticated(s.handleSearch))
	mux.Handle("GET /api/v1/stats", s.authenticated(s.handleStats))
	mux.Handle("POST /api/v1/send", s.authenticated(s.handleSend))
	mux.Handle("POST /api/v1/messages/{id}/read", s.authenticated(s.handleMarkRead))
	mux.Handle("POST /api/v1/messages/{id}/star", s.authenticated(s.handleToggleStar))
	mux.Handle("DELETE /api/v1/messages/{id}", s.authenticated(s.handleTrash))

	s.health.RegisterHealthEndpoints(mux)

	return s.instrument(mux)
}

// Start starts the API server in a blocking manner.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	s.logger.Info("starting API server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	_ = s.serverContext.Shutdown()
	s.sessions.Stop()

	if s.httpServer != nil {
		s.logger.Info("shutting down API server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the configured address for the API server.
func (s *Server) Addr() string {
	return s.addr
}

// requestState carries the per-request authentication results.
type requestState struct {
	client    MailService
	sessionID string
}

// authenticated wraps a handler with bearer token resolution and client
// construction.
func (s *Server) authenticated(h func(w http.ResponseWriter, r *http.Request, st requestState)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, sessionID, err := s.sessions.ResolveSession(r)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "missing or empty bearer token")
			return
		}

		client, err := s.factory(r.Context(), token)
		if err != nil {
			s.logger.Error("failed to create mail client",
				logging.Session(token),
				logging.Err(err))
			s.writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		h(w, r, requestState{client: client, sessionID: sessionID})
	})
}

// statusRecorder captures the response status for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records request count and duration for every route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// listResponse is the payload for message listings and search results.
type listResponse struct {
	Messages []mail.Record `json:"messages"`
	Total    int           `json:"total"`
}

// sendRequest is the payload for sending an email.
type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// loadInbox returns the cached inbox for the session, loading it from
// the provider when absent or when refresh is requested.
func (s *Server) loadInbox(ctx context.Context, st requestState, refresh bool) (*mail.Inbox, error) {
	if !refresh {
		if inbox := s.sessions.Inbox(st.sessionID); inbox != nil {
			return inbox, nil
		}
	}

	records, err := st.client.ListInbox(ctx, s.maxResults)
	if err != nil {
		return nil, err
	}

	inbox := mail.NewInbox(records)
	s.sessions.Put(st.sessionID, inbox)

	s.logger.Info("loaded inbox",
		slog.String(logging.KeySession, st.sessionID),
		"messages", inbox.Len())

	return inbox, nil
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request, st requestState) {
	refresh := r.URL.Query().Get("refresh") == "true"

	inbox, err := s.loadInbox(r.Context(), st, refresh)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to load inbox: %v", err))
		return
	}

	records := inbox.Records()

	if categoryParam := r.URL.Query().Get("category"); categoryParam != "" {
		category, err := mail.ParseCategory(categoryParam)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filtered := records[:0:0]
		for _, rec := range records {
			if rec.Category == category {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if maxParam := r.URL.Query().Get("max"); maxParam != "" {
		max, err := strconv.Atoi(maxParam)
		if err != nil || max < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid max parameter")
			return
		}
		if max < len(records) {
			records = records[:max]
		}
	}

	s.writeJSON(w, http.StatusOK, listResponse{Messages: records, Total: len(records)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, st requestState) {
	var query filter.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid search query: %v", err))
		return
	}

	inbox, err := s.loadInbox(r.Context(), st, false)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to load inbox: %v", err))
		return
	}

	results := filter.Evaluate(inbox.Records(), query.Criteria)
	s.writeJSON(w, http.StatusOK, listResponse{Messages: results, Total: len(results)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request, st requestState) {
	inbox, err := s.loadInbox(r.Context(), st, false)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to load inbox: %v", err))
		return
	}

	s.writeJSON(w, http.StatusOK, mail.Stats(inbox.Records()))
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request, st requestState) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid send request: %v", err))
		return
	}

	if err := st.client.SendEmail(r.Context(), req.To, req.Subject, req.Body); err != nil {
		s.writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to send email: %v", err))
		return
	}

	// Only the recipient domain is logged, never the address itself.
	s.logger.Info("message sent",
		slog.String(logging.KeySession, st.sessionID),
		logging.Domain(req.To))

	w.WriteHeader(http.StatusAccepted)
}

// mutate runs one provider mutation through the inbox sync state
// machine: the record is marked pending, the provider call runs, and the
// record is either updated or rolled back to failed.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, st requestState, call func(ctx context.Context, rec mail.Record) error, apply func(*mail.Record)) (mail.Record, bool) {
	id := r.PathValue("id")

	inbox := s.sessions.Inbox(st.sessionID)
	if inbox == nil {
		s.writeError(w, http.StatusConflict, "no loaded inbox for this session; list messages first")
		return mail.Record{}, false
	}

	rec, ok := inbox.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown message %q", id))
		return mail.Record{}, false
	}

	if err := inbox.Begin(id); err != nil {
		s.writeError(w, http.StatusConflict, err.Error())
		return mail.Record{}, false
	}

	if err := call(r.Context(), rec); err != nil {
		_ = inbox.Fail(id)
		s.logger.Error("mutation failed",
			slog.String(logging.KeySession, st.sessionID),
			"message_id", id,
			logging.Err(err))
		s.writeError(w, http.StatusBadGateway, fmt.Sprintf("mutation failed: %v", err))
		return mail.Record{}, false
	}

	_ = inbox.Complete(id, apply)

	updated, _ := inbox.Get(id)
	return updated, true
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request, st requestState) {
	updated, ok := s.mutate(w, r, st,
		func(ctx context.Context, rec mail.Record) error {
			return st.client.MarkRead(ctx, rec.ID)
		},
		func(rec *mail.Record) {
			rec.Read = true
		})
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleToggleStar(w http.ResponseWriter, r *http.Request, st requestState) {
	updated, ok := s.mutate(w, r, st,
		func(ctx context.Context, rec mail.Record) error {
			return st.client.ToggleStar(ctx, rec.ID, rec.Starred)
		},
		func(rec *mail.Record) {
			rec.Starred = !rec.Starred
		})
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleTrash(w http.ResponseWriter, r *http.Request, st requestState) {
	id := r.PathValue("id")

	_, ok := s.mutate(w, r, st,
		func(ctx context.Context, rec mail.Record) error {
			return st.client.Trash(ctx, rec.ID)
		},
		func(rec *mail.Record) {})
	if !ok {
		return
	}

	if inbox := s.sessions.Inbox(st.sessionID); inbox != nil {
		inbox.Remove(id)
	}

	w.WriteHeader(http.StatusNoContent)
}

// errorResponse is the payload for error responses.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		s.logger.Error("failed to encode response", logging.Err(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
