// Package devserver implements a local stand-in for the investment-control
// service. It speaks the same wire contract the client expects, persisting to
// the sqlite store, so the TUI can be exercised without the real backend.
package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rsaniceto14/investctl/internal/common"
	"github.com/rsaniceto14/investctl/internal/model"
)

// Store defines the persistence contract the handlers need.
type Store interface {
	ListInvestments(ctx context.Context) ([]model.Investment, error)
	GetInvestment(ctx context.Context, id int64) (*model.Investment, error)
	CreateInvestment(ctx context.Context, inv *model.Investment) error
	UpdateInvestment(ctx context.Context, inv *model.Investment) error
	DeleteInvestment(ctx context.Context, id int64) error
	CreateUser(ctx context.Context, username, password string) (*model.User, error)
}

// Server exposes the investment collection and registration endpoints.
type Server struct {
	store   Store
	latency time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithSimulatedLatency delays every request by d. Useful for exercising the
// client's overlapping-fetch behavior against a server that is not instant.
func WithSimulatedLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// New returns a Server backed by the given store.
func New(store Store, opts ...Option) *Server {
	s := &Server{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler with request logging attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /investments", s.handleListInvestments)
	mux.HandleFunc("POST /investments", s.handleCreateInvestment)
	mux.HandleFunc("GET /investments/{id}", s.handleGetInvestment)
	mux.HandleFunc("PUT /investments/{id}", s.handleUpdateInvestment)
	mux.HandleFunc("DELETE /investments/{id}", s.handleDeleteInvestment)
	mux.HandleFunc("POST /register", s.handleRegister)
	return s.withRequestLog(mux)
}

type ctxKey int

const requestIDKey ctxKey = iota

// requestIDFrom returns the request id stored by the logging middleware, or
// an empty string outside of one.
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLog tags each request with a uuid, applies the simulated
// latency, and logs method, path, status and duration once the handler
// returns.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)

		if s.latency > 0 {
			time.Sleep(s.latency)
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r.WithContext(ctx))

		common.LogInfo("request handled", common.Fields{
			"request_id":  requestID,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      recorder.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}
