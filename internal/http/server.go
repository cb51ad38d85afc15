// Package http exposes the tracker core over a localhost JSON API.
// The graphical front-end is a separate collaborator: it drives these
// endpoints and redraws itself from the responses. Aggregates are
// recomputed on every request, never cached.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"midaxas/internal/config"
	"midaxas/internal/core"
	"midaxas/internal/gate"
	"midaxas/internal/log"
	"midaxas/internal/storage"
)

type Server struct {
	http.Server
	records  *storage.RecordStore
	settings *storage.SettingsStore
	gate     *gate.Gate
	cfg      *config.Config
	logger   *log.Logger
}

// NewServer configures routes and middleware, returning a
// ready-to-run server.
func NewServer(addr string, records *storage.RecordStore, settings *storage.SettingsStore, g *gate.Gate, cfg *config.Config, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		records:  records,
		settings: settings,
		gate:     g,
		cfg:      cfg,
		logger:   logger.WithComponent(log.ComponentHTTP),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/api/summary", s.withRequestLog(s.handleSummary))
	mux.HandleFunc("/api/transactions", s.withRequestLog(s.handleTransactions))
	mux.HandleFunc("/api/transactions/undo", s.withRequestLog(s.handleUndo))
	mux.HandleFunc("/api/transactions/reset", s.withRequestLog(s.handleReset))
	mux.HandleFunc("/api/breakdown", s.withRequestLog(s.handleBreakdown))
	mux.HandleFunc("/api/report", s.withRequestLog(s.handleMonthlyReport))
	mux.HandleFunc("/api/budgets", s.withRequestLog(s.handleBudgets))
	mux.HandleFunc("/api/budgets/warnings", s.withRequestLog(s.handleBudgetWarnings))
	mux.HandleFunc("/api/pin", s.withRequestLog(s.handlePIN))
	mux.HandleFunc("/api/pin/verify", s.withRequestLog(s.handlePINVerify))
	mux.HandleFunc("/api/export", s.withRequestLog(s.handleExport))

	return s
}

// withRequestLog adds security headers and request logging to handlers.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.Info("Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses and always carries
// the specific reason, so the front-end can show it as a notification
// instead of a generic failure.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, gate.ErrInvalidPIN):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrEmptyStore):
		status = http.StatusConflict
	case errors.Is(err, storage.ErrCorruptData):
		status = http.StatusInternalServerError
	case errors.Is(err, gate.ErrAuthExhausted):
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	w.WriteHeader(http.StatusMethodNotAllowed)
}
