// Package http exposes the tracker to the external renderer as a small JSON
// API: auth endpoints, the dashboard view, transaction mutations and UI
// preferences.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/dashboard"
	"fintrack/internal/storage"
)

type Server struct {
	http.Server
	sessions *auth.SessionManager
	board    *dashboard.Service
	prefs    storage.PrefRepository

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, sessions *auth.SessionManager, board *dashboard.Service, prefs storage.PrefRepository) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		sessions:    sessions,
		board:       board,
		prefs:       prefs,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/register", s.withSecurity(s.handleRegister))
	mux.HandleFunc("/api/login", s.withSecurity(s.handleLogin))
	mux.HandleFunc("/api/logout", s.withSecurity(s.handleLogout))
	mux.HandleFunc("/api/session", s.withSecurity(s.handleSession))
	mux.HandleFunc("/api/dashboard", s.withSecurity(s.handleDashboard))
	mux.HandleFunc("/api/transactions", s.withSecurity(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withSecurity(s.handleTransactionByID))
	mux.HandleFunc("/api/prefs/dark", s.withSecurity(s.handleDarkMode))

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurity adds security headers, rate limiting on auth submissions and
// request logging.
func (s *Server) withSecurity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		// Throttle repeated auth submissions per client.
		if r.Method == http.MethodPost && isAuthPath(r.URL.Path) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "too many attempts, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(r.Context(), "Request completed",
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/api/login") || strings.HasPrefix(path, "/api/register")
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
