package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/auth"
	"fintrack/internal/core"
)

// scopeCookieName carries the session scope hint: the client does not hold
// the session itself, only which scope the manager should resolve it from.
const scopeCookieName = "fintrack_scope"

// sessionPayload is the projection handed to the renderer after auth calls.
type sessionPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toPayload(s *core.Session) sessionPayload {
	return sessionPayload{ID: s.UserID, Name: s.Name, Email: s.Email}
}

// setScopeCookie issues the HttpOnly scope hint. The durable hint outlives
// the browser session; the tab hint is a session cookie and dies with the
// browser context, mirroring the two persistence scopes.
func setScopeCookie(w http.ResponseWriter, scope string) {
	c := &http.Cookie{
		Name:     scopeCookieName,
		Value:    scope,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if scope == auth.ScopeDurable {
		c.MaxAge = 30 * 24 * 60 * 60
	}
	http.SetCookie(w, c)
}

func clearScopeCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     scopeCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sess, err := s.sessions.Register(r.Context(),
		p.Get("name"), p.Get("email"), p.Get("password"), p.Get("confirm"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// Auto-login after registration is durable by policy.
	setScopeCookie(w, auth.ScopeDurable)
	s.seedFirstLogin(r, sess)
	respondJSON(w, http.StatusCreated, toPayload(sess))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	remember := p.GetBool("remember")
	sess, err := s.sessions.Login(r.Context(), p.Get("email"), p.Get("password"), remember)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	scope := auth.ScopeTab
	if remember {
		scope = auth.ScopeDurable
	}
	setScopeCookie(w, scope)
	s.seedFirstLogin(r, sess)
	respondJSON(w, http.StatusOK, toPayload(sess))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.sessions.Logout(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}
	clearScopeCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}
	respondJSON(w, http.StatusOK, toPayload(sess))
}

// seedFirstLogin gives a fresh account its starter transactions. A seeding
// failure is logged but never blocks the auth flow.
func (s *Server) seedFirstLogin(r *http.Request, sess *core.Session) {
	if err := s.board.EnsureSeed(r.Context(), *sess); err != nil {
		slog.ErrorContext(r.Context(), "Failed seeding starter transactions",
			"user_id", sess.UserID, "error", err)
	}
}

// requireSession resolves the caller's session from the scope-hint cookie
// or writes a 401. A request without the cookie is anonymous, no matter
// what sessions other clients hold.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) *core.Session {
	c, err := r.Cookie(scopeCookieName)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return nil
	}

	sess, err := s.sessions.Resolve(r.Context(), c.Value)
	if err != nil {
		respondDomainError(w, err)
		return nil
	}
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return nil
	}
	return sess
}
