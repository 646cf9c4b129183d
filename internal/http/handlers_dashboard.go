package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}

	month := filterParam(r, "month")
	category := filterParam(r, "category")

	view, err := s.board.BuildView(r.Context(), *sess, month, category)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// filterParam reads a filter query parameter, defaulting to the wildcard.
func filterParam(r *http.Request, name string) string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return core.FilterAll
	}
	return v
}

func (s *Server) handleDarkMode(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		on, err := s.prefs.DarkMode(r.Context())
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"dark": on})
	case http.MethodPut, http.MethodPost:
		p := NewRequestBodyParser(r)
		if err := p.Parse(); err != nil {
			respondError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if err := s.prefs.SetDarkMode(r.Context(), p.GetBool("dark")); err != nil {
			respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, PUT, POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
