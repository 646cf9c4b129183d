package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	cents, err := core.ParseAmountToCents(p.Get("amount"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	date, err := core.ParseDate(p.Get("date"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	added, err := s.board.Add(r.Context(), *sess, core.Transaction{
		Title:    p.Get("title"),
		Amount:   core.Money{Cents: cents},
		Date:     date,
		Category: p.Get("category"),
		Type:     core.TxType(p.Get("type")),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":       added.ID,
		"title":    added.Title,
		"amount":   added.Amount.Units(),
		"date":     added.Date.String(),
		"category": added.Category,
		"type":     string(added.Type),
	})
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		respondError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.board.Remove(r.Context(), *sess, id); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
