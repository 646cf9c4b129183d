package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/auth"
	"fintrack/internal/core"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// respondDomainError maps a domain error to a status code and surfaces the
// error kind verbatim as the short user-facing message.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrNoSuchAccount), errors.Is(err, auth.ErrWrongPassword):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrTitleTooLong),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidType):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("Unhandled error", "error", err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}
