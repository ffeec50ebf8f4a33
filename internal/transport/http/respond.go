package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ptcoach/backend/internal/service/scheduling"
	"ptcoach/backend/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the engine's error taxonomy onto HTTP statuses.
// Sentinel store errors keep their own messages; anything unrecognized
// is an internal error and must not leak details.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	var vErr *scheduling.ValidationError
	if errors.As(err, &vErr) {
		log.Warn("invalid request", slog.Any("err", err))
		writeJSONError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	var aErr *scheduling.AuthorizationError
	if errors.As(err, &aErr) {
		log.Warn("forbidden", slog.Any("err", err))
		writeJSONError(w, http.StatusForbidden, aErr.Error())
		return
	}

	var pErr *scheduling.PolicyError
	if errors.As(err, &pErr) {
		log.Info("policy rejection", slog.Any("err", err))
		writeJSONError(w, http.StatusUnprocessableEntity, pErr.Error())
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicateRequest),
		errors.Is(err, store.ErrActiveSchedule),
		errors.Is(err, store.ErrSlotUnavailable):
		log.Info("booking conflict", slog.Any("err", err))
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrConflict):
		log.Info("slot conflict", slog.Any("err", err))
		writeJSONError(w, http.StatusConflict, "The slot is already taken or the resource changed. Refresh and try again.")
	default:
		log.Error("request failed", slog.Any("err", err))
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
