package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"DocKeeper/internal/service"

	"go.uber.org/zap"
)

// writeJSON сериализует ответ; ошибки кодирования уже не исправить.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError отображает доменные ошибки в HTTP-коды. Детали
// инфраструктурных сбоев остаются в логе, наружу уходит opaque 500.
func writeServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   ve.Error(),
			"missing": ve.Missing,
		})
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrStale):
		http.Error(w, "not found or already processed", http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, "access denied", http.StatusForbidden)
	case errors.Is(err, service.ErrLoginTaken):
		http.Error(w, "login already taken", http.StatusConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "invalid login or password", http.StatusUnauthorized)
	default:
		logger.Errorw("internal error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
