package handlers

import (
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/model"
	"DocKeeper/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NotificationHandler — входящие пользователя.
type NotificationHandler struct {
	NotificationService *service.NotificationService
	Logger              *zap.SugaredLogger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{NotificationService: notificationService, Logger: logger}
}

func (h *NotificationHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var err error
	var list []map[string]any
	if r.URL.Query().Get("pending") == "true" {
		ns, e := h.NotificationService.Pending(r.Context(), userID)
		err = e
		list = toNotificationDTOs(ns)
	} else {
		ns, e := h.NotificationService.Inbox(r.Context(), userID)
		err = e
		list = toNotificationDTOs(ns)
	}
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func toNotificationDTOs(ns []model.Notification) []map[string]any {
	out := make([]map[string]any, 0, len(ns))
	for _, n := range ns {
		out = append(out, map[string]any{
			"id":         n.ID,
			"kind":       n.Kind,
			"state":      n.State,
			"message":    n.Message,
			"file_id":    n.FileID,
			"created_at": n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}
	if err := h.NotificationService.MarkRead(r.Context(), id, userID); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
