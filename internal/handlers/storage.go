package handlers

import (
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/service"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StorageHandler — дерево физического размещения.
type StorageHandler struct {
	StorageService *service.StorageService
	Logger         *zap.SugaredLogger
}

func NewStorageHandler(storageService *service.StorageService, logger *zap.SugaredLogger) *StorageHandler {
	return &StorageHandler{StorageService: storageService, Logger: logger}
}

func (h *StorageHandler) Locations(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	tree, err := h.StorageService.FetchStorageLocations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (h *StorageHandler) NextSlot(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	deptID, err := strconv.ParseInt(r.URL.Query().Get("department_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid department_id", http.StatusBadRequest)
		return
	}
	slot, err := h.StorageService.SuggestNextSlot(r.Context(), deptID)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}
