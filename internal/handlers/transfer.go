package handlers

import (
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/service"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TransferHandler — отправка/принятие файлов и запросы доступа.
type TransferHandler struct {
	TransferService *service.TransferService
	RequestService  *service.RequestService
	Logger          *zap.SugaredLogger
}

func NewTransferHandler(transferService *service.TransferService, requestService *service.RequestService, logger *zap.SugaredLogger) *TransferHandler {
	return &TransferHandler{TransferService: transferService, RequestService: requestService, Logger: logger}
}

type sendRequest struct {
	UserID       *int64 `json:"user_id,omitempty"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

func (h *TransferHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	target := service.SendTarget{UserID: req.UserID, DepartmentID: req.DepartmentID}
	if err := h.TransferService.Send(r.Context(), chi.URLParam(r, "id"), userID, target); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *TransferHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.resolveTransfer(w, r, true)
}

func (h *TransferHandler) Deny(w http.ResponseWriter, r *http.Request) {
	h.resolveTransfer(w, r, false)
}

func (h *TransferHandler) resolveTransfer(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := chi.URLParam(r, "id")

	var err error
	if accept {
		err = h.TransferService.Accept(r.Context(), fileID, userID)
	} else {
		err = h.TransferService.Deny(r.Context(), fileID, userID)
	}
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *TransferHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	transfers, err := h.TransferService.Inbox(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	out := make([]map[string]any, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, map[string]any{
			"id":         t.ID,
			"file_id":    t.FileID,
			"sender_id":  t.SenderID,
			"state":      t.State,
			"created_at": t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TransferHandler) RequestAccess(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	req, err := h.RequestService.Request(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": req.ID, "state": req.State})
}

type resolveRequest struct {
	Approve bool `json:"approve"`
}

func (h *TransferHandler) ResolveRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	var body resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.RequestService.Resolve(r.Context(), requestID, userID, body.Approve); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *TransferHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	reqs, err := h.RequestService.PendingForOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	out := make([]map[string]any, 0, len(reqs))
	for _, q := range reqs {
		out = append(out, map[string]any{
			"id":           q.ID,
			"file_id":      q.FileID,
			"requester_id": q.RequesterID,
			"created_at":   q.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
