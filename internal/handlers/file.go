package handlers

import (
	"DocKeeper/internal/config"
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/model"
	"DocKeeper/internal/service"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileHandler — загрузка и выдача файлов.
type FileHandler struct {
	FileService *service.FileService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewFileHandler(fileService *service.FileService, logger *zap.SugaredLogger, cfg *config.Config) *FileHandler {
	return &FileHandler{FileService: fileService, Logger: logger, Config: cfg}
}

type fileDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Size      int64           `json:"size"`
	MimeType  string          `json:"mime_type"`
	CopyType  model.CopyType  `json:"copy_type"`
	Status    model.FileStatus `json:"status"`
	Metadata  model.JSONB     `json:"metadata,omitempty"`
	CreatedAt string          `json:"created_at"`
}

func toFileDTO(f *model.File) fileDTO {
	return fileDTO{
		ID:        f.ID,
		Name:      f.Name,
		Size:      f.Size,
		MimeType:  f.MimeType,
		CopyType:  f.CopyType,
		Status:    f.Status,
		Metadata:  f.Metadata,
		CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Upload принимает multipart/form-data: file, copy_type, document_type_id,
// department_id и metadata (JSON-объект).
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Лимит общего тела запроса
	maxBody := int64(h.Config.BlobMaxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	src, hdr, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}
	if int64(len(content)) > int64(h.Config.BlobMaxSizeMB)*1024*1024 {
		http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	in := service.UploadInput{
		Name:     hdr.Filename,
		MimeType: hdr.Header.Get("Content-Type"),
		Content:  content,
		CopyType: model.CopyType(r.FormValue("copy_type")),
	}
	if in.CopyType == "" {
		in.CopyType = model.CopyTypeSoft
	}
	if s := r.FormValue("document_type_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid document_type_id", http.StatusBadRequest)
			return
		}
		in.DocumentTypeID = &id
	}
	if s := r.FormValue("department_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid department_id", http.StatusBadRequest)
			return
		}
		in.DepartmentID = id
	}
	if s := r.FormValue("metadata"); s != "" {
		if err := json.Unmarshal([]byte(s), &in.Metadata); err != nil {
			http.Error(w, "invalid metadata json", http.StatusBadRequest)
			return
		}
	}

	f, err := h.FileService.Upload(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFileDTO(f))
}

func (h *FileHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	files, err := h.FileService.ListOwn(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	out := make([]fileDTO, 0, len(files))
	for i := range files {
		out = append(out, toFileDTO(&files[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *FileHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	files, err := h.FileService.Search(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	out := make([]fileDTO, 0, len(files))
	for i := range files {
		out = append(out, toFileDTO(&files[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	h.serveContent(w, r, service.ModeDownload)
}

func (h *FileHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.serveContent(w, r, service.ModePreview)
}

func (h *FileHandler) serveContent(w http.ResponseWriter, r *http.Request, mode service.AccessMode) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := chi.URLParam(r, "id")

	f, data, err := h.FileService.Fetch(r.Context(), userID, fileID, mode)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}

	w.Header().Set("Content-Type", f.MimeType)
	if mode == service.ModeDownload {
		w.Header().Set("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.FileService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
