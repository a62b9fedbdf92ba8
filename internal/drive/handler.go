package drive

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hostelhub/server/internal/transport"
)

// DriveTokenHeader carries the user's Google OAuth access token. The
// server never stores it; every request brings its own.
const DriveTokenHeader = "X-Drive-Token"

type ServiceAPI interface {
	EnsureFolders(ctx context.Context, token string) (*Folders, error)
	Upload(ctx context.Context, token, folderName, fileName, mimeType string, size int64, content io.Reader) (*File, error)
	List(ctx context.Context, token, folderName string) ([]*File, error)
	Delete(ctx context.Context, token, fileID string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

func (h *Handler) token(r *http.Request) string {
	return r.Header.Get(DriveTokenHeader)
}

func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	folders, err := h.Service.EnsureFolders(r.Context(), h.token(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, folders)
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")
	mimeType := header.Header.Get("Content-Type")

	uploaded, err := h.Service.Upload(r.Context(), h.token(r), folder, header.Filename, mimeType, header.Size, file)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, uploaded)
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	folder := r.URL.Query().Get("folder")
	files, err := h.Service.List(r.Context(), h.token(r), folder)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"files": files})
}

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	fileID := chi.URLParam(r, "fileID")
	if fileID == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	if err := h.Service.Delete(r.Context(), h.token(r), fileID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
