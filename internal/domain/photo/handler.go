package photo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/albumstudio/album-web/internal/pkg/errorhandler"
	"github.com/albumstudio/album-web/internal/pkg/response"
	"github.com/albumstudio/album-web/internal/pkg/validator"
)

// Handler handles photo HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates photo handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListAll handles GET /api/all-photos
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.List(r.Context(), queryInt(r, "skip"), queryInt(r, "limit"))
	if err != nil {
		errorhandler.Respond(r.Context(), w, err, "Failed to fetch photos")
		return
	}

	response.OK(w, photos)
}

// Recent handles GET /api/recent-photos
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.Recent(r.Context(), queryInt(r, "limit"))
	if err != nil {
		errorhandler.Respond(r.Context(), w, err, "Failed to fetch recent photos")
		return
	}

	response.OK(w, photos)
}

// Upload handles POST /api/upload (multipart, field "file")
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file uploaded")
		return
	}
	defer file.Close()

	result, err := h.service.Upload(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, ErrNoFile) {
			response.BadRequest(w, "No file uploaded")
			return
		}
		errorhandler.Respond(r.Context(), w, err, "Error processing upload")
		return
	}

	response.OK(w, result)
}

// BulkDelete handles POST /api/photos/bulk-delete
func (h *Handler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid photoIds provided")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.BulkDelete(r.Context(), req.PhotoIDs)
	if err != nil {
		if errors.Is(err, ErrEmptySelection) {
			response.BadRequest(w, "Invalid photoIds provided")
			return
		}
		errorhandler.Respond(r.Context(), w, err, "Failed to delete photos")
		return
	}

	response.OK(w, result)
}

// queryInt reads a numeric query parameter, returning -1 for absent or
// non-numeric values so the service falls back to its defaults.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return -1
	}
	return v
}
