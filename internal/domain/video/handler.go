package video

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albumstudio/album-web/internal/pkg/errorhandler"
	"github.com/albumstudio/album-web/internal/pkg/response"
)

// Handler handles video HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates video handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Generate handles POST /api/generate-video/{id}
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invalid album ID")
		return
	}

	ack, err := h.service.Generate(r.Context(), id)
	if err != nil {
		errorhandler.Respond(r.Context(), w, err, "Failed to generate video")
		return
	}

	response.Accepted(w, ack)
}

// Download handles GET /api/download-video/{id}
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invalid album ID")
		return
	}

	link, err := h.service.DownloadURL(r.Context(), id)
	if err != nil {
		errorhandler.Respond(r.Context(), w, err, "Failed to get video download URL")
		return
	}

	response.OK(w, DownloadResult{DownloadURL: link})
}

// Register attaches the video routes to the /api router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/generate-video/{id}", h.Generate)
	r.Get("/download-video/{id}", h.Download)
}
