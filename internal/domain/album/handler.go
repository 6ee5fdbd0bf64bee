package album

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/albumstudio/album-web/internal/pkg/errorhandler"
	"github.com/albumstudio/album-web/internal/pkg/response"
	"github.com/albumstudio/album-web/internal/pkg/validator"
)

const maxGenerateMemory = 32 << 20

// Handler handles album HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates album handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListAll handles GET /api/all-albums
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	albums, err := h.service.List(r.Context(), queryInt(r, "skip"), queryInt(r, "limit"))
	if err != nil {
		errorhandler.Respond(r.Context(), w, err, "Failed to fetch albums")
		return
	}

	response.OK(w, albums)
}

// Recent handles GET /api/recent-albums
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	albums, err := h.service.Recent(r.Context(), queryInt(r, "limit"))
	if err != nil {
		errorhandler.Respond(r.Context(), w, err, "Failed to fetch recent albums")
		return
	}

	response.OK(w, albums)
}

// Get handles GET /api/albums/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invalid album ID")
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		errorhandler.Respond(r.Context(), w, err, "Failed to fetch album")
		return
	}

	response.OK(w, a)
}

// Generate handles POST /api/generate-album (multipart: theme and/or image)
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxGenerateMemory); err != nil {
		response.BadRequest(w, "Invalid form data")
		return
	}

	in := GenerateInput{Theme: r.FormValue("theme")}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		in.Image = file
		in.ImageName = header.Filename
	}

	if !in.hasTheme() && !in.hasImage() {
		response.BadRequest(w, "Please provide either a theme or an image")
		return
	}

	a, err := h.service.Generate(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrNothingToGenerate) {
			response.BadRequest(w, "Please provide either a theme or an image")
			return
		}
		errorhandler.Respond(r.Context(), w, err, "Error generating album")
		return
	}

	response.Created(w, a)
}

// BulkDelete handles POST /api/albums/bulk-delete
func (h *Handler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid albumIds provided")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.BulkDelete(r.Context(), req.AlbumIDs)
	if err != nil {
		if errors.Is(err, ErrEmptySelection) {
			response.BadRequest(w, "Invalid albumIds provided")
			return
		}
		errorhandler.Respond(r.Context(), w, err, "Failed to delete albums")
		return
	}

	response.OK(w, result)
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return -1
	}
	return v
}
