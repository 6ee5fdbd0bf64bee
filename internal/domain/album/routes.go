package album

import (
	"github.com/go-chi/chi/v5"
)

// Register attaches the album routes to the /api router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/all-albums", h.ListAll)
	r.Get("/recent-albums", h.Recent)
	r.Get("/albums/{id}", h.Get)
	r.Post("/generate-album", h.Generate)
	r.Post("/albums/bulk-delete", h.BulkDelete)
}
