package photo

import (
	"github.com/go-chi/chi/v5"
)

// Register attaches the photo routes to the /api router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/all-photos", h.ListAll)
	r.Get("/recent-photos", h.Recent)
	r.Post("/upload", h.Upload)
	r.Post("/photos/bulk-delete", h.BulkDelete)
}
