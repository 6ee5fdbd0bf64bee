package photo

// Photo is a single uploaded image as the backend presents it. The backend
// owns the canonical record; this layer only holds re-fetchable copies.
type Photo struct {
	ID        string `json:"id"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// HasMedia reports whether the photo carries a resolvable media location;
// callers render a placeholder when it does not.
func (p *Photo) HasMedia() bool {
	return p.URL != ""
}
