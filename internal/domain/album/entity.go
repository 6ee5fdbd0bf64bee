package album

import (
	"github.com/albumstudio/album-web/internal/domain/photo"
)

// Album is a themed photo collection as the backend presents it. Identity is
// immutable; only VideoURL and image membership change after creation.
type Album struct {
	ID          string        `json:"id"`
	Name        string        `json:"album_name"`
	Description string        `json:"description,omitempty"`
	Images      []photo.Photo `json:"images"`
	CoverImage  *photo.Photo  `json:"cover_image,omitempty"`
	CreatedAt   string        `json:"createdAt,omitempty"`
	VideoURL    string        `json:"video_url,omitempty"`
}

// HasVideo reports whether a compilation video exists; it decides between
// "generate" and "play/download" affordances in the UI.
func (a *Album) HasVideo() bool {
	return a.VideoURL != ""
}

// PhotoCount returns the number of photos in the album.
func (a *Album) PhotoCount() int {
	return len(a.Images)
}
