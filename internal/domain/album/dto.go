package album

import "io"

// BulkDeleteRequest for POST /api/albums/bulk-delete.
type BulkDeleteRequest struct {
	AlbumIDs []string `json:"albumIds" validate:"required,min=1,dive,entityid"`
}

// BulkDeleteResult reports what the backend deleted.
type BulkDeleteResult struct {
	Message string   `json:"message,omitempty"`
	Deleted []string `json:"deleted,omitempty"`
	Failed  []string `json:"failed,omitempty"`
}

// GenerateInput carries exactly one of a theme or a seed image. When both
// are set the theme wins and the image is ignored.
type GenerateInput struct {
	Theme     string
	ImageName string
	Image     io.Reader
}

func (in *GenerateInput) hasTheme() bool {
	return in.Theme != ""
}

func (in *GenerateInput) hasImage() bool {
	return in.Image != nil && in.ImageName != ""
}
