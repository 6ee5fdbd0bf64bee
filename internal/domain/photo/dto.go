package photo

import "encoding/json"

// BulkDeleteRequest for POST /api/photos/bulk-delete. The camelCase ids are
// renamed to the backend's snake_case on the way out.
type BulkDeleteRequest struct {
	PhotoIDs []string `json:"photoIds" validate:"required,min=1,dive,entityid"`
}

// BulkDeleteResult reports what the backend actually deleted. Partial
// failures are data, not an error.
type BulkDeleteResult struct {
	Message string   `json:"message,omitempty"`
	Deleted []string `json:"deleted,omitempty"`
	Failed  []string `json:"failed,omitempty"`
}

// UploadResult for POST /api/upload.
type UploadResult struct {
	ImageID    string          `json:"imageId"`
	S3URL      string          `json:"s3Url,omitempty"`
	CrewResult json.RawMessage `json:"crewResult,omitempty"`
}
