package video

// GenerateAck for POST /api/generate-video/{id}: processing started, the
// result lands on the album asynchronously.
type GenerateAck struct {
	Message string `json:"message"`
	AlbumID string `json:"albumId"`
}

// DownloadResult for GET /api/download-video/{id}.
type DownloadResult struct {
	DownloadURL string `json:"downloadUrl"`
}
