package video

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/albumstudio/album-web/internal/pkg/gateway"
)

// Service normalizes the backend's video endpoints. Video rendering itself
// runs asynchronously on the backend; this layer only starts it and fetches
// download links.
type Service struct {
	gw *gateway.Client
}

// NewService creates video service.
func NewService(gw *gateway.Client) *Service {
	return &Service{gw: gw}
}

// Generate starts video compilation for an album. The backend acks
// immediately; the video appears on the album later.
func (s *Service) Generate(ctx context.Context, albumID string) (*GenerateAck, error) {
	raw, err := s.gw.PostJSON(ctx, "/generate-video/"+url.PathEscape(albumID), nil)
	if err != nil {
		return nil, err
	}

	ack := &GenerateAck{AlbumID: albumID, Message: "Video generation started"}
	var payload struct {
		Message string `json:"message"`
		AlbumID string `json:"album_id"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		ack.Message = payload.Message
	}
	return ack, nil
}

// DownloadURL fetches a short-lived download link for a completed video.
func (s *Service) DownloadURL(ctx context.Context, albumID string) (string, error) {
	raw, err := s.gw.GetJSON(ctx, "/download-video/"+url.PathEscape(albumID))
	if err != nil {
		return "", err
	}

	var payload struct {
		DownloadURL string `json:"download_url"`
		URL         string `json:"url"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", &gateway.ContractError{Resource: "download-video/" + albumID, Reason: "response is not a JSON object"}
	}

	link := payload.DownloadURL
	if link == "" {
		link = payload.URL
	}
	if link == "" {
		return "", &gateway.ContractError{Resource: "download-video/" + albumID, Reason: "download_url missing"}
	}
	return link, nil
}
