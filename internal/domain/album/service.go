package album

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/albumstudio/album-web/internal/domain/photo"
	"github.com/albumstudio/album-web/internal/pkg/gateway"
)

const (
	DefaultSkip        = 0
	DefaultLimit       = 20
	DefaultRecentLimit = 4
)

// Service normalizes the backend's album endpoints into the frontend model.
type Service struct {
	gw     *gateway.Client
	tmpDir string
}

// NewService creates album service.
func NewService(gw *gateway.Client, tmpDir string) *Service {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Service{gw: gw, tmpDir: tmpDir}
}

// List fetches an album page. Out-of-range values fall back to skip=0,
// limit=20.
func (s *Service) List(ctx context.Context, skip, limit int) ([]Album, error) {
	if skip < 0 {
		skip = DefaultSkip
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	raw, err := s.gw.GetJSON(ctx, fmt.Sprintf("/all-albums?skip=%d&limit=%d", skip, limit))
	if err != nil {
		return nil, err
	}
	return decodeAlbumEnvelope("albums", raw)
}

// Recent fetches the newest albums, default limit 4.
func (s *Service) Recent(ctx context.Context, limit int) ([]Album, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	raw, err := s.gw.GetJSON(ctx, fmt.Sprintf("/recent-albums?limit=%d", limit))
	if err != nil {
		return nil, err
	}
	return decodeAlbumEnvelope("albums", raw)
}

// Get fetches a single album. A backend 404 propagates as a StatusError; an
// album without an images array is rejected outright, never returned
// partially populated.
func (s *Service) Get(ctx context.Context, id string) (*Album, error) {
	raw, err := s.gw.GetJSON(ctx, "/albums/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeAlbum("albums/"+id, raw)
}

// Generate asks the backend to build a themed album. The call is synchronous;
// the new album comes back in the response. Callers must supply a theme or a
// seed image; with both, the theme wins.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Album, error) {
	form := gateway.NewForm()

	switch {
	case in.hasTheme():
		if err := form.AddField("theme", in.Theme); err != nil {
			return nil, fmt.Errorf("build generate form: %w", err)
		}

	case in.hasImage():
		staged := filepath.Join(s.tmpDir, uuid.New().String()+"-"+filepath.Base(in.ImageName))
		f, err := os.Create(staged)
		if err != nil {
			return nil, fmt.Errorf("stage image: %w", err)
		}
		defer func() {
			if err := os.Remove(staged); err != nil {
				log.Warn().Err(err).Str("path", staged).Msg("Failed to remove staged image")
			}
		}()

		if _, err := io.Copy(f, in.Image); err != nil {
			f.Close()
			return nil, fmt.Errorf("stage image: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("stage image: %w", err)
		}

		seed, err := os.Open(staged)
		if err != nil {
			return nil, fmt.Errorf("stage image: %w", err)
		}
		defer seed.Close()

		if err := form.AddFile("image", filepath.Base(in.ImageName), seed); err != nil {
			return nil, fmt.Errorf("build generate form: %w", err)
		}

	default:
		return nil, ErrNothingToGenerate
	}

	raw, err := s.gw.PostForm(ctx, "/generate-album", form)
	if err != nil {
		return nil, err
	}
	return decodeAlbum("generate-album", raw)
}

// BulkDelete asks the backend to remove the given albums. An empty selection
// never reaches the network. An empty 2xx body is tolerated.
func (s *Service) BulkDelete(ctx context.Context, albumIDs []string) (*BulkDeleteResult, error) {
	if len(albumIDs) == 0 {
		return nil, ErrEmptySelection
	}

	raw, err := s.gw.PostJSON(ctx, "/albums/bulk-delete", map[string][]string{"album_ids": albumIDs})
	if err != nil {
		return nil, err
	}

	result := &BulkDeleteResult{Message: "Albums deleted"}
	if string(raw) == "null" {
		return result, nil
	}

	var payload struct {
		Message    string   `json:"message"`
		Successful []string `json:"successful"`
		Failed     []string `json:"failed"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Non-JSON ack bodies have been observed; keep the default message.
		return result, nil
	}

	if payload.Message != "" {
		result.Message = payload.Message
	}
	result.Deleted = payload.Successful
	result.Failed = payload.Failed
	return result, nil
}

// albumDoc accepts both the backend's formatted shape and raw documents that
// carry _id instead of id.
type albumDoc struct {
	ID          string          `json:"id"`
	AltID       string          `json:"_id"`
	Name        string          `json:"album_name"`
	Description string          `json:"description"`
	Images      json.RawMessage `json:"images"`
	CoverImage  json.RawMessage `json:"cover_image"`
	CreatedAt   string          `json:"createdAt"`
	VideoURL    string          `json:"video_url"`
}

func (d *albumDoc) toAlbum(resource string) (*Album, error) {
	images, err := photo.DecodeArray(resource, "images", d.Images)
	if err != nil {
		return nil, err
	}

	a := &Album{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Images:      images,
		CreatedAt:   d.CreatedAt,
		VideoURL:    d.VideoURL,
	}
	if a.ID == "" {
		a.ID = d.AltID
	}

	if cover, ok := photo.DecodeOne(d.CoverImage); ok {
		a.CoverImage = &cover
	}

	return a, nil
}

func decodeAlbum(resource string, raw json.RawMessage) (*Album, error) {
	var doc albumDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &gateway.ContractError{Resource: resource, Reason: "response is not a JSON object"}
	}
	return doc.toAlbum(resource)
}

func decodeAlbumEnvelope(resource string, raw json.RawMessage) ([]Album, error) {
	var payload struct {
		Albums []json.RawMessage `json:"albums"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &gateway.ContractError{Resource: resource, Reason: "response is not a JSON object"}
	}
	if payload.Albums == nil {
		return nil, &gateway.ContractError{Resource: resource, Reason: "albums is not an array"}
	}

	albums := make([]Album, 0, len(payload.Albums))
	for _, rawAlbum := range payload.Albums {
		a, err := decodeAlbum(resource, rawAlbum)
		if err != nil {
			return nil, err
		}
		albums = append(albums, *a)
	}
	return albums, nil
}
