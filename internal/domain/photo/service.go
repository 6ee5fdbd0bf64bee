package photo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/albumstudio/album-web/internal/pkg/gateway"
)

const (
	DefaultSkip        = 0
	DefaultLimit       = 20
	DefaultRecentLimit = 4
)

// Service normalizes the backend's photo endpoints into the frontend model.
type Service struct {
	gw     *gateway.Client
	tmpDir string
}

// NewService creates photo service. tmpDir is the scratch directory uploads
// are staged in before they are forwarded.
func NewService(gw *gateway.Client, tmpDir string) *Service {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Service{gw: gw, tmpDir: tmpDir}
}

// List fetches a photo page. Out-of-range values fall back to skip=0,
// limit=20.
func (s *Service) List(ctx context.Context, skip, limit int) ([]Photo, error) {
	if skip < 0 {
		skip = DefaultSkip
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	raw, err := s.gw.GetJSON(ctx, fmt.Sprintf("/all-photos?skip=%d&limit=%d", skip, limit))
	if err != nil {
		return nil, err
	}
	return decodePhotoEnvelope("photos", raw)
}

// Recent fetches the newest photos, default limit 4.
func (s *Service) Recent(ctx context.Context, limit int) ([]Photo, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	raw, err := s.gw.GetJSON(ctx, fmt.Sprintf("/recent-photos?limit=%d", limit))
	if err != nil {
		return nil, err
	}
	return decodePhotoEnvelope("photos", raw)
}

// Upload stages the incoming file in the scratch directory, forwards it to
// the backend as multipart "file" and reports the stored image. The staged
// file is removed on success and failure alike.
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	if filename == "" || r == nil {
		return nil, ErrNoFile
	}

	staged := filepath.Join(s.tmpDir, uuid.New().String()+"-"+filepath.Base(filename))
	f, err := os.Create(staged)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer func() {
		if err := os.Remove(staged); err != nil {
			log.Warn().Err(err).Str("path", staged).Msg("Failed to remove staged upload")
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	staged2, err := os.Open(staged)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer staged2.Close()

	form := gateway.NewForm()
	if err := form.AddFile("file", filepath.Base(filename), staged2); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	raw, err := s.gw.PostForm(ctx, "/upload-image", form)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ImageID    string          `json:"image_id"`
		S3URL      string          `json:"s3_url"`
		CrewResult json.RawMessage `json:"crew_result"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &gateway.ContractError{Resource: "upload", Reason: "response is not a JSON object"}
	}
	if payload.ImageID == "" {
		return nil, &gateway.ContractError{Resource: "upload", Reason: "image_id missing"}
	}

	return &UploadResult{
		ImageID:    payload.ImageID,
		S3URL:      payload.S3URL,
		CrewResult: payload.CrewResult,
	}, nil
}

// BulkDelete asks the backend to remove the given photos. An empty selection
// never reaches the network.
func (s *Service) BulkDelete(ctx context.Context, photoIDs []string) (*BulkDeleteResult, error) {
	if len(photoIDs) == 0 {
		return nil, ErrEmptySelection
	}

	raw, err := s.gw.PostJSON(ctx, "/photos/bulk-delete", map[string][]string{"photo_ids": photoIDs})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Message    string   `json:"message"`
		Successful []string `json:"successful"`
		Failed     []string `json:"failed"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &gateway.ContractError{Resource: "photos/bulk-delete", Reason: "response is not a JSON object"}
	}

	return &BulkDeleteResult{
		Message: payload.Message,
		Deleted: payload.Successful,
		Failed:  payload.Failed,
	}, nil
}

// photoDoc accepts both the backend's formatted shape and raw Mongo documents
// that carry _id instead of id.
type photoDoc struct {
	ID        string `json:"id"`
	AltID     string `json:"_id"`
	URL       string `json:"url"`
	S3URL     string `json:"s3_url"`
	CreatedAt string `json:"createdAt"`
}

func (d photoDoc) toPhoto() Photo {
	p := Photo{ID: d.ID, URL: d.URL, CreatedAt: d.CreatedAt}
	if p.ID == "" {
		p.ID = d.AltID
	}
	if p.URL == "" {
		p.URL = d.S3URL
	}
	return p
}

// DecodeArray decodes a JSON array of photo documents, failing with a
// ContractError when the value is missing or not an array. field names the
// offending response key in the error.
func DecodeArray(resource, field string, raw json.RawMessage) ([]Photo, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, &gateway.ContractError{Resource: resource, Reason: field + " is not an array"}
	}

	var docs []photoDoc
	if err := json.Unmarshal(trimmed, &docs); err != nil {
		return nil, &gateway.ContractError{Resource: resource, Reason: field + " is not an array"}
	}

	photos := make([]Photo, len(docs))
	for i, d := range docs {
		photos[i] = d.toPhoto()
	}
	return photos, nil
}

// DecodeOne decodes a single photo document, tolerating the same id/url
// variants as DecodeArray. ok is false when raw is absent, null, or carries
// no usable id.
func DecodeOne(raw json.RawMessage) (Photo, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return Photo{}, false
	}

	var doc photoDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Photo{}, false
	}

	p := doc.toPhoto()
	if p.ID == "" {
		return Photo{}, false
	}
	return p, true
}

func decodePhotoEnvelope(resource string, raw json.RawMessage) ([]Photo, error) {
	var payload struct {
		Photos json.RawMessage `json:"photos"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &gateway.ContractError{Resource: resource, Reason: "response is not a JSON object"}
	}
	return DecodeArray(resource, "photos", payload.Photos)
}
