package album

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albumstudio/album-web/internal/domain/photo"
	"github.com/albumstudio/album-web/internal/pkg/gateway"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gw := gateway.New(gateway.Config{BackendURL: server.URL}, gateway.ModeServer)
	return NewService(gw, t.TempDir())
}

func TestGetReshapesAlbum(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/albums/a1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{
			"_id": "a1",
			"album_name": "Summer 2024",
			"description": "Beach trip",
			"images": [{"id":"p1","url":"http://cdn/p1.jpg"},{"_id":"p2","s3_url":"http://cdn/p2.jpg"}],
			"cover_image": {"id":"p1","url":"http://cdn/p1.jpg"},
			"createdAt": "2024-06-01T12:00:00Z",
			"video_url": "http://cdn/a1.mp4"
		}`))
	})

	album, err := svc.Get(context.Background(), "a1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := &Album{
		ID:          "a1",
		Name:        "Summer 2024",
		Description: "Beach trip",
		Images: []photo.Photo{
			{ID: "p1", URL: "http://cdn/p1.jpg"},
			{ID: "p2", URL: "http://cdn/p2.jpg"},
		},
		CoverImage: &photo.Photo{ID: "p1", URL: "http://cdn/p1.jpg"},
		CreatedAt:  "2024-06-01T12:00:00Z",
		VideoURL:   "http://cdn/a1.mp4",
	}
	if diff := cmp.Diff(want, album); diff != "" {
		t.Fatalf("album mismatch (-want +got):\n%s", diff)
	}
	if !album.HasVideo() {
		t.Fatal("HasVideo() = false, want true")
	}
}

func TestGetNormalizesRawCoverDocument(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"_id": "a1",
			"album_name": "Summer 2024",
			"images": [{"_id":"p1","s3_url":"http://cdn/p1.jpg"}],
			"cover_image": {"_id":"p1","s3_url":"http://cdn/p1.jpg"}
		}`))
	})

	album, err := svc.Get(context.Background(), "a1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := &photo.Photo{ID: "p1", URL: "http://cdn/p1.jpg"}
	if diff := cmp.Diff(want, album.CoverImage); diff != "" {
		t.Fatalf("cover mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMissingImagesIsContractViolation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing key", `{"id":"a1","album_name":"x"}`},
		{"null", `{"id":"a1","album_name":"x","images":null}`},
		{"not an array", `{"id":"a1","album_name":"x","images":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := svc.Get(context.Background(), "a1")
			var ce *gateway.ContractError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ContractError, got %v", err)
			}
		})
	}
}

func TestGetNotFoundKeepsBackendStatus(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Album not found"}`))
	})

	_, err := svc.Get(context.Background(), "missing")
	var se *gateway.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusNotFound || se.Message != "Album not found" {
		t.Fatalf("got status %d message %q", se.Status, se.Message)
	}
}

func TestGetEscapesID(t *testing.T) {
	var gotPath string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"id":"x","album_name":"x","images":[]}`))
	})

	if _, err := svc.Get(context.Background(), "a/1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotPath != "/albums/a%2F1" {
		t.Fatalf("path = %q, want escaped id", gotPath)
	}
}

func TestListValidatesEveryAlbum(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"albums":[{"id":"a1","album_name":"ok","images":[]},{"id":"a2","album_name":"broken"}]}`))
	})

	_, err := svc.List(context.Background(), 0, 20)
	var ce *gateway.ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ContractError for album without images, got %v", err)
	}
}

func TestGenerateThemeWinsOverImage(t *testing.T) {
	var gotTheme string
	var hadImage bool
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate-album" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotTheme = r.FormValue("theme")
		_, _, err := r.FormFile("image")
		hadImage = err == nil
		_, _ = w.Write([]byte(`{"id":"a9","album_name":"vacation","images":[]}`))
	})

	album, err := svc.Generate(context.Background(), GenerateInput{
		Theme:     "vacation",
		ImageName: "hint.jpg",
		Image:     strings.NewReader("jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotTheme != "vacation" {
		t.Fatalf("theme = %q, want vacation", gotTheme)
	}
	if hadImage {
		t.Fatal("image forwarded although theme was given")
	}
	if album.ID != "a9" {
		t.Fatalf("album = %+v", album)
	}
}

func TestGenerateForwardsImageWhenNoTheme(t *testing.T) {
	var gotFilename string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("image")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotFilename = header.Filename
		_, _ = w.Write([]byte(`{"id":"a2","album_name":"from image","images":[]}`))
	})

	_, err := svc.Generate(context.Background(), GenerateInput{
		ImageName: "hint.jpg",
		Image:     strings.NewReader("jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotFilename != "hint.jpg" {
		t.Fatalf("forwarded filename = %q", gotFilename)
	}
}

func TestGenerateWithoutInputsNeverCallsBackend(t *testing.T) {
	calls := 0
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	if _, err := svc.Generate(context.Background(), GenerateInput{}); !errors.Is(err, ErrNothingToGenerate) {
		t.Fatalf("expected ErrNothingToGenerate, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("backend called %d times, want 0", calls)
	}
}

func TestBulkDeleteToleratesEmptyAck(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	result, err := svc.BulkDelete(context.Background(), []string{"a1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Message == "" {
		t.Fatal("expected a default ack message")
	}
}

func TestBulkDeleteEmptySelectionNeverCallsBackend(t *testing.T) {
	calls := 0
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	if _, err := svc.BulkDelete(context.Background(), nil); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("backend called %d times, want 0", calls)
	}
}
