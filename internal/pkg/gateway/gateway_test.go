package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetJSONSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Path != "/all-photos" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.RawQuery != "skip=0&limit=20" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"photos":[{"id":"p1"}]}`))
	}))
	t.Cleanup(server.Close)

	client := New(Config{BackendURL: server.URL}, ModeServer)
	raw, err := client.GetJSON(context.Background(), "/all-photos?skip=0&limit=20")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var parsed struct {
		Photos []struct {
			ID string `json:"id"`
		} `json:"photos"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(parsed.Photos) != 1 || parsed.Photos[0].ID != "p1" {
		t.Fatalf("unexpected payload: %s", raw)
	}
}

func TestModeSelectsBaseURL(t *testing.T) {
	cfg := Config{
		BackendURL:   "http://backend:8000/",
		PublicAPIURL: "http://localhost:8000",
	}

	if got := New(cfg, ModeServer).BaseURL(); got != "http://backend:8000" {
		t.Fatalf("server mode base = %q", got)
	}
	if got := New(cfg, ModeClient).BaseURL(); got != "http://localhost:8000" {
		t.Fatalf("client mode base = %q", got)
	}
}

func TestStatusErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error key", http.StatusBadRequest, `{"error":"no file uploaded"}`, "no file uploaded"},
		{"fastapi detail", http.StatusNotFound, `{"detail":"Album not found"}`, "Album not found"},
		{"message key", http.StatusConflict, `{"message":"duplicate"}`, "duplicate"},
		{"raw text", http.StatusBadGateway, "upstream exploded", "upstream exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			client := New(Config{BackendURL: server.URL}, ModeServer)
			_, err := client.GetJSON(context.Background(), "/albums/x")
			if err == nil {
				t.Fatal("expected error")
			}

			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected StatusError, got %T: %v", err, err)
			}
			if se.Status != tt.status {
				t.Fatalf("status = %d, want %d", se.Status, tt.status)
			}
			if se.Message != tt.message {
				t.Fatalf("message = %q, want %q", se.Message, tt.message)
			}
		})
	}
}

func TestEmptyBodyBecomesNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := New(Config{BackendURL: server.URL}, ModeServer)
	raw, err := client.PostJSON(context.Background(), "/albums/bulk-delete", map[string][]string{"album_ids": {"a1"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(raw) != "null" {
		t.Fatalf("raw = %q, want null", raw)
	}
}

func TestNetworkErrorClassified(t *testing.T) {
	// Nothing listens here.
	client := New(Config{BackendURL: "http://127.0.0.1:1"}, ModeServer)
	_, err := client.GetJSON(context.Background(), "/all-photos")
	if err == nil {
		t.Fatal("expected network error")
	}
	if !strings.Contains(err.Error(), "backend network error") {
		t.Fatalf("expected network classification, got %v", err)
	}

	var se *StatusError
	if errors.As(err, &se) {
		t.Fatal("transport failure must not be a StatusError")
	}
}

func TestPostFormCarriesFieldsAndFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.FormValue("theme") != "beach sunset" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		if header.Filename != "photo.jpg" || string(content) != "jpeg-bytes" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)

	form := NewForm()
	if err := form.AddField("theme", "beach sunset"); err != nil {
		t.Fatal(err)
	}
	if err := form.AddFile("image", "photo.jpg", strings.NewReader("jpeg-bytes")); err != nil {
		t.Fatal(err)
	}

	client := New(Config{BackendURL: server.URL}, ModeServer)
	if _, err := client.PostForm(context.Background(), "/generate-album", form); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
