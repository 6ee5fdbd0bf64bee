package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"
)

// Mode selects which base URL a client resolves against. The album backend is
// reachable through an internal service hostname from the web tier and through
// a public hostname from anything outside the cluster, so the two execution
// contexts need different bases.
type Mode int

const (
	// ModeServer targets the internal backend hostname (BACKEND_URL).
	ModeServer Mode = iota
	// ModeClient targets the publicly routable hostname (PUBLIC_API_URL).
	ModeClient
)

// Config carries both backend bases; the mode picks one at construction time.
type Config struct {
	BackendURL   string
	PublicAPIURL string
}

// Client is a thin HTTP client for the album backend. It does not retry, does
// not cache, and sets no timeout beyond the transport defaults; failures
// propagate immediately to the caller.
type Client struct {
	baseURL string
	ua      string
	http    *http.Client
}

// New creates a backend client resolved for the given execution context.
func New(cfg Config, mode Mode) *Client {
	base := cfg.BackendURL
	if mode == ModeClient {
		base = cfg.PublicAPIURL
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		ua:      "album-web/1.0",
		http:    &http.Client{Transport: transport},
	}
}

// BaseURL returns the resolved backend base for this client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON performs a GET and returns the raw JSON body.
func (c *Client) GetJSON(ctx context.Context, path string) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, path, "", nil)
}

// PostJSON marshals body and POSTs it as application/json.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend request error: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	return c.call(ctx, http.MethodPost, path, "application/json", reader)
}

// PostForm POSTs a multipart form built with NewForm.
func (c *Client) PostForm(ctx context.Context, path string, form *Form) (json.RawMessage, error) {
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("backend request error: %w", err)
	}
	return c.call(ctx, http.MethodPost, path, form.ContentType(), form.Reader())
}

func (c *Client) call(ctx context.Context, method, path, contentType string, body io.Reader) (json.RawMessage, error) {
	if c == nil || c.http == nil {
		return nil, fmt.Errorf("backend request error: client is nil")
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return nil, fmt.Errorf("backend config error: base url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("backend request error: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if readErr != nil {
			return nil, &StatusError{Status: resp.StatusCode, Message: resp.Status}
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}

	if readErr != nil {
		return nil, fmt.Errorf("backend response error: %w", readErr)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		// Some mutating endpoints answer 200 with an empty body.
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(raw), nil
}

// Form accumulates a multipart/form-data request body.
type Form struct {
	buf bytes.Buffer
	mw  *multipart.Writer
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	f := &Form{}
	f.mw = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) error {
	return f.mw.WriteField(name, value)
}

// AddFile streams r into a file part.
func (f *Form) AddFile(field, filename string, r io.Reader) error {
	part, err := f.mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

// Close finalizes the multipart body. Safe to call more than once.
func (f *Form) Close() error {
	return f.mw.Close()
}

// ContentType returns the multipart content type with its boundary.
func (f *Form) ContentType() string {
	return f.mw.FormDataContentType()
}

// Reader returns the accumulated body.
func (f *Form) Reader() io.Reader {
	return &f.buf
}
