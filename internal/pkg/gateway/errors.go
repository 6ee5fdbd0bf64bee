package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// StatusError reports a non-2xx backend response. Message is drawn from the
// backend's JSON error body when one is present, otherwise from the raw text.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend http error: status=%d message=%s", e.Status, e.Message)
}

// ContractError reports a 2xx backend response whose JSON does not match the
// shape the normalizer expects. It is fatal for the request and never retried.
type ContractError struct {
	Resource string
	Reason   string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("backend contract violation: resource=%s reason=%s", e.Resource, e.Reason)
}

// IsStatus reports whether err is a StatusError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

const maxErrorBody = 512

// errorMessage extracts a human-readable message from an error body. FastAPI
// uses "detail", the historical route shims used "error" and "message".
func errorMessage(body []byte, fallback string) string {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, key := range []string{"error", "detail", "message"} {
			var msg string
			if raw, ok := parsed[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
				return msg
			}
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return fallback
	}
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "...<truncated>"
	}
	return text
}

func classifyRequestError(ctx context.Context, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("backend timeout: %w", err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("backend network error: %w", err)
	}
	return fmt.Errorf("backend request error: %w", err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	return false
}
