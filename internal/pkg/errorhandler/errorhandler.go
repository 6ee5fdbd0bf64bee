package errorhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/albumstudio/album-web/internal/middleware"
	"github.com/albumstudio/album-web/internal/pkg/gateway"
	"github.com/albumstudio/album-web/internal/pkg/response"
)

// Respond maps a normalizer error onto an HTTP response and logs it once.
// Backend statuses pass through as-is, contract violations and transport
// failures become 502, everything else is the caller's fallback message.
func Respond(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	var se *gateway.StatusError
	if errors.As(err, &se) {
		logError(ctx, err, se.Status)
		response.Error(w, se.Status, "BACKEND_ERROR", fallback+": "+se.Message)
		return
	}

	var ce *gateway.ContractError
	if errors.As(err, &ce) {
		logError(ctx, err, http.StatusBadGateway)
		response.Error(w, http.StatusBadGateway, "CONTRACT_VIOLATION", fallback)
		return
	}

	// Transport failures and anything unclassified.
	logError(ctx, err, http.StatusBadGateway)
	response.BadGateway(w, fallback)
}

func logError(ctx context.Context, err error, status int) {
	log.Error().
		Str("request_id", middleware.GetRequestID(ctx)).
		Int("status_code", status).
		Err(err).
		Msg("Request error")
}
