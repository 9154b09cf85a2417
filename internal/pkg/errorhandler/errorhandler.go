package errorhandler

import (
	"context"
	"net/http"

	"github.com/stayhaven/hotel-api/internal/pkg/logger"
	"github.com/stayhaven/hotel-api/internal/pkg/response"
)

// HandleError logs the failure on the request logger and writes the error envelope.
// Server-side failures (5xx) are logged at error level, client mistakes at warn.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	l := logger.FromContext(ctx)
	event := l.Warn()
	if status >= http.StatusInternalServerError {
		event = l.Error()
	}
	if err != nil {
		event = event.Err(err)
	}
	event.
		Str("error_code", code).
		Int("status_code", status).
		Msg(message)

	response.Error(w, status, code, message)
}

// Internal logs err and answers with the generic 500 envelope.
func Internal(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	logger.FromContext(ctx).Error().Err(err).Msg(msg)
	response.InternalError(w)
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	logger.FromContext(ctx).Warn().
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}
