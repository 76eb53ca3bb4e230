package ingestion

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	v1 "github.com/playground-analytics/aggview/internal/api/v1"
	httperr "github.com/playground-analytics/aggview/internal/core/errors"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgPersistFailed  = "Failed to persist activity"
	msgQueryFailed    = "Failed to query activity"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// RecordHandler handles POST /v1/activity.
func (s *Service) RecordHandler(c *gin.Context) {
	evt, payloadSize, err := s.parseActivity(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := validateActivity(evt); err != nil {
		writeError(c, err)
		return
	}

	slog.Debug("Received activity",
		"session_id", evt.SessionID,
		"created_ts", evt.CreatedTS,
		"payload_size", payloadSize)

	if err := s.persistActivity(c.Request.Context(), evt); err != nil {
		writeError(c, err)
		return
	}

	// The hourly job picks it up once its hour is complete.
	c.JSON(http.StatusAccepted, gin.H{
		"status":     "accepted",
		"created_ts": evt.CreatedTS,
	})
}

// ListActivityHandler handles GET /v1/activity?start=<epoch>&end=<epoch>&limit=<n>.
// Returns raw events with start <= created_ts < end.
func (s *Service) ListActivityHandler(c *gin.Context) {
	startTS, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		writeError(c, invalidQuery("start must be an epoch-seconds integer"))
		return
	}
	endTS, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		writeError(c, invalidQuery("end must be an epoch-seconds integer"))
		return
	}
	if endTS <= startTS {
		writeError(c, invalidQuery("end must be after start"))
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxListLimit {
			writeError(c, invalidQuery("limit must be between 1 and 10000"))
			return
		}
	}

	events, err := s.store.ListActivity(c.Request.Context(), startTS, endTS, limit)
	if err != nil {
		slog.Error("Failed to list activity", "error", err, "start", startTS, "end", endTS)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgQueryFailed,
		})
		return
	}
	if events == nil {
		events = []*v1.ActivityEvent{}
	}

	c.JSON(http.StatusOK, events)
}

// parseActivity reads the raw request body and binds it into an ActivityEvent.
// Returns the parsed event and the raw payload size (used for structured logging upstream).
func (s *Service) parseActivity(c *gin.Context) (*v1.ActivityEvent, int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var evt v1.ActivityEvent
	if err := c.ShouldBindJSON(&evt); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	// created_ts is always the server receive time; a client-sent value is ignored.
	evt.CreatedTS = s.nowFn().Unix()
	return &evt, len(bodyBytes), nil
}

func validateActivity(evt *v1.ActivityEvent) *ingestionError {
	if err := evt.Validate(); err != nil {
		slog.Warn("Activity validation failed", "error", err)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    err.Error(),
		}
	}
	return nil
}

// persistActivity appends the event to the raw log.
func (s *Service) persistActivity(ctx context.Context, evt *v1.ActivityEvent) *ingestionError {
	if err := s.store.SaveActivity(ctx, evt); err != nil {
		slog.Error("Failed to persist activity", "error", err, "session_id", evt.SessionID)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}
	return nil
}

func invalidQuery(msg string) *ingestionError {
	return &ingestionError{
		statusCode: http.StatusBadRequest,
		errorType:  httperr.HttpInvalidQueryError,
		message:    msg,
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
