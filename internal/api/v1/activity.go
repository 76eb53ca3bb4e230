package v1

import (
	"fmt"
	"strings"
)

// ActivityEvent is one user activity record in the raw activity log.
// The facet fields are optional; nil means the recording client did not send them.
type ActivityEvent struct {
	// ID is assigned by the store on insert (BIGSERIAL). Not part of the public API.
	ID int64 `json:"-"`

	Tag             *string `json:"tag,omitempty"`
	PlaythingName   *string `json:"plaything_name,omitempty"`
	PlaythingPart   *string `json:"plaything_part,omitempty"`
	SpecificationID *string `json:"specification_id,omitempty"`

	// SessionID groups events of one browser session; distinct values are counted
	// as "sessions" by the hourly aggregation.
	SessionID string `json:"session_id"`

	// CreatedTS is the server-assigned creation time in epoch seconds (UTC).
	// Set by the recording path, never by the client.
	CreatedTS int64 `json:"created_ts"`
}

// Validate ensures the event carries what the aggregation needs.
func (e *ActivityEvent) Validate() error {
	if strings.TrimSpace(e.SessionID) == "" {
		return fmt.Errorf("session_id is required")
	}
	if e.CreatedTS < 0 {
		return fmt.Errorf("created_ts must not be negative")
	}
	return nil
}

// StringPtr is a small helper for building events with optional facets.
func StringPtr(s string) *string {
	return &s
}
