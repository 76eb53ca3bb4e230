package projection

import (
	"github.com/shopspring/decimal"
)

const (
	MetricCount    = "count"
	MetricSessions = "sessions"
)

// AggregateQueryRequest represents the query parameters for fetching aggregates.
// Start and End are UTC dates (YYYY-MM-DD); End is inclusive.
type AggregateQueryRequest struct {
	Start         string `form:"start" binding:"required"`
	End           string `form:"end" binding:"required"`
	Metric        string `form:"metric"` // default: "count"
	Facet         string `form:"facet"`
	PlaythingName string `form:"plaything_name"`
	FilterBy      string `form:"filter_by"`
	FilterValue   string `form:"filter_value"`
}

// AggregateValue is one (period, facet value) slot of the response.
type AggregateValue struct {
	Period     string `json:"period"`
	FacetValue string `json:"facet_value,omitempty"`
	Value      int64  `json:"value"`
	Count      int64  `json:"count"`
	Sessions   int64  `json:"sessions"`

	// EventsPerSession is count/sessions rounded to two places; omitted when sessions is 0.
	EventsPerSession *decimal.Decimal `json:"events_per_session,omitempty"`
}

// AggregateQueryResponse represents the response for an aggregate query.
type AggregateQueryResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Period string `json:"period"` // "date_hr" or "date"
	Metric string `json:"metric"`
	Facet  string `json:"facet,omitempty"`

	Values []AggregateValue `json:"values"`
}
