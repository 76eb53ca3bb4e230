package aggregation

import "time"

// Sentinel is the facet value used for absent fields and for "no activity" records.
// It is an ordinary string everywhere except at the sentinel policy points.
const Sentinel = "-"

// DefaultPartitionKey is forced onto every aggregate record regardless of facet content.
const DefaultPartitionKey = "1"

const (
	// HourLayout formats an hour bucket label, e.g. "2024-01-01T05".
	HourLayout = "2006-01-02T15"
	// DateLayout formats a day bucket label, e.g. "2024-01-01".
	DateLayout = "2006-01-02"

	HourSeconds = int64(time.Hour / time.Second)
	DaySeconds  = 24 * HourSeconds
)

// FacetTuple is the grouping key shared by hourly and daily aggregation.
// Values are always normalized: an absent facet is stored as Sentinel.
type FacetTuple struct {
	Tag             string `json:"tag"`
	PlaythingName   string `json:"plaything_name"`
	PlaythingPart   string `json:"plaything_part"`
	SpecificationID string `json:"specification_id"`
}

// SentinelFacets returns the all-"-" tuple.
func SentinelFacets() FacetTuple {
	return FacetTuple{
		Tag:             Sentinel,
		PlaythingName:   Sentinel,
		PlaythingPart:   Sentinel,
		SpecificationID: Sentinel,
	}
}

// NormalizeFacets builds a FacetTuple, replacing nil fields with Sentinel.
func NormalizeFacets(tag, playthingName, playthingPart, specificationID *string) FacetTuple {
	return FacetTuple{
		Tag:             orSentinel(tag),
		PlaythingName:   orSentinel(playthingName),
		PlaythingPart:   orSentinel(playthingPart),
		SpecificationID: orSentinel(specificationID),
	}
}

func orSentinel(v *string) string {
	if v == nil {
		return Sentinel
	}
	return *v
}

// IsSentinel reports whether every facet is "-".
func (f FacetTuple) IsSentinel() bool {
	return f == SentinelFacets()
}

// Less orders tuples field by field. Used to write groups in a stable order.
func (f FacetTuple) Less(o FacetTuple) bool {
	if f.Tag != o.Tag {
		return f.Tag < o.Tag
	}
	if f.PlaythingName != o.PlaythingName {
		return f.PlaythingName < o.PlaythingName
	}
	if f.PlaythingPart != o.PlaythingPart {
		return f.PlaythingPart < o.PlaythingPart
	}
	return f.SpecificationID < o.SpecificationID
}

// HourAggregate is one (hour bucket, facet tuple) summary record.
type HourAggregate struct {
	ID string `json:"id"`
	FacetTuple
	DateHr       string `json:"date_hr"`  // UTC hour label, HourLayout
	StartTS      int64  `json:"start_ts"` // epoch seconds at hour start
	Count        int64  `json:"count"`    // raw events matching the tuple
	Sessions     int64  `json:"sessions"` // distinct session_id values in the group
	PartitionKey string `json:"partition_key"`
}

// IsNoActivity reports whether the record is the "no activity" marker of an empty hour:
// the all-"-" tuple with zero counts. An all-"-" group of real events has Count > 0.
func (h HourAggregate) IsNoActivity() bool {
	return h.IsSentinel() && h.Count == 0
}

// DayAggregate is one (day, facet tuple) summary record, summed from hour records.
type DayAggregate struct {
	ID string `json:"id"`
	FacetTuple
	Date         string `json:"date"`     // UTC date label, DateLayout
	StartTS      int64  `json:"start_ts"` // epoch seconds at day start
	Count        int64  `json:"count"`
	Sessions     int64  `json:"sessions"`
	PartitionKey string `json:"partition_key"`
}

// NewSentinelHour returns the "no activity" record for the hour starting at startTS.
func NewSentinelHour(startTS int64, partitionKey string) HourAggregate {
	return HourAggregate{
		FacetTuple:   SentinelFacets(),
		DateHr:       FormatHour(startTS),
		StartTS:      startTS,
		PartitionKey: partitionKey,
	}
}

// NewSentinelDay returns the "no activity" record for a whole day.
func NewSentinelDay(date string, startTS int64, partitionKey string) DayAggregate {
	return DayAggregate{
		FacetTuple:   SentinelFacets(),
		Date:         date,
		StartTS:      startTS,
		PartitionKey: partitionKey,
	}
}
