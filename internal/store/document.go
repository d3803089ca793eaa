package store

import "fmt"

// formatVersion is the current schema_type/format_version pair written by
// this build. Every document kind starts here; a future migration would
// bump it per-kind, not globally.
const formatVersion = 1

// Header is the mandatory schema header every document on disk begins
// with. It is embedded in every document struct.
type Header struct {
	FormatVersion int    `yaml:"format_version"`
	SchemaType    string `yaml:"schema_type"`
}

// Document is implemented by every persisted entity. Validate is called
// before a write is allowed to proceed past the schema header check, so a
// document that would violate a schema-level invariant (e.g. a plan week
// whose start date isn't a Monday) never reaches disk.
type Document interface {
	GetHeader() Header
	SetHeader(Header)
	Validate() error
}

// NewHeader stamps a document with the current format version and the
// given schema type tag (e.g. "activity", "daily_metrics").
func NewHeader(schemaType string) Header {
	return Header{FormatVersion: formatVersion, SchemaType: schemaType}
}

// checkHeader validates that a decoded document carries a complete header.
func checkHeader(h Header, wantSchemaType string) error {
	if h.FormatVersion == 0 {
		return fmt.Errorf("missing format_version")
	}
	if h.SchemaType == "" {
		return fmt.Errorf("missing schema_type")
	}
	if h.SchemaType != wantSchemaType {
		return fmt.Errorf("schema_type %q does not match expected %q", h.SchemaType, wantSchemaType)
	}
	return nil
}

// Kind identifies a document kind, used to resolve an on-disk path and to
// tag the schema header.
type Kind string

const (
	KindProfile       Kind = "profile"
	KindSettings      Kind = "settings"
	KindSecrets       Kind = "secrets"
	KindActivity      Kind = "activity"
	KindDailyMetrics  Kind = "daily_metrics"
	KindWeeklySummary Kind = "weekly_summary"
	KindPlan          Kind = "plan"
	KindPlanMacro     Kind = "plan_macro"
	KindMemory        Kind = "memory"
)
