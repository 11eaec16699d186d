package domain

import "fmt"

// FindingKind classifies a data-quality finding.
type FindingKind string

// Finding kinds.
const (
	// FindingRange indicates a value outside its permitted range.
	FindingRange FindingKind = "range"

	// FindingMissing indicates a required field has no value.
	FindingMissing FindingKind = "missing"

	// FindingTimestamp indicates the timestamp or timezone could not be resolved.
	FindingTimestamp FindingKind = "timestamp"

	// FindingType indicates a value could not be converted to the field's type.
	FindingType FindingKind = "type"
)

// Finding is a data-quality problem recorded against a record.
// Findings accumulate and are never returned as errors.
type Finding struct {
	Kind    FindingKind `json:"kind"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
}

// Error lets a Finding be reported wherever an error is expected.
func (f Finding) Error() string {
	if f.Field == "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}
	return fmt.Sprintf("%s %s: %s", f.Kind, f.Field, f.Message)
}
