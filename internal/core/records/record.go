package records

import (
	"fmt"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// Kind identifies a record kind.
type Kind string

// Record kinds.
const (
	KindCoordinate    Kind = "coordinate"
	KindEnvironment   Kind = "environment"
	KindPhysiological Kind = "physiologic"
	KindGear          Kind = "gear"
	KindActivity      Kind = "activity"
	KindTraveller     Kind = "traveller"
	KindUnclassified  Kind = "unclassified"
)

// Record is implemented by every record kind.
type Record interface {
	// Kind returns the record kind.
	Kind() Kind

	// SetData merges raw fields onto the record. Last write wins.
	SetData(fields map[string]any)

	// SetTime stages timestamp resolution for the next Clean.
	SetTime(raw any, timezone string, skip bool)

	// Clean runs the kind's checks, then timestamp resolution.
	Clean()

	// IsValid runs Clean and reports whether no finding was ever recorded.
	IsValid() bool

	// Findings returns a copy of the accumulated findings.
	Findings() []domain.Finding

	// Fields renders the record as a flat map for persistence.
	Fields() map[string]any

	base() *Base
}

// Base carries the state shared by every record kind.
type Base struct {
	// Timestamp is the resolved epoch in seconds.
	Timestamp *int64 `json:"timestamp,omitempty"`

	// Time is the human-readable form of Timestamp. It is derived once.
	Time string `json:"time,omitempty"`

	// Overflow holds raw fields the kind does not declare.
	Overflow map[string]any `json:"_unorganized,omitempty"`

	findings     []domain.Finding
	rawTimestamp any
	timezone     string
	skipTimezone bool
	staged       bool
}

func (b *Base) base() *Base { return b }

// SetTime stages timestamp resolution. Records that never stage a time are
// not subject to timezone resolution.
func (b *Base) SetTime(raw any, timezone string, skip bool) {
	b.staged = true
	b.rawTimestamp = raw
	b.timezone = timezone
	b.skipTimezone = skip
}

// Findings returns a copy of the accumulated findings.
func (b *Base) Findings() []domain.Finding {
	out := make([]domain.Finding, len(b.findings))
	copy(out, b.findings)
	return out
}

func (b *Base) addFinding(kind domain.FindingKind, field, format string, args ...any) {
	b.findings = append(b.findings, domain.Finding{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// clean runs the kind's checks followed by timestamp resolution.
func (b *Base) clean(validate func()) {
	if validate != nil {
		validate()
	}
	b.resolveTime()
}

// check cleans and reports validity.
func (b *Base) check(validate func()) bool {
	b.clean(validate)
	return len(b.findings) == 0
}

// New returns an empty record of the given kind.
func New(kind Kind) (Record, error) {
	switch kind {
	case KindCoordinate:
		return NewCoordinate(nil), nil
	case KindEnvironment:
		return &Environment{}, nil
	case KindPhysiological:
		return &Physiological{}, nil
	case KindGear:
		return &Gear{}, nil
	case KindActivity:
		return &Activity{}, nil
	case KindTraveller:
		return &Traveller{}, nil
	case KindUnclassified:
		return &Unclassified{}, nil
	default:
		return nil, fmt.Errorf("record kind %q: %w", kind, domain.ErrUnsupportedType)
	}
}
