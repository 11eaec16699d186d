package parsers

import (
	"strings"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/records"
)

// Classify builds a record of the given kind from raw fields.
//
// Fields the kind declares are assigned. With dropUnknown the rest are
// discarded. Without it, fields named with domain.UnknownFieldPrefix are
// still discarded and every other undeclared field is kept under
// domain.OverflowField. The returned record has not been validated.
func Classify(fields map[string]any, kind records.Kind, dropUnknown bool) (records.Record, error) {
	r, err := records.New(kind)
	if err != nil {
		return nil, err
	}

	data := make(map[string]any, len(fields))
	var overflow map[string]any

	for k, v := range fields {
		if records.Declares(r, k) {
			data[k] = v
			continue
		}
		if dropUnknown || strings.HasPrefix(k, domain.UnknownFieldPrefix) {
			continue
		}
		if overflow == nil {
			overflow = make(map[string]any)
		}
		overflow[k] = v
	}

	if len(overflow) > 0 {
		data[domain.OverflowField] = overflow
	}
	r.SetData(data)
	return r, nil
}
