package fit

import (
	"strings"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/geo"
)

func copyFields(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// pop removes and returns a field.
func pop(fields map[string]any, key string) any {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	delete(fields, key)
	return v
}

// popFirst removes every key and returns the first non-nil value.
func popFirst(fields map[string]any, keys ...string) any {
	var out any
	for _, k := range keys {
		if v := pop(fields, k); out == nil {
			out = v
		}
	}
	return out
}

func first(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// kph converts a speed in m/s. Values that are not numeric pass through
// unchanged so the record reports them as type findings.
func kph(v any) any {
	if v == nil {
		return nil
	}
	s, err := geo.MpsToKph(v)
	if err != nil {
		return v
	}
	return s
}

func withoutUnknown(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if !strings.HasPrefix(k, domain.UnknownFieldPrefix) {
			out[k] = v
		}
	}
	return out
}
