package geo

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Mode selects the semicircle-to-degree formula.
type Mode int

const (
	// Linear is the standard conversion: semicircles * 180 / 2^31.
	Linear Mode = iota

	// LegacySquared squares the input before scaling. Earlier releases stored
	// coordinates converted this way; keep it only to stay byte-compatible.
	LegacySquared
)

// degreesPerSemicircle is 180 / 2^31.
const degreesPerSemicircle = 180.0 / (1 << 31)

// ParseMode maps a configuration value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "linear":
		return Linear, nil
	case "legacy_squared":
		return LegacySquared, nil
	default:
		return Linear, fmt.Errorf("unknown semicircle mode %q", s)
	}
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if m == LegacySquared {
		return "legacy_squared"
	}
	return "linear"
}

// SemicircleToDegree converts with the Linear formula.
func SemicircleToDegree(v any) (any, error) {
	return Linear.SemicircleToDegree(v)
}

// SemicircleToDegree converts a value in semicircles to degrees.
//
// v may be a number, numeric text, comma-separated numeric text, or a slice
// or array of any of those. Scalars convert to float64; collections convert
// element-wise to []any.
func (m Mode) SemicircleToDegree(v any) (any, error) {
	if s, ok := v.(string); ok && strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			d, err := m.SemicircleToDegree(strings.TrimSpace(p))
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, nil
	}

	if v != nil {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			out := make([]any, 0, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				d, err := m.SemicircleToDegree(rv.Index(i).Interface())
				if err != nil {
					return nil, err
				}
				out = append(out, d)
			}
			return out, nil
		}
	}

	f, err := semicircles(v)
	if err != nil {
		return nil, err
	}
	return m.convert(f), nil
}

// Degrees converts a single float value in semicircles.
func (m Mode) Degrees(semicircles float64) float64 {
	return m.convert(semicircles)
}

func (m Mode) convert(f float64) float64 {
	if m == LegacySquared {
		return f * f * degreesPerSemicircle
	}
	return f * degreesPerSemicircle
}

// semicircles accepts integers, floats and integer text.
func semicircles(v any) (float64, error) {
	if s, ok := v.(string); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("semicircles: %w: %q", ErrType, s)
		}
		return float64(n), nil
	}
	f, err := ToFloat(v)
	if err != nil {
		return 0, fmt.Errorf("semicircles: %w", err)
	}
	return f, nil
}
