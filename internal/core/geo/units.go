package geo

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrType indicates a value that cannot be interpreted as a number.
var ErrType = errors.New("value is not numeric")

// WGS84 is the coordinate reference system id assigned to device positions.
const WGS84 = "WGS84"

// Valid degree ranges. Both bounds are exclusive.
var (
	LongitudeRange = [2]float64{-180, 180}
	LatitudeRange  = [2]float64{-90, 90}
)

const (
	kphPerMps = 3.6
	mPerKm    = 1000.0
)

// ToFloat converts a numeric value or numeric text to float64.
func ToFloat(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: got nil", ErrType)
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrType, n)
		}
		return f, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return 0, fmt.Errorf("%w: got %T", ErrType, v)
	}
}

// MpsToKph converts a speed from metres per second to kilometres per hour.
func MpsToKph(v any) (float64, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, fmt.Errorf("speed: %w", err)
	}
	return f * kphPerMps, nil
}

// MToKm converts a distance from metres to kilometres.
func MToKm(v any) (float64, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	return f / mPerKm, nil
}

// LegacyMToKm reproduces the distance conversion of earlier releases, which
// reused the speed factor. It exists only to compare against stored values.
func LegacyMToKm(v any) (float64, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	return f * kphPerMps, nil
}

// Round rounds f to the given number of decimal places.
func Round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}
