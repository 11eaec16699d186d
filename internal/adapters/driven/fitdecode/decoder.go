// Package fitdecode decodes FIT activity files with github.com/tormoder/fit.
//
// Decoded messages are flattened by reflection: a message type such as
// RecordMsg becomes the message name "record" and its fields become
// snake_case keys ("PositionLat" becomes "position_lat"). Values the FIT
// protocol marks invalid are dropped, scaled fields are reported in their
// physical unit and positions keep their raw semicircles.
package fitdecode

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/tormoder/fit"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.ActivityDecoder = (*Decoder)(nil)

// fitEpoch is the zero time of FIT timestamps.
var fitEpoch = time.Date(1989, time.December, 31, 0, 0, 0, 0, time.UTC)

var timeType = reflect.TypeOf(time.Time{})

// semicircler is implemented by the FIT latitude and longitude types.
type semicircler interface {
	Semicircles() int32
	Invalid() bool
}

// Decoder reads activity files from the local filesystem.
type Decoder struct{}

// New creates a FIT decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode returns the messages of an activity file: the file id first, then
// each message group of the activity in declaration order. Messages are
// grouped by type, so interleaved records and events in the file come out
// as all records followed by all events. Only activity files are accepted.
func (d *Decoder) Decode(ctx context.Context, path string) ([]domain.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, domain.ErrFileParsing, err)
	}
	defer f.Close()

	file, err := fit.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", path, domain.ErrFileParsing, err)
	}

	activity, err := file.Activity()
	if err != nil {
		return nil, fmt.Errorf("%s is not an activity file: %w: %w: %w",
			path, domain.ErrFileParsing, domain.ErrUnsupportedType, err)
	}

	var msgs []domain.RawMessage
	msgs = appendMessages(msgs, reflect.ValueOf(file).Elem().FieldByName("FileId"))
	return Flatten(msgs, activity), nil
}

// Flatten appends every message held by a decoded FIT file struct, such as
// *fit.ActivityFile, in field order.
func Flatten(msgs []domain.RawMessage, file any) []domain.RawMessage {
	v := reflect.ValueOf(file)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return msgs
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return msgs
	}

	for i := 0; i < v.NumField(); i++ {
		if !v.Type().Field(i).IsExported() {
			continue
		}
		msgs = appendMessages(msgs, v.Field(i))
	}
	return msgs
}

// appendMessages appends the message or messages held by v.
func appendMessages(msgs []domain.RawMessage, v reflect.Value) []domain.RawMessage {
	if !v.IsValid() {
		return msgs
	}

	switch v.Kind() {
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			msgs = appendMessages(msgs, v.Index(i))
		}
	case reflect.Pointer:
		if v.IsNil() {
			return msgs
		}
		if msg, ok := message(v); ok {
			msgs = append(msgs, msg)
		}
	case reflect.Struct:
		if v.CanAddr() {
			return appendMessages(msgs, v.Addr())
		}
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		return appendMessages(msgs, ptr)
	}
	return msgs
}

// message flattens a pointer to a *Msg struct.
func message(ptr reflect.Value) (domain.RawMessage, bool) {
	v := ptr.Elem()
	if v.Kind() != reflect.Struct {
		return domain.RawMessage{}, false
	}
	typeName := v.Type().Name()
	if !strings.HasSuffix(typeName, "Msg") {
		return domain.RawMessage{}, false
	}

	fields := make(map[string]any, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		sf := v.Type().Field(i)
		if !sf.IsExported() {
			continue
		}
		name := SnakeCase(sf.Name)

		if f, found := scaled(ptr, sf.Name); found {
			if !math.IsNaN(f) && !math.IsInf(f, 0) {
				fields[name] = f
			}
			continue
		}
		if val, ok := Value(v.Field(i)); ok {
			fields[name] = val
		}
	}

	return domain.RawMessage{
		Name:   SnakeCase(strings.TrimSuffix(typeName, "Msg")),
		Fields: fields,
	}, true
}

// scaled calls the Get<Field>Scaled accessor when the message has one.
func scaled(ptr reflect.Value, field string) (float64, bool) {
	m := ptr.MethodByName("Get" + field + "Scaled")
	if !m.IsValid() {
		return 0, false
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Float64 {
		return 0, false
	}
	return m.Call(nil)[0].Float(), true
}

// Value converts a FIT field value to a plain Go value.
// It returns false for values the protocol marks invalid.
func Value(v reflect.Value) (any, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}

	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() || !t.After(fitEpoch) {
			return nil, false
		}
		return t.UTC(), true
	}

	if s, ok := asSemicircler(v); ok {
		if s.Invalid() {
			return nil, false
		}
		return int64(s.Semicircles()), true
	}

	if invalidNumber(v) {
		return nil, false
	}

	if v.Type().PkgPath() != "" {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Bool:
		return v.Bool(), true
	case reflect.String:
		if v.Len() == 0 {
			return nil, false
		}
		return v.String(), true
	case reflect.Slice:
		if v.Len() == 0 {
			return nil, false
		}
		return v.Interface(), true
	default:
		return nil, false
	}
}

func asSemicircler(v reflect.Value) (semicircler, bool) {
	if s, ok := v.Interface().(semicircler); ok {
		return s, true
	}
	if v.CanAddr() {
		if s, ok := v.Addr().Interface().(semicircler); ok {
			return s, true
		}
	}
	return nil, false
}

// invalidNumber reports whether v holds the FIT invalid sentinel of its
// base type: all bits set for unsigned integers, the maximum for signed
// integers and NaN for floats.
func invalidNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint8:
		return v.Uint() == math.MaxUint8
	case reflect.Uint16:
		return v.Uint() == math.MaxUint16
	case reflect.Uint32:
		return v.Uint() == math.MaxUint32
	case reflect.Uint64:
		return v.Uint() == math.MaxUint64
	case reflect.Int8:
		return v.Int() == math.MaxInt8
	case reflect.Int16:
		return v.Int() == math.MaxInt16
	case reflect.Int32:
		return v.Int() == math.MaxInt32
	case reflect.Int64:
		return v.Int() == math.MaxInt64
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(v.Float())
	}
	return false
}

// SnakeCase converts a Go identifier to snake_case.
// Acronym runs stay together: "HRVSummary" becomes "hrv_summary".
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
