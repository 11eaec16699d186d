package records

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/geo"
)

// fieldSpec locates one declared attribute within a kind's struct.
type fieldSpec struct {
	name  string
	index []int
}

// schema is the declared attribute set of a kind, derived from json tags.
type schema struct {
	fields map[string]fieldSpec
	order  []string
}

var (
	schemas sync.Map // reflect.Type -> *schema

	anyType       = reflect.TypeOf((*any)(nil)).Elem()
	floatPtrType  = reflect.TypeOf((*float64)(nil))
	intPtrType    = reflect.TypeOf((*int64)(nil))
	stringPtrType = reflect.TypeOf((*string)(nil))
	stringType    = reflect.TypeOf("")
	baseType      = reflect.TypeOf(Base{})
)

func schemaOf(t reflect.Type) *schema {
	if s, ok := schemas.Load(t); ok {
		return s.(*schema)
	}

	s := &schema{fields: make(map[string]fieldSpec)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == baseType {
			continue
		}
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		s.fields[name] = fieldSpec{name: name, index: f.Index}
		s.order = append(s.order, name)
	}

	actual, _ := schemas.LoadOrStore(t, s)
	return actual.(*schema)
}

func schemaFor(r Record) *schema {
	return schemaOf(reflect.TypeOf(r).Elem())
}

// Attributes returns the attribute names declared by a record kind, sorted.
func Attributes(r Record) []string {
	s := schemaFor(r)
	out := make([]string, len(s.order))
	copy(out, s.order)
	sort.Strings(out)
	return out
}

// Declares reports whether a record kind declares the named attribute.
func Declares(r Record, name string) bool {
	_, ok := schemaFor(r).fields[name]
	return ok
}

// assign merges raw fields onto r's declared attributes. Undeclared keys go
// to the overflow container. Values that cannot be converted to the declared
// type are recorded as type findings.
func assign(r Record, fields map[string]any) {
	if len(fields) == 0 {
		return
	}

	rv := reflect.ValueOf(r).Elem()
	s := schemaOf(rv.Type())
	b := r.base()

	for name, value := range fields {
		if name == domain.OverflowField {
			b.mergeOverflow(value)
			continue
		}
		decl, ok := s.fields[name]
		if !ok {
			b.setOverflow(name, value)
			continue
		}
		setField(b, rv.FieldByIndex(decl.index), name, value)
	}
}

func (b *Base) setOverflow(name string, value any) {
	if b.Overflow == nil {
		b.Overflow = make(map[string]any)
	}
	b.Overflow[name] = value
}

func (b *Base) mergeOverflow(value any) {
	m, ok := value.(map[string]any)
	if !ok {
		b.addFinding(domain.FindingType, domain.OverflowField, "overflow must be a mapping, got %T", value)
		return
	}
	for k, v := range m {
		b.setOverflow(k, v)
	}
}

func setField(b *Base, f reflect.Value, name string, value any) {
	if value == nil {
		f.Set(reflect.Zero(f.Type()))
		return
	}

	switch f.Type() {
	case anyType:
		f.Set(reflect.ValueOf(value))

	case floatPtrType:
		n, err := geo.ToFloat(value)
		if err != nil {
			b.addFinding(domain.FindingType, name, "expected a number, got %v (%T)", value, value)
			return
		}
		f.Set(reflect.ValueOf(&n))

	case intPtrType:
		n, err := geo.ToFloat(value)
		if err != nil || n != math.Trunc(n) {
			b.addFinding(domain.FindingType, name, "expected an integer, got %v (%T)", value, value)
			return
		}
		i := int64(n)
		f.Set(reflect.ValueOf(&i))

	case stringPtrType:
		s := toString(value)
		f.Set(reflect.ValueOf(&s))

	case stringType:
		f.SetString(toString(value))

	default:
		v := reflect.ValueOf(value)
		if !v.Type().AssignableTo(f.Type()) {
			b.addFinding(domain.FindingType, name, "cannot assign %T", value)
			return
		}
		f.Set(v)
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// render flattens a record into a map keyed by attribute name.
// Unset attributes are omitted.
func render(r Record) map[string]any {
	rv := reflect.ValueOf(r).Elem()
	s := schemaOf(rv.Type())
	b := r.base()

	out := make(map[string]any, len(s.order)+3)
	if b.Timestamp != nil {
		out["timestamp"] = *b.Timestamp
	}
	if b.Time != "" {
		out["time"] = b.Time
	}

	for _, name := range s.order {
		f := rv.FieldByIndex(s.fields[name].index)
		switch f.Kind() {
		case reflect.Pointer, reflect.Interface:
			if f.IsNil() {
				continue
			}
			out[name] = f.Elem().Interface()
		case reflect.String:
			if f.Len() == 0 {
				continue
			}
			out[name] = f.String()
		default:
			out[name] = f.Interface()
		}
	}

	if len(b.Overflow) > 0 {
		overflow := make(map[string]any, len(b.Overflow))
		for k, v := range b.Overflow {
			overflow[k] = v
		}
		out[domain.OverflowField] = overflow
	}
	return out
}
