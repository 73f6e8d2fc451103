package formjson

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Marshaler is the interface implemented by types that can convert themselves
// into a single field value when passed to [FromJSON].
type Marshaler interface {
	MarshalForm() (string, error)
}

// fieldTagCache maps a struct [reflect.Type] to its []fieldTag. Safe for
// concurrent use.
var fieldTagCache sync.Map

type fieldTag struct {
	Index int
	Name  string
	Omit  bool
}

// structTags returns the fields of struct type t that take part in
// conversion, in declaration order. Fields are named by their form tag, or by
// the Go field name when the tag has no name.
func structTags(t reflect.Type) []fieldTag {
	if cached, ok := fieldTagCache.Load(t); ok {
		return cached.([]fieldTag)
	}

	tags := make([]fieldTag, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, ok := parseTag(f.Tag.Get("form"))
		if !ok {
			continue
		}
		if tag.Name == "" {
			tag.Name = f.Name
		}
		tag.Index = i
		tags = append(tags, tag)
	}

	cached, _ := fieldTagCache.LoadOrStore(t, tags)
	return cached.([]fieldTag)
}

// parseTag parses a form struct tag of the form "name,omitempty". It reports
// false for ignored fields ("-" or the ignore flag).
func parseTag(str string) (fieldTag, bool) {
	str = strings.TrimSpace(str)
	if str == "-" {
		return fieldTag{}, false
	}

	parts := strings.Split(str, ",")
	tag := fieldTag{Name: strings.TrimSpace(parts[0])}
	for _, p := range parts[1:] {
		switch strings.TrimSpace(p) {
		case "omitempty":
			tag.Omit = true
		case "ignore":
			return fieldTag{}, false
		}
	}
	return tag, true
}

var (
	marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()
	objectType    = reflect.TypeOf((*Object)(nil))
	pairType      = reflect.TypeOf(Pair{})
)

// normalize converts v into the shapes FromJSON walks: *Object for structs and
// maps, []any for slices and arrays, []Pair for pair lists, and scalars.
// Map keys are sorted so the result does not depend on map iteration order.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return normalizeValue(reflect.ValueOf(v))
}

func normalizeValue(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if v.Type().Implements(marshalerType) {
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return nil, nil
		}
		s, err := v.Interface().(Marshaler).MarshalForm()
		if err != nil {
			return nil, fmt.Errorf("formjson: marshal %v: %w", v.Type(), err)
		}
		return s, nil
	}

	switch {
	case v.Type() == objectType:
		return normalizeObject(v.Interface().(*Object))
	case v.Type() == pairType:
		p := v.Interface().(Pair)
		val, err := normalize(p.Value)
		return Pair{Name: p.Name, Value: val}, err
	case v.Kind() == reflect.Slice && v.Type().Elem() == pairType:
		return normalizePairs(v.Interface().([]Pair))
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return normalizeValue(v.Elem())
	case reflect.Struct:
		return normalizeStruct(v)
	case reflect.Map:
		return normalizeMap(v)
	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes()), nil
		}
		return normalizeList(v)
	case reflect.Array:
		return normalizeList(v)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return nil, fmt.Errorf("formjson: unsupported type %v", v.Type())
	default:
		return v.Interface(), nil
	}
}

func normalizeObject(o *Object) (any, error) {
	if o == nil {
		return nil, nil
	}
	out := NewObject()
	for key, v := range o.All() {
		val, err := normalize(v)
		if err != nil {
			return nil, err
		}
		out.Set(key, val)
	}
	return out, nil
}

func normalizePairs(pairs []Pair) (any, error) {
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		val, err := normalize(p.Value)
		if err != nil {
			return nil, err
		}
		out[i] = Pair{Name: p.Name, Value: val}
	}
	return out, nil
}

func normalizeStruct(v reflect.Value) (any, error) {
	out := NewObject()
	for _, tag := range structTags(v.Type()) {
		fv := v.Field(tag.Index)
		if tag.Omit && fv.IsZero() {
			continue
		}
		val, err := normalizeValue(fv)
		if err != nil {
			return nil, err
		}
		out.Set(tag.Name, val)
	}
	return out, nil
}

func normalizeMap(v reflect.Value) (any, error) {
	if v.IsNil() {
		return nil, nil
	}
	keys := make([]string, 0, v.Len())
	values := make(map[string]reflect.Value, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := mapKey(iter.Key())
		keys = append(keys, k)
		values[k] = iter.Value()
	}
	sort.Strings(keys)

	out := NewObject()
	for _, k := range keys {
		val, err := normalizeValue(values[k])
		if err != nil {
			return nil, err
		}
		out.Set(k, val)
	}
	return out, nil
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return stringify(k.Interface())
}

func normalizeList(v reflect.Value) (any, error) {
	out := make([]any, v.Len())
	for i := range out {
		val, err := normalizeValue(v.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}
