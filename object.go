package formjson

import (
	"bytes"
	"iter"

	json "github.com/goccy/go-json"
	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Object is a string keyed map that keeps its keys in insertion order. It is
// the nested structure produced by [ToJSON], and is marshalled to JSON with its
// keys in that order.
type Object struct {
	m *sequencedmap.Map[string, any]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: sequencedmap.New[string, any]()}
}

// Set stores v under key. A new key is appended after the existing ones; an
// existing key keeps its position.
func (o *Object) Set(key string, v any) {
	if o.m == nil {
		o.m = sequencedmap.New[string, any]()
	}
	o.m.Set(key, v)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil || o.m == nil {
		return nil, false
	}
	return o.m.Get(key)
}

// Delete removes key.
func (o *Object) Delete(key string) {
	if _, ok := o.Get(key); !ok {
		return
	}
	m := sequencedmap.New[string, any]()
	for k, v := range o.m.All() {
		if k != key {
			m.Set(k, v)
		}
	}
	o.m = m
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil || o.m == nil {
		return nil
	}
	keys := make([]string, 0, o.m.Len())
	for k := range o.m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil || o.m == nil {
		return 0
	}
	return o.m.Len()
}

// All iterates over the entries in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil || o.m == nil {
			return
		}
		for k, v := range o.m.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// ToMap converts o into plain maps, recursing into nested objects and slices.
// Key order is lost.
func (o *Object) ToMap() map[string]any {
	if o == nil {
		return nil
	}
	m := make(map[string]any, o.Len())
	for k, v := range o.All() {
		m[k] = plain(v)
	}
	return m
}

func plain(v any) any {
	switch v := v.(type) {
	case *Object:
		return v.ToMap()
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = plain(e)
		}
		return out
	case []Pair:
		out := make([]Pair, len(v))
		for i, p := range v {
			out[i] = Pair{Name: p.Name, Value: plain(p.Value)}
		}
		return out
	default:
		return v
	}
}

// MarshalJSON implements [json.Marshaler].
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var b bytes.Buffer
	b.WriteByte('{')
	i := 0
	for k, v := range o.All() {
		if i > 0 {
			b.WriteByte(',')
		}
		i++
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Pair is one entry of a flat list: the unchanged field name and its value.
type Pair struct {
	Name  string
	Value any
}

// MarshalJSON encodes p as the two element array [name, value].
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Name, p.Value})
}
