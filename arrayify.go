package formjson

import "strconv"

// arrayify replaces every object whose keys are exactly "0".."n-1", in that
// order, with a slice of its values. Nested objects are converted first. Empty
// objects stay objects.
func arrayify(v any) any {
	obj, ok := v.(*Object)
	if !ok {
		return v
	}
	valid := obj.Len() > 0
	out := NewObject()
	i := 0
	for key, val := range obj.All() {
		if child, ok := val.(*Object); ok {
			val = arrayify(child)
		}
		if key != strconv.Itoa(i) {
			valid = false
		}
		out.Set(key, val)
		i++
	}
	if !valid {
		return out
	}
	arr := make([]any, 0, out.Len())
	for _, val := range out.All() {
		arr = append(arr, val)
	}
	return arr
}

// removeEmpty drops nils, empty strings and collections that are empty once
// their own empty entries are dropped. It returns nil if nothing is left.
func removeEmpty(v any) any {
	switch c := v.(type) {
	case *Object:
		out := NewObject()
		for key, val := range c.All() {
			if val, ok := nonEmpty(val); ok {
				out.Set(key, val)
			}
		}
		if out.Len() == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]any, 0, len(c))
		for _, e := range c {
			if val, ok := nonEmpty(e); ok {
				out = append(out, val)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []Pair:
		out := make([]Pair, 0, len(c))
		for _, p := range c {
			if val, ok := nonEmpty(p.Value); ok {
				out = append(out, Pair{Name: p.Name, Value: val})
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return v
}

func nonEmpty(v any) (any, bool) {
	switch c := v.(type) {
	case nil:
		return nil, false
	case *Object, []any, []Pair:
		pruned := removeEmpty(c)
		return pruned, pruned != nil
	case []byte:
		return c, len(c) > 0
	}
	return v, stringify(v) != ""
}
