package formjson

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// stringify converts v to the string used when comparing it with element
// values: nil and collections become "", booleans "1" or "0", numbers their
// shortest decimal form.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatNumber(v, 64)
	case float32:
		return formatNumber(float64(v), 32)
	case *Object, []any, []Pair, map[string]any:
		return ""
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatNumber(rv.Float(), rv.Type().Bits())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer, reflect.Interface:
		return ""
	}
	return fmt.Sprint(v)
}

func formatNumber(f float64, bits int) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 0) {
		if f > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// setValue writes v into the field of n. A nil v unsets the field.
func setValue(n fieldNode, v any, trigger bool) {
	switch n := n.(type) {
	case *radioGroup:
		index := -1
		if v != nil {
			want := stringify(v)
			for i, el := range n.els {
				if el.Value() == want {
					index = i
					break
				}
			}
		}
		checkRadio(n, func(i int, _ Element) bool { return i == index }, trigger)
	case *leafNode:
		setLeaf(n, v, trigger)
	}
}

// checkRadio sets the checked state of every radio in g to want. When the
// checked radio changed, one change notification is dispatched: on the newly
// checked radio, or on the unchecked one if none is checked anymore.
func checkRadio(g *radioGroup, want func(int, Element) bool, trigger bool) {
	var checked, unchecked Element
	for i, el := range g.els {
		w := want(i, el)
		if el.Checked() == w {
			continue
		}
		el.SetChecked(w)
		if w {
			checked = el
		} else if unchecked == nil {
			unchecked = el
		}
	}
	if !trigger {
		return
	}
	switch {
	case checked != nil:
		checked.DispatchChange()
	case unchecked != nil:
		unchecked.DispatchChange()
	}
}

func setLeaf(n *leafNode, v any, trigger bool) {
	el := n.el
	switch {
	case n.inputType == "file":
		// File inputs cannot be set.
	case n.inputType == "checkbox":
		b, ok := v.(bool)
		checked := (ok && b) || (v != nil && stringify(el.Value()) == stringify(v))
		setChecked(el, checked, trigger)
	case isSelect(el):
		if selectOptions(el, toList(v)) && trigger {
			el.DispatchChange()
		}
	default:
		s := stringify(v)
		changed := el.Value() != s
		el.SetValue(s)
		if changed && trigger {
			el.DispatchChange()
		}
	}
}

func setChecked(el Element, checked, trigger bool) {
	if el.Checked() == checked {
		return
	}
	el.SetChecked(checked)
	if trigger {
		el.DispatchChange()
	}
}

// selectOptions selects exactly the options whose value is in values and
// reports whether the set of selected options changed.
func selectOptions(el Element, values []any) bool {
	want := make([]string, len(values))
	for i, v := range values {
		want[i] = stringify(v)
	}

	opts := el.Options()
	var before, after []int
	for i, opt := range opts {
		if opt.Selected() {
			before = append(before, i)
		}
		opt.SetSelected(slices.Contains(want, opt.Value()))
	}
	for i, opt := range opts {
		if opt.Selected() {
			after = append(after, i)
		}
	}
	return !slices.Equal(before, after)
}

// toList coerces v to a list: nil is empty, objects contribute their values
// and scalars are wrapped.
func toList(v any) []any {
	switch v := v.(type) {
	case nil:
		return nil
	case []any:
		return v
	case *Object:
		list := make([]any, 0, v.Len())
		for _, val := range v.All() {
			list = append(list, val)
		}
		return list
	case []Pair:
		list := make([]any, len(v))
		for i, p := range v {
			list[i] = p.Value
		}
		return list
	default:
		return []any{v}
	}
}
