package formjson

import (
	"reflect"
	"strconv"
)

// InvalidValuesError describes values passed to [FromJSON] that are neither an
// object nor a list.
type InvalidValuesError struct {
	Type reflect.Type
}

func (e *InvalidValuesError) Error() string {
	if e.Type == nil {
		return "formjson: FromJSON(nil)"
	}
	return "formjson: FromJSON(non-object " + e.Type.String() + ")"
}

// FromJSON writes values into the fields below root.
//
// values is an object (an [*Object], a map or a struct using form tags) whose
// nesting follows the bracket notation of the field names, or a list. With
// opts.FlatList it is a list of name/value pairs as returned by ToJSON, and
// repeated names are applied to the matching fields in order.
//
// Fields without a value are left as they are unless opts.ClearOthers or
// opts.ResetOthers is set. Values that are neither objects nor lists leave
// every field untouched and return an [*InvalidValuesError].
func (c *Converter) FromJSON(root any, values any, opts *FromJSONOptions) error {
	if opts == nil {
		opts = &FromJSONOptions{}
	}
	v, err := normalize(values)
	if err != nil {
		return err
	}
	if !isCollection(v) {
		return &InvalidValuesError{Type: reflect.TypeOf(values)}
	}

	t, err := c.tree(root, opts.ExcludeLinkedFormElements, nil)
	if err != nil {
		return err
	}
	if opts.ClearOthers {
		clearTree(t, opts.TriggerChangeEvent)
	}
	if opts.ResetOthers {
		resetTree(t, opts.TriggerChangeEvent)
	}

	d := &decodeState{
		trigger:  opts.TriggerChangeEvent,
		lastUsed: make(map[string]int),
	}
	if opts.FlatList {
		d.pairs = toPairs(v)
		d.walkFlat(t)
		return nil
	}
	d.walk(t, v)
	return nil
}

type decodeState struct {
	trigger  bool
	pairs    []Pair
	lastUsed map[string]int
}

func (d *decodeState) walk(t *fieldTree, values any) {
	t.each(func(key string, n fieldNode) {
		v, ok := lookup(values, key)
		if !ok {
			return
		}
		nested, isNested := n.(*nestedNode)
		if !isNested {
			setValue(n, v, d.trigger)
			return
		}
		if !isCollection(v) {
			return
		}
		sub := nested.tree
		if list, isList := v.([]any); isList {
			sub = d.checkListed(sub, list)
		}
		d.walk(sub, v)
	})
}

// checkListed handles auto-increment checkboxes (name[]) set from a list. The
// list holds the values to check in any order, so each such checkbox is
// checked if its value is listed and unchecked otherwise. The returned tree
// holds the remaining nodes.
func (d *decodeState) checkListed(t *fieldTree, list []any) *fieldTree {
	var rest *fieldTree
	t.each(func(key string, n fieldNode) {
		leaf, ok := n.(*leafNode)
		if !ok || !leaf.autoIncrement || leaf.inputType != "checkbox" {
			if rest != nil {
				rest.set(key, n)
			}
			return
		}
		if rest == nil {
			rest = newFieldTree()
			for _, k := range t.keys {
				if k == key {
					break
				}
				rest.set(k, t.get(k))
			}
		}
		setChecked(leaf.el, listed(list, leaf.el.Value()), d.trigger)
	})
	if rest == nil {
		return t
	}
	return rest
}

func listed(list []any, value string) bool {
	for _, v := range list {
		if v != nil && stringify(v) == value {
			return true
		}
	}
	return false
}

func (d *decodeState) walkFlat(t *fieldTree) {
	t.each(func(_ string, n fieldNode) {
		switch n := n.(type) {
		case *nestedNode:
			d.walkFlat(n.tree)
		case *radioGroup:
			d.applyPair(n, n.name)
		case *leafNode:
			d.applyPair(n, n.name)
		}
	})
}

// applyPair applies the first pair named name that follows the pair last
// applied for that name.
func (d *decodeState) applyPair(n fieldNode, name string) {
	start := 0
	if last, ok := d.lastUsed[name]; ok {
		start = last + 1
	}
	for i := start; i < len(d.pairs); i++ {
		if d.pairs[i].Name != name {
			continue
		}
		d.lastUsed[name] = i
		setValue(n, d.pairs[i].Value, d.trigger)
		return
	}
}

func isCollection(v any) bool {
	switch v.(type) {
	case *Object, []any, []Pair:
		return true
	}
	return false
}

// lookup returns the value under key. Lists are indexed by decimal keys.
func lookup(values any, key string) (any, bool) {
	switch c := values.(type) {
	case *Object:
		return c.Get(key)
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	case []Pair:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i].Value, true
	}
	return nil, false
}

// toPairs reads a flat list. Entries are pairs or lists whose first element is
// the field name; anything else is skipped.
func toPairs(v any) []Pair {
	switch c := v.(type) {
	case []Pair:
		return c
	case *Object:
		return toPairs(toList(c))
	case []any:
		pairs := make([]Pair, 0, len(c))
		for _, e := range c {
			switch e := e.(type) {
			case Pair:
				pairs = append(pairs, e)
			case []any:
				if len(e) == 0 {
					continue
				}
				name, ok := e[0].(string)
				if !ok {
					continue
				}
				p := Pair{Name: name}
				if len(e) > 1 {
					p.Value = e[1]
				}
				pairs = append(pairs, p)
			}
		}
		return pairs
	}
	return nil
}
