package formjson

import (
	"strconv"
	"strings"
)

type pathSegment struct {
	Key   string
	Index bool // true for []
}

// parseName splits a field name into its segments. Closing brackets are
// removed and the remainder is split on opening brackets, so "a[b][]" yields
// a, b and an index segment. Names are never rejected: "a]b[" parses as well
// as any other string.
func parseName(name string) []pathSegment {
	parts := strings.Split(strings.ReplaceAll(name, "]", ""), "[")
	path := make([]pathSegment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			path = append(path, pathSegment{Index: true})
			continue
		}
		path = append(path, pathSegment{Key: part})
	}
	return path
}

// fieldPath returns the segments of the element's name. Multi-selects and
// radios ending in [] hold a single value slot, so the trailing index segment
// is dropped for them.
func fieldPath(el Element) (path []pathSegment, autoIncrement bool) {
	name := el.Name()
	path = parseName(name)
	autoIncrement = strings.HasSuffix(name, "[]")
	if autoIncrement && (isMultiSelect(el) || inputType(el) == "radio") {
		path = path[:len(path)-1]
	}
	return path, autoIncrement
}

// indexCounter hands out the indices of [] segments. Counters are scoped to
// the resolved parent path and the rest of the name, so that the fields of a
// repeated row (rows[][a], rows[][b]) land in the same index, while unrelated
// parents count independently.
type indexCounter map[string]int

func (c indexCounter) next(parent string, rest []pathSegment) string {
	key := parent + "[]" + renderPath(rest)
	n := c[key]
	c[key] = n + 1
	return strconv.Itoa(n)
}

// resolve turns a parsed path into concrete keys.
func (c indexCounter) resolve(path []pathSegment) []string {
	keys := make([]string, len(path))
	parent := ""
	for i, seg := range path {
		key := seg.Key
		if seg.Index {
			key = c.next(parent, path[i+1:])
		}
		keys[i] = key
		parent = joinPath(parent, key)
	}
	return keys
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "[" + key + "]"
}

func renderPath(path []pathSegment) string {
	var b strings.Builder
	for _, p := range path {
		b.WriteString("[")
		b.WriteString(p.Key)
		b.WriteString("]")
	}
	return b.String()
}
