package htmldom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// A selector is a parsed css selector: compound selectors joined by the
// descendant combinator. A node matches when it matches the last compound and
// has ancestors matching the preceding ones, in order.
type selector struct {
	compounds [][]selectorAtom
}

// selectorAtom matches a single element name, id, class or attribute.
type selectorAtom interface {
	match(n *html.Node) bool
}

func (s *selector) match(n *html.Node) bool {
	last := len(s.compounds) - 1
	if !matchCompound(s.compounds[last], n) {
		return false
	}
	i := last - 1
	for p := n.Parent; p != nil && i >= 0; p = p.Parent {
		if matchCompound(s.compounds[i], p) {
			i--
		}
	}
	return i < 0
}

func matchCompound(atoms []selectorAtom, n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, atom := range atoms {
		if !atom.match(n) {
			return false
		}
	}
	return true
}

// parseSelector parses the supported css subset: element names, *, #id,
// .class, [attr], [attr=value] and [attr="value"], combined into compounds and
// separated by whitespace.
func parseSelector(s string) (*selector, error) {
	sel := &selector{}
	var compound []selectorAtom
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty selector")
	}
	for len(s) > 0 {
		switch {
		case isSpace(s[0]):
			sel.compounds = append(sel.compounds, compound)
			compound = nil
			s = strings.TrimLeft(s, " \t\n\r\f")
		case s[0] == '*':
			compound = append(compound, universalSelector{})
			s = s[1:]
		case isIdentStart(s[0]):
			ident, rest := consumeIdentifier(s)
			compound = append(compound, &elementSelector{strings.ToLower(ident)})
			s = rest
		case s[0] == '.':
			ident, rest := consumeIdentifier(s[1:])
			if ident == "" {
				return nil, errors.New("no class name after '.'")
			}
			compound = append(compound, &classSelector{ident})
			s = rest
		case s[0] == '#':
			ident, rest := consumeIdentifier(s[1:])
			if ident == "" {
				return nil, errors.New("no id after '#'")
			}
			compound = append(compound, &attributeSelector{attribute: "id", value: ident, hasValue: true})
			s = rest
		case s[0] == '[':
			atom, rest, err := parseAttributeSelector(s)
			if err != nil {
				return nil, err
			}
			compound = append(compound, atom)
			s = rest
		default:
			return nil, fmt.Errorf("unexpected character %q in selector", s[0])
		}
	}
	sel.compounds = append(sel.compounds, compound)
	return sel, nil
}

// parseAttributeSelector parses [name], [name=value], [name="value"] or
// [name='value'].
func parseAttributeSelector(s string) (*attributeSelector, string, error) {
	name, rest := consumeIdentifier(s[1:])
	if name == "" {
		return nil, "", errors.New("expected attribute name after '['")
	}
	s = rest
	if len(s) > 0 && s[0] == ']' {
		return &attributeSelector{attribute: strings.ToLower(name)}, s[1:], nil
	}
	if len(s) == 0 || s[0] != '=' {
		return nil, "", errors.New("expected '=' or ']' after attribute name")
	}
	s = s[1:]

	var value string
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		quote := s[0]
		end := strings.IndexByte(s[1:], quote)
		if end < 0 {
			return nil, "", errors.New("unterminated attribute value")
		}
		value, s = s[1:end+1], s[end+2:]
	} else {
		value, s = consumeIdentifier(s)
	}
	if len(s) == 0 || s[0] != ']' {
		return nil, "", errors.New("expected ']' at end of attribute selector")
	}
	return &attributeSelector{attribute: strings.ToLower(name), value: value, hasValue: true}, s[1:], nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isIdentStart(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || b == '-' || b == '_' || b >= 0x80
}

// consumeIdentifier returns the identifier at the start of s and the rest.
func consumeIdentifier(s string) (ident, rest string) {
	i := 0
	for ; i < len(s); i++ {
		if !isIdentStart(s[i]) && !('0' <= s[i] && s[i] <= '9') {
			break
		}
	}
	return s[:i], s[i:]
}

type universalSelector struct{}

func (universalSelector) match(*html.Node) bool { return true }

type elementSelector struct {
	name string
}

func (s *elementSelector) match(n *html.Node) bool {
	return n.Data == s.name
}

// attributeSelector matches an element carrying the attribute, and with the
// given value if hasValue is set.
type attributeSelector struct {
	attribute, value string
	hasValue         bool
}

func (s *attributeSelector) match(n *html.Node) bool {
	v, ok := attr(n, s.attribute)
	if !ok {
		return false
	}
	return !s.hasValue || v == s.value
}

type classSelector struct {
	class string
}

func (s *classSelector) match(n *html.Node) bool {
	v, _ := attr(n, "class")
	for _, f := range strings.Fields(v) {
		if f == s.class {
			return true
		}
	}
	return false
}
