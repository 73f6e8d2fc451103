// Package htmldom provides form elements backed by an HTML document parsed with
// golang.org/x/net/html, for use with the formjson package.
//
// A Document keeps the live state of its controls (values, checked radios and
// checkboxes, selected options) apart from the parsed attributes, which keep
// describing the defaults. Render writes the live state out as HTML.
//
// A Document is not safe for concurrent use.
package htmldom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/tomasbasham/formjson"
)

// Document is a parsed HTML document.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
	controls map[*html.Node]*controlState
	selected map[*html.Node]bool
	selects  map[*html.Node]bool
	files    map[*html.Node][]formjson.File
	onChange []func(*Element)
}

type controlState struct {
	value    string
	hasValue bool
	checked  bool
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse: %w", err)
	}
	return NewDocument(root), nil
}

// ParseString parses the HTML document in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// NewDocument wraps an already parsed node tree.
func NewDocument(root *html.Node) *Document {
	return &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
		controls: make(map[*html.Node]*controlState),
		selected: make(map[*html.Node]bool),
		selects:  make(map[*html.Node]bool),
		files:    make(map[*html.Node][]formjson.File),
	}
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Find returns the first element matching selector, or nil if there is none.
// Selectors starting with "/", "./" or "(" are XPath expressions; anything
// else is a css selector made of element names, *, #id, .class and attribute
// selectors combined with descendant combinators.
func (d *Document) Find(selector string) (*Element, error) {
	nodes, err := d.query(selector, true)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return d.element(nodes[0]), nil
}

// FindAll returns every element matching selector, in document order.
func (d *Document) FindAll(selector string) ([]*Element, error) {
	nodes, err := d.query(selector, false)
	if err != nil {
		return nil, err
	}
	els := make([]*Element, len(nodes))
	for i, n := range nodes {
		els[i] = d.element(n)
	}
	return els, nil
}

// QuerySelector implements formjson.Document.
func (d *Document) QuerySelector(selector string) (formjson.Container, error) {
	el, err := d.Find(selector)
	if err != nil || el == nil {
		return nil, err
	}
	return el, nil
}

func (d *Document) query(selector string, first bool) ([]*html.Node, error) {
	if isXPath(selector) {
		if first {
			n, err := htmlquery.Query(d.root, selector)
			if err != nil {
				return nil, fmt.Errorf("htmldom: xpath %q: %w", selector, err)
			}
			if n == nil {
				return nil, nil
			}
			return []*html.Node{n}, nil
		}
		nodes, err := htmlquery.QueryAll(d.root, selector)
		if err != nil {
			return nil, fmt.Errorf("htmldom: xpath %q: %w", selector, err)
		}
		return nodes, nil
	}

	sel, err := parseSelector(selector)
	if err != nil {
		return nil, fmt.Errorf("htmldom: selector %q: %w", selector, err)
	}
	var nodes []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if sel.match(n) {
			nodes = append(nodes, n)
			return !first
		}
		return true
	})
	return nodes, nil
}

func isXPath(s string) bool {
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "(")
}

// OnChange registers fn to be called for every change notification.
func (d *Document) OnChange(fn func(*Element)) {
	d.onChange = append(d.onChange, fn)
}

// AttachFiles sets the files selected in a file input, replacing any previous
// selection.
func (d *Document) AttachFiles(el *Element, files ...formjson.File) error {
	if el == nil || el.doc != d {
		return errors.New("htmldom: element does not belong to document")
	}
	if el.Tag() != "input" || el.Type() != "file" {
		return fmt.Errorf("htmldom: cannot attach files to %s[type=%s]", el.Tag(), el.Type())
	}
	d.files[el.node] = append([]formjson.File(nil), files...)
	return nil
}

// element returns the Element wrapping n, creating it on first use so that
// each node has a single wrapper.
func (d *Document) element(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

// control returns the live state of an input or textarea, initialised from
// its attributes.
func (d *Document) control(n *html.Node) *controlState {
	if s, ok := d.controls[n]; ok {
		return s
	}
	s := &controlState{}
	if n.Data == "textarea" {
		s.value = textContent(n)
		s.hasValue = true
	} else {
		s.value, s.hasValue = attr(n, "value")
	}
	_, s.checked = attr(n, "checked")
	d.controls[n] = s
	return s
}

// initSelect computes the initial selectedness of the options of sel: the
// options carrying a selected attribute, reduced to the last one for single
// selects, which otherwise select their first enabled option.
func (d *Document) initSelect(sel *html.Node) {
	if d.selects[sel] {
		return
	}
	d.selects[sel] = true

	options := optionNodes(sel)
	_, multiple := attr(sel, "multiple")
	var last *html.Node
	for _, o := range options {
		_, ok := attr(o, "selected")
		d.selected[o] = ok
		if ok {
			last = o
		}
	}
	if multiple {
		return
	}
	if last == nil {
		for _, o := range options {
			if _, disabled := attr(o, "disabled"); !disabled {
				last = o
				break
			}
		}
	}
	for _, o := range options {
		d.selected[o] = o == last
	}
}

func (d *Document) dispatch(el *Element) {
	for _, fn := range d.onChange {
		fn(el)
	}
}

// walk visits n and its descendants in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func optionNodes(sel *html.Node) []*html.Node {
	var options []*html.Node
	walk(sel, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "option" {
			options = append(options, n)
		}
		return true
	})
	return options
}

func isControl(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "input", "select", "textarea", "button":
		return true
	}
	return false
}
