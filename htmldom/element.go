package htmldom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tomasbasham/formjson"
)

// Element is an element of a Document. Every element is a formjson.Container
// of the controls below it; controls also implement formjson.Element.
type Element struct {
	doc  *Document
	node *html.Node
}

var (
	_ formjson.Element   = (*Element)(nil)
	_ formjson.Container = (*Element)(nil)
	_ formjson.Linker    = (*Element)(nil)
)

// Node returns the underlying node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Elements returns the input, select, textarea and button elements below e,
// in document order.
func (e *Element) Elements() []formjson.Element {
	var els []formjson.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if isControl(n) {
				els = append(els, e.doc.element(n))
			}
			return true
		})
	}
	return els
}

// LinkedElements returns, for a form with an id, the controls elsewhere in the
// document whose form attribute names that id.
func (e *Element) LinkedElements() []formjson.Element {
	id, ok := attr(e.node, "id")
	if e.node.Data != "form" || !ok || id == "" {
		return nil
	}
	var els []formjson.Element
	walk(e.doc.root, func(n *html.Node) bool {
		if n == e.node {
			return true
		}
		if isControl(n) && !isDescendant(n, e.node) {
			if form, ok := attr(n, "form"); ok && form == id {
				els = append(els, e.doc.element(n))
			}
		}
		return true
	})
	return els
}

func isDescendant(n, ancestor *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Tag returns the element name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Name returns the name attribute.
func (e *Element) Name() string {
	v, _ := attr(e.node, "name")
	return v
}

// Type returns the control type the way a browser reports it: the type
// attribute of inputs ("text" if missing), "submit" for buttons without type,
// "select-one" or "select-multiple" for selects and "textarea".
func (e *Element) Type() string {
	switch e.node.Data {
	case "select":
		if e.Multiple() {
			return "select-multiple"
		}
		return "select-one"
	case "textarea":
		return "textarea"
	case "button":
		if t, ok := attr(e.node, "type"); ok && t != "" {
			return strings.ToLower(t)
		}
		return "submit"
	}
	if t, ok := attr(e.node, "type"); ok && t != "" {
		return strings.ToLower(t)
	}
	return "text"
}

// Disabled reports whether the element carries a disabled attribute.
func (e *Element) Disabled() bool {
	_, ok := attr(e.node, "disabled")
	return ok
}

func (e *Element) Checked() bool {
	if e.node.Data != "input" {
		return false
	}
	return e.doc.control(e.node).checked
}

func (e *Element) SetChecked(checked bool) {
	if e.node.Data != "input" {
		return
	}
	e.doc.control(e.node).checked = checked
}

func (e *Element) DefaultChecked() bool {
	_, ok := attr(e.node, "checked")
	return ok
}

// Value returns the current value. Checkboxes and radios without value
// attribute have the value "on"; selects report their first selected option.
func (e *Element) Value() string {
	switch e.node.Data {
	case "input":
		s := e.doc.control(e.node)
		if !s.hasValue && (e.Type() == "checkbox" || e.Type() == "radio") {
			return "on"
		}
		return s.value
	case "textarea":
		return e.doc.control(e.node).value
	case "select":
		for _, o := range e.options() {
			if o.Selected() {
				return o.Value()
			}
		}
		return ""
	}
	v, _ := attr(e.node, "value")
	return v
}

// SetValue sets the current value. For selects the first option with that
// value is selected; a button has no separate state and gets a new value
// attribute.
func (e *Element) SetValue(v string) {
	switch e.node.Data {
	case "input", "textarea":
		s := e.doc.control(e.node)
		s.value, s.hasValue = v, true
	case "button":
		setAttr(e.node, "value", v)
	case "select":
		found := false
		for _, o := range e.options() {
			match := !found && o.Value() == v
			o.SetSelected(match)
			found = found || match
		}
	}
}

// DefaultValue returns the value the element was declared with.
func (e *Element) DefaultValue() string {
	if e.node.Data == "textarea" {
		return textContent(e.node)
	}
	v, _ := attr(e.node, "value")
	return v
}

func (e *Element) Attr(key string) (string, bool) {
	return attr(e.node, key)
}

func (e *Element) Multiple() bool {
	_, ok := attr(e.node, "multiple")
	return ok
}

// Options returns the options of a select, including those in optgroups.
func (e *Element) Options() []formjson.Option {
	options := e.options()
	out := make([]formjson.Option, len(options))
	for i, o := range options {
		out[i] = o
	}
	return out
}

func (e *Element) options() []*Option {
	if e.node.Data != "select" {
		return nil
	}
	e.doc.initSelect(e.node)
	nodes := optionNodes(e.node)
	options := make([]*Option, len(nodes))
	for i, n := range nodes {
		options[i] = &Option{doc: e.doc, node: n, sel: e.node}
	}
	return options
}

// Files returns the files attached with Document.AttachFiles.
func (e *Element) Files() []formjson.File {
	return e.doc.files[e.node]
}

// DispatchChange calls the functions registered with Document.OnChange.
func (e *Element) DispatchChange() {
	e.doc.dispatch(e)
}

// Option is an option of a select element.
type Option struct {
	doc  *Document
	node *html.Node
	sel  *html.Node
}

// Value returns the value attribute, or the text with collapsed whitespace.
func (o *Option) Value() string {
	if v, ok := attr(o.node, "value"); ok {
		return v
	}
	return o.Text()
}

// Text returns the option text with whitespace collapsed.
func (o *Option) Text() string {
	return strings.Join(strings.Fields(textContent(o.node)), " ")
}

func (o *Option) Selected() bool {
	o.doc.initSelect(o.sel)
	return o.doc.selected[o.node]
}

// SetSelected changes the selectedness. Selecting an option of a single
// select deselects the others.
func (o *Option) SetSelected(selected bool) {
	o.doc.initSelect(o.sel)
	if selected {
		if _, multiple := attr(o.sel, "multiple"); !multiple {
			for _, n := range optionNodes(o.sel) {
				o.doc.selected[n] = false
			}
		}
	}
	o.doc.selected[o.node] = selected
}

func (o *Option) DefaultSelected() bool {
	_, ok := attr(o.node, "selected")
	return ok
}

// Disabled reports whether the option carries a disabled attribute.
func (o *Option) Disabled() bool {
	_, ok := attr(o.node, "disabled")
	return ok
}
