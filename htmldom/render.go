package htmldom

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// Render writes the document as HTML, with the live state of its controls
// written back into attributes: value and checked for inputs, the text of
// textareas and selected for options. The parsed tree is left unchanged.
func (d *Document) Render(w io.Writer) error {
	clones := make(map[*html.Node]*html.Node)
	root := cloneNode(d.root, clones)

	for n, s := range d.controls {
		c := clones[n]
		if c == nil {
			continue
		}
		if n.Data == "textarea" {
			for c.FirstChild != nil {
				c.RemoveChild(c.FirstChild)
			}
			if s.value != "" {
				c.AppendChild(&html.Node{Type: html.TextNode, Data: s.value})
			}
			continue
		}
		if s.hasValue {
			setAttr(c, "value", s.value)
		}
		if s.checked {
			setAttr(c, "checked", "")
		} else {
			removeAttr(c, "checked")
		}
	}
	for sel := range d.selects {
		for _, o := range optionNodes(sel) {
			c := clones[o]
			if c == nil {
				continue
			}
			if d.selected[o] {
				setAttr(c, "selected", "")
			} else {
				removeAttr(c, "selected")
			}
		}
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("htmldom: render: %w", err)
	}
	return nil
}

// cloneNode deep copies n, recording every copy in clones.
func cloneNode(n *html.Node, clones map[*html.Node]*html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	clones[n] = c
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child, clones))
	}
	return c
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}
