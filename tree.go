package formjson

import "go.uber.org/zap"

// fieldNode is one of *leafNode, *radioGroup or *nestedNode.
type fieldNode interface {
	fieldNode()
}

// leafNode wraps a single non-radio element.
type leafNode struct {
	name          string
	inputType     string
	el            Element
	autoIncrement bool
}

// radioGroup wraps every radio sharing one resolved name.
type radioGroup struct {
	name          string
	els           []Element
	autoIncrement bool
}

// nestedNode is one level of bracket nesting.
type nestedNode struct {
	tree *fieldTree
}

func (*leafNode) fieldNode()   {}
func (*radioGroup) fieldNode() {}
func (*nestedNode) fieldNode() {}

// fieldTree maps path keys to nodes, remembering the order in which keys were
// first seen.
type fieldTree struct {
	keys  []string
	nodes map[string]fieldNode
}

func newFieldTree() *fieldTree {
	return &fieldTree{nodes: make(map[string]fieldNode)}
}

func (t *fieldTree) get(key string) fieldNode {
	return t.nodes[key]
}

func (t *fieldTree) set(key string, n fieldNode) {
	if _, ok := t.nodes[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.nodes[key] = n
}

// each calls fn for every node in key order.
func (t *fieldTree) each(fn func(key string, n fieldNode)) {
	for _, key := range t.keys {
		fn(key, t.nodes[key])
	}
}

// treeBuilder groups elements into a fieldTree.
type treeBuilder struct {
	root    *fieldTree
	counter indexCounter
	logger  *zap.Logger
}

func newTreeBuilder(logger *zap.Logger) *treeBuilder {
	return &treeBuilder{
		root:    newFieldTree(),
		counter: make(indexCounter),
		logger:  logger,
	}
}

// buildTree creates the field tree for els. Elements without a name, or for
// which valid returns false, are skipped. A nil valid accepts everything.
func buildTree(els []Element, valid func(Element) bool, logger *zap.Logger) *fieldTree {
	b := newTreeBuilder(logger)
	for _, el := range els {
		if el.Name() == "" {
			continue
		}
		if valid != nil && !valid(el) {
			continue
		}
		b.add(el)
	}
	return b.root
}

func (b *treeBuilder) add(el Element) {
	path, autoIncrement := fieldPath(el)
	keys := b.counter.resolve(path)
	typ := inputType(el)

	t := b.root
	for i, key := range keys {
		if i < len(keys)-1 {
			n, ok := t.get(key).(*nestedNode)
			if !ok {
				if t.get(key) != nil {
					b.logger.Debug("replacing field with nested field",
						zap.String("name", el.Name()), zap.String("key", key))
				}
				n = &nestedNode{tree: newFieldTree()}
				t.set(key, n)
			}
			t = n.tree
			continue
		}

		if typ == "radio" {
			g, ok := t.get(key).(*radioGroup)
			if !ok {
				g = &radioGroup{name: el.Name()}
				t.set(key, g)
			}
			if autoIncrement {
				g.autoIncrement = true
			}
			g.els = append(g.els, el)
			continue
		}
		if t.get(key) != nil {
			b.logger.Debug("overwriting field", zap.String("name", el.Name()), zap.String("key", key))
		}
		t.set(key, &leafNode{
			name:          el.Name(),
			inputType:     typ,
			el:            el,
			autoIncrement: autoIncrement,
		})
	}
}
