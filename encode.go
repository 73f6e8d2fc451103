package formjson

import "context"

// ToJSON reads the value of every field below root.
//
// The result is an [*Object] whose nesting follows the bracket notation of the
// field names, a []any where an object had the keys 0..n-1, or a []Pair when
// opts.FlatList is set. A nil opts uses the zero [ToJSONOptions].
//
// If opts.FilesCallback is set, file fields are read and the callback receives
// the result once every file has been read; ToJSON then returns nil.
func (c *Converter) ToJSON(root any, opts *ToJSONOptions) (any, error) {
	return c.ToJSONContext(context.Background(), root, opts)
}

// ToJSONContext is like ToJSON but uses ctx for reading files.
func (c *Converter) ToJSONContext(ctx context.Context, root any, opts *ToJSONOptions) (any, error) {
	if opts == nil {
		opts = &ToJSONOptions{}
	}
	cb := opts.FilesCallback
	s, err := c.encode(root, opts, cb != nil)
	if err != nil {
		return nil, err
	}
	if cb == nil {
		return s.output(), nil
	}

	go func() {
		if err := c.readFiles(ctx, s.files, opts.FileReadMode); err != nil {
			cb(nil, err)
			return
		}
		cb(s.output(), nil)
	}()
	return nil, nil
}

// ToJSONWithFiles reads the fields below root including the content of every
// selected file, blocking until all files are read. opts.FilesCallback is
// ignored.
func (c *Converter) ToJSONWithFiles(ctx context.Context, root any, opts *ToJSONOptions) (any, error) {
	if opts == nil {
		opts = &ToJSONOptions{}
	}
	s, err := c.encode(root, opts, true)
	if err != nil {
		return nil, err
	}
	if err := c.readFiles(ctx, s.files, opts.FileReadMode); err != nil {
		return nil, err
	}
	return s.output(), nil
}

func (c *Converter) encode(root any, opts *ToJSONOptions, withFiles bool) (*encodeState, error) {
	t, err := c.tree(root, opts.ExcludeLinkedFormElements, includeFunc(opts))
	if err != nil {
		return nil, err
	}
	s := &encodeState{
		opts:      opts,
		withFiles: withFiles,
		obj:       NewObject(),
		flat:      []Pair{},
		dropped:   make(map[int]bool),
	}
	s.walk(t, s.obj)
	return s, nil
}

// includeFunc returns the predicate deciding which fields are read.
func includeFunc(opts *ToJSONOptions) func(Element) bool {
	return func(el Element) bool {
		if opts.InputFilter != nil && !opts.InputFilter(el) {
			return false
		}
		if !opts.IncludeDisabled && el.Disabled() {
			return false
		}
		if !opts.IncludeButtonValues && isButton(el) {
			return false
		}
		if !opts.IncludeUnchecked && el.Tag() == "input" && isCheckedType(inputType(el)) && !el.Checked() {
			return false
		}
		return true
	}
}

type encodeState struct {
	opts      *ToJSONOptions
	withFiles bool
	obj       *Object
	flat      []Pair
	dropped   map[int]bool
	files     []*pendingFile
}

func (s *encodeState) walk(t *fieldTree, obj *Object) {
	t.each(func(key string, n fieldNode) {
		switch n := n.(type) {
		case *nestedNode:
			if s.opts.FlatList {
				s.walk(n.tree, nil)
				return
			}
			child := NewObject()
			obj.Set(key, child)
			s.walk(n.tree, child)
		case *radioGroup:
			if v, ok := s.radioValue(n); ok {
				s.emit(obj, key, n.name, v)
			}
		case *leafNode:
			if n.inputType == "file" {
				if s.withFiles {
					s.deferFile(obj, key, n)
				}
				return
			}
			if v, ok := s.leafValue(n); ok {
				s.emit(obj, key, n.name, v)
			}
		}
	})
}

func (s *encodeState) emit(obj *Object, key, name string, v any) {
	if s.opts.FlatList {
		s.flat = append(s.flat, Pair{Name: name, Value: v})
		return
	}
	obj.Set(key, v)
}

func (s *encodeState) unchecked() (any, bool) {
	if !s.opts.IncludeUnchecked {
		return nil, false
	}
	return s.opts.UncheckedValue, true
}

func (s *encodeState) radioValue(g *radioGroup) (any, bool) {
	for _, el := range g.els {
		if el.Checked() {
			return el.Value(), true
		}
	}
	return s.unchecked()
}

func (s *encodeState) leafValue(n *leafNode) (any, bool) {
	switch {
	case n.inputType == "checkbox":
		if n.el.Checked() {
			return n.el.Value(), true
		}
		return s.unchecked()
	case isSelect(n.el):
		selected := []any{}
		for _, opt := range n.el.Options() {
			if opt.Selected() {
				selected = append(selected, opt.Value())
			}
		}
		if n.el.Multiple() {
			return selected, true
		}
		if len(selected) == 0 {
			return nil, true
		}
		return selected[0], true
	default:
		return n.el.Value(), true
	}
}

// deferFile stores a nil placeholder for a file field and queues its files for
// reading. The placeholder keeps the field's position once the files are read.
func (s *encodeState) deferFile(obj *Object, key string, n *leafNode) {
	p := &pendingFile{
		files:    n.el.Files(),
		multiple: n.el.Multiple(),
	}
	if s.opts.FlatList {
		i := len(s.flat)
		s.flat = append(s.flat, Pair{Name: n.name})
		p.set = func(v any) { s.flat[i].Value = v }
		p.drop = func() { s.dropped[i] = true }
	} else {
		obj.Set(key, nil)
		p.set = func(v any) { obj.Set(key, v) }
		p.drop = func() { obj.Delete(key) }
	}
	s.files = append(s.files, p)
}

// output applies the post-processing steps: empty values are removed before
// index keyed objects become slices.
func (s *encodeState) output() any {
	var v any = s.obj
	if s.opts.FlatList {
		flat := make([]Pair, 0, len(s.flat))
		for i, p := range s.flat {
			if !s.dropped[i] {
				flat = append(flat, p)
			}
		}
		v = flat
	}
	if s.opts.SkipEmpty {
		v = removeEmpty(v)
		if v == nil {
			if s.opts.FlatList {
				v = []Pair{}
			} else {
				v = NewObject()
			}
		}
	}
	if !s.opts.DisableArrayify {
		v = arrayify(v)
	}
	return v
}
