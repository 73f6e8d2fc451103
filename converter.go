package formjson

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// UnsupportedRootError describes a root passed to a [Converter] that cannot be
// resolved to a [Container].
type UnsupportedRootError struct {
	Root any
}

func (e *UnsupportedRootError) Error() string {
	if e.Root == nil {
		return "formjson: unsupported root <nil>"
	}
	if _, ok := e.Root.(string); ok {
		return "formjson: selector root without document"
	}
	return fmt.Sprintf("formjson: unsupported root %T", e.Root)
}

// Converter runs the form operations against the elements of a root. Roots are
// a [Container], a []Container of which the first entry is used, or a
// selector string resolved against the configured [Document].
//
// A Converter holds no per-call state and is safe for concurrent use, as long
// as the elements it operates on are not shared between calls.
type Converter struct {
	doc    Document
	files  FileReader
	logger *zap.Logger
}

// ConverterOption customises a Converter.
type ConverterOption func(*Converter)

// WithDocument sets the document selector roots are resolved against.
func WithDocument(doc Document) ConverterOption {
	return func(c *Converter) {
		c.doc = doc
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) ConverterOption {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFileReader replaces [DefaultFileReader].
func WithFileReader(r FileReader) ConverterOption {
	return func(c *Converter) {
		if r != nil {
			c.files = r
		}
	}
}

// New returns a Converter configured by options.
func New(options ...ConverterOption) *Converter {
	c := &Converter{
		files:  DefaultFileReader{},
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.logger = c.logger.Named("formjson")
	return c
}

var defaultConverter = New()

// ToJSON calls [Converter.ToJSON] on a Converter without document.
func ToJSON(root any, opts *ToJSONOptions) (any, error) {
	return defaultConverter.ToJSON(root, opts)
}

// ToJSONWithFiles calls [Converter.ToJSONWithFiles] on a Converter without
// document.
func ToJSONWithFiles(ctx context.Context, root any, opts *ToJSONOptions) (any, error) {
	return defaultConverter.ToJSONWithFiles(ctx, root, opts)
}

// FromJSON calls [Converter.FromJSON] on a Converter without document.
func FromJSON(root any, values any, opts *FromJSONOptions) error {
	return defaultConverter.FromJSON(root, values, opts)
}

// Reset calls [Converter.Reset] on a Converter without document.
func Reset(root any, opts *ResetOptions) error {
	return defaultConverter.Reset(root, opts)
}

// Clear calls [Converter.Clear] on a Converter without document.
func Clear(root any, opts *ClearOptions) error {
	return defaultConverter.Clear(root, opts)
}

// resolveRoot returns the container for root. A nil container with a nil
// error means the root matched nothing.
func (c *Converter) resolveRoot(root any) (Container, error) {
	switch r := root.(type) {
	case Container:
		return r, nil
	case []Container:
		if len(r) == 0 {
			return nil, nil
		}
		return r[0], nil
	case string:
		if c.doc == nil {
			break
		}
		container, err := c.doc.QuerySelector(r)
		if err != nil {
			return nil, fmt.Errorf("formjson: resolve %q: %w", r, err)
		}
		return container, nil
	}
	err := &UnsupportedRootError{Root: root}
	c.logger.Warn("unsupported root passed, expected a container, a container slice or a selector",
		zap.String("type", fmt.Sprintf("%T", root)))
	return nil, err
}

// elements returns the controls of root, including linked controls unless
// excluded.
func (c *Converter) elements(root any, excludeLinked bool) ([]Element, error) {
	container, err := c.resolveRoot(root)
	if err != nil || container == nil {
		return nil, err
	}
	els := container.Elements()
	if l, ok := container.(Linker); ok && !excludeLinked {
		els = append(els, l.LinkedElements()...)
	}
	return els, nil
}

// tree builds the field tree of root.
func (c *Converter) tree(root any, excludeLinked bool, valid func(Element) bool) (*fieldTree, error) {
	els, err := c.elements(root, excludeLinked)
	if err != nil {
		return nil, err
	}
	return buildTree(els, valid, c.logger), nil
}
