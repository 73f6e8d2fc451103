package formjson

import (
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Encoder writes the fields of a root as JSON to an [io.Writer].
type Encoder struct {
	w      io.Writer
	c      *Converter
	opts   *ToJSONOptions
	files  bool
	indent string
}

// NewEncoder creates a new [Encoder] that writes to w using c. A nil c uses a
// Converter without document.
func NewEncoder(w io.Writer, c *Converter) *Encoder {
	if c == nil {
		c = defaultConverter
	}
	return &Encoder{w: w, c: c}
}

// SetOptions sets the options used to read fields. FilesCallback is ignored;
// use ReadFiles to include file content.
func (e *Encoder) SetOptions(opts *ToJSONOptions) {
	e.opts = opts
}

// ReadFiles makes the encoder read the content of selected files.
func (e *Encoder) ReadFiles(on bool) {
	e.files = on
}

// SetIndent makes the output indented by indent per level.
func (e *Encoder) SetIndent(indent string) {
	e.indent = indent
}

// Encode reads the fields below root and writes them as JSON followed by a
// newline.
func (e *Encoder) Encode(ctx context.Context, root any) error {
	opts := ToJSONOptions{}
	if e.opts != nil {
		opts = *e.opts
	}
	opts.FilesCallback = nil

	var (
		v   any
		err error
	)
	if e.files {
		v, err = e.c.ToJSONWithFiles(ctx, root, &opts)
	} else {
		v, err = e.c.ToJSON(root, &opts)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(e.w)
	if e.indent != "" {
		enc.SetIndent("", e.indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("formjson: failed to write values: %w", err)
	}
	return nil
}

// Decoder reads JSON values from an [io.Reader] and writes them into the
// fields of a root.
type Decoder struct {
	dec  *json.Decoder
	c    *Converter
	opts *FromJSONOptions
}

// NewDecoder creates a new [Decoder] that reads from r using c. A nil c uses a
// Converter without document.
func NewDecoder(r io.Reader, c *Converter) *Decoder {
	if c == nil {
		c = defaultConverter
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec, c: c}
}

// SetOptions sets the options used to write fields.
func (d *Decoder) SetOptions(opts *FromJSONOptions) {
	d.opts = opts
}

// Decode reads the next JSON value and applies it to the fields below root.
func (d *Decoder) Decode(root any) error {
	var values any
	if err := d.dec.Decode(&values); err != nil {
		return fmt.Errorf("formjson: failed to read values: %w", err)
	}
	return d.c.FromJSON(root, values, d.opts)
}
