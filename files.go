package formjson

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultFileReader reads files through [File.Open].
type DefaultFileReader struct{}

// ReadFile reads f completely and converts its content according to mode.
func (DefaultFileReader) ReadFile(ctx context.Context, f File, mode ReadMode) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ReadAsDataURL:
		typ := f.Type()
		if typ == "" {
			typ = "application/octet-stream"
		}
		return "data:" + typ + ";base64," + base64.StdEncoding.EncodeToString(data), nil
	case ReadAsBinaryString:
		// One character per byte.
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		return string(runes), nil
	case ReadAsText:
		return strings.ToValidUTF8(string(data), "\uFFFD"), nil
	case ReadAsArrayBuffer:
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported read mode %v", mode)
	}
}

// pendingFile is a file field waiting for its files to be read.
type pendingFile struct {
	files    []File
	multiple bool
	results  []any
	set      func(any)
	drop     func()
}

// resolve stores the read content in place of the placeholder. Multiple file
// inputs get a slice in selection order. Inputs without files are dropped.
func (p *pendingFile) resolve() {
	if len(p.results) == 0 {
		p.drop()
		return
	}
	if p.multiple {
		p.set(p.results)
		return
	}
	p.set(p.results[len(p.results)-1])
}

// readFiles reads every pending file concurrently. The first failure cancels
// the remaining reads and is returned.
func (c *Converter) readFiles(ctx context.Context, pending []*pendingFile, mode ReadMode) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range pending {
		p.results = make([]any, len(p.files))
		for i, f := range p.files {
			p, i, f := p, i, f
			g.Go(func() error {
				c.logger.Debug("reading file", zap.String("file", f.Name()), zap.Stringer("mode", mode))
				v, err := c.files.ReadFile(ctx, f, mode)
				if err != nil {
					return fmt.Errorf("formjson: read file %q: %w", f.Name(), err)
				}
				p.results[i] = v
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, p := range pending {
		p.resolve()
	}
	return nil
}
