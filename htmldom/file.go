package htmldom

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/tomasbasham/formjson"
)

// File is an in-memory file that can be attached to a file input.
type File struct {
	name string
	mime string
	data []byte
}

var _ formjson.File = (*File)(nil)

// NewFile returns a file with the given name, media type and content.
func NewFile(name, mimeType string, data []byte) *File {
	return &File{name: name, mime: mimeType, data: data}
}

// OpenFile reads the file at path into memory. The media type is guessed from
// the extension.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFile(filepath.Base(path), mime.TypeByExtension(filepath.Ext(path)), data), nil
}

func (f *File) Name() string { return f.name }
func (f *File) Type() string { return f.mime }

func (f *File) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
