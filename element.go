package formjson

import (
	"context"
	"io"
	"strings"
)

// Element is a form control: an input, select, textarea or button.
//
// Implementations report live state (Checked, Value, Option.Selected) and the
// declared defaults the element was created with (DefaultChecked,
// DefaultValue, Option.DefaultSelected).
type Element interface {
	// Tag returns the lower-case element name: "input", "select", "textarea"
	// or "button".
	Tag() string
	Name() string
	// Type returns the control type. For inputs this is the type attribute,
	// "text" when absent; other elements may report anything that is not an
	// input type, such as "select-one" or "textarea".
	Type() string
	Disabled() bool

	Checked() bool
	SetChecked(bool)
	DefaultChecked() bool

	Value() string
	SetValue(string)
	DefaultValue() string
	Attr(key string) (string, bool)

	// Multiple reports whether a select or file input accepts several values.
	Multiple() bool
	Options() []Option
	Files() []File

	// DispatchChange notifies listeners that the element value was changed.
	DispatchChange()
}

// Option is an option of a select element. Value falls back to the option
// text when no value attribute is present.
type Option interface {
	Value() string
	Selected() bool
	SetSelected(bool)
	DefaultSelected() bool
	Disabled() bool
}

// File is a file chosen in a file input.
type File interface {
	Name() string
	// Type returns the MIME type, empty when unknown.
	Type() string
	Open() (io.ReadCloser, error)
}

// Container enumerates every form control below a root, in document order.
type Container interface {
	Elements() []Element
}

// Linker is implemented by containers that are forms and can list controls
// outside of them which belong to the form through a form attribute.
type Linker interface {
	LinkedElements() []Element
}

// Document resolves selector strings to containers.
type Document interface {
	QuerySelector(selector string) (Container, error)
}

// FileReader reads the content of a selected file.
type FileReader interface {
	ReadFile(ctx context.Context, f File, mode ReadMode) (any, error)
}

var (
	buttonInputTypes  = [...]string{"button", "submit", "reset", "image"}
	checkedInputTypes = [...]string{"checkbox", "radio"}
)

func isButtonType(typ string) bool {
	for _, t := range buttonInputTypes {
		if t == typ {
			return true
		}
	}
	return false
}

func isCheckedType(typ string) bool {
	for _, t := range checkedInputTypes {
		if t == typ {
			return true
		}
	}
	return false
}

func isButton(el Element) bool {
	return el.Tag() == "button" || isButtonType(inputType(el))
}

func isSelect(el Element) bool {
	return el.Tag() == "select"
}

func isMultiSelect(el Element) bool {
	return isSelect(el) && el.Multiple()
}

func inputType(el Element) string {
	typ := strings.ToLower(el.Type())
	if typ == "" {
		return "text"
	}
	return typ
}
