package formjson

import "fmt"

// ToJSONOptions configures [ToJSON]. The zero value reads every enabled,
// non-button field, omits unchecked checkboxes and radios, converts index
// keyed maps to slices and skips file fields.
type ToJSONOptions struct {
	// IncludeDisabled includes disabled fields.
	IncludeDisabled bool `yaml:"include_disabled"`

	// IncludeButtonValues includes buttons and button-typed inputs.
	IncludeButtonValues bool `yaml:"include_button_values"`

	// IncludeUnchecked emits UncheckedValue for unchecked checkboxes and radio
	// groups without a checked radio. When false those fields are omitted.
	IncludeUnchecked bool `yaml:"include_unchecked"`
	UncheckedValue   any  `yaml:"unchecked_value"`

	// InputFilter, if set, must return true for a field to be included.
	InputFilter func(Element) bool `yaml:"-"`

	// FlatList produces a []Pair in document order instead of a nested
	// structure. Names are left untouched, so duplicates are kept.
	FlatList bool `yaml:"flat_list"`

	// SkipEmpty recursively removes empty strings, nils and collections that
	// end up empty.
	SkipEmpty bool `yaml:"skip_empty"`

	// DisableArrayify keeps maps keyed 0..n-1 as objects.
	DisableArrayify bool `yaml:"disable_arrayify"`

	// FilesCallback, if set, makes ToJSON read every selected file and hand the
	// complete result to the callback, once, from another goroutine. ToJSON
	// itself then returns nil.
	FilesCallback func(values any, err error) `yaml:"-"`

	// FileReadMode selects how file content is represented.
	FileReadMode ReadMode `yaml:"file_read_mode"`

	// ExcludeLinkedFormElements ignores controls outside a form that belong to
	// it through their form attribute.
	ExcludeLinkedFormElements bool `yaml:"exclude_linked_form_elements"`
}

// FromJSONOptions configures [FromJSON].
type FromJSONOptions struct {
	// FlatList expects values to be a flat list as produced by ToJSON.
	FlatList bool `yaml:"flat_list"`

	// ClearOthers clears every field before the values are applied.
	ClearOthers bool `yaml:"clear_others"`

	// ResetOthers resets every field before the values are applied.
	ResetOthers bool `yaml:"reset_others"`

	// TriggerChangeEvent dispatches a change notification for every field
	// whose value changed.
	TriggerChangeEvent bool `yaml:"trigger_change_event"`

	ExcludeLinkedFormElements bool `yaml:"exclude_linked_form_elements"`
}

// ResetOptions configures [Reset].
type ResetOptions struct {
	TriggerChangeEvent        bool `yaml:"trigger_change_event"`
	ExcludeLinkedFormElements bool `yaml:"exclude_linked_form_elements"`
}

// ClearOptions configures [Clear].
type ClearOptions struct {
	TriggerChangeEvent        bool `yaml:"trigger_change_event"`
	ExcludeLinkedFormElements bool `yaml:"exclude_linked_form_elements"`
}

// ReadMode selects the representation of file content.
type ReadMode int

const (
	// ReadAsDataURL yields a base64 data: URL string.
	ReadAsDataURL ReadMode = iota
	// ReadAsBinaryString yields the raw bytes as a string.
	ReadAsBinaryString
	// ReadAsText yields the content as text.
	ReadAsText
	// ReadAsArrayBuffer yields a []byte.
	ReadAsArrayBuffer
)

var readModeNames = [...]string{
	ReadAsDataURL:      "readAsDataURL",
	ReadAsBinaryString: "readAsBinaryString",
	ReadAsText:         "readAsText",
	ReadAsArrayBuffer:  "readAsArrayBuffer",
}

func (m ReadMode) String() string {
	if m < 0 || int(m) >= len(readModeNames) {
		return fmt.Sprintf("ReadMode(%d)", int(m))
	}
	return readModeNames[m]
}

// MarshalText implements [encoding.TextMarshaler].
func (m ReadMode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(readModeNames) {
		return nil, fmt.Errorf("formjson: invalid read mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. It accepts the names
// returned by String.
func (m *ReadMode) UnmarshalText(text []byte) error {
	for i, name := range readModeNames {
		if string(text) == name {
			*m = ReadMode(i)
			return nil
		}
	}
	return fmt.Errorf("formjson: unknown read mode %q", text)
}
