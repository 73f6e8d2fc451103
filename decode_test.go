package formjson_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomasbasham/formjson"
)

const profileForm = `<form>
	<input name="user[name]" value="ann">
	<input name="user[age]" value="30">
	<input type="checkbox" name="newsletter" value="yes">
	<input type="radio" name="color" value="r">
	<input type="radio" name="color" value="g" checked>
	<input type="radio" name="color" value="b">
	<select name="country"><option value="no">Norway</option><option value="se">Sweden</option></select>
	<select name="langs[]" multiple><option value="go">Go</option><option value="js" selected>JS</option></select>
	<textarea name="bio">hi</textarea>
</form>`

func TestFromJSON(t *testing.T) {
	t.Parallel()

	obj := func(kv ...any) *formjson.Object {
		o := formjson.NewObject()
		for i := 0; i < len(kv); i += 2 {
			o.Set(kv[i].(string), kv[i+1])
		}
		return o
	}

	tests := map[string]struct {
		values any
		opts   *formjson.FromJSONOptions
		want   string
	}{
		"object": {
			values: obj(
				"user", obj("name", "bob", "age", 41),
				"newsletter", "yes",
				"color", "b",
				"country", "se",
				"langs", []any{"go"},
				"bio", "hello",
			),
			want: `{"user":{"name":"bob","age":"41"},"newsletter":"yes","color":"b","country":"se","langs":["go"],"bio":"hello"}`,
		},
		"plain map": {
			values: map[string]any{
				"user":  map[string]any{"name": "bob"},
				"color": "r",
			},
			want: `{"user":{"name":"bob","age":"30"},"color":"r","country":"no","langs":["js"],"bio":"hi"}`,
		},
		"missing keys leave fields alone": {
			values: map[string]any{},
			want:   `{"user":{"name":"ann","age":"30"},"color":"g","country":"no","langs":["js"],"bio":"hi"}`,
		},
		"null unsets": {
			values: map[string]any{"user": map[string]any{"name": nil}, "color": nil, "langs": nil},
			want:   `{"user":{"name":"","age":"30"},"country":"no","langs":[],"bio":"hi"}`,
		},
		"checkbox from bool": {
			values: map[string]any{"newsletter": true},
			want:   `{"user":{"name":"ann","age":"30"},"newsletter":"yes","color":"g","country":"no","langs":["js"],"bio":"hi"}`,
		},
		"radio without matching value": {
			values: map[string]any{"color": "purple"},
			want:   `{"user":{"name":"ann","age":"30"},"country":"no","langs":["js"],"bio":"hi"}`,
		},
		"scalar for multiple select": {
			values: map[string]any{"langs": "go"},
			want:   `{"user":{"name":"ann","age":"30"},"color":"g","country":"no","langs":["go"],"bio":"hi"}`,
		},
		"object for leaf": {
			values: map[string]any{"bio": map[string]any{"x": "y"}},
			want:   `{"user":{"name":"ann","age":"30"},"color":"g","country":"no","langs":["js"],"bio":""}`,
		},
		"scalar for nested field": {
			values: map[string]any{"user": "bob"},
			want:   `{"user":{"name":"ann","age":"30"},"color":"g","country":"no","langs":["js"],"bio":"hi"}`,
		},
		"clear others": {
			values: map[string]any{"bio": "new"},
			opts:   &formjson.FromJSONOptions{ClearOthers: true},
			want:   `{"user":{"name":"","age":""},"country":null,"langs":[],"bio":"new"}`,
		},
		"reset others": {
			values: map[string]any{"bio": "new"},
			opts:   &formjson.FromJSONOptions{ResetOthers: true},
			want:   `{"user":{"name":"ann","age":"30"},"color":"g","country":"no","langs":["js"],"bio":"new"}`,
		},
		"struct": {
			values: User{
				Name:    "carl",
				Address: Address{City: "Bergen"},
				Private: "secret",
			},
			want: `{"user":{"name":"ann","age":"30"},"color":"g","country":"no","langs":["js"],"bio":"hi"}`,
		},
		"struct under key": {
			values: map[string]any{"user": Person{Name: "dan", Age: 7}},
			want:   `{"user":{"name":"dan","age":"7"},"color":"g","country":"no","langs":["js"],"bio":"hi"}`,
		},
		"marshaler": {
			values: map[string]any{"bio": MyDate{}},
			want:   `{"user":{"name":"ann","age":"30"},"color":"g","country":"no","langs":["js"],"bio":"0001-01-01"}`,
		},
		"flat list": {
			values: []formjson.Pair{
				{Name: "user[name]", Value: "eve"},
				{Name: "color", Value: "r"},
				{Name: "langs[]", Value: []any{"go", "js"}},
			},
			opts: &formjson.FromJSONOptions{FlatList: true},
			want: `{"user":{"name":"eve","age":"30"},"color":"r","country":"no","langs":["go","js"],"bio":"hi"}`,
		},
		"flat list as decoded json": {
			values: []any{
				[]any{"user[age]", "50"},
				[]any{"ignored"},
				"garbage",
			},
			opts: &formjson.FromJSONOptions{FlatList: true},
			want: `{"user":{"name":"ann","age":"50"},"color":"g","country":"no","langs":["js"],"bio":"hi"}`,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, form := parse(t, profileForm)
			if err := formjson.FromJSON(form, tt.values, tt.opts); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := formjson.ToJSON(form, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(mustJSON(t, got), tt.want); diff != "" {
				t.Errorf("mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestFromJSON_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		values  any
		wantErr bool
	}{
		"nil":    {values: nil, wantErr: true},
		"string": {values: "user", wantErr: true},
		"number": {values: 42, wantErr: true},
		"func": {
			values:  map[string]any{"bio": func() {}},
			wantErr: true,
		},
		"empty list": {values: []any{}},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, form := parse(t, profileForm)
			before, _ := formjson.ToJSON(form, nil)

			err := formjson.FromJSON(form, tt.values, &formjson.FromJSONOptions{ClearOthers: true})
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if !tt.wantErr {
				return
			}

			after, _ := formjson.ToJSON(form, nil)
			if diff := cmp.Diff(mustJSON(t, after), mustJSON(t, before)); diff != "" {
				t.Errorf("fields changed on error (-got +want):\n%s", diff)
			}
		})
	}
}

func TestFromJSON_InvalidValuesError(t *testing.T) {
	t.Parallel()

	_, form := parse(t, profileForm)
	err := formjson.FromJSON(form, "user", nil)

	var valuesErr *formjson.InvalidValuesError
	if !errors.As(err, &valuesErr) {
		t.Fatalf("expected *InvalidValuesError, got: %v", err)
	}
	if got, want := valuesErr.Error(), "formjson: FromJSON(non-object string)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFromJSON_AutoIncrementCheckboxes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src    string
		values any
		want   string
	}{
		"strings in any order": {
			src: `<form>
				<input type="checkbox" name="tags[]" value="a" checked>
				<input type="checkbox" name="tags[]" value="b">
				<input type="checkbox" name="tags[]" value="c">
			</form>`,
			values: map[string]any{"tags": []any{"c", "b"}},
			want:   `{"tags":["b","c"]}`,
		},
		"numbers": {
			src: `<form>
				<input type="checkbox" name="tags[]" value="1">
				<input type="checkbox" name="tags[]" value="2">
				<input type="checkbox" name="tags[]" value="3" checked>
			</form>`,
			values: map[string]any{"tags": []any{1, 3}},
			want:   `{"tags":["1","3"]}`,
		},
		"booleans": {
			src: `<form>
				<input type="checkbox" name="flags[]" value="1">
				<input type="checkbox" name="flags[]" value="0" checked>
			</form>`,
			values: map[string]any{"flags": []any{true}},
			want:   `{"flags":["1"]}`,
		},
		"empty list": {
			src: `<form>
				<input type="checkbox" name="tags[]" value="a" checked>
			</form>`,
			values: map[string]any{"tags": []any{}},
			want:   `{}`,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, form := parse(t, tt.src)
			if err := formjson.FromJSON(form, tt.values, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := formjson.ToJSON(form, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(mustJSON(t, got), tt.want); diff != "" {
				t.Errorf("mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestDecoder_AutoIncrementCheckboxNumbers(t *testing.T) {
	t.Parallel()

	_, form := parse(t, `<form>
		<input type="checkbox" name="tags[]" value="1">
		<input type="checkbox" name="tags[]" value="2">
		<input type="checkbox" name="tags[]" value="3" checked>
	</form>`)

	dec := formjson.NewDecoder(strings.NewReader(`{"tags":[1,3]}`), nil)
	if err := dec.Decode(form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := formjson.ToJSON(form, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(mustJSON(t, got), `{"tags":["1","3"]}`); diff != "" {
		t.Errorf("mismatch (-got +want):\n%s", diff)
	}
}

func TestFromJSON_AutoIncrementRows(t *testing.T) {
	t.Parallel()

	_, form := parse(t, `<form>
		<input name="item[][x]"><input name="item[][y]">
		<input name="item[][x]"><input name="item[][y]">
	</form>`)

	values := map[string]any{
		"item": []any{
			map[string]any{"x": "1", "y": "2"},
			map[string]any{"x": "3", "y": "4"},
		},
	}
	if err := formjson.FromJSON(form, values, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := formjson.ToJSON(form, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(mustJSON(t, got), `{"item":[{"x":"1","y":"2"},{"x":"3","y":"4"}]}`); diff != "" {
		t.Errorf("mismatch (-got +want):\n%s", diff)
	}
}

func TestFromJSON_FlatListDuplicates(t *testing.T) {
	t.Parallel()

	src := `<form>
		<input type="checkbox" name="tags[]" value="a" checked>
		<input type="checkbox" name="tags[]" value="b" checked>
	</form>`
	_, form := parse(t, src)
	flat, err := formjson.ToJSON(form, &formjson.ToJSONOptions{FlatList: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(mustJSON(t, flat), `[["tags[]","a"],["tags[]","b"]]`); diff != "" {
		t.Errorf("mismatch (-got +want):\n%s", diff)
	}

	if err := formjson.Clear(form, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := formjson.FromJSON(form, flat, &formjson.FromJSONOptions{FlatList: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := formjson.ToJSON(form, &formjson.ToJSONOptions{FlatList: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(got, flat); diff != "" {
		t.Errorf("mismatch (-got +want):\n%s", diff)
	}
}

func TestFromJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	_, form := parse(t, profileForm)
	want, err := formjson.ToJSON(form, &formjson.ToJSONOptions{IncludeUnchecked: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := formjson.FromJSON(form, map[string]any{"user": map[string]any{"name": "x"}, "color": "b"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := formjson.FromJSON(form, want, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := formjson.ToJSON(form, &formjson.ToJSONOptions{IncludeUnchecked: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(mustJSON(t, got), mustJSON(t, want)); diff != "" {
		t.Errorf("mismatch (-got +want):\n%s", diff)
	}
}

func TestFromJSON_ChangeEvents(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		values any
		opts   *formjson.FromJSONOptions
		want   map[string]int
	}{
		"radio group fires once": {
			values: map[string]any{"color": "b"},
			opts:   &formjson.FromJSONOptions{TriggerChangeEvent: true},
			want:   map[string]int{"color": 1},
		},
		"unchanged values fire nothing": {
			values: map[string]any{"color": "g", "bio": "hi", "country": "no", "langs": []any{"js"}},
			opts:   &formjson.FromJSONOptions{TriggerChangeEvent: true},
			want:   map[string]int{},
		},
		"changed fields fire": {
			values: map[string]any{"user": map[string]any{"name": "bob"}, "newsletter": "yes", "langs": []any{"go"}},
			opts:   &formjson.FromJSONOptions{TriggerChangeEvent: true},
			want:   map[string]int{"user[name]": 1, "newsletter": 1, "langs[]": 1},
		},
		"disabled by default": {
			values: map[string]any{"color": "b", "bio": "changed"},
			want:   map[string]int{},
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, form := parse(t, profileForm)
			got := changes(doc)
			if err := formjson.FromJSON(form, tt.values, tt.opts); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestFromJSON_RadioStates(t *testing.T) {
	t.Parallel()

	doc, form := parse(t, profileForm)
	if err := formjson.FromJSON(form, map[string]any{"color": "b"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	radios, err := doc.FindAll(`input[name="color"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []bool
	for _, r := range radios {
		got = append(got, r.Checked())
	}
	if diff := cmp.Diff(got, []bool{false, false, true}); diff != "" {
		t.Errorf("mismatch (-got +want):\n%s", diff)
	}
}
