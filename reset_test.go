package formjson_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomasbasham/formjson"
)

func TestReset(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		html   string
		values any
		want   string
	}{
		"text and textarea": {
			html:   `<form><input name="a" value="x"><input name="b"><textarea name="t">hi</textarea></form>`,
			values: map[string]any{"a": "1", "b": "2", "t": "3"},
			want:   `{"a":"x","b":"","t":"hi"}`,
		},
		"checkboxes and radios": {
			html: `<form>
				<input type="checkbox" name="c1" value="1" checked>
				<input type="checkbox" name="c2" value="2">
				<input type="radio" name="r" value="a" checked>
				<input type="radio" name="r" value="b">
			</form>`,
			values: map[string]any{"c1": nil, "c2": "2", "r": "b"},
			want:   `{"c1":"1","r":"a"}`,
		},
		"selects": {
			html: `<form>
				<select name="s"><option>a</option><option selected>b</option></select>
				<select name="n"><option>a</option><option>b</option></select>
				<select name="m" multiple><option selected>a</option><option>b</option><option selected>c</option></select>
			</form>`,
			values: map[string]any{"s": "a", "n": "b", "m": []any{"b"}},
			want:   `{"s":"b","n":"a","m":["a","c"]}`,
		},
		"single select without default skips disabled options": {
			html:   `<form><select name="d"><option disabled>x</option><option>y</option><option>z</option></select></form>`,
			values: map[string]any{"d": "z"},
			want:   `{"d":"y"}`,
		},
		"buttons keep their value": {
			html:   `<form><button name="go" value="x">Go</button></form>`,
			values: map[string]any{"go": "y"},
			want:   `{"go":"y"}`,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, form := parse(t, tt.html)
			if err := formjson.FromJSON(form, tt.values, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := formjson.Reset(form, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := formjson.ToJSON(form, &formjson.ToJSONOptions{IncludeButtonValues: true})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(mustJSON(t, got), tt.want); diff != "" {
				t.Errorf("mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	_, form := parse(t, `<form>
		<input name="a" value="x">
		<textarea name="t">hi</textarea>
		<input type="checkbox" name="c" value="1" checked>
		<input type="radio" name="r" value="a" checked>
		<select name="s"><option>a</option></select>
		<select name="m" multiple><option selected>a</option></select>
		<input type="submit" name="go" value="Send">
	</form>`)
	if err := formjson.Clear(form, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := formjson.ToJSON(form, &formjson.ToJSONOptions{IncludeUnchecked: true, IncludeButtonValues: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"a":"","t":"","c":null,"r":null,"s":null,"m":[],"go":"Send"}`
	if diff := cmp.Diff(mustJSON(t, got), want); diff != "" {
		t.Errorf("mismatch (-got +want):\n%s", diff)
	}
}

func TestResetAndClear_ChangeEvents(t *testing.T) {
	t.Parallel()

	const src = `<form>
		<input name="a" value="x">
		<input name="b" value="">
		<input type="radio" name="r" value="1" checked>
		<input type="radio" name="r" value="2">
	</form>`

	t.Run("reset", func(t *testing.T) {
		t.Parallel()

		doc, form := parse(t, src)
		if err := formjson.FromJSON(form, map[string]any{"a": "changed", "r": "2"}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := changes(doc)
		if err := formjson.Reset(form, &formjson.ResetOptions{TriggerChangeEvent: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(got, map[string]int{"a": 1, "r": 1}); diff != "" {
			t.Errorf("mismatch (-got +want):\n%s", diff)
		}
	})

	t.Run("clear", func(t *testing.T) {
		t.Parallel()

		doc, form := parse(t, src)
		got := changes(doc)
		if err := formjson.Clear(form, &formjson.ClearOptions{TriggerChangeEvent: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(got, map[string]int{"a": 1, "r": 1}); diff != "" {
			t.Errorf("mismatch (-got +want):\n%s", diff)
		}
	})
}

func TestReset_LinkedElements(t *testing.T) {
	t.Parallel()

	doc, form := parse(t, `<form id="f"><input name="a" value="1"></form><input name="b" value="2" form="f">`)
	if err := formjson.FromJSON(form, map[string]any{"a": "x", "b": "y"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := formjson.Reset(form, &formjson.ResetOptions{ExcludeLinkedFormElements: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	linked, _ := doc.Find(`input[name="b"]`)
	if got := linked.Value(); got != "y" {
		t.Errorf("linked field reset: got %q, want %q", got, "y")
	}
	got, _ := formjson.ToJSON(form, nil)
	if diff := cmp.Diff(mustJSON(t, got), `{"a":"1","b":"y"}`); diff != "" {
		t.Errorf("mismatch (-got +want):\n%s", diff)
	}
}
