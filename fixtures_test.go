package formjson_test

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomasbasham/formjson/htmldom"
)

type Person struct {
	Name     string   `form:"name"`
	Age      int      `form:"age,omitempty"`
	Pronouns []string `form:"pronouns"`
}

type User struct {
	Name    string  `form:"name"`
	Age     int     `form:"age,omitempty"`
	Address Address `form:"address"`
	Private string  `form:"-"`
	Pet     Animal  `form:"pet"`
}

type Address struct {
	Street string `form:"street"`
	City   string `form:"city"`
}

type MyDate time.Time

func (d MyDate) MarshalForm() (string, error) {
	return time.Time(d).Format("2006-01-02"), nil
}

// parse returns the document and its first form.
func parse(t *testing.T, src string) (*htmldom.Document, *htmldom.Element) {
	t.Helper()

	doc, err := htmldom.ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	form, err := doc.Find("form")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form == nil {
		t.Fatalf("no form in %q", src)
	}
	return doc, form
}

// mustJSON encodes v, keeping the key order of objects.
func mustJSON(t *testing.T, v any) string {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return string(b)
}

// changes counts change notifications per field name.
func changes(doc *htmldom.Document) map[string]int {
	counts := map[string]int{}
	doc.OnChange(func(el *htmldom.Element) {
		counts[el.Name()]++
	})
	return counts
}
