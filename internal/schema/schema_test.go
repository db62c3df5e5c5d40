package schema

import (
	"strings"
	"testing"
)

func TestFor(t *testing.T) {
	for _, name := range Names() {
		sch, err := For(name)
		if err != nil {
			t.Fatalf("For(%q) error: %v", name, err)
		}
		b, err := MarshalSchema(sch)
		if err != nil {
			t.Fatalf("MarshalSchema(%q) error: %v", name, err)
		}
		if !strings.Contains(string(b), `"state"`) && name != "config" {
			t.Fatalf("%s schema lacks the state envelope:\n%s", name, b)
		}
	}
	sch, _ := For("lines")
	b, _ := MarshalSchema(sch)
	for _, want := range []string{`"lines"`, `"content"`, `"timestamp"`} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("lines schema lacks %s", want)
		}
	}
	if _, err := For("nope"); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}
