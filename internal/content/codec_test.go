package content

import (
	"strings"
	"testing"
)

func helpTree() *Node {
	return El("div",
		El("div", El("p", TextNode("help")), El("p", TextNode("- List all available commands"))).Class("flex flex-col"),
		El("div", El("p", TextNode("clear")), El("p", TextNode("- Clear the terminal"))).Class("flex flex-col"),
	).Class("flex flex-col justify-start items-start")
}

func TestEncodeDecode_NodeRoundTrip(t *testing.T) {
	in := FromNode(helpTree())
	s, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !strings.HasPrefix(s, "<div") {
		t.Fatalf("expected markup, got %q", s)
	}
	out := Decode(s)
	if !out.IsNode() {
		t.Fatalf("expected node content after decode, got text %q", out.Text)
	}
	if !out.Equal(in) {
		t.Fatalf("round trip mismatch:\n in: %#v\nout: %#v", in.Node, out.Node)
	}
}

func TestEncodeDecode_EscapedText(t *testing.T) {
	in := FromNode(El("p", TextNode(`a & b < "c"`)).With("title", `x"y`))
	s, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if strings.Contains(s, "a & b <") {
		t.Fatalf("expected escaped markup, got %q", s)
	}
	if out := Decode(s); !out.Equal(in) {
		t.Fatalf("escaped round trip mismatch: %q -> %#v", s, out.Node)
	}
}

func TestEncodeDecode_TextUnchanged(t *testing.T) {
	cases := []string{
		"",
		"Hello World!",
		"> guest@conch:~$ help",
		"ls: command not found",
		"<3 plain text that only looks like markup",
	}
	for _, tc := range cases {
		s, err := Encode(Text(tc))
		if err != nil {
			t.Fatalf("Encode(%q) error: %v", tc, err)
		}
		if s != tc {
			t.Fatalf("text changed on encode: %q -> %q", tc, s)
		}
		out := Decode(s)
		if out.IsNode() || out.Text != tc {
			t.Fatalf("text did not survive decode: %q -> %+v", tc, out)
		}
	}
}

func TestDecode_MultipleRootsWrapped(t *testing.T) {
	out := Decode("<p>a</p><p>b</p>")
	if !out.IsNode() || out.Node.Tag != "div" || len(out.Node.Children) != 2 {
		t.Fatalf("expected wrapped fragment, got %#v", out.Node)
	}
}

func TestLines(t *testing.T) {
	got := Lines(FromNode(helpTree()))
	want := []string{"help", "- List all available commands", "clear", "- Clear the terminal"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("Lines = %q, want %q", got, want)
	}

	row := El("div",
		El("div", El("p", TextNode("2024-01-02T03:04:05Z")), El("p", TextNode("ls"))).Class("flex gap-8"),
	).Class("flex flex-col")
	got = Lines(FromNode(row))
	if len(got) != 1 || got[0] != "2024-01-02T03:04:05Z  ls" {
		t.Fatalf("row Lines = %q", got)
	}

	if got := Lines(Text("a\nb")); len(got) != 2 {
		t.Fatalf("text Lines = %q", got)
	}
}

func TestNodeEqual(t *testing.T) {
	a := El("p", TextNode("x")).Class("c")
	b := El("p", TextNode("x")).Class("c")
	if !a.Equal(b) {
		t.Fatalf("expected equal trees")
	}
	b.With("class", "d")
	if a.Equal(b) {
		t.Fatalf("expected attribute difference to matter")
	}
	if !(&Node{Tag: "p"}).Equal(&Node{Tag: "p", Children: []*Node{}}) {
		t.Fatalf("nil and empty children should compare equal")
	}
}

func TestEncodeDecode_EmptyAndAdjacentText(t *testing.T) {
	cases := map[string]*Node{
		"empty text child": El("div",
			El("p", TextNode("2026-01-01T00:00:00Z")),
			El("p", TextNode("")),
		).Class("flex gap-8"),
		"adjacent text children": El("p", TextNode("a"), TextNode("b")),
		"mixed": El("div", TextNode("x"), TextNode(""), TextNode("y"), El("span", TextNode("z"))),
	}
	for name, tree := range cases {
		in := FromNode(tree)
		s, err := Encode(in)
		if err != nil {
			t.Fatalf("%s: Encode error: %v", name, err)
		}
		if out := Decode(s); !out.Equal(in) {
			t.Fatalf("%s: round trip mismatch for %q: %#v", name, s, out.Node)
		}
	}
}

func TestNodeEqual_TextRuns(t *testing.T) {
	if !El("p", TextNode("ab")).Equal(El("p", TextNode("a"), TextNode(""), TextNode("b"))) {
		t.Fatalf("adjacent text nodes should compare as one run")
	}
	if El("p", TextNode("a"), El("b"), TextNode("c")).Equal(El("p", TextNode("ac"), El("b"))) {
		t.Fatalf("text separated by an element must not merge")
	}
	if !El("p").Equal(El("p", TextNode(""))) {
		t.Fatalf("empty text child should be ignored")
	}
}
