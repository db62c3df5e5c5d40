// Package content models the payload of a scrollback entry and the markup
// codec used to persist it.
//
// A Content is a tagged union: plain text or a render tree (*Node). Render
// trees are flattened to static HTML markup when written to storage and
// reconstituted from markup when read back.
package content

import "strings"

// Kind tags which branch of a Content is populated.
type Kind string

const (
	KindText Kind = "text"
	KindNode Kind = "node"
)

// Content is the payload of a scrollback entry.
type Content struct {
	Kind Kind
	Text string
	Node *Node
}

// Text wraps a plain string.
func Text(s string) Content { return Content{Kind: KindText, Text: s} }

// FromNode wraps a render tree. A nil node yields empty text.
func FromNode(n *Node) Content {
	if n == nil {
		return Text("")
	}
	return Content{Kind: KindNode, Node: n}
}

// IsNode reports whether c carries a render tree.
func (c Content) IsNode() bool { return c.Kind == KindNode && c.Node != nil }

// Equal reports semantic equality: same kind and equal text or equal trees.
func (c Content) Equal(o Content) bool {
	if c.IsNode() != o.IsNode() {
		return false
	}
	if c.IsNode() {
		return c.Node.Equal(o.Node)
	}
	return c.Text == o.Text
}

// String returns the display text of c, one line per flattened line.
func (c Content) String() string {
	return strings.Join(Lines(c), "\n")
}
