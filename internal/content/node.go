package content

// Attr is a single key/value attribute on an element. Order is preserved.
type Attr struct {
	Key string
	Val string
}

// Node is a render tree. A node with an empty Tag is a text node and only its
// Text is meaningful; element nodes carry Attrs and Children.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// El builds an element node.
func El(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// TextNode builds a text node.
func TextNode(s string) *Node {
	return &Node{Text: s}
}

// Class sets the class attribute and returns n for chaining.
func (n *Node) Class(v string) *Node { return n.With("class", v) }

// With sets an attribute (replacing an existing key) and returns n.
func (n *Node) With(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// Attr returns the value of key, or "" when absent.
func (n *Node) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Tag == "" }

// Equal compares two trees structurally. Nil and empty slices compare equal.
// Children are compared as markup sees them: empty text nodes are ignored and
// adjacent text nodes count as one run.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Tag != o.Tag {
		return false
	}
	if n.IsText() {
		return n.Text == o.Text
	}
	if len(n.Attrs) != len(o.Attrs) {
		return false
	}
	for i := range n.Attrs {
		if n.Attrs[i] != o.Attrs[i] {
			return false
		}
	}
	nc, oc := textRuns(n.Children), textRuns(o.Children)
	if len(nc) != len(oc) {
		return false
	}
	for i := range nc {
		if !nc[i].Equal(oc[i]) {
			return false
		}
	}
	return true
}

// textRuns drops nil and empty text children and merges adjacent text
// children into one node. The input is not modified.
func textRuns(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		if c == nil || (c.IsText() && c.Text == "") {
			continue
		}
		if c.IsText() && len(out) > 0 && out[len(out)-1].IsText() {
			out[len(out)-1] = TextNode(out[len(out)-1].Text + c.Text)
			continue
		}
		out = append(out, c)
	}
	return out
}
