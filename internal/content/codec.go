package content

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// markupDelimiter marks a stored string as serialized markup.
const markupDelimiter = "<"

// fragmentTag wraps markup that decodes to more than one root.
const fragmentTag = "div"

// Encode flattens c to its storable string form. Text is stored as-is; render
// trees are rendered to static HTML markup.
func Encode(c Content) (string, error) {
	if !c.IsNode() {
		return c.Text, nil
	}
	var b strings.Builder
	if err := html.Render(&b, toHTML(c.Node)); err != nil {
		return "", fmt.Errorf("render markup: %w", err)
	}
	return b.String(), nil
}

// Decode reconstitutes a stored string. Strings that begin with the markup
// delimiter and parse to at least one element become render trees; anything
// else is kept as plain text.
func Decode(s string) Content {
	if !strings.HasPrefix(s, markupDelimiter) {
		return Text(s)
	}
	n, ok := parseMarkup(s)
	if !ok {
		return Text(s)
	}
	return FromNode(n)
}

func toHTML(n *Node) *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		h.Attr = append(h.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		h.AppendChild(toHTML(c))
	}
	return h
}

func parseMarkup(s string) (*Node, bool) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, false
	}
	var roots []*Node
	hasElement := false
	for _, h := range nodes {
		n := fromHTML(h)
		if n == nil {
			continue
		}
		if !n.IsText() {
			hasElement = true
		}
		roots = append(roots, n)
	}
	if !hasElement {
		return nil, false
	}
	if len(roots) == 1 {
		return roots[0], true
	}
	return El(fragmentTag, roots...), true
}

func fromHTML(h *html.Node) *Node {
	switch h.Type {
	case html.TextNode:
		return TextNode(h.Data)
	case html.ElementNode:
		n := &Node{Tag: h.Data}
		for _, a := range h.Attr {
			n.Attrs = append(n.Attrs, Attr{Key: a.Key, Val: a.Val})
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTML(c); child != nil {
				n.Children = append(n.Children, child)
			}
		}
		return n
	default:
		// comments and doctypes carry nothing renderable
		return nil
	}
}
