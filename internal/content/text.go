package content

import "strings"

var blockTags = map[string]bool{
	"div": true, "p": true, "pre": true, "section": true, "article": true,
	"header": true, "footer": true, "ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "tr": true, "blockquote": true,
}

// rowGap separates the cells of a horizontal (flex row) element.
const rowGap = "  "

// Lines flattens c into display lines. Block elements start new lines; an
// element whose class has "flex" but not "flex-col" is laid out as one row
// with its children separated by two spaces.
func Lines(c Content) []string {
	if !c.IsNode() {
		return strings.Split(c.Text, "\n")
	}
	w := &lineWriter{}
	w.node(c.Node)
	w.breakLine()
	if len(w.lines) == 0 {
		return []string{""}
	}
	return w.lines
}

// Plain returns the concatenated text of n and its descendants.
func Plain(n *Node) string {
	if n == nil {
		return ""
	}
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(Plain(c))
	}
	return b.String()
}

type lineWriter struct {
	lines []string
	cur   strings.Builder
}

func (w *lineWriter) breakLine() {
	if w.cur.Len() == 0 {
		return
	}
	w.lines = append(w.lines, w.cur.String())
	w.cur.Reset()
}

func (w *lineWriter) node(n *Node) {
	if n == nil {
		return
	}
	switch {
	case n.IsText():
		w.cur.WriteString(n.Text)
	case n.Tag == "br":
		w.lines = append(w.lines, w.cur.String())
		w.cur.Reset()
	case isRow(n):
		w.breakLine()
		cells := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			cell := strings.TrimSpace(strings.Join(strings.Fields(Plain(c)), " "))
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		w.lines = append(w.lines, strings.Join(cells, rowGap))
	case blockTags[n.Tag]:
		w.breakLine()
		for _, c := range n.Children {
			w.node(c)
		}
		w.breakLine()
	default:
		for _, c := range n.Children {
			w.node(c)
		}
	}
}

func isRow(n *Node) bool {
	classes := strings.Fields(n.Attr("class"))
	flex, col := false, false
	for _, c := range classes {
		switch c {
		case "flex", "inline-flex":
			flex = true
		case "flex-col":
			col = true
		}
	}
	return flex && !col
}
