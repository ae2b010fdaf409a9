package markup

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Render serializes n back to a markup string. Render never fails: every
// tree produces some string.
func Render(n *Node, mode Mode) string {
	var sb strings.Builder
	renderNode(&sb, n, mode)
	return sb.String()
}

func renderNode(sb *strings.Builder, n *Node, mode Mode) {
	switch n.Type {
	case RootNode:
		for _, c := range n.Children {
			renderNode(sb, c, mode)
		}
	case TextNode:
		sb.WriteString(html.EscapeString(n.Data))
	case RawNode:
		sb.WriteString(n.Data)
	case DoctypeNode:
		sb.WriteString("<!DOCTYPE")
		sb.WriteString(n.Data)
		sb.WriteByte('>')
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case CDATANode:
		sb.WriteString("<![CDATA[")
		sb.WriteString(n.Data)
		sb.WriteString("]]>")
	case PINode:
		sb.WriteString("<?")
		sb.WriteString(n.Data)
		sb.WriteString("?>")
	case TagNode:
		renderTag(sb, n, mode)
	}
}

func renderTag(sb *strings.Builder, n *Node, mode Mode) {
	sb.WriteByte('<')
	sb.WriteString(n.Name)
	renderAttrs(sb, n.Attrs)

	selfClose := mode == XMLMode || (mode != XMLMode && voidElements.has(n.Name))
	if len(n.Children) == 0 && selfClose {
		sb.WriteString(" />")
		return
	}

	sb.WriteByte('>')
	for _, c := range n.Children {
		renderNode(sb, c, mode)
	}
	sb.WriteString("</")
	sb.WriteString(n.Name)
	sb.WriteByte('>')
}

// renderAttrs writes attrs in ascending lexicographic key order, so
// serialization is sorted and deterministic.
func renderAttrs(sb *strings.Builder, attrs map[string]Attr) {
	if len(attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		a := attrs[k]
		sb.WriteByte(' ')
		sb.WriteString(k)
		if a.HasValue {
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(a.Value))
			sb.WriteByte('"')
		}
	}
}
