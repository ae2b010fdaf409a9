package markup

import "log/slog"

// builder consumes a token stream and assembles a Node tree, applying
// HTML's tag-omission and scope-closing rules. It has no open-element
// stack: the tree already owns each node's children, so upward walks
// during scope resolution simply follow Node.Parent from current, the
// insertion point.
type builder struct {
	root    *Node
	current *Node
	mode    Mode
	log     *slog.Logger
}

func newBuilder(mode Mode, log *slog.Logger) *builder {
	root := &Node{Type: RootNode}
	return &builder{root: root, current: root, mode: mode, log: log}
}

// build runs tok to completion and returns the assembled tree.
func (b *builder) build(tok *Tokenizer) *Node {
	for {
		t := tok.Next()
		switch t.Type {
		case EOFToken:
			return b.root
		case TextToken:
			b.handleText(t.Data)
		case PIToken:
			b.handlePI(t.Data)
		case CommentToken:
			b.appendLeaf(CommentNode, t.Data)
		case CDATAToken:
			b.appendLeaf(CDATANode, t.Data)
		case DoctypeToken:
			b.appendLeaf(DoctypeNode, t.Data)
		case RawToken:
			b.appendLeaf(RawNode, t.Data)
		case StartTagToken:
			b.openElement(t)
		case EndTagToken:
			name := normalizeName(b.mode, t.Data)
			b.endTag(name)
		}
	}
}

func (b *builder) handleText(data string) {
	if data == "" {
		return
	}
	n := &Node{Type: TextNode, Data: data}
	b.current.AppendChild(n)
}

func (b *builder) appendLeaf(typ Type, data string) {
	n := &Node{Type: typ, Data: data}
	b.current.AppendChild(n)
}

// handlePI appends the pi leaf and latches the engine into XML mode the
// first time a PI body mentions "xml" case-insensitively, if the mode is
// still unset.
func (b *builder) handlePI(data string) {
	b.appendLeaf(PINode, data)
	if b.mode == AutoMode && looksLikeXMLDecl(data) {
		b.mode = XMLMode
		if b.log != nil {
			b.log.Debug("markup: auto-detected xml mode", "pi", data)
		}
	}
}

// openElement applies the tag-omission rules, then creates and opens a new
// TagNode, immediately closing it again if it is a void element (HTML mode)
// or was written self-closing.
func (b *builder) openElement(t Token) {
	name := normalizeName(b.mode, t.Data)
	b.applyTagOmission(name)

	n := NewTag(name)
	for _, a := range t.Attrs {
		key := normalizeName(b.mode, a.Key)
		if a.HasValue {
			n.SetAttr(key, a.Value)
		} else {
			n.SetValuelessAttr(key)
		}
	}
	b.current.AppendChild(n)
	b.current = n

	if (b.mode != XMLMode && voidElements.has(name)) || t.SelfClosing {
		b.endTag(name)
	}
}

// applyTagOmission implements HTML's tag-omission table: opening certain
// elements implicitly closes whatever open element(s) they cannot nest
// inside. It is a no-op in XML mode and when current is root.
func (b *builder) applyTagOmission(name string) {
	if b.mode == XMLMode || b.current.Type == RootNode {
		return
	}
	switch name {
	case "li":
		b.closeScope(newSet("li"), "ul")
	case "body":
		b.implicitEnd("head")
	case "optgroup":
		b.implicitEnd("optgroup")
	case "option":
		b.implicitEnd("option")
	case "colgroup", "thead", "tbody", "tfoot":
		b.closeScope(tableSections, "table")
	case "tr":
		b.closeScope(newSet("tr"), "table")
	case "th", "td":
		b.closeScope(newSet("th"), "table")
		b.closeScope(newSet("td"), "table")
	case "dt", "dd":
		b.implicitEnd("dt")
		b.implicitEnd("dd")
	case "rt", "rp":
		b.implicitEnd("rt")
		b.implicitEnd("rp")
	default:
		if paragraphBreakers.has(name) {
			// A paragraph-breaking element is flow content; it cannot nest
			// inside an open phrasing-content ancestor (the symmetric case
			// of the end-tag phrasing guard, which stops an inline end tag
			// from crossing the other way). Close out of those first.
			b.closePhrasingAncestors()
			b.implicitEnd("p")
		}
	}
}

// closePhrasingAncestors closes every open ancestor, innermost first, for
// as long as it is phrasing content, stopping at the first non-phrasing
// ancestor or root.
func (b *builder) closePhrasingAncestors() {
	for b.current.Type == TagNode && phrasingContent.has(b.current.Name) {
		b.current = b.current.Parent
	}
}

// closeScope walks from current toward root; for each ancestor whose name
// is in allowed, it implicitly ends that ancestor (advancing current past
// it). It stops at root or at an ancestor named scope, which it leaves
// open.
func (b *builder) closeScope(allowed tagSet, scope string) {
	node := b.current
	for node != nil && node.Type != RootNode {
		if node.Name == scope {
			return
		}
		if allowed.has(node.Name) {
			b.current = node.Parent
		}
		node = node.Parent
	}
}

// implicitEnd closes the nearest open ancestor named name, if any, with no
// scope boundary.
func (b *builder) implicitEnd(name string) {
	node := b.current
	for node != nil && node.Type != RootNode {
		if node.Name == name {
			b.current = node.Parent
			return
		}
		node = node.Parent
	}
}

// endTag implements the end-tag algorithm for an end tag named name:
// locate the matching open ancestor (aborting on the phrasing guard), then
// walk current back up to and past it, closing whatever intermediate
// elements are missing their own end tags along the way.
func (b *builder) endTag(name string) {
	if !b.locateEndTag(name) {
		if b.log != nil {
			b.log.Debug("markup: ignoring stray end tag", "name", name)
		}
		return
	}

	for b.current != nil && b.current.Type != RootNode {
		if b.current.Name == name {
			b.current = b.current.Parent
			return
		}
		if name == "table" {
			b.closeScope(tableSections, "table")
			if b.current == nil || b.current.Type == RootNode {
				return
			}
			if b.current.Name == name {
				b.current = b.current.Parent
				return
			}
		}
		b.current = b.current.Parent
	}
}

// locateEndTag reports whether an ancestor named name is currently open,
// applying the phrasing-content crossing guard (HTML mode only): if name is
// phrasing content and the walk reaches a non-phrasing ancestor before
// finding name, the end tag is abandoned rather than closing across it.
func (b *builder) locateEndTag(name string) bool {
	phrasingGuard := b.mode != XMLMode && phrasingContent.has(name)
	node := b.current
	for node != nil && node.Type != RootNode {
		if node.Name == name {
			return true
		}
		if phrasingGuard && !phrasingContent.has(node.Name) {
			return false
		}
		node = node.Parent
	}
	return false
}
