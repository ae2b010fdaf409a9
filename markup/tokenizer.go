package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Tokenizer splits source markup into a stream of lexical tokens: a run of
// text up to the next "<", then — tried in order at each "<" — a processing
// instruction, a comment, a CDATA section, a doctype, or a tag; a "<" that
// matches none of these is folded back into the surrounding text rather
// than dropped.
//
// Tokenizer never fails: every input produces a complete token stream,
// terminated by an EOFToken.
type Tokenizer struct {
	src string
	pos int

	// mode is shared with the tree builder driving this tokenizer, so that
	// raw-text detection (script/style) uses the mode in effect at the
	// point those tags are scanned, reflecting any auto-detect latch the
	// builder has already applied to earlier tokens.
	mode *Mode

	queue []Token
}

// newTokenizer returns a Tokenizer over src. mode must not be nil; the
// builder and tokenizer share it.
func newTokenizer(src string, mode *Mode) *Tokenizer {
	return &Tokenizer{src: src, mode: mode}
}

// Next returns the next token in the stream. Once it returns an EOFToken,
// every subsequent call also returns an EOFToken.
func (t *Tokenizer) Next() Token {
	if len(t.queue) > 0 {
		tok := t.queue[0]
		t.queue = t.queue[1:]
		return tok
	}

	if t.pos >= len(t.src) {
		return Token{Type: EOFToken}
	}

	if t.src[t.pos] != '<' {
		return t.scanText()
	}

	if tok, newPos, ok := t.tryLex(t.pos); ok {
		t.pos = newPos
		if tok.Type == StartTagToken {
			t.queueRawTextIfNeeded(tok.Data)
		}
		return tok
	}

	return t.scanText()
}

// scanText consumes a text run starting at t.pos. A "<" that does not begin
// a recognized construct is consumed as a literal character and the run
// continues (a runaway "<").
func (t *Tokenizer) scanText() Token {
	start := t.pos
	for t.pos < len(t.src) {
		if t.src[t.pos] == '<' {
			if _, _, ok := t.tryLex(t.pos); ok {
				break
			}
		}
		t.pos++
	}
	return Token{Type: TextToken, Data: unescapeEntities(t.src[start:t.pos])}
}

// queueRawTextIfNeeded switches into raw-text capture for script/style
// elements, queuing the eventual RawToken (if the body is non-empty) and,
// when a closing tag is found, the matching end tag ahead of whatever the
// scan position reaches next. With no closing tag the rest of the source
// becomes the RawToken and no end tag is queued.
func (t *Tokenizer) queueRawTextIfNeeded(tagName string) {
	name := normalizeName(*t.mode, tagName)
	if !rawTextElements.has(name) {
		return
	}

	rest := t.src[t.pos:]
	closeIdx, closeLen := findEndTag(rest, tagName)
	if closeIdx == -1 {
		if len(rest) > 0 {
			t.queue = append(t.queue, Token{Type: RawToken, Data: rest})
		}
		t.pos = len(t.src)
		return
	}

	if closeIdx > 0 {
		t.queue = append(t.queue, Token{Type: RawToken, Data: rest[:closeIdx]})
	}
	t.queue = append(t.queue, Token{Type: EndTagToken, Data: tagName})
	t.pos += closeIdx + closeLen
}

// findEndTag locates the next "</name" (case-insensitive) in s and returns
// its start offset and the length of the full end tag including its closing
// ">". It returns (-1, 0) if no such end tag exists.
func findEndTag(s, name string) (idx, length int) {
	lowerName := strings.ToLower(name)
	search := s
	offset := 0
	for {
		i := strings.IndexByte(search, '<')
		if i == -1 {
			return -1, 0
		}
		rest := search[i:]
		if len(rest) >= 2 && rest[1] == '/' && strings.HasPrefix(strings.ToLower(rest[2:]), lowerName) {
			tail := rest[2+len(lowerName):]
			j := strings.IndexByte(tail, '>')
			if j != -1 {
				// Must not be followed by another name character (e.g.
				// "</scripts>" must not match "script").
				if j == 0 || isAttrSpace(tail[0]) || tail[0] == '/' {
					return offset + i, 2 + len(lowerName) + j + 1
				}
			}
		}
		offset += i + 1
		search = search[i+1:]
	}
}

// tryLex attempts to match one of the non-text token shapes at pos, where
// src[pos] == '<'. It reports ok=false (a runaway "<") when no construct is
// well-formed at pos — including an unterminated construct, which degrades
// to text.
func (t *Tokenizer) tryLex(pos int) (Token, int, bool) {
	rest := t.src[pos:]

	switch {
	case strings.HasPrefix(rest, "<?"):
		if idx := strings.Index(rest[2:], "?>"); idx >= 0 {
			return Token{Type: PIToken, Data: rest[2 : 2+idx]}, pos + 2 + idx + 2, true
		}
		return Token{}, 0, false

	case strings.HasPrefix(rest, "<!--"):
		return t.tryLexComment(pos, rest)

	case hasPrefixFold(rest, "<![CDATA["):
		if idx := strings.Index(rest[9:], "]]>"); idx >= 0 {
			return Token{Type: CDATAToken, Data: rest[9 : 9+idx]}, pos + 9 + idx + 3, true
		}
		return Token{}, 0, false

	case hasPrefixFold(rest, "<!DOCTYPE"):
		payload, n, ok := scanDoctype(rest[9:])
		if !ok {
			return Token{}, 0, false
		}
		return Token{Type: DoctypeToken, Data: doctypePayload(payload)}, pos + 9 + n, true

	case strings.HasPrefix(rest, "</"):
		return t.tryLexEndTag(pos, rest)

	default:
		return t.tryLexStartTag(pos, rest)
	}
}

func (t *Tokenizer) tryLexComment(pos int, rest string) (Token, int, bool) {
	i := 4 // past "<!--"
	for {
		idx := strings.Index(rest[i:], "--")
		if idx == -1 {
			return Token{}, 0, false
		}
		dashPos := i + idx
		j := dashPos + 2
		for j < len(rest) && isAttrSpace(rest[j]) {
			j++
		}
		if j < len(rest) && rest[j] == '>' {
			return Token{Type: CommentToken, Data: rest[4:dashPos]}, pos + j + 1, true
		}
		i = dashPos + 2
	}
}

func (t *Tokenizer) tryLexStartTag(pos int, rest string) (Token, int, bool) {
	inside, consumed, ok := scanTagInside(rest[1:])
	if !ok {
		return Token{}, 0, false
	}
	name, attrsRaw := splitTagName(inside)
	if name == "" {
		return Token{}, 0, false
	}
	return Token{
		Type:        StartTagToken,
		Data:        name,
		Attrs:       scanAttrs(attrsRaw),
		SelfClosing: isSelfClosing(inside),
	}, pos + 1 + consumed, true
}

func (t *Tokenizer) tryLexEndTag(pos int, rest string) (Token, int, bool) {
	inside, consumed, ok := scanTagInside(rest[2:])
	if !ok {
		return Token{}, 0, false
	}
	name, _ := splitTagName(inside)
	if name == "" {
		return Token{}, 0, false
	}
	return Token{Type: EndTagToken, Data: name}, pos + 2 + consumed, true
}

// scanTagInside scans s (everything after "<" or "</") for the unquoted ">"
// that ends the tag, tracking quote state so a ">" inside a quoted
// attribute value does not terminate the tag early. It returns the content
// between the opening marker and that ">", and the number of bytes of s
// consumed including the ">".
func scanTagInside(s string) (inside string, consumed int, ok bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '<':
			return "", 0, false
		case c == '>':
			return s[:i], i + 1, true
		}
	}
	return "", 0, false
}

// splitTagName splits inside (a start or end tag's content, sans markers)
// into its leading name and the remaining raw attribute text.
func splitTagName(inside string) (name, attrsRaw string) {
	i := 0
	for i < len(inside) && !isAttrSpace(inside[i]) && inside[i] != '/' {
		i++
	}
	return inside[:i], inside[i:]
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func unescapeEntities(s string) string {
	return html.UnescapeString(s)
}
