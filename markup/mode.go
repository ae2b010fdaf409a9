package markup

import "strings"

// Mode selects HTML or XML parsing/rendering rules. The zero value is auto:
// HTML rules apply unless a processing instruction mentioning "xml" latches
// the engine into XML mode (see Engine.Parse).
type Mode int

const (
	// AutoMode means the mode has not been set explicitly; HTML rules apply
	// until a qualifying processing instruction is seen.
	AutoMode Mode = iota
	HTMLMode
	XMLMode
)

// voidElements never have content or an end tag in HTML mode.
var voidElements = newSet(
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"keygen", "link", "menuitem", "meta", "param", "source", "track", "wbr",
)

// rawTextElements capture their body verbatim until a matching end tag.
var rawTextElements = newSet("script", "style")

// paragraphBreakers trigger an implicit </p> when opened inside an open <p>.
var paragraphBreakers = newSet(
	"address", "article", "aside", "blockquote", "dir", "div", "dl",
	"fieldset", "footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
	"header", "hr", "main", "menu", "nav", "ol", "p", "pre", "section",
	"table", "ul",
)

// tableSections are the elements close-scope closes on its way up to an
// enclosing table (the set used by the table-section tag-omission rows and
// by the </table> end tag).
var tableSections = newSet("colgroup", "tbody", "td", "tfoot", "th", "thead", "tr")

// phrasingContent lists inline-level elements; the end-tag algorithm's
// phrasing guard refuses to let an end tag for one of these cross out of a
// non-phrasing ancestor.
var phrasingContent = newSet(
	"a", "abbr", "area", "audio", "b", "bdi", "bdo", "br", "button",
	"canvas", "cite", "code", "data", "datalist", "del", "dfn", "em",
	"embed", "i", "iframe", "img", "input", "ins", "kbd", "keygen",
	"label", "link", "map", "mark", "math", "meta", "meter", "noscript",
	"object", "output", "progress", "q", "ruby", "s", "samp", "script",
	"select", "small", "span", "strong", "sub", "sup", "svg", "template",
	"textarea", "time", "u", "var", "video", "wbr",
	// obsolete inline names
	"acronym", "applet", "basefont", "big", "font", "strike", "tt",
)

type tagSet map[string]struct{}

func newSet(names ...string) tagSet {
	s := make(tagSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s tagSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// normalizeName applies the case rule for m: lowercase in HTML mode
// (including auto, since auto starts out as HTML until a PI says otherwise),
// unchanged in XML mode.
func normalizeName(m Mode, name string) string {
	if m == XMLMode {
		return name
	}
	return strings.ToLower(name)
}

// looksLikeXMLDecl reports whether a processing-instruction body matches the
// auto-detection rule: contains "xml" case-insensitively.
func looksLikeXMLDecl(piBody string) bool {
	return strings.Contains(strings.ToLower(piBody), "xml")
}
