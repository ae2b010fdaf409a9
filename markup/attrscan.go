package markup

// scanAttrs parses the attribute list out of a start tag's raw inside-payload
// (the text between the tag name and the closing "/" or end of tag). It
// returns attributes in source order; a key equal to "/" is dropped, since
// it is the self-closing marker fragment rather than an attribute.
//
// Grammar (per attribute): a key (run of characters excluding "<", ">",
// "=", and whitespace), optionally followed by "=" and a value. Values are
// double-quoted, single-quoted, or an unquoted run excluding ">" and
// whitespace.
func scanAttrs(raw string) []TokenAttr {
	var attrs []TokenAttr
	pos := 0
	n := len(raw)

	for pos < n {
		for pos < n && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= n {
			break
		}

		keyStart := pos
		for pos < n && raw[pos] != '=' && !isAttrSpace(raw[pos]) && raw[pos] != '<' && raw[pos] != '>' {
			pos++
		}
		key := raw[keyStart:pos]
		if key == "" {
			pos++
			continue
		}
		if key == "/" {
			continue
		}

		save := pos
		for pos < n && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= n || raw[pos] != '=' {
			pos = save
			attrs = append(attrs, TokenAttr{Key: key})
			continue
		}
		pos++ // skip '='
		for pos < n && isAttrSpace(raw[pos]) {
			pos++
		}

		if pos >= n {
			attrs = append(attrs, TokenAttr{Key: key, HasValue: true})
			break
		}

		var value string
		if raw[pos] == '"' || raw[pos] == '\'' {
			quote := raw[pos]
			pos++
			valueStart := pos
			for pos < n && raw[pos] != quote {
				pos++
			}
			value = raw[valueStart:pos]
			if pos < n {
				pos++ // skip closing quote
			}
		} else {
			valueStart := pos
			for pos < n && !isAttrSpace(raw[pos]) && raw[pos] != '>' {
				pos++
			}
			value = raw[valueStart:pos]
		}

		attrs = append(attrs, TokenAttr{Key: key, Value: unescapeEntities(value), HasValue: true})
	}

	return attrs
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// isSelfClosing reports whether a tag's raw inside-payload ends with "/"
// (optionally followed by whitespace).
func isSelfClosing(raw string) bool {
	i := len(raw)
	for i > 0 && isAttrSpace(raw[i-1]) {
		i--
	}
	return i > 0 && raw[i-1] == '/'
}
