package markup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	mode := AutoMode
	tok := newTokenizer(src, &mode)
	var toks []Token
	for {
		tt := tok.Next()
		if tt.Type == EOFToken {
			return toks
		}
		toks = append(toks, tt)
	}
}

func TestTokenizerRecognizedShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []TokenType
	}{
		{"text", "hello", []TokenType{TextToken}},
		{"pi", "<?xml version=\"1.0\"?>", []TokenType{PIToken}},
		{"comment", "<!-- hi -->", []TokenType{CommentToken}},
		{"comment trailing space before close", "<!-- hi --  >", []TokenType{CommentToken}},
		{"cdata", "<![CDATA[hi]]>", []TokenType{CDATAToken}},
		{"doctype", "<!DOCTYPE html>", []TokenType{DoctypeToken}},
		{"start tag", "<p>", []TokenType{StartTagToken}},
		{"end tag", "</p>", []TokenType{EndTagToken}},
		{"runaway then text", "a < b", []TokenType{TextToken}},
		{"text then tag", "hi<p>", []TokenType{TextToken, StartTagToken}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := tokenize(t, tt.src)
			got := make([]TokenType, len(toks))
			for i, tok := range toks {
				got[i] = tok.Type
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizerAttributeGrammar(t *testing.T) {
	toks := tokenize(t, `<a href="x&amp;y" data-x='q' disabled unquoted=v />`)
	require.Len(t, toks, 1)
	tok := toks[0]
	require.Equal(t, StartTagToken, tok.Type)
	require.True(t, tok.SelfClosing)

	want := []TokenAttr{
		{Key: "href", Value: "x&y", HasValue: true},
		{Key: "data-x", Value: "q", HasValue: true},
		{Key: "disabled"},
		{Key: "unquoted", Value: "v", HasValue: true},
	}
	require.Equal(t, want, tok.Attrs)
}

func TestTokenizerRawTextModeForScript(t *testing.T) {
	toks := tokenize(t, `<script>if (1<2) a()</script>tail`)
	require.Len(t, toks, 4)
	require.Equal(t, StartTagToken, toks[0].Type)
	require.Equal(t, RawToken, toks[1].Type)
	require.Equal(t, "if (1<2) a()", toks[1].Data)
	require.Equal(t, EndTagToken, toks[2].Type)
	require.Equal(t, TextToken, toks[3].Type)
}

func TestTokenizerRawTextModeUnterminated(t *testing.T) {
	toks := tokenize(t, `<style>body { color: red`)
	require.Len(t, toks, 2)
	require.Equal(t, StartTagToken, toks[0].Type)
	require.Equal(t, RawToken, toks[1].Type)
	require.Equal(t, "body { color: red", toks[1].Data)
}

func TestTokenizerGreaterThanInsideQuotedAttr(t *testing.T) {
	toks := tokenize(t, `<a title=">">x`)
	require.Len(t, toks, 2)
	require.Equal(t, StartTagToken, toks[0].Type)
	require.Equal(t, ">", toks[0].Attrs[0].Value)
}
