package response

import (
	"bytes"
	"encoding/json"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// PrettyJSON indents a JSON document. Bodies that are not valid JSON are
// returned unchanged.
func PrettyJSON(body string) string {
	if strings.TrimSpace(body) == "" {
		return body
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}

type tokenKind int

const (
	tokenKey tokenKind = iota
	tokenString
	tokenNumber
	tokenLiteral // true, false
	tokenNull
	tokenPunct
	tokenSpace
)

type token struct {
	kind tokenKind
	text string
}

var tokenColors = map[tokenKind]fyne.ThemeColorName{
	tokenKey:     theme.ColorNamePrimary,
	tokenString:  theme.ColorNameSuccess,
	tokenNumber:  theme.ColorNameWarning,
	tokenLiteral: theme.ColorNameError,
	tokenNull:    theme.ColorNameDisabled,
	tokenPunct:   theme.ColorNameForeground,
	tokenSpace:   theme.ColorNameForeground,
}

// highlight renders JSON text as monospace RichText segments colored by token.
func highlight(text string) []widget.RichTextSegment {
	if text == "" {
		return nil
	}
	tokens := tokenize(text)
	segments := make([]widget.RichTextSegment, 0, len(tokens))
	for _, t := range tokens {
		segments = append(segments, &widget.TextSegment{
			Text: t.text,
			Style: widget.RichTextStyle{
				ColorName: tokenColors[t.kind],
				Inline:    true,
				SizeName:  theme.SizeNameText,
				TextStyle: fyne.TextStyle{Monospace: true},
			},
		})
	}
	return segments
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}

// scanWhile returns the index of the first byte at or after i that fails pred.
func scanWhile(s string, i int, pred func(byte) bool) int {
	for i < len(s) && pred(s[i]) {
		i++
	}
	return i
}

// scanString returns the index just past the string literal starting at i.
// An unterminated string runs to the end of input.
func scanString(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(s)
}

// tokenize lexes JSON text without validating it. Strings followed by a
// colon are reported as keys.
func tokenize(s string) []token {
	var tokens []token
	for i := 0; i < len(s); {
		c := s[i]
		var kind tokenKind
		end := i + 1

		switch {
		case c == '"':
			kind, end = tokenString, scanString(s, i)
		case c == '-' || (c >= '0' && c <= '9'):
			kind, end = tokenNumber, scanWhile(s, i+1, isNumberByte)
		case isSpace(c):
			kind, end = tokenSpace, scanWhile(s, i+1, isSpace)
		case strings.HasPrefix(s[i:], "true"):
			kind, end = tokenLiteral, i+4
		case strings.HasPrefix(s[i:], "false"):
			kind, end = tokenLiteral, i+5
		case strings.HasPrefix(s[i:], "null"):
			kind, end = tokenNull, i+4
		default:
			kind = tokenPunct
		}

		tokens = append(tokens, token{kind: kind, text: s[i:end]})
		i = end
	}

	for i, t := range tokens {
		if t.kind != tokenString {
			continue
		}
		for _, next := range tokens[i+1:] {
			if next.kind == tokenSpace {
				continue
			}
			if next.kind == tokenPunct && next.text == ":" {
				tokens[i].kind = tokenKey
			}
			break
		}
	}
	return tokens
}
