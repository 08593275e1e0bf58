package markdown

import (
	"html"
	"strconv"
	"strings"
)

// decodeCharacterReferences resolves &amp;, &#NN;, &#xNN; and named
// entities (&amp;, &copy;, ...) in s. Named-entity decoding is
// delegated to the standard library's html.UnescapeString, which
// implements the full HTML5 entity table and numeric references alike.
// decodeNumericRef below is a separate helper for inline entity
// parsing and is not used here.
func decodeCharacterReferences(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	return html.UnescapeString(s)
}

// decodeNumericRef parses "123" or "x1F600" (without the surrounding
// &# ... ; ) into its rune.
func decodeNumericRef(body string) (rune, bool) {
	if body == "" {
		return 0, false
	}
	base := 10
	if body[0] == 'x' || body[0] == 'X' {
		base = 16
		body = body[1:]
	}
	n, err := strconv.ParseUint(body, base, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}
