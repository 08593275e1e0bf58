package markdown

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/gopandoc/pandoc"
)

// inline dispatches to one production per §4.E's choice list. Order
// matters: strong before emph (so "**x**" isn't consumed as two
// single-"*" emphases), links/images before the bare-bracket fallback,
// entities/escapes before the generic symbol catch-all.
func inline(c *cursor) (pandoc.Inline, bool) {
	return choice(c,
		textRun,
		endlineInline,
		whitespaceInline,
		inlineCode,
		entityInline,
		strongInline,
		emphInline,
		strikeoutInline,
		superscriptInline,
		subscriptInline,
		footnoteRef,
		inlineFootnote,
		imageInline,
		linkInline,
		mathInline,
		autolinkInline,
		rawHtmlInline,
		rawLaTeXInlineNode,
		smartPunctuation,
		escapedChar,
		symbolInline,
	)
}

// inlinesTillEOF parses inlines until the input is exhausted; blank
// lines at the very end are consumed without producing inlines.
func inlinesTillEOF(c *cursor) ([]pandoc.Inline, bool) {
	return many1Till(c, inline, func(c *cursor) (bool, bool) {
		for c.blankline() {
			if c.eof() {
				return true, true
			}
		}
		return false, c.eof()
	})
}

// manyInlinesTill is the common "parse inlines until a terminator"
// shape used by enclosed spans, link labels, paragraphs.
func manyInlinesTill(c *cursor, end func(*cursor) (string, bool)) ([]pandoc.Inline, bool) {
	return many1Till(c, inline, end)
}

func isSpecialRune(c *cursor, r rune) bool {
	switch r {
	case '\\', '`', '*', '_', '[', ']', '!', '<', '>', '$', '^', '~', '&', '\n', ' ', '\t':
		return true
	case '\'', '"':
		return c.cfg.Smart
	case '-', '.':
		return c.cfg.Smart
	}
	return false
}

// textRun consumes a maximal run of non-special characters as one Str.
func textRun(c *cursor) (pandoc.Inline, bool) {
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok || isSpecialRune(c, r) {
			break
		}
		c.pos++
	}
	if c.pos == start {
		return nil, false
	}
	return &pandoc.Str{Text: string(c.src[start:c.pos])}, true
}

func whitespaceInline(c *cursor) (pandoc.Inline, bool) {
	if !c.spaceChar() {
		return nil, false
	}
	for c.spaceChar() {
	}
	return pandoc.SP, true
}

// endlineInline turns a bare "\n" not followed by a blank line into a
// Space, honoring list-item and strict-mode structural breaks.
func endlineInline(c *cursor) (pandoc.Inline, bool) {
	save := c.pos
	if !c.char('\n') {
		return nil, false
	}
	if c.atBlankLine() {
		c.pos = save
		return nil, false
	}
	if c.parserContext == listItemState {
		if _, ok := lookAhead(c, listItemStartLookahead); ok {
			c.pos = save
			return nil, false
		}
	}
	if c.cfg.Strict {
		if r, ok := c.peek(); ok && (r == '>' || r == '#') {
			c.pos = save
			return nil, false
		}
	}
	return pandoc.SP, true
}

// listItemStartLookahead recognizes a bullet or ordered-list marker at
// the current position, used by endlineInline to decide whether a
// newline inside a list item body is a structural break rather than a
// soft break.
func listItemStartLookahead(c *cursor) (int, bool) {
	c.nonindentSpaces()
	if r, ok := c.peek(); ok && strings.ContainsRune("*+-", r) {
		if r2, ok := c.peekAt(1); ok && isSpaceOrTab(r2) {
			return 1, true
		}
	}
	start := c.pos
	n := 0
	for {
		r, ok := c.peek()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		c.pos++
		n++
	}
	if n > 0 {
		if r, ok := c.peek(); ok && (r == '.' || r == ')') {
			return 1, true
		}
	}
	c.pos = start
	return 0, false
}

// inlineCode implements the N-backtick opener/closer rule.
func inlineCode(c *cursor) (pandoc.Inline, bool) {
	start := c.pos
	n := 0
	for c.char('`') {
		n++
	}
	if n == 0 {
		return nil, false
	}
	var sb strings.Builder
	for {
		if c.eof() {
			c.pos = start
			return nil, false
		}
		save := c.pos
		m := 0
		for c.char('`') {
			m++
		}
		if m > 0 {
			if m == n {
				text := strings.TrimSpace(sb.String())
				return &pandoc.Code{Text: text}, true
			}
			for i := 0; i < m; i++ {
				sb.WriteByte('`')
			}
			continue
		}
		c.pos = save
		r, _ := c.advance()
		if r == '\n' {
			sb.WriteByte(' ')
		} else {
			sb.WriteRune(r)
		}
	}
}

func enclosedOpener(marker string) func(*cursor) (string, bool) {
	return func(c *cursor) (string, bool) {
		if !c.literal(marker) {
			return "", false
		}
		if r, ok := c.peek(); !ok || isSpaceOrTab(r) || r == '\n' {
			return "", false
		}
		return marker, true
	}
}

func enclosedCloser(marker string) func(*cursor) (string, bool) {
	return func(c *cursor) (string, bool) {
		if !c.literal(marker) {
			return "", false
		}
		return marker, true
	}
}

func enclosed(c *cursor, opener, closer string) ([]pandoc.Inline, bool) {
	if _, ok := try(c, enclosedOpener(opener)); !ok {
		return nil, false
	}
	return manyInlinesTill(c, enclosedCloser(closer))
}

func strongInline(c *cursor) (pandoc.Inline, bool) {
	if inlines, ok := enclosed(c, "**", "**"); ok {
		return &pandoc.Strong{Inlines: inlines}, true
	}
	if inlines, ok := enclosed(c, "__", "__"); ok {
		return &pandoc.Strong{Inlines: inlines}, true
	}
	return nil, false
}

func emphInline(c *cursor) (pandoc.Inline, bool) {
	if inlines, ok := enclosed(c, "*", "*"); ok {
		return &pandoc.Emph{Inlines: inlines}, true
	}
	if inlines, ok := enclosed(c, "_", "_"); ok {
		return &pandoc.Emph{Inlines: inlines}, true
	}
	return nil, false
}

func strikeoutInline(c *cursor) (pandoc.Inline, bool) {
	if inlines, ok := enclosed(c, "~~", "~~"); ok {
		return &pandoc.Strikeout{Inlines: inlines}, true
	}
	return nil, false
}

func superscriptInline(c *cursor) (pandoc.Inline, bool) {
	if inlines, ok := enclosed(c, "^", "^"); ok {
		return &pandoc.Superscript{Inlines: inlines}, true
	}
	return nil, false
}

func subscriptInline(c *cursor) (pandoc.Inline, bool) {
	if inlines, ok := enclosed(c, "~", "~"); ok {
		return &pandoc.Subscript{Inlines: inlines}, true
	}
	return nil, false
}

// footnoteRef recognizes "[^id]" and resolves it against the note
// table built by preprocessing pass 2.
func footnoteRef(c *cursor) (pandoc.Inline, bool) {
	if !c.literal("[^") {
		return nil, false
	}
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok || r == ']' || isSpaceOrTab(r) || r == '\n' {
			break
		}
		c.pos++
	}
	id := string(c.src[start:c.pos])
	if id == "" || !c.char(']') {
		return nil, false
	}
	blocks, ok := c.tbl.notes[id]
	if !ok {
		c.cfg.Logger.Warn("markdown: unresolved footnote reference", zap.String("id", id))
		return nil, false
	}
	return &pandoc.Note{Blocks: blocks}, true
}

// inlineFootnote recognizes Pandoc's inline-footnote extension
// "^[...]" whose body is parsed as a single Para's worth of inlines.
func inlineFootnote(c *cursor) (pandoc.Inline, bool) {
	if !c.literal("^[") {
		return nil, false
	}
	inlines, ok := manyInlinesTill(c, func(c *cursor) (string, bool) {
		if c.char(']') {
			return "]", true
		}
		return "", false
	})
	if !ok {
		return nil, false
	}
	return &pandoc.Note{Blocks: []pandoc.Block{&pandoc.Para{Inlines: normalizeSpaces(inlines)}}}, true
}

// linkLabel consumes a "[...]" label allowing balanced nested brackets.
func linkLabel(c *cursor) ([]pandoc.Inline, bool) {
	if !c.char('[') {
		return nil, false
	}
	depth := 1
	var text []pandoc.Inline
	for depth > 0 {
		if c.eof() {
			return nil, false
		}
		if r, ok := c.peek(); ok && r == '[' {
			depth++
			c.pos++
			text = append(text, &pandoc.Str{Text: "["})
			continue
		}
		if r, ok := c.peek(); ok && r == ']' {
			depth--
			c.pos++
			if depth == 0 {
				break
			}
			text = append(text, &pandoc.Str{Text: "]"})
			continue
		}
		v, ok := try(c, inline)
		if !ok {
			return nil, false
		}
		text = append(text, v)
	}
	return text, true
}

func linkTail(c *cursor) (target, bool) {
	if c.char('(') {
		url := readLinkURL(c)
		c.skipSpaces()
		title := option(c, "", readLinkTitle)
		c.skipSpaces()
		if !c.char(')') {
			return target{}, false
		}
		return target{url: url, title: title}, true
	}
	return target{}, false
}

func readLinkURL(c *cursor) string {
	start := c.pos
	if c.char('<') {
		for {
			r, ok := c.peek()
			if !ok || r == '>' || r == '\n' {
				break
			}
			c.pos++
		}
		url := string(c.src[start+1 : c.pos])
		c.char('>')
		return url
	}
	depth := 0
	for {
		r, ok := c.peek()
		if !ok || r == '\n' {
			break
		}
		if r == '(' {
			depth++
		} else if r == ')' {
			if depth == 0 {
				break
			}
			depth--
		} else if isSpaceOrTab(r) && depth == 0 {
			break
		}
		c.pos++
	}
	return string(c.src[start:c.pos])
}

func readLinkTitle(c *cursor) (string, bool) {
	var quote rune
	switch {
	case c.char('"'):
		quote = '"'
	case c.char('\''):
		quote = '\''
	case c.char('('):
		quote = ')'
	default:
		return "", false
	}
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok {
			return "", false
		}
		if r == quote {
			break
		}
		c.pos++
	}
	title := string(c.src[start:c.pos])
	c.pos++
	return title, true
}

// referenceTail resolves "[ref]" or "[]" (implicit, same as label) via
// the key table.
func referenceTail(c *cursor, label []pandoc.Inline) (target, bool) {
	save := c.pos
	if !c.char('[') {
		return target{}, false
	}
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok || r == ']' || r == '\n' {
			break
		}
		c.pos++
	}
	ref := string(c.src[start:c.pos])
	if !c.char(']') {
		c.pos = save
		return target{}, false
	}
	if ref == "" {
		ref = inlinesToText(label)
	}
	t, ok := c.tbl.keys[normalizeLabel(ref)]
	if !ok {
		c.cfg.Logger.Warn("markdown: unresolved reference link", zap.String("label", ref))
		c.pos = save
		return target{}, false
	}
	return t, true
}

func linkInline(c *cursor) (pandoc.Inline, bool) {
	label, ok := try(c, linkLabel)
	if !ok {
		return nil, false
	}
	if t, ok := try(c, linkTail); ok {
		return &pandoc.Link{Inlines: label, Target: pandoc.Target{Url: t.url, Title: t.title}}, true
	}
	if t, ok := referenceTail(c, label); ok {
		return &pandoc.Link{Inlines: label, Target: pandoc.Target{Url: t.url, Title: t.title}}, true
	}
	if t, ok := c.tbl.keys[normalizeLabel(inlinesToText(label))]; ok {
		return &pandoc.Link{Inlines: label, Target: pandoc.Target{Url: t.url, Title: t.title}}, true
	}
	return nil, false
}

func imageInline(c *cursor) (pandoc.Inline, bool) {
	if !c.char('!') {
		return nil, false
	}
	l, ok := try(c, linkInline)
	if !ok {
		return nil, false
	}
	link := l.(*pandoc.Link)
	return &pandoc.Image{Inlines: link.Inlines, Target: link.Target}, true
}

// mathInline implements "$...$" per §4.E (strict mode disables math).
func mathInline(c *cursor) (pandoc.Inline, bool) {
	if c.cfg.Strict {
		return nil, false
	}
	if !c.char('$') {
		return nil, false
	}
	if r, ok := c.peek(); !ok || isSpaceOrTab(r) {
		return nil, false
	}
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok || r == '\n' {
			return nil, false
		}
		if r == '\\' {
			c.pos += 2
			continue
		}
		if r == '$' {
			break
		}
		c.pos++
	}
	text := string(c.src[start:c.pos])
	c.pos++
	return &pandoc.Math{MathType: pandoc.InlineMath, Text: strings.ReplaceAll(text, `\$`, "$")}, true
}

var autolinkSchemes = []string{"http://", "https://", "ftp://", "mailto:"}

func autolinkInline(c *cursor) (pandoc.Inline, bool) {
	if !c.char('<') {
		return nil, false
	}
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok || r == '>' || isSpaceOrTab(r) || r == '\n' {
			break
		}
		c.pos++
	}
	text := string(c.src[start:c.pos])
	if !c.char('>') {
		return nil, false
	}
	for _, scheme := range autolinkSchemes {
		if strings.HasPrefix(text, scheme) {
			return &pandoc.Link{Inlines: []pandoc.Inline{&pandoc.Str{Text: text}}, Target: pandoc.Target{Url: text}}, true
		}
	}
	if at := strings.IndexByte(text, '@'); at > 0 && !strings.ContainsAny(text, " \t") {
		url := "mailto:" + text
		var display pandoc.Inline = &pandoc.Str{Text: text}
		if !c.cfg.Strict {
			display = &pandoc.Code{Text: text}
		}
		return &pandoc.Link{Inlines: []pandoc.Inline{display}, Target: pandoc.Target{Url: url}}, true
	}
	return nil, false
}

func rawHtmlInline(c *cursor) (pandoc.Inline, bool) {
	tag, ok := try(c, anyHtmlInlineTag)
	if !ok {
		return nil, false
	}
	if !c.cfg.ParseRaw {
		return &pandoc.Str{Text: ""}, true
	}
	return &pandoc.RawInline{Format: "html", Text: tag.raw}, true
}

func rawLaTeXInlineNode(c *cursor) (pandoc.Inline, bool) {
	text, ok := try(c, rawLaTeXInline)
	if !ok {
		return nil, false
	}
	if !c.cfg.ParseRaw {
		return &pandoc.Str{Text: ""}, true
	}
	return &pandoc.RawInline{Format: "tex", Text: text}, true
}

const strictEscapeSet = "\\`*_{}[]()>#+-.!"

func escapedChar(c *cursor) (pandoc.Inline, bool) {
	if !c.char('\\') {
		return nil, false
	}
	r, ok := c.peek()
	if !ok {
		return &pandoc.Str{Text: "\\"}, true
	}
	allowed := !isAlphaNumeric(r) && r != '\n'
	if c.cfg.Strict {
		allowed = strings.ContainsRune(strictEscapeSet, r)
	}
	if !allowed {
		return &pandoc.Str{Text: "\\"}, true
	}
	c.pos++
	return &pandoc.Str{Text: string(r)}, true
}

// entityInline decodes "&name;" and "&#NN;"/"&#xNN;" references.
func entityInline(c *cursor) (pandoc.Inline, bool) {
	if !c.char('&') {
		return nil, false
	}
	start := c.pos
	if c.char('#') {
		for {
			r, ok := c.peek()
			if !ok || r == ';' {
				break
			}
			c.pos++
		}
		body := string(c.src[start+1 : c.pos])
		if !c.char(';') {
			return &pandoc.Str{Text: "&"}, true
		}
		if r, ok := decodeNumericRef(body); ok {
			return &pandoc.Str{Text: string(r)}, true
		}
		return &pandoc.Str{Text: "&" + body + ";"}, true
	}
	for {
		r, ok := c.peek()
		if !ok || !unicode.IsLetter(r) {
			break
		}
		c.pos++
	}
	if !c.char(';') {
		c.pos = start
		return nil, false
	}
	raw := "&" + string(c.src[start:c.pos-1]) + ";"
	return &pandoc.Str{Text: decodeCharacterReferences(raw)}, true
}

// smartPunctuation implements §4.E's smart-typography block: quotes,
// dashes, ellipses, bare apostrophe. Only active when cfg.Smart.
func smartPunctuation(c *cursor) (pandoc.Inline, bool) {
	if !c.cfg.Smart {
		return nil, false
	}
	return choice(c,
		smartEmDash,
		smartEnDash,
		smartEllipses,
		smartDoubleQuote,
		smartSingleQuote,
		smartApostrophe,
	)
}

func smartEmDash(c *cursor) (pandoc.Inline, bool) {
	if !c.literal("---") {
		return nil, false
	}
	c.skipSpaces()
	return &pandoc.Str{Text: "—"}, true
}

func smartEnDash(c *cursor) (pandoc.Inline, bool) {
	save := c.pos
	if !c.literal("--") {
		return nil, false
	}
	if r, ok := c.peek(); ok && unicode.IsDigit(r) {
		return &pandoc.Str{Text: "–"}, true
	}
	c.pos = save
	return nil, false
}

func smartEllipses(c *cursor) (pandoc.Inline, bool) {
	for _, form := range []string{"...", " . . . ", ". . .", " . . ."} {
		if c.literal(form) {
			return &pandoc.Str{Text: "…"}, true
		}
	}
	return nil, false
}

func smartDoubleQuote(c *cursor) (pandoc.Inline, bool) {
	save := c.pos
	if c.char('"') {
		if c.quoteContext != quoteDouble {
			prev := c.quoteContext
			c.quoteContext = quoteDouble
			inlines, ok := manyInlinesTill(c, func(c *cursor) (string, bool) {
				if c.char('"') {
					return `"`, true
				}
				return "", false
			})
			c.quoteContext = prev
			if ok {
				return &pandoc.Quoted{QuoteType: pandoc.DoubleQuote, Inlines: inlines}, true
			}
		}
	}
	c.pos = save
	return nil, false
}

const singleQuoteStopSet = ")!],.;:-? \t\n"

func smartSingleQuote(c *cursor) (pandoc.Inline, bool) {
	save := c.pos
	if !c.char('\'') {
		return nil, false
	}
	if c.quoteContext == quoteSingle {
		c.pos = save
		return nil, false
	}
	if r, ok := c.peek(); ok && strings.ContainsRune(singleQuoteStopSet, r) {
		c.pos = save
		return nil, false
	}
	if isContractionSuffix(c) {
		c.pos = save
		return nil, false
	}
	prev := c.quoteContext
	c.quoteContext = quoteSingle
	inlines, ok := manyInlinesTill(c, func(c *cursor) (string, bool) {
		if c.char('\'') {
			return "'", true
		}
		return "", false
	})
	c.quoteContext = prev
	if !ok {
		c.pos = save
		return nil, false
	}
	return &pandoc.Quoted{QuoteType: pandoc.SingleQuote, Inlines: inlines}, true
}

func isContractionSuffix(c *cursor) bool {
	for _, suf := range []string{"s", "t", "m", "ve", "ll", "re"} {
		if n, ok := lookAhead(c, func(c *cursor) (int, bool) {
			if !c.literal(suf) {
				return 0, false
			}
			return len(suf), true
		}); ok {
			if r, ok := c.peekAt(n); !ok || !isAlphaNumeric(r) {
				return true
			}
		}
	}
	return false
}

func smartApostrophe(c *cursor) (pandoc.Inline, bool) {
	if c.char('\'') || c.char('’') {
		return &pandoc.Str{Text: "’"}, true
	}
	return nil, false
}

func symbolInline(c *cursor) (pandoc.Inline, bool) {
	r, ok := c.advance()
	if !ok {
		return nil, false
	}
	return &pandoc.Str{Text: string(r)}, true
}

func inlinesToText(inlines []pandoc.Inline) string {
	var sb strings.Builder
	for _, i := range inlines {
		switch i := i.(type) {
		case *pandoc.Str:
			sb.WriteString(i.Text)
		case *pandoc.Space:
			sb.WriteByte(' ')
		default:
		}
	}
	return sb.String()
}

// normalizeSpaces implements §3's invariant: no leading/trailing
// Space, no two adjacent Spaces.
func normalizeSpaces(inlines []pandoc.Inline) []pandoc.Inline {
	out := make([]pandoc.Inline, 0, len(inlines))
	for _, i := range inlines {
		if _, isSpace := i.(*pandoc.Space); isSpace {
			if len(out) == 0 {
				continue
			}
			if _, prevSpace := out[len(out)-1].(*pandoc.Space); prevSpace {
				continue
			}
		}
		out = append(out, i)
	}
	for len(out) > 0 {
		if _, isSpace := out[len(out)-1].(*pandoc.Space); isSpace {
			out = out[:len(out)-1]
		} else {
			break
		}
	}
	return out
}
