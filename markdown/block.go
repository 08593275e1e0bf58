package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gopandoc/pandoc"
)

// block dispatches to one production per §4.D's disambiguation
// ordering: the more structurally-constrained productions (header,
// table, code block, rule) are tried before the looser ones (list,
// block quote, HTML/LaTeX blocks), with paragraph/plain as the
// catch-all and Null as the last resort so the top-level driver always
// makes progress.
func block(c *cursor) (pandoc.Block, bool) {
	return choice(c,
		headerBlock,
		tableBlock,
		codeBlockIndented,
		horizontalRule,
		bulletListBlock,
		orderedListBlock,
		definitionListBlock,
		blockQuoteBlock,
		htmlBlock,
		rawLaTeXBlock,
		paraBlock,
		plainBlock,
		nullBlock,
	)
}

func blocksTillEOF(c *cursor) []pandoc.Block {
	c.blanklines()
	var out []pandoc.Block
	for !c.eof() {
		b, ok := try(c, block)
		if !ok {
			break
		}
		c.blanklines()
		if _, isNull := b.(*pandoc.Null); isNull {
			continue
		}
		out = append(out, b)
	}
	return out
}

// --- headers --------------------------------------------------------------

func headerBlock(c *cursor) (pandoc.Block, bool) {
	return choice(c, atxHeader, setextHeader)
}

func atxHeader(c *cursor) (pandoc.Block, bool) {
	c.nonindentSpaces()
	level := 0
	for c.char('#') {
		level++
	}
	if level == 0 || level > 6 {
		return nil, false
	}
	if r, ok := c.peek(); ok && !isSpaceOrTab(r) && r != '\n' {
		return nil, false
	}
	c.skipSpaces()
	line := c.restOfLine()
	line = strings.TrimRight(line, " \t")
	line = strings.TrimRight(line, "#")
	line = strings.TrimRight(line, " \t")
	inlines, _ := parseFromString(c, strings.TrimSpace(line)+"\n\n", inlinesTillEOF)
	return &pandoc.Header{Level: level, Inlines: normalizeSpaces(inlines)}, true
}

// setextHeader recognizes a paragraph-like line followed by a line of
// all "=" (level 1) or all "-" (level 2).
func setextHeader(c *cursor) (pandoc.Block, bool) {
	save := c.pos
	c.nonindentSpaces()
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok || r == '\n' {
			break
		}
		c.pos++
	}
	if c.pos == start {
		c.pos = save
		return nil, false
	}
	title := string(c.src[start:c.pos])
	if !c.char('\n') {
		c.pos = save
		return nil, false
	}
	r, ok := c.peek()
	if !ok || (r != '=' && r != '-') {
		c.pos = save
		return nil, false
	}
	n := 0
	for {
		v, ok := c.peek()
		if !ok || v != r {
			break
		}
		c.pos++
		n++
	}
	if !c.blankline() && !c.eof() {
		c.pos = save
		return nil, false
	}
	level := 2
	if r == '=' {
		level = 1
	}
	inlines, _ := parseFromString(c, strings.TrimSpace(title)+"\n\n", inlinesTillEOF)
	return &pandoc.Header{Level: level, Inlines: normalizeSpaces(inlines)}, true
}

// --- horizontal rule --------------------------------------------------------

func horizontalRule(c *cursor) (pandoc.Block, bool) {
	save := c.pos
	c.nonindentSpaces()
	r, ok := c.peek()
	if !ok || (r != '*' && r != '-' && r != '_') {
		c.pos = save
		return nil, false
	}
	n := 0
	for {
		v, ok := c.peek()
		if !ok {
			break
		}
		if v == r {
			c.pos++
			n++
			continue
		}
		if isSpaceOrTab(v) {
			c.pos++
			continue
		}
		break
	}
	if n < 3 {
		c.pos = save
		return nil, false
	}
	if !c.blankline() && !c.eof() {
		c.pos = save
		return nil, false
	}
	return pandoc.HR, true
}

// --- indented code blocks ---------------------------------------------------

func codeBlockIndented(c *cursor) (pandoc.Block, bool) {
	if !try1(c, (*cursor).indented) {
		return nil, false
	}
	var lines []string
	lines = append(lines, c.restOfLine())
	for {
		save := c.pos
		if blank := c.blanklines(); blank > 0 {
			if try1(c, (*cursor).indented) {
				for i := 0; i < blank; i++ {
					lines = append(lines, "")
				}
				lines = append(lines, c.restOfLine())
				continue
			}
			c.pos = save
			break
		}
		if !try1(c, (*cursor).indented) {
			break
		}
		lines = append(lines, c.restOfLine())
	}
	text := strings.Join(lines, "\n")
	return &pandoc.CodeBlock{Text: text}, true
}

// --- block quotes -----------------------------------------------------------

func blockQuoteBlock(c *cursor) (pandoc.Block, bool) {
	save := c.pos
	c.nonindentSpaces()
	if !c.char('>') {
		c.pos = save
		return nil, false
	}
	c.char(' ')
	var lines []string
	lines = append(lines, c.restOfLine())
	for {
		s := c.save()
		if c.blankline() {
			if lookAheadQuoteContinuation(c) {
				lines = append(lines, "")
				continue
			}
			c.restore(s)
			break
		}
		save2 := c.pos
		c.nonindentSpaces()
		if c.char('>') {
			c.char(' ')
			lines = append(lines, c.restOfLine())
			continue
		}
		c.pos = save2
		if r, ok := c.peek(); ok && !isSpaceOrTab(r) && r != '\n' && !lineStartsNewBlock(c) {
			lines = append(lines, c.restOfLine())
			continue
		}
		c.pos = save2
		break
	}
	text := strings.Join(lines, "\n") + "\n\n"
	blocks, _ := parseFromString(c, text, func(c *cursor) ([]pandoc.Block, bool) {
		return blocksTillEOF(c), true
	})
	return &pandoc.BlockQuote{Blocks: blocks}, true
}

func lookAheadQuoteContinuation(c *cursor) bool {
	_, ok := lookAhead(c, func(c *cursor) (bool, bool) {
		c.nonindentSpaces()
		return true, c.char('>')
	})
	return ok
}

// lineStartsNewBlock is a light heuristic used by the lazy-continuation
// rule in block quotes and list items: a line beginning a header,
// rule or new blockquote ends the current paragraph's lazy wrap.
func lineStartsNewBlock(c *cursor) bool {
	_, ok := lookAhead(c, func(c *cursor) (bool, bool) {
		c.nonindentSpaces()
		if r, ok := c.peek(); ok && r == '#' {
			return true, true
		}
		if r, ok := c.peek(); ok && r == '>' {
			return true, true
		}
		return false, false
	})
	return ok
}

// --- lists -------------------------------------------------------------------

var romanDisambiguators = map[int]bool{1: true, 5: true, 10: true, 50: true, 100: true, 500: true, 1000: true}

func bulletListStart(c *cursor) (rune, bool) {
	c.nonindentSpaces()
	r, ok := c.oneOf("*+-")
	if !ok {
		return 0, false
	}
	if v, ok := c.peek(); !ok || !isSpaceOrTab(v) {
		return 0, false
	}
	c.skipSpaces()
	return r, true
}

func bulletListBlock(c *cursor) (pandoc.Block, bool) {
	first, ok := try(c, listItemBody(bulletListStart))
	if !ok {
		return nil, false
	}
	items := [][]pandoc.Block{first}
	for {
		body, ok := try(c, listItemBody(bulletListStart))
		if !ok {
			break
		}
		items = append(items, body)
	}
	return &pandoc.BulletList{Items: compactify(items)}, true
}

// anyOrderedListStart recognizes a decimal or lettered/roman marker
// followed by "." or ")". Per the design decision on ambiguous roman
// numerals, a marker is only treated as roman when every digit belongs
// to the classical set {1,5,10,50,100,500,1000}; otherwise it is read
// as a lower/upper-alpha marker.
func anyOrderedListStart(c *cursor) (pandoc.ListAttrs, bool) {
	c.nonindentSpaces()
	start := c.pos
	attrs := pandoc.ListAttrs{Style: pandoc.DefaultStyle, Delimiter: pandoc.DefaultDelim}
	switch {
	case try1(c, func(c *cursor) bool {
		n := 0
		for {
			r, ok := c.peek()
			if !ok || !unicode.IsDigit(r) {
				break
			}
			c.pos++
			n++
		}
		return n > 0
	}):
		num, _ := strconv.Atoi(string(c.src[start:c.pos]))
		attrs.Start = num
		attrs.Style = pandoc.Decimal
	case isRomanNumeral(c):
		attrs.Start = romanValue(string(c.src[start:c.pos]))
		if isUpper(string(c.src[start:c.pos])) {
			attrs.Style = pandoc.UpperRoman
		} else {
			attrs.Style = pandoc.LowerRoman
		}
	case try1(c, func(c *cursor) bool {
		r, ok := c.peek()
		if !ok || !unicode.IsLetter(r) {
			return false
		}
		c.pos++
		return true
	}):
		letter := c.src[start]
		attrs.Start = int(unicode.ToLower(letter)) - int('a') + 1
		if unicode.IsUpper(letter) {
			attrs.Style = pandoc.UpperAlpha
		} else {
			attrs.Style = pandoc.LowerAlpha
		}
	default:
		c.pos = start
		return pandoc.ListAttrs{}, false
	}
	switch {
	case c.char('.'):
		attrs.Delimiter = pandoc.Period
	case c.char(')'):
		attrs.Delimiter = pandoc.OneParen
	default:
		c.pos = start
		return pandoc.ListAttrs{}, false
	}
	if v, ok := c.peek(); !ok || !isSpaceOrTab(v) {
		c.pos = start
		return pandoc.ListAttrs{}, false
	}
	// The "p. 4" page-number idiom is not checked here: orderedListBlock
	// runs pageNumberGuard before calling this function.
	c.skipSpaces()
	return attrs, true
}

func isRomanNumeral(c *cursor) bool {
	start := c.pos
	n := 0
	for {
		r, ok := c.peek()
		if !ok || !strings.ContainsRune("ivxlcdmIVXLCDM", r) {
			break
		}
		c.pos++
		n++
	}
	if n == 0 {
		return false
	}
	for _, r := range c.src[start : start+n] {
		if !romanDisambiguators[romanDigitValue(r)] {
			c.pos = start
			return false
		}
	}
	return true
}

func romanDigitValue(r rune) int {
	switch unicode.ToLower(r) {
	case 'i':
		return 1
	case 'v':
		return 5
	case 'x':
		return 10
	case 'l':
		return 50
	case 'c':
		return 100
	case 'd':
		return 500
	case 'm':
		return 1000
	}
	return 0
}

func romanValue(s string) int {
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v := romanDigitValue(rune(s[i]))
		if v < prev {
			total -= v
		} else {
			total += v
		}
		prev = v
	}
	return total
}

func isUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// pageNumberGuard rejects an ordered-list start that is really a
// "p. 4"-style page citation: a line that starts with "p. " or "p "
// followed by a digit (which would otherwise read as a lower-alpha
// "p." marker).
func pageNumberGuard(c *cursor) bool {
	_, ok := lookAhead(c, func(c *cursor) (bool, bool) {
		if c.literal("p. ") || c.literal("p ") {
			if r, ok := c.peek(); ok && unicode.IsDigit(r) {
				return true, true
			}
		}
		return false, false
	})
	return ok
}

func orderedListBlock(c *cursor) (pandoc.Block, bool) {
	if pageNumberGuard(c) {
		return nil, false
	}
	firstAttrs, ok := try(c, anyOrderedListStart)
	if !ok {
		return nil, false
	}
	first, ok := itemBodyLines(c)
	if !ok {
		return nil, false
	}
	items := [][]pandoc.Block{first}
	for {
		save := c.save()
		if pageNumberGuard(c) {
			c.restore(save)
			break
		}
		if _, ok := try(c, anyOrderedListStart); !ok {
			c.restore(save)
			break
		}
		body, ok := itemBodyLines(c)
		if !ok {
			c.restore(save)
			break
		}
		items = append(items, body)
	}
	return &pandoc.OrderedList{Attr: firstAttrs, Items: compactify(items)}, true
}

// listItemBody returns a parser that matches one marker-prefixed list
// item, including any indented continuation lines, and re-enters the
// block parser on its captured body.
func listItemBody(marker func(*cursor) (rune, bool)) func(*cursor) ([]pandoc.Block, bool) {
	return func(c *cursor) ([]pandoc.Block, bool) {
		if _, ok := try(c, marker); !ok {
			return nil, false
		}
		return itemBodyLines(c)
	}
}

func itemBodyLines(c *cursor) ([]pandoc.Block, bool) {
	var lines []string
	lines = append(lines, c.restOfLine())
	for {
		save := c.pos
		blanks := c.blanklines()
		if try1(c, (*cursor).indented) {
			for i := 0; i < blanks; i++ {
				lines = append(lines, "")
			}
			lines = append(lines, c.restOfLine())
			continue
		}
		c.pos = save
		break
	}
	// Blank lines followed by another item marker stay with this item, so
	// blank-separated items continue the same list.
	end := c.pos
	if c.blanklines() > 0 {
		if _, ok := lookAhead(c, func(c *cursor) (bool, bool) {
			if _, ok := try(c, bulletListStart); ok {
				return true, true
			}
			_, ok := try(c, anyOrderedListStart)
			return ok, ok
		}); !ok {
			c.pos = end
		}
	}
	text := strings.Join(lines, "\n") + "\n\n"
	blocks, _ := parseFromString(c, dedentOnce(text, c.cfg.TabStop), func(c *cursor) ([]pandoc.Block, bool) {
		c.parserContext = listItemState
		return blocksTillEOF(c), true
	})
	return blocks, true
}

// dedentOnce strips up to n leading spaces (or one leading tab) from
// every continuation line so a list item's body parses at column 0;
// the marker line itself is never indented.
func dedentOnce(s string, n int) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "\t") {
			lines[i] = line[1:]
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		cut := len(line) - len(trimmed)
		if cut > n {
			cut = n
		}
		lines[i] = line[cut:]
	}
	return strings.Join(lines, "\n")
}

// compactify implements the "tight vs loose list" rule: if no item
// contains more than one block, every item's sole Para is rewritten
// as Plain.
func compactify(items [][]pandoc.Block) [][]pandoc.Block {
	tight := true
	for _, item := range items {
		if len(item) > 1 {
			tight = false
			break
		}
	}
	if !tight {
		return items
	}
	out := make([][]pandoc.Block, len(items))
	for i, item := range items {
		out[i] = make([]pandoc.Block, len(item))
		for j, b := range item {
			if p, ok := b.(*pandoc.Para); ok {
				out[i][j] = &pandoc.Plain{Inlines: p.Inlines}
			} else {
				out[i][j] = b
			}
		}
	}
	return out
}

// --- definition lists --------------------------------------------------------

func definitionListBlock(c *cursor) (pandoc.Block, bool) {
	first, ok := try(c, definitionItem)
	if !ok {
		return nil, false
	}
	items := []pandoc.Definition{first}
	for {
		item, ok := try(c, definitionItem)
		if !ok {
			break
		}
		items = append(items, item)
	}
	return &pandoc.DefinitionList{Items: items}, true
}

func definitionItem(c *cursor) (pandoc.Definition, bool) {
	c.nonindentSpaces()
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok || r == '\n' {
			break
		}
		c.pos++
	}
	if c.pos == start {
		return pandoc.Definition{}, false
	}
	term := string(c.src[start:c.pos])
	if !c.char('\n') {
		return pandoc.Definition{}, false
	}
	c.blanklines()
	var defs [][]pandoc.Block
	for {
		save := c.pos
		c.nonindentSpaces()
		if !c.char(':') && !c.char('~') {
			c.pos = save
			break
		}
		c.skipSpaces()
		body, _ := itemBodyLines(c)
		defs = append(defs, body)
		c.blanklines()
	}
	if len(defs) == 0 {
		return pandoc.Definition{}, false
	}
	termInlines, _ := parseFromString(c, term+"\n\n", inlinesTillEOF)
	return pandoc.Definition{Term: normalizeSpaces(termInlines), Definition: defs}, true
}

// --- HTML / LaTeX blocks -----------------------------------------------------

func htmlBlock(c *cursor) (pandoc.Block, bool) {
	raw, ok := try(c, rawHtmlBlock)
	if !ok {
		return nil, false
	}
	c.blanklines()
	if !c.cfg.ParseRaw {
		return pandoc.Nul, true
	}
	return &pandoc.RawBlock{Format: "html", Text: raw}, true
}

func rawLaTeXBlock(c *cursor) (pandoc.Block, bool) {
	raw, ok := try(c, rawLaTeXEnvironment)
	if !ok {
		return nil, false
	}
	c.blanklines()
	if !c.cfg.ParseRaw {
		return pandoc.Nul, true
	}
	return &pandoc.RawBlock{Format: "tex", Text: raw}, true
}

// --- paragraphs and fallback --------------------------------------------------

func paraBlock(c *cursor) (pandoc.Block, bool) {
	clump := c.lineClump()
	if strings.TrimSpace(clump) == "" {
		return nil, false
	}
	inlines, ok := parseFromString(c, clump, inlinesTillEOF)
	if !ok || len(normalizeSpaces(inlines)) == 0 {
		return nil, false
	}
	return &pandoc.Para{Inlines: normalizeSpaces(inlines)}, true
}

func plainBlock(c *cursor) (pandoc.Block, bool) {
	clump := c.lineClump()
	if strings.TrimSpace(clump) == "" {
		return nil, false
	}
	inlines, _ := parseFromString(c, clump, inlinesTillEOF)
	return &pandoc.Plain{Inlines: normalizeSpaces(inlines)}, true
}

func nullBlock(c *cursor) (pandoc.Block, bool) {
	if c.eof() {
		return nil, false
	}
	c.advance()
	return pandoc.Nul, true
}
