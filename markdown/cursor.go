package markdown

import "unicode"

// quoteContext tracks which smart-quote kind, if any, is currently open.
// Scoped: installed on entry to a quoted span, restored on exit or on
// backtrack.
type quoteContext int

const (
	quoteNone quoteContext = iota
	quoteSingle
	quoteDouble
)

// parserContext distinguishes top-level parsing from parsing inside a
// list item body, where endline must treat a new list marker as a
// structural break.
type parserContext int

const (
	nullState parserContext = iota
	listItemState
)

// cursor is the parser runtime: a position-tracked view over the input
// plus the small scalar context that try/lookAhead must snapshot and
// restore. cfg and tbl are read-only after preprocessing and are never
// part of a snapshot (see design notes).
type cursor struct {
	src []rune
	pos int

	cfg *Config
	tbl *tables

	quoteContext  quoteContext
	parserContext parserContext
}

// snapshot is the cheap, value-semantic save point try/lookAhead roll
// back to.
type snapshot struct {
	pos int
	qc  quoteContext
	pc  parserContext
}

func (c *cursor) save() snapshot {
	return snapshot{pos: c.pos, qc: c.quoteContext, pc: c.parserContext}
}

func (c *cursor) restore(s snapshot) {
	c.pos = s.pos
	c.quoteContext = s.qc
	c.parserContext = s.pc
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

func (c *cursor) peek() (rune, bool) {
	if c.eof() {
		return 0, false
	}
	return c.src[c.pos], true
}

func (c *cursor) peekAt(offset int) (rune, bool) {
	if c.pos+offset >= len(c.src) || c.pos+offset < 0 {
		return 0, false
	}
	return c.src[c.pos+offset], true
}

func (c *cursor) advance() (rune, bool) {
	r, ok := c.peek()
	if ok {
		c.pos++
	}
	return r, ok
}

// char consumes one rune if it equals r.
func (c *cursor) char(r rune) bool {
	if v, ok := c.peek(); ok && v == r {
		c.pos++
		return true
	}
	return false
}

// oneOf consumes one rune if it is contained in set.
func (c *cursor) oneOf(set string) (rune, bool) {
	v, ok := c.peek()
	if !ok {
		return 0, false
	}
	for _, r := range set {
		if r == v {
			c.pos++
			return v, true
		}
	}
	return 0, false
}

// noneOf consumes one rune if it is absent from set and not EOF.
func (c *cursor) noneOf(set string) (rune, bool) {
	v, ok := c.peek()
	if !ok {
		return 0, false
	}
	for _, r := range set {
		if r == v {
			return 0, false
		}
	}
	c.pos++
	return v, true
}

// literal consumes the exact string s, atomically.
func (c *cursor) literal(s string) bool {
	save := c.pos
	for _, r := range s {
		if !c.char(r) {
			c.pos = save
			return false
		}
	}
	return true
}

func isSpaceOrTab(r rune) bool { return r == ' ' || r == '\t' }

func (c *cursor) spaceChar() bool {
	if v, ok := c.peek(); ok && isSpaceOrTab(v) {
		c.pos++
		return true
	}
	return false
}

// skipSpaces consumes zero or more spaces/tabs, returning the count.
func (c *cursor) skipSpaces() int {
	n := 0
	for c.spaceChar() {
		n++
	}
	return n
}

func (c *cursor) newline() bool { return c.char('\n') }

// blankline matches a line containing only spaces/tabs, then the
// terminating newline (or EOF).
func (c *cursor) blankline() bool {
	save := c.pos
	for {
		v, ok := c.peek()
		if !ok {
			return true
		}
		if v == '\n' {
			c.pos++
			return true
		}
		if !isSpaceOrTab(v) {
			c.pos = save
			return false
		}
		c.pos++
	}
}

// blanklines matches one or more blankline, returns count.
func (c *cursor) blanklines() int {
	n := 0
	for !c.eof() && c.blankline() {
		n++
	}
	return n
}

// restOfLine consumes through (and including) the next newline or EOF,
// returning the consumed text without the newline.
func (c *cursor) restOfLine() string {
	start := c.pos
	for {
		v, ok := c.peek()
		if !ok {
			break
		}
		if v == '\n' {
			break
		}
		c.pos++
	}
	line := string(c.src[start:c.pos])
	c.char('\n')
	return line
}

// lineClump consumes a maximal run of non-blank lines followed by any
// number of blank lines (the unit component C's preprocessing passes
// work in).
func (c *cursor) lineClump() string {
	start := c.pos
	for !c.eof() && !c.atBlankLine() {
		c.restOfLine()
	}
	c.blanklines()
	return string(c.src[start:c.pos])
}

func (c *cursor) atBlankLine() bool {
	return try1(c, (*cursor).blankline)
}

// indented consumes exactly one tab stop worth of leading indentation
// (a literal tab, or tabStop spaces; fewer spaces do not count, even
// when a tab follows them).
func (c *cursor) indented() bool {
	save := c.pos
	if c.char('\t') {
		return true
	}
	n := 0
	for n < c.cfg.TabStop {
		if !c.char(' ') {
			break
		}
		n++
	}
	if n >= c.cfg.TabStop {
		return true
	}
	c.pos = save
	return false
}

// nonindentSpaces consumes 0..tabStop-1 leading spaces.
func (c *cursor) nonindentSpaces() int {
	n := 0
	for n < c.cfg.TabStop-1 && c.char(' ') {
		n++
	}
	return n
}

func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// --- generic combinators -------------------------------------------------

// try runs f; on failure it rewinds the cursor and context to the
// pre-call snapshot. Every alternative in this package's block/inline
// choice lists is wrapped in try.
func try[T any](c *cursor, f func(*cursor) (T, bool)) (T, bool) {
	s := c.save()
	v, ok := f(c)
	if !ok {
		c.restore(s)
	}
	return v, ok
}

// try1 is try specialized to bool-valued parsers, for inline use in
// predicates like atBlankLine.
func try1(c *cursor, f func(*cursor) bool) bool {
	s := c.save()
	ok := f(c)
	if !ok {
		c.restore(s)
	}
	return ok
}

// choice tries each alternative in order; the first success wins.
func choice[T any](c *cursor, fs ...func(*cursor) (T, bool)) (T, bool) {
	for _, f := range fs {
		if v, ok := try(c, f); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// lookAhead succeeds iff f succeeds, but always rewinds.
func lookAhead[T any](c *cursor, f func(*cursor) (T, bool)) (T, bool) {
	s := c.save()
	v, ok := f(c)
	c.restore(s)
	return v, ok
}

// notFollowedBy succeeds iff f fails; always rewinds.
func notFollowedBy[T any](c *cursor, f func(*cursor) (T, bool)) bool {
	_, ok := lookAhead(c, f)
	return !ok
}

// many repeats f until it fails, collecting results.
func many[T any](c *cursor, f func(*cursor) (T, bool)) []T {
	var out []T
	for {
		v, ok := try(c, f)
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// many1 is many but requires at least one success.
func many1[T any](c *cursor, f func(*cursor) (T, bool)) ([]T, bool) {
	out := many(c, f)
	return out, len(out) > 0
}

// manyTill repeats p until end succeeds; end is attempted before each p.
func manyTill[T, E any](c *cursor, p func(*cursor) (T, bool), end func(*cursor) (E, bool)) ([]T, bool) {
	var out []T
	for {
		if _, ok := try(c, end); ok {
			return out, true
		}
		v, ok := try(c, p)
		if !ok {
			return out, false
		}
		out = append(out, v)
	}
}

// many1Till is manyTill requiring at least one p.
func many1Till[T, E any](c *cursor, p func(*cursor) (T, bool), end func(*cursor) (E, bool)) ([]T, bool) {
	out, ok := manyTill(c, p, end)
	if !ok || len(out) == 0 {
		return out, false
	}
	return out, true
}

// sepBy repeats p, separated by sep.
func sepBy[T, S any](c *cursor, p func(*cursor) (T, bool), sep func(*cursor) (S, bool)) []T {
	first, ok := try(c, p)
	if !ok {
		return nil
	}
	out := []T{first}
	for {
		s := c.save()
		if _, ok := try(c, sep); !ok {
			c.restore(s)
			return out
		}
		v, ok := try(c, p)
		if !ok {
			c.restore(s)
			return out
		}
		out = append(out, v)
	}
}

// option returns def if p fails, without consuming.
func option[T any](c *cursor, def T, f func(*cursor) (T, bool)) T {
	if v, ok := try(c, f); ok {
		return v
	}
	return def
}

// count runs f exactly n times, failing if any iteration fails.
func count[T any](c *cursor, n int, f func(*cursor) (T, bool)) ([]T, bool) {
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, ok := f(c)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
