// Package markdown implements a Pandoc-flavor Markdown reader: a
// backtracking, context-sensitive recursive-descent parser that turns
// source text into a github.com/gopandoc/pandoc.Pandoc document.
package markdown

import (
	"go.uber.org/zap"

	"github.com/gopandoc/pandoc"
)

// Config holds the read-only parser configuration. Fields are never
// mutated once parsing starts; store one and reuse it across parses.
type Config struct {
	// TabStop is the number of columns a tab advances; it also sets
	// the indent width that marks code blocks and list continuations.
	// Zero means the default of 4.
	TabStop int
	// Columns is the terminal width budget used when computing table
	// column width fractions. Zero means the default of 80.
	Columns int
	// Strict restricts the reader to a plain-Markdown.pl-compatible
	// subset: a narrower escape set, no TeX math, no "%" title block,
	// plain-text display for e-mail autolinks, and a line starting with
	// '>' or '#' is not joined to the preceding paragraph line. Smart
	// typography and the HTML block tag set are unaffected.
	Strict bool
	// Smart enables typographic quotes, dashes and ellipses.
	Smart bool
	// ParseRaw allows raw HTML and raw LaTeX to pass through as
	// RawInline/RawBlock nodes instead of being dropped.
	ParseRaw bool
	// Logger receives one debug line per parsed document and a warning
	// for each unresolved reference link or footnote. A nil Logger is replaced with
	// zap.NewNop() so library use never forces logging on a caller.
	Logger *zap.Logger
}

func (c Config) normalize() Config {
	if c.TabStop <= 0 {
		c.TabStop = 4
	}
	if c.Columns <= 0 {
		c.Columns = 80
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// target is a resolved reference link: (URL, Title).
type target struct {
	url   string
	title string
}

// tables holds the results of preprocessing (component C). They are
// built once, before any block or inline parsing begins, and are read
// but never mutated afterward — so parser tries never need to snapshot
// them (see design notes on backtracking state).
type tables struct {
	keys    map[string]target
	notes   map[string][]pandoc.Block
	noteIDs []string // preserves first-seen order, for deterministic iteration
}

func newTables() *tables {
	return &tables{
		keys:  make(map[string]target),
		notes: make(map[string][]pandoc.Block),
	}
}
