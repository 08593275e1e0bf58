package markdown

// newCursorFor builds a fresh cursor over src, sharing cfg and tbl with
// the caller (component H's "fresh cursor but inherited state").
func newCursorFor(cfg *Config, tbl *tables, src string) *cursor {
	return &cursor{src: []rune(src), cfg: cfg, tbl: tbl}
}

// parseFromString runs p against text with a fresh cursor positioned
// at the start, inheriting c's configuration, tables and current
// quote/parser context, then discards the sub-cursor — only p's return
// value propagates to the caller. Because tbl is a shared pointer, any
// resolution p performs against it (there is none after preprocessing)
// would be visible to c; quoteContext/parserContext are copied in, not
// shared, matching "fresh cursor but inherited state".
func parseFromString[T any](c *cursor, text string, p func(*cursor) (T, bool)) (T, bool) {
	sub := newCursorFor(c.cfg, c.tbl, text)
	sub.quoteContext = c.quoteContext
	sub.parserContext = c.parserContext
	return p(sub)
}
