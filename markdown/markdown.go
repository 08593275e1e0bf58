package markdown

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gopandoc/pandoc"
)

// errorf wraps a formatted message into an error tagged with the
// package name, following the narrow configuration-failure error path:
// parsing itself never fails (component D/nullBlock always makes
// progress), so this is reserved for the handful of pre-parse checks
// that can legitimately reject input outright.
func errorf(format string, args ...any) error {
	return fmt.Errorf("markdown: "+format, args...)
}

// ReadString parses source as Pandoc-flavor Markdown and returns the
// resulting document. Parsing itself cannot fail on well-formed UTF-8
// input: the block grammar's Null fallback guarantees termination, so
// the only error path is a nil byte or other pre-parse rejection.
func ReadString(cfg Config, source string) (*pandoc.Pandoc, error) {
	cfg = cfg.normalize()
	for i := 0; i < len(source); i++ {
		if source[i] == 0 {
			return nil, errorf("NUL byte at offset %d", i)
		}
	}
	cfg.Logger.Debug("markdown: parsing document", zap.Int("bytes", len(source)))

	meta, body := parseTitleBlock(&cfg, source)

	tbl := newTables()
	body = preprocess(&cfg, tbl, body)
	if !stringHasTrailingBlankLines(body) {
		body += "\n\n"
	}

	c := newCursorFor(&cfg, tbl, body)
	blocks := blocksTillEOF(c)

	return &pandoc.Pandoc{Meta: meta, Blocks: blocks}, nil
}

func stringHasTrailingBlankLines(s string) bool {
	n := len(s)
	if n >= 2 && s[n-1] == '\n' && s[n-2] == '\n' {
		return true
	}
	return false
}
