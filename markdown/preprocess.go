package markdown

import (
	"strings"

	"github.com/gopandoc/pandoc"
)

// preprocess implements component C: reference-link definitions and
// footnote definitions are extracted from the raw source, in two
// sequential passes, before any block is parsed. Both passes work
// clump-by-clump (the cursor's "line clump" unit) so a definition is
// never split across an unrelated blank-line boundary. The remaining
// text, with each consumed clump blanked out, is what the block parser
// (component D) ultimately sees.
func preprocess(cfg *Config, tbl *tables, source string) string {
	source = extractReferenceKeys(cfg, tbl, source)
	source = extractFootnotes(cfg, tbl, source)
	return source
}

// extractReferenceKeys scans clump by clump for "[label]: url \"title\""
// definitions, normalizing each label and recording the last
// definition for a given key (last-definition-wins, per the design
// notes).
func extractReferenceKeys(cfg *Config, tbl *tables, source string) string {
	var out strings.Builder
	c := &cursor{src: []rune(source), cfg: cfg, tbl: tbl}
	for !c.eof() {
		start := c.pos
		if t, ok := try(c, referenceKeyLine); ok {
			tbl.keys[normalizeLabel(t.label)] = target{url: t.url, title: t.title}
			continue
		}
		c.pos = start
		clump := c.lineClump()
		out.WriteString(clump)
	}
	return out.String()
}

type labeledTarget struct {
	label string
	url   string
	title string
}

// referenceKeyLine matches "[label]: url" optionally followed by a
// title on the same or next (indented) line.
func referenceKeyLine(c *cursor) (labeledTarget, bool) {
	c.nonindentSpaces()
	if !c.char('[') {
		return labeledTarget{}, false
	}
	start := c.pos
	depth := 1
	for depth > 0 {
		r, ok := c.peek()
		if !ok || r == '\n' {
			return labeledTarget{}, false
		}
		if r == '[' {
			depth++
		} else if r == ']' {
			depth--
			if depth == 0 {
				break
			}
		}
		c.pos++
	}
	label := string(c.src[start:c.pos])
	c.char(']')
	if !c.char(':') {
		return labeledTarget{}, false
	}
	c.skipSpaces()
	c.char('\n')
	c.skipSpaces()
	url := readLinkURL(c)
	if url == "" {
		return labeledTarget{}, false
	}
	var title string
	save := c.pos
	c.skipSpaces()
	if t, ok := try(c, readLinkTitle); ok {
		title = t
	} else {
		c.pos = save
	}
	if !c.blankline() && !c.eof() {
		return labeledTarget{}, false
	}
	c.blanklines()
	return labeledTarget{label: label, url: url, title: title}, true
}

// extractFootnotes scans clump by clump for "[^id]: " footnote
// definitions, whose bodies (possibly spanning several indented
// continuation lines) are parsed as blocks via component H's re-entry
// bridge and recorded under their normalized id.
func extractFootnotes(cfg *Config, tbl *tables, source string) string {
	var out strings.Builder
	c := &cursor{src: []rune(source), cfg: cfg, tbl: tbl}
	for !c.eof() {
		start := c.pos
		if id, body, ok := try2(c, footnoteDefLine); ok {
			if _, seen := tbl.notes[id]; !seen {
				tbl.noteIDs = append(tbl.noteIDs, id)
			}
			tbl.notes[id] = parseNoteBody(cfg, tbl, body)
			continue
		}
		c.pos = start
		clump := c.lineClump()
		out.WriteString(clump)
	}
	return out.String()
}

func footnoteDefLine(c *cursor) (string, string, bool) {
	c.nonindentSpaces()
	if !c.literal("[^") {
		return "", "", false
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
	if id == "" || !c.char(']') || !c.char(':') {
		return "", "", false
	}
	c.skipSpaces()
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
	body := dedentOnce(strings.Join(lines, "\n")+"\n\n", c.cfg.TabStop)
	return id, body, true
}

func parseNoteBody(cfg *Config, tbl *tables, body string) []pandoc.Block {
	c := newCursorFor(cfg, tbl, body)
	return blocksTillEOF(c)
}

// try2 adapts a two-result parser production to the try/backtrack
// protocol by bundling its results into a pair.
func try2[A, B any](c *cursor, f func(*cursor) (A, B, bool)) (A, B, bool) {
	s := c.save()
	a, b, ok := f(c)
	if !ok {
		c.restore(s)
	}
	return a, b, ok
}
