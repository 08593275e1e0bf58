package markdown

import (
	"strings"

	"github.com/gopandoc/pandoc"
)

// tableBlock implements §4.F: a simple (dash-rule, single-line-header)
// table or a multiline table, each optionally preceded by a caption of
// the form "Table: <inlines>" and followed by one.
func tableBlock(c *cursor) (pandoc.Block, bool) {
	caption, hasCaption := try(c, tableCaptionLine)
	t, ok := choice(c, simpleTable, multilineTable)
	if !ok {
		return nil, false
	}
	if !hasCaption {
		if cap2, ok := try(c, tableCaptionLine); ok {
			caption = cap2
			hasCaption = true
		}
	}
	if hasCaption {
		t.Caption = pandoc.Caption{Long: []pandoc.Block{&pandoc.Plain{Inlines: caption}}}
	}
	return t, true
}

func tableCaptionLine(c *cursor) ([]pandoc.Inline, bool) {
	c.nonindentSpaces()
	if !c.literal("Table:") && !c.literal("table:") {
		return nil, false
	}
	c.skipSpaces()
	line := c.restOfLine()
	c.blanklines()
	inlines, _ := parseFromString(c, strings.TrimSpace(line)+"\n\n", inlinesTillEOF)
	return normalizeSpaces(inlines), true
}

// splitByIndices cuts s at each column boundary given by indices
// (ascending rune offsets), returning len(indices)+1 fields.
func splitByIndices(s string, indices []int) []string {
	r := []rune(s)
	var out []string
	prev := 0
	for _, idx := range indices {
		if idx > len(r) {
			idx = len(r)
		}
		if idx < prev {
			idx = prev
		}
		out = append(out, string(r[prev:idx]))
		prev = idx
	}
	out = append(out, string(r[prev:]))
	return out
}

// simpleTable recognizes the header-line / dash-rule / body-lines /
// blank-line form, inferring column boundaries and alignment from the
// dash rule: a rule segment with a leading and/or trailing ":" sets
// left/right/center alignment.
func simpleTable(c *cursor) (*pandoc.Table, bool) {
	save := c.pos
	headerLine, ok := try(c, nonBlankLine)
	hasHeader := ok
	ruleLine, ok := try(c, dashRuleLine)
	if !ok {
		c.pos = save
		return nil, false
	}
	indices := dashRuleBoundaries(ruleLine)
	aligns := dashRuleAligns(ruleLine, indices)
	if len(indices) == 0 {
		c.pos = save
		return nil, false
	}
	var headerCells [][]pandoc.Inline
	if hasHeader {
		headerCells = splitTableLineCells(c, headerLine, indices)
	}
	var bodyRows [][][]pandoc.Inline
	for {
		line, ok := try(c, nonBlankLine)
		if !ok {
			break
		}
		bodyRows = append(bodyRows, splitTableLineCells(c, line, indices))
	}
	c.blanklines()
	return buildTable(c.cfg, aligns, indices, len([]rune(ruleLine)), headerCells, bodyRows), true
}

func nonBlankLine(c *cursor) (string, bool) {
	if c.atBlankLine() || c.eof() {
		return "", false
	}
	return c.restOfLine(), true
}

// dashRuleLine matches a line made of "-", "=" and spaces with at
// least one run of 2+ dashes/equals, the simple-table column rule.
func dashRuleLine(c *cursor) (string, bool) {
	start := c.pos
	seenDash := false
	for {
		r, ok := c.peek()
		if !ok || r == '\n' {
			break
		}
		if r == '-' || r == '=' || r == ':' || r == ' ' {
			if r == '-' || r == '=' {
				seenDash = true
			}
			c.pos++
			continue
		}
		c.pos = start
		return "", false
	}
	if !seenDash {
		c.pos = start
		return "", false
	}
	line := string(c.src[start:c.pos])
	c.char('\n')
	return line, true
}

// dashRuleBoundaries returns the rune offsets where a run of dashes
// ends and a run of spaces begins, used as fixed column-split points.
func dashRuleBoundaries(rule string) []int {
	var out []int
	runes := []rune(rule)
	inDash := false
	for i, r := range runes {
		dash := r == '-' || r == '=' || r == ':'
		if inDash && !dash {
			out = append(out, i)
		}
		inDash = dash
	}
	return out
}

func dashRuleAligns(rule string, indices []int) []pandoc.Alignment {
	segments := splitByIndices(rule, indices)
	aligns := make([]pandoc.Alignment, len(segments))
	for i, seg := range segments {
		seg = strings.TrimRight(seg, " ")
		left := strings.HasPrefix(seg, ":")
		right := strings.HasSuffix(seg, ":")
		switch {
		case left && right:
			aligns[i] = pandoc.AlignCenter
		case left:
			aligns[i] = pandoc.AlignLeft
		case right:
			aligns[i] = pandoc.AlignRight
		default:
			aligns[i] = pandoc.AlignDefault
		}
	}
	return aligns
}

func splitTableLineCells(c *cursor, line string, indices []int) [][]pandoc.Inline {
	fields := splitByIndices(line, indices)
	cells := make([][]pandoc.Inline, len(fields))
	for i, f := range fields {
		inlines, _ := parseFromString(c, strings.TrimSpace(f)+"\n\n", inlinesTillEOF)
		cells[i] = normalizeSpaces(inlines)
	}
	return cells
}

// multilineTable recognizes the "=== === ===" top/bottom rule form
// where each cell may wrap across several physical lines; a blank line
// inside the rule-delimited block separates header from body (when a
// header is present) and also separates body rows from each other.
func multilineTable(c *cursor) (*pandoc.Table, bool) {
	save := c.pos
	topRule, ok := try(c, multilineRuleLine)
	if !ok {
		c.pos = save
		return nil, false
	}
	indices := dashRuleBoundaries(topRule)
	if len(indices) == 0 {
		c.pos = save
		return nil, false
	}
	headerLines, headerSeen := collectUntilBlankOrRule(c)
	var headerCells [][]pandoc.Inline
	var aligns []pandoc.Alignment
	bottomSeen := false
	if _, ok := try(c, multilineRuleLine); ok {
		headerCells = joinMultilineCells(c, headerLines, indices)
		headerSeen = true
	} else {
		// no header: what we collected is actually the first body block
		aligns = make([]pandoc.Alignment, len(indices)+1)
		for i := range aligns {
			aligns[i] = pandoc.AlignDefault
		}
	}
	if headerSeen && aligns == nil {
		aligns = make([]pandoc.Alignment, len(indices)+1)
		for i := range aligns {
			aligns[i] = pandoc.AlignDefault
		}
	}
	var bodyRows [][][]pandoc.Inline
	if !headerSeen {
		bodyRows = append(bodyRows, joinMultilineCells(c, headerLines, indices))
	}
	for {
		lines, _ := collectUntilBlankOrRule(c)
		if len(lines) == 0 {
			break
		}
		bodyRows = append(bodyRows, joinMultilineCells(c, lines, indices))
		if _, ok := try(c, multilineRuleLine); ok {
			bottomSeen = true
			break
		}
	}
	if !bottomSeen {
		try(c, multilineRuleLine)
	}
	c.blanklines()
	return buildTable(c.cfg, aligns, indices, len([]rune(topRule)), headerCells, bodyRows), true
}

func multilineRuleLine(c *cursor) (string, bool) {
	start := c.pos
	seen := false
	for {
		r, ok := c.peek()
		if !ok || r == '\n' {
			break
		}
		if r == '=' || r == ' ' {
			if r == '=' {
				seen = true
			}
			c.pos++
			continue
		}
		c.pos = start
		return "", false
	}
	if !seen {
		c.pos = start
		return "", false
	}
	line := string(c.src[start:c.pos])
	c.char('\n')
	return line, true
}

func collectUntilBlankOrRule(c *cursor) ([]string, bool) {
	var lines []string
	for {
		if c.atBlankLine() || c.eof() {
			break
		}
		if _, ok := lookAhead(c, multilineRuleLine); ok {
			break
		}
		lines = append(lines, c.restOfLine())
	}
	c.blanklines()
	return lines, len(lines) > 0
}

func joinMultilineCells(c *cursor, lines []string, indices []int) [][]pandoc.Inline {
	n := len(indices) + 1
	parts := make([]string, n)
	for _, line := range lines {
		fields := splitByIndices(line, indices)
		for i := 0; i < n && i < len(fields); i++ {
			if parts[i] != "" {
				parts[i] += " "
			}
			parts[i] += strings.TrimSpace(fields[i])
		}
	}
	cells := make([][]pandoc.Inline, n)
	for i, p := range parts {
		inlines, _ := parseFromString(c, p+"\n\n", inlinesTillEOF)
		cells[i] = normalizeSpaces(inlines)
	}
	return cells
}

// buildTable assembles the nested Table/TableHeadFoot/TableBody/
// TableRow/TableCell structure and computes each column's width
// fraction as its rule-derived character span over
// max(total, cfg.Columns), per §4.F's width-computation rule: the
// fractions only sum to 1 when the rule's total span reaches the
// configured column budget, and sum to less than 1 otherwise.
func buildTable(cfg *Config, aligns []pandoc.Alignment, indices []int, ruleLen int, headerCells [][]pandoc.Inline, bodyRows [][][]pandoc.Inline) *pandoc.Table {
	n := len(indices) + 1
	lengths := make([]int, n)
	prev := 0
	for i, idx := range indices {
		lengths[i] = idx - prev
		prev = idx
	}
	lengths[n-1] = ruleLen - prev
	if lengths[n-1] < 0 {
		lengths[n-1] = 0
	}
	total := 0
	for _, l := range lengths {
		total += l
	}
	denominator := total
	if cfg.Columns > denominator {
		denominator = cfg.Columns
	}
	if denominator < 1 {
		denominator = 1
	}
	colSpecs := make([]pandoc.ColSpec, n)
	for i := 0; i < n; i++ {
		a := pandoc.AlignDefault
		if i < len(aligns) {
			a = aligns[i]
		}
		colSpecs[i] = pandoc.ColSpec{Align: a, Width: pandoc.ColWidth{Width: float64(lengths[i]) / float64(denominator)}}
	}

	var head pandoc.TableHeadFoot
	if headerCells != nil {
		head.Rows = []*pandoc.TableRow{rowFromCells(headerCells, colSpecs)}
	}
	var rows []*pandoc.TableRow
	for _, r := range bodyRows {
		rows = append(rows, rowFromCells(r, colSpecs))
	}
	body := &pandoc.TableBody{Body: rows}
	return &pandoc.Table{Aligns: colSpecs, Head: head, Bodies: []*pandoc.TableBody{body}}
}

func rowFromCells(cells [][]pandoc.Inline, colSpecs []pandoc.ColSpec) *pandoc.TableRow {
	row := &pandoc.TableRow{}
	for i, cell := range cells {
		align := pandoc.AlignDefault
		if i < len(colSpecs) {
			align = colSpecs[i].Align
		}
		row.Cells = append(row.Cells, &pandoc.TableCell{
			Align:   align,
			RowSpan: 1,
			ColSpan: 1,
			Blocks:  []pandoc.Block{&pandoc.Plain{Inlines: cell}},
		})
	}
	return row
}
