package markdown

import "strings"

// Pandoc's classic block-level HTML tag set. A top-of-line tag whose
// name is in this set is treated, in strict and non-strict mode alike,
// as a structural HTML block rather than raw inline HTML.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "button": true, "canvas": true, "caption": true,
	"col": true, "colgroup": true, "dd": true, "div": true, "dl": true,
	"dt": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true,
	"hgroup": true, "hr": true, "html": true, "iframe": true, "li": true,
	"map": true, "object": true, "ol": true, "output": true, "p": true,
	"pre": true, "progress": true, "script": true, "section": true,
	"style": true, "table": true, "tbody": true, "td": true,
	"textarea": true, "tfoot": true, "th": true, "thead": true,
	"tr": true, "ul": true, "video": true,
}

// selfClosingTags never require a matching end tag.
var selfClosingTags = map[string]bool{
	"hr": true, "br": true, "img": true, "input": true, "meta": true,
	"link": true, "col": true, "area": true, "base": true, "embed": true,
}

// anyHtmlTag recognizes one HTML tag starting at '<': either an opening
// tag (possibly self-closing) or a closing tag. Returns the tag name
// (lowercased) and whether it is a closing tag, plus the raw source
// text consumed.
type htmlTagInfo struct {
	name     string
	closing  bool
	selfShut bool
	raw      string
}

func extractTagType(name string) string { return strings.ToLower(name) }

func anyHtmlTag(c *cursor) (htmlTagInfo, bool) {
	start := c.pos
	if !c.char('<') {
		return htmlTagInfo{}, false
	}
	closing := c.char('/')
	nameStart := c.pos
	for {
		r, ok := c.peek()
		if !ok || !(isAlphaNumeric(r) || r == '-' || r == ':') {
			break
		}
		c.pos++
	}
	if c.pos == nameStart {
		c.pos = start
		return htmlTagInfo{}, false
	}
	name := extractTagType(string(c.src[nameStart:c.pos]))
	// consume attributes/content up to the closing '>', respecting
	// quoted attribute values that may themselves contain '>'.
	inSingle, inDouble := false, false
	for {
		r, ok := c.peek()
		if !ok {
			c.pos = start
			return htmlTagInfo{}, false
		}
		if inSingle {
			if r == '\'' {
				inSingle = false
			}
			c.pos++
			continue
		}
		if inDouble {
			if r == '"' {
				inDouble = false
			}
			c.pos++
			continue
		}
		switch r {
		case '\'':
			inSingle = true
			c.pos++
		case '"':
			inDouble = true
			c.pos++
		case '>':
			c.pos++
			raw := string(c.src[start:c.pos])
			selfShut := strings.HasSuffix(strings.TrimSpace(raw[:len(raw)-1]), "/")
			return htmlTagInfo{name: name, closing: closing, selfShut: selfShut || selfClosingTags[name], raw: raw}, true
		case '\n':
			// tags may span a line or two but never a blank line
			c.pos++
		default:
			c.pos++
		}
	}
}

func anyHtmlEndTag(c *cursor) (htmlTagInfo, bool) {
	info, ok := anyHtmlTag(c)
	if !ok || !info.closing {
		return htmlTagInfo{}, false
	}
	return info, true
}

func htmlEndTag(c *cursor, tagType string) bool {
	info, ok := try(c, anyHtmlEndTag)
	return ok && info.name == tagType
}

func anyHtmlInlineTag(c *cursor) (htmlTagInfo, bool) {
	return try(c, anyHtmlTag)
}

func anyHtmlBlockTag(c *cursor) (htmlTagInfo, bool) {
	info, ok := try(c, anyHtmlTag)
	if !ok || !blockTags[info.name] {
		return htmlTagInfo{}, false
	}
	return info, true
}

// htmlBlockElement consumes a block-tag HTML element, including
// (balanced, by tag name only) nested occurrences of the same tag, up
// to and including its matching end tag. Self-closing elements and
// void elements consume just the opening tag.
func htmlBlockElement(c *cursor) (string, bool) {
	start := c.pos
	open, ok := anyHtmlBlockTag(c)
	if !ok {
		return "", false
	}
	if open.closing || open.selfShut {
		return string(c.src[start:c.pos]), true
	}
	depth := 1
	for depth > 0 {
		if c.eof() {
			c.pos = start
			return "", false
		}
		save := c.pos
		if tag, ok := try(c, anyHtmlTag); ok && tag.name == open.name {
			if tag.closing {
				depth--
			} else if !tag.selfShut {
				depth++
			}
			continue
		}
		c.pos = save
		c.pos++
	}
	return string(c.src[start:c.pos]), true
}

// rawHtmlBlock consumes one block-tag element (via htmlBlockElement)
// or, failing that, a single HTML tag at the top of a line, used for
// the "otherwise" branch of the HTML block production.
func rawHtmlBlock(c *cursor) (string, bool) {
	if s, ok := htmlBlockElement(c); ok {
		return s, true
	}
	tag, ok := try(c, anyHtmlTag)
	if !ok {
		return "", false
	}
	return tag.raw, true
}
