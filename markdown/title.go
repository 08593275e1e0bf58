package markdown

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gopandoc/pandoc"
)

// parseTitleBlock consumes an optional leading title block — either
// the classic "%"-prefixed title/author/date lines, or a YAML
// metadata block delimited by "---" ... "---"/"...". The two forms
// are mutually exclusive and never combined. It returns the populated
// Meta and the remaining source text.
func parseTitleBlock(cfg *Config, src string) (pandoc.Meta, string) {
	if meta, rest, ok := parseYAMLMetaBlock(cfg, src); ok {
		return meta, rest
	}
	return parsePercentTitleBlock(cfg, src)
}

func parseYAMLMetaBlock(cfg *Config, src string) (pandoc.Meta, string, bool) {
	lines := strings.SplitAfter(src, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\n") != "---" {
		return nil, "", false
	}
	var body strings.Builder
	end := -1
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimRight(lines[i], "\n")
		if trimmed == "---" || trimmed == "..." {
			end = i
			break
		}
		body.WriteString(lines[i])
	}
	if end < 0 {
		return nil, "", false
	}
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(body.String()), &doc); err != nil {
		return nil, "", false
	}
	meta := metaFromYAML(cfg, doc)
	rest := strings.Join(lines[end+1:], "")
	return meta, rest, true
}

func metaFromYAML(cfg *Config, m map[string]any) pandoc.Meta {
	var meta pandoc.Meta
	for k, v := range m {
		meta.Set(k, metaValueFromYAML(cfg, v))
	}
	return meta
}

// metaValueFromYAML converts a decoded YAML value into a MetaValue.
// Scalar strings are parsed as Markdown inlines, matching Pandoc's
// convention that metadata field values are themselves Markdown.
func metaValueFromYAML(cfg *Config, v any) pandoc.MetaValue {
	switch v := v.(type) {
	case string:
		return &pandoc.MetaInlines{Inlines: parseTitleInlines(cfg, v)}
	case bool:
		return pandoc.MetaBool(v)
	case map[string]any:
		mm := &pandoc.MetaMap{}
		for k, vv := range v {
			mm.Set(k, metaValueFromYAML(cfg, vv))
		}
		return mm
	case []any:
		ml := &pandoc.MetaList{}
		for _, vv := range v {
			ml.Entries = append(ml.Entries, metaValueFromYAML(cfg, vv))
		}
		return ml
	default:
		return &pandoc.MetaInlines{Inlines: parseTitleInlines(cfg, strings.TrimSpace(toYAMLString(v)))}
	}
}

func toYAMLString(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// parsePercentTitleBlock implements §4.G: up to three leading "%"
// lines for title, authors and date, in that fixed order, each
// optional. A title line may be folded onto the next physical line
// with a trailing backslash.
func parsePercentTitleBlock(cfg *Config, src string) (pandoc.Meta, string) {
	var meta pandoc.Meta
	rest := src

	if title, next, ok := percentLine(cfg, rest); ok {
		meta.SetInlines("title", parseTitleInlines(cfg, title)...)
		rest = next
	}
	if authorsLine, next, ok := percentLine(cfg, rest); ok {
		authors := splitAuthors(authorsLine)
		if len(authors) > 0 {
			ml := &pandoc.MetaList{}
			for _, a := range authors {
				ml.Entries = append(ml.Entries, pandoc.MetaString(decodeCharacterReferences(a)))
			}
			meta.Set("author", ml)
		}
		rest = next
	}
	if dateLine, next, ok := percentLine(cfg, rest); ok {
		meta.SetString("date", decodeCharacterReferences(strings.TrimSpace(dateLine)))
		rest = next
	}
	return meta, rest
}

// percentLine consumes one logical "%" line (folding a trailing-\
// continuation), returning its content and the remaining text.
func percentLine(cfg *Config, src string) (string, string, bool) {
	if len(src) == 0 || src[0] != '%' {
		return "", src, false
	}
	nl := strings.IndexByte(src, '\n')
	var line, rest string
	if nl < 0 {
		line, rest = src[1:], ""
	} else {
		line, rest = src[1:nl], src[nl+1:]
	}
	if cfg.Strict || strings.TrimSpace(line) == "" {
		return "", src, false
	}
	var content strings.Builder
	content.WriteString(line)
	for strings.HasSuffix(content.String(), "\\") {
		s := content.String()
		content.Reset()
		content.WriteString(strings.TrimSuffix(s, "\\"))
		content.WriteByte(' ')
		nl2 := strings.IndexByte(rest, '\n')
		var cont string
		if nl2 < 0 {
			cont, rest = rest, ""
		} else {
			cont, rest = rest[:nl2], rest[nl2+1:]
		}
		content.WriteString(strings.TrimSpace(cont))
	}
	return content.String(), rest, true
}

func splitAuthors(s string) []string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseTitleInlines(cfg *Config, s string) []pandoc.Inline {
	c := newCursorFor(cfg, newTables(), strings.TrimSpace(s)+"\n\n")
	inlines, _ := inlinesTillEOF(c)
	return normalizeSpaces(inlines)
}
