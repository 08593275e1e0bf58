package markdown

// rawLaTeXEnvironment consumes a \begin{name}...\end{name} block,
// tracking nested same-named environments.
func rawLaTeXEnvironment(c *cursor) (string, bool) {
	start := c.pos
	name, ok := latexBegin(c)
	if !ok {
		return "", false
	}
	depth := 1
	for depth > 0 {
		if c.eof() {
			c.pos = start
			return "", false
		}
		save := c.pos
		if n, ok := try(c, latexBegin); ok && n == name {
			depth++
			continue
		}
		c.pos = save
		if n, ok := try(c, func(c *cursor) (string, bool) { return latexEnd(c) }); ok && n == name {
			depth--
			continue
		}
		c.pos = save
		c.pos++
	}
	return string(c.src[start:c.pos]), true
}

func latexBegin(c *cursor) (string, bool) {
	if !c.literal(`\begin{`) {
		return "", false
	}
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok || r == '}' {
			break
		}
		c.pos++
	}
	name := string(c.src[start:c.pos])
	if !c.char('}') {
		return "", false
	}
	return name, true
}

func latexEnd(c *cursor) (string, bool) {
	if !c.literal(`\end{`) {
		return "", false
	}
	start := c.pos
	for {
		r, ok := c.peek()
		if !ok || r == '}' {
			break
		}
		c.pos++
	}
	name := string(c.src[start:c.pos])
	if !c.char('}') {
		return "", false
	}
	return name, true
}

// rawLaTeXInline consumes a single \command possibly followed by one
// or more {...}/[...] groups, e.g. \textbf{x}, \cite[p. 4]{key}. A
// named (alphanumeric) command is recognized on its own, but a single
// non-letter command character (e.g. \\, \$) is only raw LaTeX when at
// least one group follows it: without a group it is indistinguishable
// from an escaped punctuation character and is left for escapedChar to
// handle instead.
func rawLaTeXInline(c *cursor) (string, bool) {
	start := c.pos
	if !c.char('\\') {
		return "", false
	}
	r, ok := c.peek()
	if !ok {
		c.pos = start
		return "", false
	}
	requireGroup := false
	if isAlphaNumeric(r) {
		for {
			r, ok := c.peek()
			if !ok || !isAlphaNumeric(r) {
				break
			}
			c.pos++
		}
	} else {
		requireGroup = true
		c.pos++ // single non-letter command char, e.g. \\
	}
	groups := 0
	for latexGroup(c) {
		groups++
	}
	if c.pos == start+1 || (requireGroup && groups == 0) {
		c.pos = start
		return "", false
	}
	return string(c.src[start:c.pos]), true
}

func latexGroup(c *cursor) bool {
	open, close := rune(0), rune(0)
	switch r, ok := c.peek(); {
	case ok && r == '{':
		open, close = '{', '}'
	case ok && r == '[':
		open, close = '[', ']'
	default:
		return false
	}
	save := c.pos
	c.pos++
	depth := 1
	for depth > 0 {
		r, ok := c.peek()
		if !ok {
			c.pos = save
			return false
		}
		switch r {
		case open:
			depth++
		case close:
			depth--
		}
		c.pos++
	}
	return true
}
