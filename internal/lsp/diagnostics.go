package lsp

import "fmt"

const diagnosticSource = "scallop-lsp"

type openBracket struct {
	ch   byte
	line int
	col  int
}

// checker walks a buffer once and records structural problems:
// brackets that never close, closers with nothing to close, and
// literals or block comments left unterminated. It never fails on
// partial input; a mid-edit buffer just yields diagnostics.
type checker struct {
	diags []Diagnostic
	stack []openBracket
}

func analyze(text string) []Diagnostic {
	c := &checker{diags: []Diagnostic{}}
	c.scan(text)
	return c.diags
}

func (c *checker) scan(text string) {
	line := 0
	col := 0
	i := 0
	for i < len(text) {
		ch := text[i]
		if ch == '\n' {
			line++
			col = 0
			i++
			continue
		}

		switch ch {
		case '/':
			if i+1 < len(text) && text[i+1] == '/' {
				for i < len(text) && text[i] != '\n' {
					i++
					col++
				}
				continue
			}
			if i+1 < len(text) && text[i+1] == '*' {
				var ok bool
				i, line, col, ok = scanUntilBlockCommentEnd(text, i, line, col)
				if !ok {
					c.addAt(line, col, "unterminated block comment")
					return
				}
				continue
			}
		case '"', '\'':
			startLine, startCol := line, col
			var ok bool
			i, col, ok = scanUntilQuote(text, i, col, ch)
			if !ok {
				what := "string literal"
				if ch == '\'' {
					what = "char literal"
				}
				c.addAt(startLine, startCol, "unterminated "+what)
				continue
			}
			continue
		case '(', '[', '{':
			c.stack = append(c.stack, openBracket{ch: ch, line: line, col: col})
		case ')', ']', '}':
			c.close(ch, line, col)
		}
		i++
		col++
	}

	for _, open := range c.stack {
		c.addAt(open.line, open.col, fmt.Sprintf("unclosed %q", string(open.ch)))
	}
}

func (c *checker) close(ch byte, line, col int) {
	if len(c.stack) == 0 {
		c.addAt(line, col, fmt.Sprintf("unexpected %q with no open bracket", string(ch)))
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	if matchingCloser(top.ch) != ch {
		c.addAt(line, col, fmt.Sprintf("mismatched %q; expected %q to close the %q opened at line %d",
			string(ch), string(matchingCloser(top.ch)), string(top.ch), top.line+1))
	}
}

func matchingCloser(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func (c *checker) addAt(line, col int, msg string) {
	c.diags = append(c.diags, Diagnostic{
		Range: Range{
			Start: Position{Line: line, Character: col},
			End:   Position{Line: line, Character: col + 1},
		},
		Severity: 1,
		Source:   diagnosticSource,
		Message:  msg,
	})
}

// scanUntilQuote advances past a quoted literal, honoring backslash
// escapes. It stops at the line end: neither strings nor char literals
// span lines.
func scanUntilQuote(text string, i, col int, quote byte) (int, int, bool) {
	i++
	col++
	for i < len(text) {
		ch := text[i]
		if ch == '\n' {
			return i, col, false
		}
		if ch == '\\' && i+1 < len(text) && text[i+1] != '\n' {
			i += 2
			col += 2
			continue
		}
		if ch == quote {
			return i + 1, col + 1, true
		}
		i++
		col++
	}
	return i, col, false
}

func scanUntilBlockCommentEnd(text string, i, line, col int) (int, int, int, bool) {
	startLine, startCol := line, col
	i += 2
	col += 2
	for i < len(text) {
		ch := text[i]
		if ch == '\n' {
			line++
			col = 0
			i++
			continue
		}
		if ch == '*' && i+1 < len(text) && text[i+1] == '/' {
			return i + 2, line, col + 2, true
		}
		i++
		col++
	}
	return i, startLine, startCol, false
}
