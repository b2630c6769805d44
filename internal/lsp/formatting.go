package lsp

import "strings"

// formatDocument reindents every line top to bottom with the same rule
// set the per-line engine uses, threading the lexical scan state
// through instead of rescanning from the start for each line. Trailing
// whitespace is trimmed; blank lines and the trailing-newline choice
// survive untouched. Running the result through a second pass yields
// the same text.
func formatDocument(text string, opts formattingOptions) string {
	if text == "" {
		return ""
	}

	hasTrailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if hasTrailingNewline && len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	out := make([]string, 0, len(lines))
	depth := 0
	state := lexCode
	prevCode := ""
	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			out = append(out, "")
			continue
		}

		inComment := state == lexBlockComment
		if inComment {
			// Interior of a block comment is not code; keep the
			// author's layout.
			out = append(out, line)
		} else {
			level := classifyLevel(indentContext{depth: depth, lead: trimmed, prev: prevCode})
			out = append(out, renderIndent(level, opts)+trimmed)
		}

		depth, state = scanLineDepth(trimmed, depth, state)
		if state == lexString || state == lexChar {
			state = lexCode
		}
		if !inComment {
			if code := strings.TrimSpace(stripLineComment(trimmed)); code != "" {
				prevCode = code
			}
		}
	}

	result := strings.Join(out, "\n")
	if hasTrailingNewline {
		return result + "\n"
	}
	return result
}

func endPosition(text string) Position {
	line := 0
	col := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return Position{Line: line, Character: col}
}
