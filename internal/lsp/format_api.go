package lsp

import "strings"

// FormatOptions controls indentation behavior for Scallop source.
type FormatOptions struct {
	TabSize      int
	InsertSpaces bool
}

// FormatText reindents a whole Scallop document using stable rules.
// The result is a fixed point: formatting it again changes nothing.
func FormatText(text string, opts FormatOptions) string {
	return formatDocument(text, formattingOptions(opts))
}

// IndentColumn returns the target indent column for the given line as
// a pure function of the text, the line index, and the options. It is
// total: out-of-range lines and malformed input fall back to the
// bracket-depth base.
func IndentColumn(text string, line int, opts FormatOptions) int {
	return indentColumn(strings.Split(text, "\n"), line, formattingOptions(opts))
}

// ReindentLine rewrites the leading whitespace of one line and returns
// the updated document. The second result reports whether the text
// changed; a line already at its target indent comes back untouched.
func ReindentLine(text string, line int, opts FormatOptions) (string, bool) {
	lines := strings.Split(text, "\n")
	next, changed := reindentLine(lines, line, formattingOptions(opts))
	if !changed {
		return text, false
	}
	lines[line] = next
	return strings.Join(lines, "\n"), true
}

// ReindentAt reindents the line under pos and remaps pos so that its
// offset from the end of the line is preserved; invoking the reindent
// never relocates the cursor within the line's content.
func ReindentAt(text string, pos Position, opts FormatOptions) (string, Position) {
	lines := strings.Split(text, "\n")
	if pos.Line < 0 || pos.Line >= len(lines) {
		return text, pos
	}
	old := lines[pos.Line]
	next, changed := reindentLine(lines, pos.Line, formattingOptions(opts))
	if !changed {
		return text, pos
	}
	lines[pos.Line] = next

	fromEnd := len(old) - pos.Character
	if fromEnd < 0 {
		fromEnd = 0
	}
	col := len(next) - fromEnd
	if col < 0 {
		col = 0
	}
	return strings.Join(lines, "\n"), Position{Line: pos.Line, Character: col}
}
