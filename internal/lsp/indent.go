package lsp

import (
	"strings"

	"github.com/scallop-lang/scallop-lsp/internal/lang"
)

type formattingOptions struct {
	TabSize      int  `json:"tabSize"`
	InsertSpaces bool `json:"insertSpaces"`
}

const defaultTabSize = 2

func (o formattingOptions) tabSize() int {
	if o.TabSize <= 0 || o.TabSize > 16 {
		return defaultTabSize
	}
	return o.TabSize
}

// indentContext carries everything a classification rule may look at:
// the bracket depth enclosing the line start, the line's content after
// leading whitespace, and the code text of the nearest preceding
// non-blank line.
type indentContext struct {
	depth int
	lead  string
	prev  string
}

// indentRule pairs a predicate with the indent level (in units) it
// yields. Rules are evaluated in order and the first match wins, so the
// set stays auditable as a flat list rather than nested conditionals.
type indentRule struct {
	name  string
	match func(ctx indentContext) bool
	level func(ctx indentContext) int
}

var indentRules = []indentRule{
	{
		name: "leading closer outdents",
		match: func(ctx indentContext) bool {
			return strings.HasPrefix(ctx.lead, ")") || strings.HasPrefix(ctx.lead, "}")
		},
		level: func(ctx indentContext) int {
			if ctx.depth < 1 {
				return 0
			}
			return ctx.depth - 1
		},
	},
	{
		name: "subtype marker",
		match: func(ctx indentContext) bool {
			return strings.HasPrefix(ctx.lead, lang.SubtypeMarker)
		},
		level: func(ctx indentContext) int { return ctx.depth + 2 },
	},
	{
		name: "rule marker",
		match: func(ctx indentContext) bool {
			return strings.HasPrefix(ctx.lead, lang.RuleMarker)
		},
		level: func(ctx indentContext) int { return ctx.depth + 2 },
	},
	{
		name: "continuation of previous line",
		match: func(ctx indentContext) bool {
			return endsWithContinuation(ctx.prev)
		},
		level: func(ctx indentContext) int { return ctx.depth + 2 },
	},
	{
		name: "leading connective",
		match: func(ctx indentContext) bool {
			return strings.HasPrefix(ctx.lead, lang.RuleMarker) || startsWithConnective(ctx.lead)
		},
		level: func(ctx indentContext) int { return ctx.depth + 2 },
	},
	{
		name:  "base nesting depth",
		match: func(ctx indentContext) bool { return true },
		level: func(ctx indentContext) int { return ctx.depth },
	},
}

// indentLevel classifies the given line against the ordered rule set
// and returns its indent in units. Total: the final rule always
// matches.
func indentLevel(lines []string, line int) int {
	if line < 0 {
		line = 0
	}
	if line > len(lines) {
		line = len(lines)
	}
	depth, _ := scanBefore(lines, line)
	return classifyLevel(indentContext{
		depth: depth,
		lead:  leadingText(lines, line),
		prev:  precedingCode(lines, line),
	})
}

func classifyLevel(ctx indentContext) int {
	for _, rule := range indentRules {
		if rule.match(ctx) {
			return rule.level(ctx)
		}
	}
	return ctx.depth
}

func leadingText(lines []string, line int) string {
	if line >= len(lines) {
		return ""
	}
	return strings.TrimLeft(lines[line], " \t")
}

// precedingCode returns the code text of the nearest non-blank line
// above the given one, with any trailing line comment removed. Lines
// that hold nothing but a comment count as blank.
func precedingCode(lines []string, line int) string {
	for i := line - 1; i >= 0; i-- {
		code := strings.TrimSpace(stripLineComment(lines[i]))
		if code != "" {
			return code
		}
	}
	return ""
}

// stripLineComment drops a trailing // comment, leaving comment
// markers inside string literals alone.
func stripLineComment(line string) string {
	inString := false
	inChar := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inString {
			if ch == '\\' && i+1 < len(line) {
				i++
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}
		if inChar {
			if ch == '\\' && i+1 < len(line) {
				i++
				continue
			}
			if ch == '\'' {
				inChar = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '\'':
			inChar = true
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return line[:i]
			}
		}
	}
	return line
}

func endsWithContinuation(prev string) bool {
	if prev == "" {
		return false
	}
	if strings.HasSuffix(prev, ",") || strings.HasSuffix(prev, lang.RuleMarker) {
		return true
	}
	word := trailingWord(prev)
	return lang.IsConnective(word)
}

func startsWithConnective(lead string) bool {
	word := leadingWord(lead)
	return lang.IsConnective(word)
}

func trailingWord(s string) string {
	end := len(s)
	start := end
	for start > 0 && isWordChar(s[start-1]) {
		start--
	}
	return s[start:end]
}

func leadingWord(s string) string {
	end := 0
	for end < len(s) && isWordChar(s[end]) {
		end++
	}
	return s[:end]
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

// lexState tracks which lexical region a buffer scan is inside, so
// that brackets in comments and literals do not count toward depth.
type lexState int

const (
	lexCode lexState = iota
	lexString
	lexChar
	lexBlockComment
)

// scanBefore scans all lines above the given one and returns the
// number of unmatched open brackets enclosing its first column, along
// with the lexical state there. The depth is never negative: stray
// closers in malformed input clamp at zero instead of poisoning
// everything below them.
func scanBefore(lines []string, line int) (int, lexState) {
	depth := 0
	state := lexCode
	for i := 0; i < line && i < len(lines); i++ {
		depth, state = scanLineDepth(lines[i], depth, state)
		// Strings and char literals do not span lines.
		if state == lexString || state == lexChar {
			state = lexCode
		}
	}
	return depth, state
}

func scanLineDepth(line string, depth int, state lexState) (int, lexState) {
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch state {
		case lexString:
			if ch == '\\' && i+1 < len(line) {
				i++
				continue
			}
			if ch == '"' {
				state = lexCode
			}
		case lexChar:
			if ch == '\\' && i+1 < len(line) {
				i++
				continue
			}
			if ch == '\'' {
				state = lexCode
			}
		case lexBlockComment:
			if ch == '*' && i+1 < len(line) && line[i+1] == '/' {
				state = lexCode
				i++
			}
		default:
			switch ch {
			case '"':
				state = lexString
			case '\'':
				state = lexChar
			case '/':
				if i+1 < len(line) {
					if line[i+1] == '/' {
						return depth, state
					}
					if line[i+1] == '*' {
						state = lexBlockComment
						i++
					}
				}
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				if depth > 0 {
					depth--
				}
			}
		}
	}
	return depth, state
}

// indentColumn returns the target column for the line, clamped at
// zero by construction of the rule set.
func indentColumn(lines []string, line int, opts formattingOptions) int {
	return indentLevel(lines, line) * opts.tabSize()
}

func renderIndent(level int, opts formattingOptions) string {
	if level <= 0 {
		return ""
	}
	if !opts.InsertSpaces {
		return strings.Repeat("\t", level)
	}
	return strings.Repeat(" ", level*opts.tabSize())
}

// reindentLine rewrites the leading-whitespace span of one line and
// reports whether anything changed. Text after the first
// non-whitespace character is never touched, and an already-correct
// line is left byte-identical so callers can skip a spurious edit.
func reindentLine(lines []string, line int, opts formattingOptions) (string, bool) {
	if line < 0 || line >= len(lines) {
		return "", false
	}
	old := lines[line]
	trimmed := strings.TrimLeft(old, " \t")
	if trimmed == "" {
		// Blank lines keep whatever whitespace they carry; rewriting
		// them churns the undo history for no visible effect.
		return old, false
	}
	depth, state := scanBefore(lines, line)
	if state == lexBlockComment {
		return old, false
	}
	level := classifyLevel(indentContext{
		depth: depth,
		lead:  trimmed,
		prev:  precedingCode(lines, line),
	})
	next := renderIndent(level, opts) + trimmed
	return next, next != old
}
