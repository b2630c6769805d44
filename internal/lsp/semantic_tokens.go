package lsp

import (
	"github.com/scallop-lang/scallop-lsp/internal/lang"
)

const (
	semanticTypeKeyword = iota
	semanticTypeType
	semanticTypeFunction
	semanticTypeEnumMember
	semanticTypeString
	semanticTypeNumber
	semanticTypeComment
	semanticTypeOperator
	semanticTypeDecorator
)

var semanticTokenLegendTypes = []string{
	"keyword",
	"type",
	"function",
	"enumMember",
	"string",
	"number",
	"comment",
	"operator",
	"decorator",
}

type semanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

type semanticTokensOptions struct {
	Legend semanticTokensLegend `json:"legend"`
	Full   bool                 `json:"full"`
}

type semanticTokens struct {
	Data []uint32 `json:"data"`
}

type semanticTokensParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type semanticLexKind int

const (
	semanticLexIdent semanticLexKind = iota
	semanticLexString
	semanticLexChar
	semanticLexNumber
	semanticLexComment
	semanticLexOperator
	semanticLexAttribute
	semanticLexOther
)

type semanticLexToken struct {
	kind   semanticLexKind
	text   string
	line   int
	col    int
	length int
}

type semanticSpan struct {
	line   int
	start  int
	length int
	typ    int
}

// declaration markers: the ident that follows one of these keywords is
// a declared name, which is how the relation/type names an author
// introduces get their own color.
type pendingDecl int

const (
	declNone pendingDecl = iota
	declRelation
	declType
	declConst
)

func semanticTokensFull(text string) semanticTokens {
	spans := classifySemanticSpans(text)
	return semanticTokens{Data: encodeSemanticSpans(spans)}
}

func classifySemanticSpans(text string) []semanticSpan {
	toks := lexSemantic(text)
	if len(toks) == 0 {
		return nil
	}

	spans := make([]semanticSpan, 0, len(toks))
	pending := declNone

	for _, tok := range toks {
		switch tok.kind {
		case semanticLexComment:
			spans = append(spans, span(tok, semanticTypeComment))
			continue
		case semanticLexString:
			spans = append(spans, span(tok, semanticTypeString))
			continue
		case semanticLexChar:
			spans = append(spans, span(tok, semanticTypeString))
			continue
		case semanticLexNumber:
			spans = append(spans, span(tok, semanticTypeNumber))
			continue
		case semanticLexAttribute:
			spans = append(spans, span(tok, semanticTypeDecorator))
			continue
		case semanticLexOperator:
			spans = append(spans, span(tok, semanticTypeOperator))
			switch tok.text {
			case "=", lang.RuleMarker:
				// Past the head of a declaration; anything that
				// follows is body, not a declared name.
				pending = declNone
			}
			continue
		case semanticLexIdent:
			typ, nextPending := classifyIdentifier(tok.text, pending)
			if typ >= 0 {
				spans = append(spans, span(tok, typ))
			}
			pending = nextPending
			continue
		default:
			continue
		}
	}

	return spans
}

func span(tok semanticLexToken, typ int) semanticSpan {
	return semanticSpan{line: tok.line, start: tok.col, length: tok.length, typ: typ}
}

// classifyIdentifier maps a word to a legend index, or -1 when the
// editor's default styling should apply. It also reports whether the
// next identifier is a declared name.
func classifyIdentifier(word string, pending pendingDecl) (int, pendingDecl) {
	switch word {
	case "rel", "relation", "query":
		return semanticTypeKeyword, declRelation
	case "type":
		return semanticTypeKeyword, declType
	case "const":
		return semanticTypeKeyword, declConst
	}
	switch pending {
	case declRelation:
		return semanticTypeFunction, declNone
	case declType:
		return semanticTypeType, declNone
	case declConst:
		return semanticTypeEnumMember, declNone
	}
	switch {
	case lang.IsConstant(word):
		return semanticTypeEnumMember, declNone
	case lang.IsKeyword(word):
		return semanticTypeKeyword, declNone
	case lang.IsType(word):
		return semanticTypeType, declNone
	case lang.IsAggregator(word):
		return semanticTypeFunction, declNone
	}
	return -1, declNone
}

func encodeSemanticSpans(spans []semanticSpan) []uint32 {
	if len(spans) == 0 {
		return nil
	}
	data := make([]uint32, 0, len(spans)*5)
	prevLine := 0
	prevStart := 0
	for i, s := range spans {
		lineDelta := s.line
		startDelta := s.start
		if i > 0 {
			lineDelta = s.line - prevLine
			if lineDelta == 0 {
				startDelta = s.start - prevStart
			}
		}
		data = append(data, uint32(lineDelta), uint32(startDelta), uint32(s.length), uint32(s.typ), 0)
		prevLine = s.line
		prevStart = s.start
	}
	return data
}

func lexSemantic(input string) []semanticLexToken {
	state := semanticLexState{
		input: input,
		out:   make([]semanticLexToken, 0, len(input)/3),
	}
	for state.i < len(state.input) {
		if state.scanWhitespaceOrNewline() || state.scanComment() || state.scanString() ||
			state.scanChar() || state.scanAttribute() || state.scanIdentOrNumber() || state.scanOperator() {
			continue
		}
		state.emit(semanticLexOther, string(state.input[state.i]), state.line, state.col)
		state.i++
		state.col++
	}
	return state.out
}

type semanticLexState struct {
	input string
	out   []semanticLexToken
	i     int
	line  int
	col   int
}

func (s *semanticLexState) emit(kind semanticLexKind, text string, line, col int) {
	s.out = append(s.out, semanticLexToken{
		kind:   kind,
		text:   text,
		line:   line,
		col:    col,
		length: len(text),
	})
}

func (s *semanticLexState) scanWhitespaceOrNewline() bool {
	ch := s.input[s.i]
	if ch == '\n' {
		s.line++
		s.col = 0
		s.i++
		return true
	}
	if ch == ' ' || ch == '\t' || ch == '\r' {
		s.col++
		s.i++
		return true
	}
	return false
}

func (s *semanticLexState) scanComment() bool {
	if s.input[s.i] != '/' || s.i+1 >= len(s.input) {
		return false
	}
	switch s.input[s.i+1] {
	case '/':
		startLine, startCol, j := s.line, s.col, s.i
		for j < len(s.input) && s.input[j] != '\n' {
			j++
		}
		s.emit(semanticLexComment, s.input[s.i:j], startLine, startCol)
		s.col += j - s.i
		s.i = j
		return true
	case '*':
		s.scanBlockComment()
		return true
	}
	return false
}

// scanBlockComment emits one comment token per line of the comment, so
// the encoded spans never cross a line boundary.
func (s *semanticLexState) scanBlockComment() {
	segStart := s.i
	segLine, segCol := s.line, s.col
	j := s.i + 2
	for j < len(s.input) {
		if s.input[j] == '\n' {
			s.emit(semanticLexComment, s.input[segStart:j], segLine, segCol)
			s.line++
			s.col = 0
			j++
			segStart = j
			segLine, segCol = s.line, s.col
			continue
		}
		if s.input[j] == '*' && j+1 < len(s.input) && s.input[j+1] == '/' {
			j += 2
			break
		}
		j++
	}
	if j > segStart {
		s.emit(semanticLexComment, s.input[segStart:j], segLine, segCol)
	}
	s.col += j - segStart
	s.i = j
}

func (s *semanticLexState) scanString() bool {
	if s.input[s.i] != '"' {
		return false
	}
	startLine, startCol := s.line, s.col
	j := s.i + 1
	for j < len(s.input) {
		if s.input[j] == '\\' && j+1 < len(s.input) {
			j += 2
			continue
		}
		if s.input[j] == '"' {
			j++
			break
		}
		if s.input[j] == '\n' {
			break
		}
		j++
	}
	s.emit(semanticLexString, s.input[s.i:j], startLine, startCol)
	s.col += j - s.i
	s.i = j
	return true
}

func (s *semanticLexState) scanChar() bool {
	if s.input[s.i] != '\'' {
		return false
	}
	startLine, startCol := s.line, s.col
	j := s.i + 1
	for j < len(s.input) {
		if s.input[j] == '\\' && j+1 < len(s.input) {
			j += 2
			continue
		}
		if s.input[j] == '\'' {
			j++
			break
		}
		if s.input[j] == '\n' {
			break
		}
		j++
	}
	s.emit(semanticLexChar, s.input[s.i:j], startLine, startCol)
	s.col += j - s.i
	s.i = j
	return true
}

// scanAttribute consumes @name annotations such as @demand("bf").
// Only the @name part is one token; the argument list lexes normally.
func (s *semanticLexState) scanAttribute() bool {
	if s.input[s.i] != '@' {
		return false
	}
	startLine, startCol := s.line, s.col
	j := s.i + 1
	for j < len(s.input) && isIdentPart(s.input[j]) {
		j++
	}
	s.emit(semanticLexAttribute, s.input[s.i:j], startLine, startCol)
	s.col += j - s.i
	s.i = j
	return true
}

func (s *semanticLexState) scanIdentOrNumber() bool {
	ch := s.input[s.i]
	startLine, startCol := s.line, s.col
	if isIdentStart(ch) {
		j := s.i + 1
		for j < len(s.input) && isIdentPart(s.input[j]) {
			j++
		}
		s.emit(semanticLexIdent, s.input[s.i:j], startLine, startCol)
		s.col += j - s.i
		s.i = j
		return true
	}
	if ch < '0' || ch > '9' {
		return false
	}
	j := s.i + 1
	for j < len(s.input) && s.input[j] >= '0' && s.input[j] <= '9' {
		j++
	}
	if j < len(s.input) && s.input[j] == '.' {
		k := j + 1
		for k < len(s.input) && s.input[k] >= '0' && s.input[k] <= '9' {
			k++
		}
		if k > j+1 {
			j = k
		}
	}
	s.emit(semanticLexNumber, s.input[s.i:j], startLine, startCol)
	s.col += j - s.i
	s.i = j
	return true
}

// scanOperator tries the operator table longest first.
func (s *semanticLexState) scanOperator() bool {
	rest := s.input[s.i:]
	for _, op := range lang.Operators {
		if len(rest) >= len(op) && rest[:len(op)] == op {
			s.emit(semanticLexOperator, op, s.line, s.col)
			s.col += len(op)
			s.i += len(op)
			return true
		}
	}
	switch s.input[s.i] {
	case '(', ')', '[', ']', '{', '}', ',', ';':
		s.emit(semanticLexOperator, string(s.input[s.i]), s.line, s.col)
		s.col++
		s.i++
		return true
	}
	return false
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
