// Package lang holds the static definition of the Scallop surface syntax:
// keyword, constant, aggregator, and primitive type tables, the comment
// syntax, and the file-extension binding. Both the LSP server and the
// grammar generator read from these tables so the two surfaces cannot
// drift apart.
package lang

// FileExtensions are the filename suffixes bound to Scallop source.
var FileExtensions = []string{".scl"}

// LineComment is the prefix that starts a line comment.
const LineComment = "//"

// Block comment delimiters.
const (
	BlockCommentStart = "/*"
	BlockCommentEnd   = "*/"
)

// Markers with indentation significance.
const (
	RuleMarker    = ":-"
	SubtypeMarker = "<:"
)

// ItemKeywords introduce top-level items.
var ItemKeywords = []string{
	"import", "type", "rel", "relation", "query", "const",
}

// Connectives join clauses inside a rule body. A line ending in one of
// these continues onto the next line.
var Connectives = []string{"and", "or"}

// BodyKeywords appear inside rule bodies and formulas.
var BodyKeywords = []string{
	"and", "or", "not", "implies", "where",
	"if", "then", "else", "case", "is", "in",
	"forall", "exists", "new",
}

// Constants are literal keywords.
var Constants = []string{"true", "false"}

// Aggregators reduce a formula to a value.
var Aggregators = []string{
	"count", "sum", "prod", "min", "max",
	"argmin", "argmax", "top", "unique",
}

// Types are the primitive type names.
var Types = []string{
	"i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize",
	"f32", "f64",
	"bool", "char", "String", "Symbol",
	"DateTime", "Duration", "Entity", "Tensor",
}

// Operators lists the multi-character operators first so that
// longest-match lexing can try them in order.
var Operators = []string{
	":-", "<:", ":=", "::", "==", "!=", "<=", ">=", "=>", "&&", "||",
	"=", "<", ">", "+", "-", "*", "/", "%", "!", "|", ":", ".",
}

var (
	itemKeywordSet = toSet(ItemKeywords)
	bodyKeywordSet = toSet(BodyKeywords)
	connectiveSet  = toSet(Connectives)
	constantSet    = toSet(Constants)
	aggregatorSet  = toSet(Aggregators)
	typeSet        = toSet(Types)
)

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func IsItemKeyword(w string) bool {
	_, ok := itemKeywordSet[w]
	return ok
}

func IsKeyword(w string) bool {
	if _, ok := itemKeywordSet[w]; ok {
		return true
	}
	_, ok := bodyKeywordSet[w]
	return ok
}

func IsConnective(w string) bool {
	_, ok := connectiveSet[w]
	return ok
}

func IsConstant(w string) bool {
	_, ok := constantSet[w]
	return ok
}

func IsAggregator(w string) bool {
	_, ok := aggregatorSet[w]
	return ok
}

func IsType(w string) bool {
	_, ok := typeSet[w]
	return ok
}

// Keywords returns the union of item and body keywords, deduplicated,
// in table order.
func Keywords() []string {
	seen := make(map[string]struct{}, len(ItemKeywords)+len(BodyKeywords))
	out := make([]string, 0, len(ItemKeywords)+len(BodyKeywords))
	for _, w := range ItemKeywords {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	for _, w := range BodyKeywords {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
