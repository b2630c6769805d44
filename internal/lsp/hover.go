package lsp

var hoverDocs = map[string]string{
	"rel":      "`rel name(args) = body` or `rel name(args) :- body`\n\nDeclares a relation, either as a set of facts or as a rule with a body.",
	"relation": "`relation name(args) = body`\n\nLong form of `rel`.",
	"type":     "`type name(arg: T, ...)`, `type Alias = T`, `type Sub <: Super`\n\nDeclares a relation signature, a type alias, or a subtype.",
	"query":    "`query name`\n\nMarks a relation as an output of the program.",
	"import":   "`import \"path.scl\"`\n\nBrings the items of another file into scope.",
	"const":    "`const NAME = value`\n\nDeclares a named constant.",
	"and":      "`a and b`\n\nConjunction of two clauses in a rule body.",
	"or":       "`a or b`\n\nDisjunction of two clauses in a rule body.",
	"not":      "`not clause`\n\nNegates a clause; the negated relation must be stratifiable.",
	"implies":  "`a implies b`\n\nLogical implication inside a formula.",
	"forall":   "`forall(x: clause)`\n\nUniversal quantification over the bindings of a clause.",
	"exists":   "`exists(x: clause)`\n\nExistential quantification over the bindings of a clause.",
	"count":    "`n = count(x: clause)`\n\nAggregates the number of distinct bindings of a clause.",
	"sum":      "`s = sum[x](x: clause)`\n\nSums a bound variable over the bindings of a clause.",
	"min":      "`m = min[x](x: clause)`\n\nMinimum of a bound variable over the bindings of a clause.",
	"max":      "`m = max[x](x: clause)`\n\nMaximum of a bound variable over the bindings of a clause.",
	"argmin":   "`a = argmin[x](y: clause)`\n\nBinding that minimizes the aggregated variable.",
	"argmax":   "`a = argmax[x](y: clause)`\n\nBinding that maximizes the aggregated variable.",
}

func wordAt(text string, pos Position) (string, Range) {
	line := lineAt(text, pos.Line)
	if line == "" {
		return "", Range{}
	}
	ch := pos.Character
	if ch < 0 {
		ch = 0
	}
	if ch > len(line) {
		ch = len(line)
	}
	left := ch
	for left > 0 && isWordChar(line[left-1]) {
		left--
	}
	right := ch
	for right < len(line) && isWordChar(line[right]) {
		right++
	}
	if left == right {
		return "", Range{}
	}
	return line[left:right], Range{
		Start: Position{Line: pos.Line, Character: left},
		End:   Position{Line: pos.Line, Character: right},
	}
}
