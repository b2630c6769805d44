package lsp

import (
	"sort"
	"strings"

	"github.com/scallop-lang/scallop-lsp/internal/lang"
)

// LSP CompletionItemKind values used below.
const (
	completionKindFunction = 3
	completionKindClass    = 7
	completionKindKeyword  = 14
)

func complete(text string, pos Position) []CompletionItem {
	line := lineAt(text, pos.Line)
	prefix := line
	if pos.Character >= 0 && pos.Character <= len(line) {
		prefix = line[:pos.Character]
	}

	word := trailingWord(prefix)
	before := strings.TrimRight(prefix[:len(prefix)-len(word)], " \t")

	var items []CompletionItem
	switch {
	case typePosition(before):
		items = typeItems(word)
	case before == "":
		items = keywordItems(lang.ItemKeywords, word, "item keyword")
	default:
		items = append(
			keywordItems(lang.BodyKeywords, word, "keyword"),
			aggregatorItems(word)...,
		)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

// typePosition reports whether the text before the word being typed
// calls for a type name: a `:` annotation or a `<:` subtype bound.
func typePosition(before string) bool {
	return strings.HasSuffix(before, ":") || strings.HasSuffix(before, lang.SubtypeMarker)
}

func typeItems(prefix string) []CompletionItem {
	items := make([]CompletionItem, 0, len(lang.Types))
	for _, t := range lang.Types {
		if prefix != "" && !strings.HasPrefix(t, prefix) {
			continue
		}
		items = append(items, CompletionItem{
			Label:         t,
			Kind:          completionKindClass,
			Detail:        "primitive type",
			Documentation: "Built-in Scallop value type.",
		})
	}
	return items
}

func keywordItems(words []string, prefix, detail string) []CompletionItem {
	items := make([]CompletionItem, 0, len(words))
	for _, w := range words {
		if prefix != "" && !strings.HasPrefix(w, prefix) {
			continue
		}
		items = append(items, CompletionItem{
			Label:  w,
			Kind:   completionKindKeyword,
			Detail: detail,
		})
	}
	return items
}

func aggregatorItems(prefix string) []CompletionItem {
	items := make([]CompletionItem, 0, len(lang.Aggregators))
	for _, a := range lang.Aggregators {
		if prefix != "" && !strings.HasPrefix(a, prefix) {
			continue
		}
		items = append(items, CompletionItem{
			Label:         a,
			Kind:          completionKindFunction,
			Detail:        "aggregator",
			Documentation: "Built-in Scallop aggregation.",
		})
	}
	return items
}
