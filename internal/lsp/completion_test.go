package lsp

import "testing"

func labels(items []CompletionItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func containsLabel(items []CompletionItem, label string) bool {
	for _, it := range items {
		if it.Label == label {
			return true
		}
	}
	return false
}

func TestComplete_ItemKeywordsAtLineStart(t *testing.T) {
	items := complete("re", Position{Line: 0, Character: 2})
	if !containsLabel(items, "rel") || !containsLabel(items, "relation") {
		t.Fatalf("expected rel/relation completions, got %v", labels(items))
	}
	if containsLabel(items, "type") {
		t.Fatalf("prefix filter should drop type, got %v", labels(items))
	}
}

func TestComplete_TypesAfterColon(t *testing.T) {
	text := "type edge(a: i"
	items := complete(text, Position{Line: 0, Character: len(text)})
	for _, want := range []string{"i8", "i16", "i32", "i64", "i128", "isize"} {
		if !containsLabel(items, want) {
			t.Fatalf("expected %s completion, got %v", want, labels(items))
		}
	}
	if containsLabel(items, "u32") || containsLabel(items, "rel") {
		t.Fatalf("unexpected completion in %v", labels(items))
	}
	for _, it := range items {
		if it.Kind != completionKindClass {
			t.Fatalf("type completion %q has kind %d", it.Label, it.Kind)
		}
	}
}

func TestComplete_TypesAfterSubtypeMarker(t *testing.T) {
	text := "type Name <: S"
	items := complete(text, Position{Line: 0, Character: len(text)})
	if !containsLabel(items, "String") || !containsLabel(items, "Symbol") {
		t.Fatalf("expected String/Symbol after <:, got %v", labels(items))
	}
}

func TestComplete_BodyKeywordsAndAggregatorsMidLine(t *testing.T) {
	text := "rel p(a) :- q(a) a"
	items := complete(text, Position{Line: 0, Character: len(text)})
	if !containsLabel(items, "and") {
		t.Fatalf("expected and completion, got %v", labels(items))
	}
	if !containsLabel(items, "argmin") || !containsLabel(items, "argmax") {
		t.Fatalf("expected aggregator completions, got %v", labels(items))
	}
	if containsLabel(items, "rel") {
		t.Fatalf("item keywords do not belong mid-line: %v", labels(items))
	}
}

func TestComplete_SortedByLabel(t *testing.T) {
	text := "rel p(a) :- "
	items := complete(text, Position{Line: 0, Character: len(text)})
	for i := 1; i < len(items); i++ {
		if items[i-1].Label > items[i].Label {
			t.Fatalf("completions not sorted: %v", labels(items))
		}
	}
}

func TestComplete_OutOfRangePositionIsTotal(t *testing.T) {
	items := complete("rel", Position{Line: 9, Character: 0})
	if items == nil {
		// An empty result is fine; the call just must not panic.
		t.Log("no completions for out-of-range line")
	}
}

func TestWordAt(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  Position
		want string
	}{
		{"start of word", "rel edge(a, b)", Position{0, 0}, "rel"},
		{"inside word", "rel edge(a, b)", Position{0, 6}, "edge"},
		{"end of word", "rel edge(a, b)", Position{0, 3}, "rel"},
		{"on punctuation", "rel edge(a, b)", Position{0, 8}, "edge"},
		{"second line", "rel a(x)\nquery a", Position{1, 2}, "query"},
		{"blank line", "rel a(x)\n\nquery a", Position{1, 0}, ""},
		{"character past end", "rel", Position{0, 99}, "rel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rng := wordAt(tt.text, tt.pos)
			if got != tt.want {
				t.Fatalf("wordAt(%q, %v) = %q, want %q", tt.text, tt.pos, got, tt.want)
			}
			if got != "" && rng.End.Character-rng.Start.Character != len(got) {
				t.Fatalf("range %v does not span %q", rng, got)
			}
		})
	}
}

func TestHoverDocs_CoverCoreSurface(t *testing.T) {
	for _, w := range []string{"rel", "type", "query", "count", "forall", "not"} {
		if _, ok := hoverDocs[w]; !ok {
			t.Fatalf("missing hover documentation for %q", w)
		}
	}
}
