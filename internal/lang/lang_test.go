package lang

import (
	"strings"
	"testing"
)

func TestKeywordLookups(t *testing.T) {
	if !IsItemKeyword("rel") || !IsItemKeyword("query") {
		t.Fatal("rel/query must be item keywords")
	}
	if IsItemKeyword("and") {
		t.Fatal("and is not an item keyword")
	}
	if !IsKeyword("rel") || !IsKeyword("forall") {
		t.Fatal("IsKeyword must cover both item and body keywords")
	}
	if !IsConnective("and") || !IsConnective("or") || IsConnective("not") {
		t.Fatal("connectives are exactly and/or")
	}
	if !IsConstant("true") || IsConstant("null") {
		t.Fatal("constants are true/false")
	}
	if !IsAggregator("argmax") || IsAggregator("rel") {
		t.Fatal("aggregator lookup broken")
	}
	if !IsType("i128") || !IsType("DateTime") || IsType("int") {
		t.Fatal("type lookup broken")
	}
}

func TestKeywordsDeduplicated(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range Keywords() {
		if seen[w] {
			t.Fatalf("duplicate keyword %q", w)
		}
		seen[w] = true
	}
	for _, w := range append(append([]string{}, ItemKeywords...), BodyKeywords...) {
		if !seen[w] {
			t.Fatalf("keyword %q missing from union", w)
		}
	}
}

func TestOperatorsLongestFirst(t *testing.T) {
	for i, op := range Operators {
		for _, later := range Operators[i+1:] {
			if len(later) > len(op) && strings.HasPrefix(later, op) {
				t.Fatalf("operator %q shadowed by later longer %q", op, later)
			}
		}
	}
}

func TestMarkersArePrefixOrdered(t *testing.T) {
	if RuleMarker != ":-" || SubtypeMarker != "<:" {
		t.Fatal("unexpected marker text")
	}
	if FileExtensions[0] != ".scl" {
		t.Fatalf("unexpected extension %q", FileExtensions[0])
	}
}
