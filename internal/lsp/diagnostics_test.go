package lsp

import (
	"strings"
	"testing"
)

func TestAnalyze_CleanProgram(t *testing.T) {
	text := strings.Join([]string{
		"// transitive closure",
		"type edge(i32, i32)",
		"rel edge = {(0, 1), (1, 2)}",
		"rel path(a, c) :-",
		"    edge(a, c) or",
		"    path(a, b) and edge(b, c)",
		"query path",
		"",
	}, "\n")
	diags := analyze(text)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

func TestAnalyze_UnclosedBracket(t *testing.T) {
	diags := analyze("rel a(x\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", diags)
	}
	d := diags[0]
	if !strings.Contains(d.Message, `unclosed "("`) {
		t.Fatalf("unexpected message %q", d.Message)
	}
	if d.Range.Start.Line != 0 || d.Range.Start.Character != 5 {
		t.Fatalf("diagnostic should point at the open bracket: %+v", d.Range)
	}
	if d.Source != diagnosticSource || d.Severity != 1 {
		t.Fatalf("unexpected source/severity: %+v", d)
	}
}

func TestAnalyze_UnexpectedCloser(t *testing.T) {
	diags := analyze("rel a(x))\n")
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "unexpected") {
		t.Fatalf("expected unexpected-closer diagnostic, got %+v", diags)
	}
}

func TestAnalyze_MismatchedCloser(t *testing.T) {
	diags := analyze("rel edge = {(0, 1}\n")
	if len(diags) == 0 {
		t.Fatalf("expected diagnostics for mismatched closer")
	}
	if !strings.Contains(diags[0].Message, "mismatched") {
		t.Fatalf("unexpected message %q", diags[0].Message)
	}
}

func TestAnalyze_UnterminatedString(t *testing.T) {
	diags := analyze("rel name = \"alice\nrel b(x)\n")
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "unterminated string") {
		t.Fatalf("expected unterminated string diagnostic, got %+v", diags)
	}
	if diags[0].Range.Start.Line != 0 || diags[0].Range.Start.Character != 11 {
		t.Fatalf("diagnostic should point at the opening quote: %+v", diags[0].Range)
	}
}

func TestAnalyze_UnterminatedBlockComment(t *testing.T) {
	diags := analyze("/* never closed\nrel a(x)\n")
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "unterminated block comment") {
		t.Fatalf("expected unterminated block comment diagnostic, got %+v", diags)
	}
}

func TestAnalyze_BracketsInLiteralsIgnored(t *testing.T) {
	text := "rel msg = {\"(\", ')'} // (((\n"
	diags := analyze(text)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

func TestAnalyze_TotalOnEmptyAndBlank(t *testing.T) {
	for _, text := range []string{"", "\n", "   \n\t\n"} {
		if diags := analyze(text); len(diags) != 0 {
			t.Fatalf("analyze(%q) = %+v, want none", text, diags)
		}
	}
}
