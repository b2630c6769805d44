package lsp

import "testing"

func TestDocument_FullReplace(t *testing.T) {
	doc := newDocument("old text")
	doc.applyChange(nil, "rel a(x)\n")
	if got := doc.Text(); got != "rel a(x)\n" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDocument_InsertWithinLine(t *testing.T) {
	doc := newDocument("rel a()\n")
	rng := &Range{
		Start: Position{Line: 0, Character: 6},
		End:   Position{Line: 0, Character: 6},
	}
	doc.applyChange(rng, "x")
	if got := doc.Text(); got != "rel a(x)\n" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDocument_ReplaceAcrossLines(t *testing.T) {
	doc := newDocument("rel a(x)\nrel b(y)\nrel c(z)\n")
	rng := &Range{
		Start: Position{Line: 0, Character: 8},
		End:   Position{Line: 2, Character: 0},
	}
	doc.applyChange(rng, "\n")
	if got := doc.Text(); got != "rel a(x)\nrel c(z)\n" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDocument_DeleteRange(t *testing.T) {
	doc := newDocument("rel ab(x)\n")
	rng := &Range{
		Start: Position{Line: 0, Character: 4},
		End:   Position{Line: 0, Character: 6},
	}
	doc.applyChange(rng, "")
	if got := doc.Text(); got != "rel (x)\n" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDocument_OffsetClampsToLineEnd(t *testing.T) {
	doc := newDocument("ab\ncd\n")
	if off := doc.offsetAt(Position{Line: 0, Character: 99}); off != 2 {
		t.Fatalf("expected clamp to line end, got %d", off)
	}
	if off := doc.offsetAt(Position{Line: 1, Character: 0}); off != 3 {
		t.Fatalf("expected start of second line, got %d", off)
	}
	if off := doc.offsetAt(Position{Line: 99, Character: 0}); off != doc.Len() {
		t.Fatalf("expected clamp to buffer end, got %d", off)
	}
}

func TestDocument_SequentialEdits(t *testing.T) {
	doc := newDocument("")
	doc.applyChange(nil, "rel edge = {}\n")
	doc.applyChange(&Range{
		Start: Position{Line: 0, Character: 12},
		End:   Position{Line: 0, Character: 12},
	}, "(0, 1)")
	if got := doc.Text(); got != "rel edge = {(0, 1)}\n" {
		t.Fatalf("unexpected text %q", got)
	}
}
