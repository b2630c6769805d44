package lsp

import (
	"github.com/zyedidia/rope"
)

// document holds one open buffer in a rope so the incremental edits a
// client streams on every keystroke splice in without copying the
// whole text.
type document struct {
	node *rope.Node
}

func newDocument(text string) *document {
	return &document{node: rope.New([]byte(text))}
}

func (d *document) Text() string {
	return string(d.node.Value())
}

func (d *document) Len() int {
	return d.node.Len()
}

// lineStart returns the byte offset of the first column of the given
// line, clamped to the end of the buffer when the line is out of
// range.
func (d *document) lineStart(line int) int {
	if line <= 0 {
		return 0
	}
	start := d.node.Len()
	d.node.IndexAllFunc(0, d.node.Len(), []byte{'\n'}, func(idx int) bool {
		line--
		if line <= 0 {
			start = idx + 1
			return true
		}
		return false
	})
	return start
}

func (d *document) lineEnd(from int) int {
	end := d.node.Len()
	d.node.IndexAllFunc(from, d.node.Len(), []byte{'\n'}, func(idx int) bool {
		end = idx
		return true
	})
	return end
}

// offsetAt converts a protocol position to a byte offset. Characters
// past the end of the line clamp to the line end, matching how clients
// are told to interpret loose positions.
func (d *document) offsetAt(pos Position) int {
	start := d.lineStart(pos.Line)
	if pos.Character <= 0 {
		return start
	}
	end := d.lineEnd(start)
	off := start + pos.Character
	if off > end {
		off = end
	}
	return off
}

// applyChange splices one content change into the buffer. A nil range
// means the client sent the full new text.
func (d *document) applyChange(rng *Range, text string) {
	if rng == nil {
		d.node = rope.New([]byte(text))
		return
	}
	start := d.offsetAt(rng.Start)
	end := d.offsetAt(rng.End)
	if end < start {
		start, end = end, start
	}
	if start != end {
		d.node.Remove(start, end)
	}
	if text != "" {
		d.node.Insert(start, []byte(text))
	}
}
