package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMaybePrintVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	if !maybePrintVersion([]string{"--version"}, buf) {
		t.Fatalf("expected version flag to be handled")
	}
	out := buf.String()
	if !strings.Contains(out, "scallop-lsp version=") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestMaybePrintVersion_NoFlag(t *testing.T) {
	buf := &bytes.Buffer{}
	if maybePrintVersion([]string{}, buf) {
		t.Fatalf("expected empty args to not be handled")
	}
	if maybePrintVersion([]string{"serve"}, buf) {
		t.Fatalf("expected non-version arg to not be handled")
	}
}

func TestMaybeRunFormat_NotFormatArgs(t *testing.T) {
	handled, err := maybeRunFormat([]string{"serve"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled {
		t.Fatalf("serve args must not be handled as format")
	}
}

func TestMaybeRunFormat_StdinToStdout(t *testing.T) {
	in := strings.NewReader("rel path(a, c) :-\nedge(a, c) or\npath(a, b) and edge(b, c)\nquery path\n")
	var out bytes.Buffer
	handled, err := maybeRunFormat([]string{"format"}, in, &out, &bytes.Buffer{})
	if !handled {
		t.Fatalf("format args must be handled")
	}
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	want := "rel path(a, c) :-\n    edge(a, c) or\n    path(a, b) and edge(b, c)\nquery path\n"
	if out.String() != want {
		t.Fatalf("unexpected output\n--- got ---\n%s\n--- want ---\n%s", out.String(), want)
	}
}

func TestMaybeRunFormat_WriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "path.scl")
	if err := os.WriteFile(path, []byte("rel path(a, c) :-\nedge(a, c)\n"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	handled, err := maybeRunFormat([]string{"format", "-w", path}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	if !handled || err != nil {
		t.Fatalf("format -w: handled=%v err=%v", handled, err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	want := "rel path(a, c) :-\n    edge(a, c)\n"
	if string(got) != want {
		t.Fatalf("unexpected file content %q", got)
	}
}

func TestMaybeRunFormat_WriteRequiresPath(t *testing.T) {
	handled, err := maybeRunFormat([]string{"format", "--write"}, strings.NewReader("rel a(x)\n"), &bytes.Buffer{}, &bytes.Buffer{})
	if !handled {
		t.Fatalf("format args must be handled")
	}
	if err == nil || !strings.Contains(err.Error(), "--write requires a file path") {
		t.Fatalf("expected --write error, got %v", err)
	}
}

func TestMaybeRunFormat_TooManyArgs(t *testing.T) {
	handled, err := maybeRunFormat([]string{"format", "a.scl", "b.scl"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	if !handled {
		t.Fatalf("format args must be handled")
	}
	if err == nil {
		t.Fatalf("expected an error for two file arguments")
	}
}
