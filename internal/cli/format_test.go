package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatStdinToStdout(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("rel path(a, c) :-\nedge(a, c) or\npath(a, b) and edge(b, c)\nquery path\n")
	var out bytes.Buffer
	err := Run([]string{"format"}, Options{
		Stdin:       in,
		Stdout:      &out,
		Stderr:      &bytes.Buffer{},
		ServeRunner: func(opts ServeRuntimeOptions) error { return nil },
	})
	if err != nil {
		t.Fatalf("run format command: %v", err)
	}

	want := "rel path(a, c) :-\n    edge(a, c) or\n    path(a, b) and edge(b, c)\nquery path\n"
	if out.String() != want {
		t.Fatalf("unexpected format output\n--- got ---\n%s\n--- want ---\n%s", out.String(), want)
	}
}

func TestFormatWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "path.scl")
	in := "rel path(a, c) :-\nedge(a, c)\n"
	if err := os.WriteFile(path, []byte(in), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	err := Run([]string{"format", "--write", path}, Options{
		Stdin:       strings.NewReader(""),
		Stdout:      &bytes.Buffer{},
		Stderr:      &bytes.Buffer{},
		ServeRunner: func(opts ServeRuntimeOptions) error { return nil },
	})
	if err != nil {
		t.Fatalf("run format --write: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	want := "rel path(a, c) :-\n    edge(a, c)\n"
	if string(got) != want {
		t.Fatalf("unexpected file content\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestFormatTabsFlag(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("rel path(a, c) :-\nedge(a, c)\n")
	var out bytes.Buffer
	err := Run([]string{"format", "--tabs"}, Options{
		Stdin:       in,
		Stdout:      &out,
		Stderr:      &bytes.Buffer{},
		ServeRunner: func(opts ServeRuntimeOptions) error { return nil },
	})
	if err != nil {
		t.Fatalf("run format --tabs: %v", err)
	}
	want := "rel path(a, c) :-\n\t\tedge(a, c)\n"
	if out.String() != want {
		t.Fatalf("unexpected tab output %q", out.String())
	}
}

func TestFormatWriteRequiresFile(t *testing.T) {
	t.Parallel()

	err := Run([]string{"format", "--write"}, Options{
		Stdin:       strings.NewReader("rel a(x)\n"),
		Stdout:      &bytes.Buffer{},
		Stderr:      &bytes.Buffer{},
		ServeRunner: func(opts ServeRuntimeOptions) error { return nil },
	})
	if err == nil || !strings.Contains(err.Error(), "--write requires a file path") {
		t.Fatalf("expected --write error, got %v", err)
	}
}

func TestFormatRejectsExtraArgs(t *testing.T) {
	t.Parallel()

	err := Run([]string{"format", "a.scl", "b.scl"}, Options{
		Stdin:       strings.NewReader(""),
		Stdout:      &bytes.Buffer{},
		Stderr:      &bytes.Buffer{},
		ServeRunner: func(opts ServeRuntimeOptions) error { return nil },
	})
	if err == nil {
		t.Fatal("expected an error for two file arguments")
	}
}
