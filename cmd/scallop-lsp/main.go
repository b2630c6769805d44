package main

import (
	"fmt"
	"io"
	"os"

	scallop "github.com/scallop-lang/scallop-lsp"
	"github.com/scallop-lang/scallop-lsp/cli"
)

func main() {
	args := os.Args[1:]
	if maybePrintVersion(args, os.Stdout) {
		return
	}
	if handled, err := maybeRunFormat(args, os.Stdin, os.Stdout, os.Stderr); handled {
		if err != nil {
			fmt.Fprintf(os.Stderr, "scallop-lsp: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := cli.Run(args, cli.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "scallop-lsp: %v\n", err)
		os.Exit(1)
	}
}

func maybePrintVersion(args []string, w io.Writer) bool {
	if len(args) == 0 || args[0] != "--version" {
		return false
	}
	_, _ = fmt.Fprintf(w, "scallop-lsp version=%s\n", scallop.Version().String())
	return true
}
