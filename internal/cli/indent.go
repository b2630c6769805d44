package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scallop-lang/scallop-lsp/internal/lsp"
)

type indentCmdOptions struct {
	line    int
	tabSize int
	useTabs bool
	apply   bool
}

// newIndentCmd answers the one question editors keep asking: given
// this buffer and this line, what column should the line start at.
// With --apply it prints the buffer with that line reindented instead.
func newIndentCmd(opts Options) *cobra.Command {
	indentOpts := indentCmdOptions{tabSize: 2}
	cmd := &cobra.Command{
		Use:   "indent --line N [file|-]",
		Short: "Compute the indent column for one line",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("indent accepts at most one file path")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if indentOpts.line < 0 {
				return errors.New("--line must be zero or greater")
			}
			path := "-"
			if len(args) == 1 {
				path = strings.TrimSpace(args[0])
				if path == "" {
					path = "-"
				}
			}

			src, err := readSource(path, opts.Stdin)
			if err != nil {
				return err
			}
			fmtOpts := lsp.FormatOptions{
				TabSize:      indentOpts.tabSize,
				InsertSpaces: !indentOpts.useTabs,
			}
			if indentOpts.apply {
				text, _ := lsp.ReindentLine(string(src), indentOpts.line, fmtOpts)
				_, err = io.WriteString(opts.Stdout, text)
				return err
			}
			col := lsp.IndentColumn(string(src), indentOpts.line, fmtOpts)
			_, err = fmt.Fprintln(opts.Stdout, col)
			return err
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&indentOpts.line, "line", 0, "zero-based line to indent")
	fs.IntVar(&indentOpts.tabSize, "tab-size", 2, "tab size when using spaces")
	fs.BoolVar(&indentOpts.useTabs, "tabs", false, "use tabs for indentation")
	fs.BoolVar(&indentOpts.apply, "apply", false, "print the document with the line reindented")
	return cmd
}
